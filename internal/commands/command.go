package commands

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sandeepkv93/todo/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeRemove Type = "rm"
	TypeToggle Type = "toggle"
	TypeFilter Type = "filter"
	TypeClear  Type = "clear"
)

// aliases accepted in addition to the canonical verbs.
var aliases = map[string]Type{
	"new":    TypeAdd,
	"rename": TypeEdit,
	"remove": TypeRemove,
	"delete": TypeRemove,
	"del":    TypeRemove,
	"done":   TypeToggle,
	"show":   TypeFilter,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

type EditArgs struct {
	Ref   Ref
	Title string
}

type RefArgs struct {
	Ref Ref
}

type FilterArgs struct {
	Filter model.Filter
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Remove *RefArgs
	Toggle *RefArgs
	Filter *FilterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	rest := dropField(raw)

	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeEdit:
		return parseEdit(input, args, rest)
	case TypeRemove:
		ref, err := parseRefArg("rm", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeRemove, Raw: input, Remove: &RefArgs{Ref: ref}}, nil
	case TypeToggle:
		ref, err := parseRefArg("toggle", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeToggle, Raw: input, Toggle: &RefArgs{Ref: ref}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeClear:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear takes no arguments"}
		}
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, rest string) (Command, error) {
	title := strings.TrimSpace(rest)
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

// parseEdit allows an empty title, which deletes the task.
func parseEdit(raw string, args []string, rest string) (Command, error) {
	ref, err := parseRefArg("edit", args)
	if err != nil {
		return Command{}, err
	}
	title := dropField(rest)
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Ref: ref, Title: title}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, active, completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", args[0])}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseRefArg(verb string, args []string) (Ref, error) {
	if len(args) == 0 {
		return Ref{}, &CommandError{Code: ErrCodeInvalidArgument, Message: verb + " requires a task number or id"}
	}
	ref, err := ParseRef(args[0])
	if err != nil {
		return Ref{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return ref, nil
}

// dropField returns s without its first whitespace-separated field, trimmed.
// Inner spacing of the remainder is kept.
func dropField(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(s[i:])
}
