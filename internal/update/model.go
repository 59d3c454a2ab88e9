package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/todo/internal/analytics"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/todo"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeAdding  Mode = "adding"
	ModeEditing Mode = "editing"
	ModePalette Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Add            string
	Toggle         string
	Edit           string
	Remove         string
	ClearCompleted string
	NextFilter     string
	Palette        string
	Help           string
	Quit           string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Model is the Bubble Tea model. It never caches the collection: every View
// re-derives the visible list from the store.
type Model struct {
	Store       *todo.Store
	Filter      model.Filter
	Cursor      int
	Mode        Mode
	EditingID   string
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        KeyMap
	Quitting    bool
	LastError   error

	ctx       context.Context
	logger    *zap.Logger
	tag       *analytics.Tag
	revision  uint64
	addInput  textinput.Model
	editInput textinput.Model
	// commandInput backs the palette
	commandInput textinput.Model
	helpModel    help.Model
}

type Options struct {
	Context context.Context
	Filter  model.Filter
	Logger  *zap.Logger
	Tag     *analytics.Tag
}

type AddTodoMsg struct {
	Title string
}

type ToggleTodoMsg struct {
	ID string
}

type EditTodoMsg struct {
	ID    string
	Title string
}

type RemoveTodoMsg struct {
	ID string
}

type ClearCompletedMsg struct{}

type SetFilterMsg struct {
	Filter model.Filter
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(store *todo.Store, opts Options) Model {
	m := Model{
		Store:  store,
		Filter: model.FilterAll,
		Mode:   ModeList,
		Keys: KeyMap{
			Add:            "a",
			Toggle:         " ",
			Edit:           "enter",
			Remove:         "d",
			ClearCompleted: "C",
			NextFilter:     "tab",
			Palette:        "/",
			Help:           "?",
			Quit:           "q",
		},
		ctx:    opts.Context,
		logger: opts.Logger,
		tag:    opts.Tag,
	}
	if opts.Filter.IsValid() {
		m.Filter = opts.Filter
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if store != nil {
		m.revision = store.Revision()
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "What needs to be done?"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.editInput = textinput.New()
	m.editInput.Prompt = "edit> "
	m.editInput.CharLimit = 256
	m.editInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
}
