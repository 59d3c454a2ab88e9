// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	Success = 0

	// UserError covers bad arguments, unknown task references and empty titles.
	UserError = 1

	// ConfigError covers unreadable or invalid configuration.
	ConfigError = 2

	// StorageError covers failures to open, read or write the task store.
	StorageError = 3
)
