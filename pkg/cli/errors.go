package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitConfig = 2
)

// ConfigError reports a configuration problem found by a command, such as
// an unreadable file or an invalid flag value. Field is empty when the
// whole file is unusable.
type ConfigError struct {
	Field   string
	Message string
}

// NewConfigError returns a *ConfigError for field.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return "config error in " + e.Field + ": " + e.Message
	}
	return "config error: " + e.Message
}

// CommandError wraps the failure of a command's main action.
type CommandError struct {
	Command string
	Err     error
}

// NewCommandError wraps err as the failure of command.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode maps a command result to a process exit code. Configuration
// problems exit with ExitConfig so scripts can tell them apart from
// runtime failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitConfig
	}
	return ExitFailed
}
