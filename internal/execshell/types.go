package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	shellExecutableNameConstant             = "sh"
	shellCommandFlagConstant                = "-c"
	loggerNotConfiguredMessageConstant      = "logger not configured"
	runnerNotConfiguredMessageConstant      = "command runner not configured"
	commandFailedErrorTemplateConstant      = "%s failed with exit code %d"
	commandFailedWithOutputTemplateConstant = "%s failed with exit code %d: %s"
	commandExecutionErrorTemplateConstant   = "%s could not be executed: %s"
	commandArgumentsJoinSeparatorConstant   = " "
)

// CommandName identifies an executable invoked by the executor.
type CommandName string

// CommandShell runs a script through the POSIX shell.
const CommandShell CommandName = CommandName(shellExecutableNameConstant)

// CommandDetails describes a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// Label renders the command on a single line for messages.
func (command ShellCommand) Label() string {
	commandParts := []string{string(command.Name)}
	for _, argument := range command.Details.Arguments {
		commandParts = append(commandParts, strings.Join(strings.Fields(argument), commandArgumentsJoinSeparatorConstant))
	}
	return strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
}

// ExecutionResult captures the observable outcome of a process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)
)

// CommandFailedError reports a command that ran and exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failing command, including its standard error when present.
func (failedError CommandFailedError) Error() string {
	standardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(standardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, failedError.Command.Label(), failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithOutputTemplateConstant, failedError.Command.Label(), failedError.Result.ExitCode, standardError)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, executionError.Command.Label(), executionError.Cause)
}

// Unwrap exposes the runner failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}
