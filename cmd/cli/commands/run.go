package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/catalog"
	"github.com/temirov/rex/internal/execshell"
	"github.com/temirov/rex/internal/platform"
	"github.com/temirov/rex/internal/repos/dependencies"
	"github.com/temirov/rex/internal/repos/shared"
	flagutils "github.com/temirov/rex/internal/utils/flags"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	runUseConstant                   = "run <tool> <action>"
	runShortDescription              = "Run a resolved catalog command with sh -c"
	runOperationNameConstant         = "command run"
	directoryFlagNameConstant        = "directory"
	directoryFlagShorthandConstant   = "C"
	directoryFlagUsageConstant       = "Working directory for the command"
	defaultDirectoryConstant         = "."
	commandExitErrorTemplateConstant = "command %s %s exited with code %d"
)

// CommandExitError reports a command that exited with a non-zero code after its output was written.
type CommandExitError struct {
	Tool     catalog.ToolName
	Action   catalog.ActionName
	ExitCode int
	Cause    error
}

// Error names the command and its exit code only; the output has already been printed.
func (commandExitError CommandExitError) Error() string {
	return fmt.Sprintf(commandExitErrorTemplateConstant, commandExitError.Tool, commandExitError.Action, commandExitError.ExitCode)
}

// Unwrap exposes the underlying command failure.
func (commandExitError CommandExitError) Unwrap() error {
	return commandExitError.Cause
}

// RunCommandBuilder assembles the command run subcommand.
type RunCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	Catalog                      *catalog.Catalog
	Executor                     shared.ScriptExecutor
	PlatformGuard                *platform.Guard
	Normalizer                   *pathutils.Normalizer
	HumanReadableLoggingProvider func() bool
}

// Build constructs the command run subcommand.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   runUseConstant,
		Short: runShortDescription,
		Args:  cobra.ExactArgs(commandArgumentsCountConstant),
	}
	assignmentFlags := flagutils.BindAssignmentFlags(command)
	directory := command.Flags().StringP(directoryFlagNameConstant, directoryFlagShorthandConstant, defaultDirectoryConstant, directoryFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, assignmentFlags.Assignments, *directory)
	}

	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, arguments []string, assignments []string, directory string) error {
	guard := platform.NewGuard()
	if builder.PlatformGuard != nil {
		guard = *builder.PlatformGuard
	}
	if guardError := guard.EnsureSupported(runOperationNameConstant); guardError != nil {
		return guardError
	}

	resolvedCommand, resolveError := resolveImplementedCommand(resolveCatalog(builder.Catalog), arguments, assignments)
	if resolveError != nil {
		return resolveError
	}

	normalizer := builder.Normalizer
	if normalizer == nil {
		normalizer = pathutils.NewNormalizer()
	}
	workingDirectory, normalizeError := normalizer.Normalize(directory)
	if normalizeError != nil {
		return normalizeError
	}

	logger := resolveLogger(builder.LoggerProvider)
	var consoleLogger *zap.Logger
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() && builder.ConsoleLoggerProvider != nil {
		consoleLogger = builder.ConsoleLoggerProvider()
	}
	executor, executorError := dependencies.ResolveScriptExecutor(builder.Executor, logger, consoleLogger)
	if executorError != nil {
		return executorError
	}

	executionResult, executionError := executor.ExecuteScript(command.Context(), resolvedCommand, workingDirectory)
	if executionError != nil {
		var commandFailedError execshell.CommandFailedError
		if !errors.As(executionError, &commandFailedError) {
			return executionError
		}
		writeExecutionResult(command.OutOrStdout(), command.ErrOrStderr(), commandFailedError.Result)
		return CommandExitError{
			Tool:     catalog.ToolName(arguments[0]),
			Action:   catalog.ActionName(arguments[1]),
			ExitCode: commandFailedError.Result.ExitCode,
			Cause:    executionError,
		}
	}

	writeExecutionResult(command.OutOrStdout(), command.ErrOrStderr(), executionResult)
	return nil
}

func writeExecutionResult(output io.Writer, errorOutput io.Writer, executionResult execshell.ExecutionResult) {
	if len(executionResult.StandardOutput) > 0 {
		_, _ = io.WriteString(output, executionResult.StandardOutput)
	}
	if len(executionResult.StandardError) > 0 {
		_, _ = io.WriteString(errorOutput, executionResult.StandardError)
	}
}
