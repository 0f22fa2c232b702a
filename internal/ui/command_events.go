package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/rex/internal/execshell"
)

const (
	repositoryStartedTemplateConstant    = "%s: running %s"
	repositoryCompletedTemplateConstant  = "%s: finished %s"
	repositoryExitCodeTemplateConstant   = "%s: %s exited with code %d"
	repositoryUnstartedTemplateConstant  = "%s: %s could not run: %s"
	standardErrorExcerptTemplateConstant = " (%s)"
	scriptContinuationMarkerConstant     = " ..."
	scriptEllipsisConstant               = "..."
	defaultScriptExcerptLengthConstant   = 48
	currentDirectoryLabelConstant        = "."
	unknownFailureMessageConstant        = "unknown error"
	shellScriptArgumentIndexConstant     = 1
)

// CommandEventFormatter builds one-line messages for scripts executed inside repositories.
// Scripts are reduced to their first line and shortened to ScriptExcerptLength characters.
type CommandEventFormatter struct {
	ScriptExcerptLength int
}

// BuildStartedMessage describes a script about to run.
func (formatter CommandEventFormatter) BuildStartedMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(repositoryStartedTemplateConstant, repositoryLabel(command), formatter.scriptExcerpt(command))
}

// BuildSuccessMessage describes a script that exited with code zero.
func (formatter CommandEventFormatter) BuildSuccessMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(repositoryCompletedTemplateConstant, repositoryLabel(command), formatter.scriptExcerpt(command))
}

// BuildFailureMessage describes a script that exited with a non-zero code, quoting the first line of standard error.
func (formatter CommandEventFormatter) BuildFailureMessage(command execshell.ShellCommand, result execshell.ExecutionResult) string {
	message := fmt.Sprintf(repositoryExitCodeTemplateConstant, repositoryLabel(command), formatter.scriptExcerpt(command), result.ExitCode)
	standardErrorLine := firstLine(result.StandardError)
	if len(standardErrorLine) == 0 {
		return message
	}
	return message + fmt.Sprintf(standardErrorExcerptTemplateConstant, standardErrorLine)
}

// BuildExecutionFailureMessage describes a script the shell could not be started for.
func (formatter CommandEventFormatter) BuildExecutionFailureMessage(command execshell.ShellCommand, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(repositoryUnstartedTemplateConstant, repositoryLabel(command), formatter.scriptExcerpt(command), failureMessage)
}

func (formatter CommandEventFormatter) scriptExcerpt(command execshell.ShellCommand) string {
	script := command.Label()
	if len(command.Details.Arguments) > shellScriptArgumentIndexConstant {
		script = command.Details.Arguments[shellScriptArgumentIndexConstant]
	}

	excerpt := firstLine(script)
	if strings.Contains(strings.TrimSpace(script), lineBreakConstant) {
		excerpt += scriptContinuationMarkerConstant
	}

	maximumLength := formatter.ScriptExcerptLength
	if maximumLength <= 0 {
		maximumLength = defaultScriptExcerptLengthConstant
	}
	if len(excerpt) > maximumLength {
		excerpt = excerpt[:maximumLength] + scriptEllipsisConstant
	}
	return excerpt
}

func repositoryLabel(command execshell.ShellCommand) string {
	workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(workingDirectory) == 0 {
		return currentDirectoryLabelConstant
	}
	return workingDirectory
}

func firstLine(text string) string {
	trimmedText := strings.TrimSpace(text)
	if lineBreakIndex := strings.Index(trimmedText, lineBreakConstant); lineBreakIndex >= 0 {
		trimmedText = strings.TrimSpace(trimmedText[:lineBreakIndex])
	}
	return trimmedText
}

// ConsoleCommandEventLogger reports script lifecycle events through a zap logger configured for human-readable output.
type ConsoleCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandEventFormatter
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger}
}

// CommandStarted implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver. Non-zero exits are reported as warnings.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
