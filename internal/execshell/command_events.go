package execshell

// CommandEventObserver receives lifecycle notifications for commands run by ShellExecutor.
type CommandEventObserver interface {
	// CommandStarted is called before the runner is invoked.
	CommandStarted(command ShellCommand)
	// CommandCompleted is called once the process exited, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed is called when the runner could not produce a result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type discardingCommandEventObserver struct{}

func (discardingCommandEventObserver) CommandStarted(ShellCommand) {}

func (discardingCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (discardingCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
