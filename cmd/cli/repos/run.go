package repos

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/catalog"
	"github.com/temirov/rex/internal/platform"
	"github.com/temirov/rex/internal/repos/batch"
	"github.com/temirov/rex/internal/repos/dependencies"
	"github.com/temirov/rex/internal/repos/shared"
	flagutils "github.com/temirov/rex/internal/utils/flags"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	runUseConstant                     = "run <tool> <action> [root ...]"
	runShortDescription                = "Run a catalog command inside every discovered repository"
	runLongDescription                 = "run resolves a catalog command once and executes it with sh -c inside each repository found beneath the roots, printing results sorted by repository path."
	runMinimumArgumentsConstant        = 2
	runOperationNameConstant           = "repos run"
	concurrencyFlagNameConstant        = "concurrency"
	concurrencyFlagUsageConstant       = "Maximum number of repositories processed at once"
	noRepositoriesFoundMessageConstant = "no repositories found"
)

// RunCommandBuilder assembles the repos run command.
type RunCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	Discoverer                   shared.RepositoryDiscoverer
	Executor                     shared.ScriptExecutor
	Catalog                      *catalog.Catalog
	PlatformGuard                *platform.Guard
	PathSanitizer                *pathutils.RepositoryPathSanitizer
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() ToolsConfiguration
}

// Build constructs the repos run command.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   runUseConstant,
		Short: runShortDescription,
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(runMinimumArgumentsConstant),
	}

	defaults := DefaultToolsConfiguration()
	scanFlags := flagutils.BindScanFlags(command, flagutils.ScanFlagValues{Depth: defaults.Depth})
	assignmentFlags := flagutils.BindAssignmentFlags(command)
	concurrency := command.Flags().Int(concurrencyFlagNameConstant, defaults.Concurrency, concurrencyFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, scanFlags, assignmentFlags, *concurrency)
	}
	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, arguments []string, scanFlags *flagutils.ScanFlagValues, assignmentFlags *flagutils.AssignmentFlagValues, concurrencyFlagValue int) error {
	guard := resolvePlatformGuard(builder.PlatformGuard)
	if guardError := guard.EnsureSupported(runOperationNameConstant); guardError != nil {
		return guardError
	}

	toolName := catalog.ToolName(arguments[0])
	actionName := catalog.ActionName(arguments[1])

	values, assignmentsError := flagutils.ParseAssignments(assignmentFlags.Assignments)
	if assignmentsError != nil {
		return assignmentsError
	}

	commandCatalog := builder.Catalog
	if commandCatalog == nil {
		commandCatalog = catalog.NewDefaultCatalog()
	}
	if unexpectedError := commandCatalog.RejectUnexpectedValues(toolName, actionName, values); unexpectedError != nil {
		return unexpectedError
	}
	script, resolveError := commandCatalog.Resolve(toolName, actionName, values)
	if resolveError != nil {
		return resolveError
	}
	if implementedError := catalog.RequireImplemented(toolName, actionName, script); implementedError != nil {
		return implementedError
	}

	configuration := resolveConfiguration(builder.ConfigurationProvider)
	logger := resolveLogger(builder.LoggerProvider)
	roots, repositories, discoveryError := discoverTargetRepositories(command, builder.Discoverer, builder.PathSanitizer, configuration, arguments[runMinimumArgumentsConstant:], scanFlags)
	if discoveryError != nil {
		return discoveryError
	}
	if len(repositories) == 0 {
		logger.Info(noRepositoriesFoundMessageConstant, zap.Strings(logFieldRootsConstant, roots))
		return nil
	}

	executor, executorError := dependencies.ResolveScriptExecutor(builder.Executor, logger, resolveConsoleLogger(builder.HumanReadableLoggingProvider, builder.ConsoleLoggerProvider))
	if executorError != nil {
		return executorError
	}

	runner, runnerError := batch.NewRunner(executor, logger)
	if runnerError != nil {
		return runnerError
	}

	outcomes := runner.Run(command.Context(), batch.Options{
		Script:       script,
		Repositories: repositories,
		Concurrency:  resolveConcurrency(command, configuration, concurrencyFlagValue),
	})

	return batch.Report(outcomes, shared.NewWriterReporter(command.OutOrStdout()), shared.NewWriterReporter(command.ErrOrStderr()))
}
