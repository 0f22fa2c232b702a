package repos

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/catalog"
	"github.com/temirov/rex/internal/platform"
	"github.com/temirov/rex/internal/repos/dependencies"
	"github.com/temirov/rex/internal/repos/shared"
	flagutils "github.com/temirov/rex/internal/utils/flags"
	pathutils "github.com/temirov/rex/internal/utils/path"
	"github.com/temirov/rex/internal/workflow"
)

const (
	workflowUseConstant              = "workflow <configuration> [root ...]"
	workflowShortDescription         = "Run a sequence of catalog commands inside every discovered repository"
	workflowLongDescription          = "workflow loads ordered steps from a YAML or JSON file, resolves every step before running any of them, and executes the steps one after another across the discovered repositories."
	workflowMinimumArgumentsConstant = 1
	workflowOperationNameConstant    = "repos workflow"
)

// WorkflowCommandBuilder assembles the repos workflow command.
type WorkflowCommandBuilder struct {
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

// Build constructs the repos workflow command.
func (builder *WorkflowCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   workflowUseConstant,
		Short: workflowShortDescription,
		Long:  workflowLongDescription,
		Args:  cobra.MinimumNArgs(workflowMinimumArgumentsConstant),
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

func (builder *WorkflowCommandBuilder) run(command *cobra.Command, arguments []string, scanFlags *flagutils.ScanFlagValues, assignmentFlags *flagutils.AssignmentFlagValues, concurrencyFlagValue int) error {
	guard := resolvePlatformGuard(builder.PlatformGuard)
	if guardError := guard.EnsureSupported(workflowOperationNameConstant); guardError != nil {
		return guardError
	}

	overrides, assignmentsError := flagutils.ParseAssignments(assignmentFlags.Assignments)
	if assignmentsError != nil {
		return assignmentsError
	}

	workflowConfiguration, configurationError := workflow.LoadConfiguration(arguments[0])
	if configurationError != nil {
		return configurationError
	}
	operations, operationsError := workflow.BuildOperations(builder.Catalog, workflowConfiguration, overrides)
	if operationsError != nil {
		return operationsError
	}

	configuration := resolveConfiguration(builder.ConfigurationProvider)
	logger := resolveLogger(builder.LoggerProvider)
	roots, repositories, discoveryError := discoverTargetRepositories(command, builder.Discoverer, builder.PathSanitizer, configuration, arguments[workflowMinimumArgumentsConstant:], scanFlags)
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

	workflowExecutor := workflow.NewExecutor(operations, workflow.Dependencies{
		Logger:   logger,
		Executor: executor,
		Output:   shared.NewWriterReporter(command.OutOrStdout()),
		Errors:   shared.NewWriterReporter(command.ErrOrStderr()),
	})
	return workflowExecutor.Execute(command.Context(), repositories, resolveConcurrency(command, configuration, concurrencyFlagValue))
}
