package repos

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/catalog"
	"github.com/temirov/rex/internal/platform"
	"github.com/temirov/rex/internal/repos/shared"
	flagutils "github.com/temirov/rex/internal/utils/flags"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	groupUseConstant                = "repos [root ...]"
	groupShortDescription           = "List git working trees beneath directory roots"
	groupLongDescription            = "repos prints every git working tree found beneath the provided roots, one absolute path per line, in discovery order."
	repositoryLineTemplateConstant  = "%s\n"
	discoveryCompletedMessage       = "repository discovery completed"
	logFieldRootsConstant           = "roots"
	logFieldRepositoryCountConstant = "repository_count"
)

// CommandGroupBuilder assembles the repos command group.
type CommandGroupBuilder struct {
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

// Build constructs the repos command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
		Args:  cobra.ArbitraryArgs,
	}

	defaults := DefaultToolsConfiguration()
	scanFlags := flagutils.BindScanFlags(command, flagutils.ScanFlagValues{Depth: defaults.Depth})
	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.runScan(command, arguments, scanFlags)
	}

	runBuilder := RunCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConsoleLoggerProvider:        builder.ConsoleLoggerProvider,
		Discoverer:                   builder.Discoverer,
		Executor:                     builder.Executor,
		Catalog:                      builder.Catalog,
		PlatformGuard:                builder.PlatformGuard,
		PathSanitizer:                builder.PathSanitizer,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
	}
	runCommand, runBuildError := runBuilder.Build()
	if runBuildError != nil {
		return nil, runBuildError
	}
	command.AddCommand(runCommand)

	workflowBuilder := WorkflowCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConsoleLoggerProvider:        builder.ConsoleLoggerProvider,
		Discoverer:                   builder.Discoverer,
		Executor:                     builder.Executor,
		Catalog:                      builder.Catalog,
		PlatformGuard:                builder.PlatformGuard,
		PathSanitizer:                builder.PathSanitizer,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
		ConfigurationProvider:        builder.ConfigurationProvider,
	}
	workflowCommand, workflowBuildError := workflowBuilder.Build()
	if workflowBuildError != nil {
		return nil, workflowBuildError
	}
	command.AddCommand(workflowCommand)

	return command, nil
}

func (builder *CommandGroupBuilder) runScan(command *cobra.Command, arguments []string, scanFlags *flagutils.ScanFlagValues) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)
	logger := resolveLogger(builder.LoggerProvider)

	roots, repositories, discoveryError := discoverTargetRepositories(command, builder.Discoverer, builder.PathSanitizer, configuration, arguments, scanFlags)
	if discoveryError != nil {
		return discoveryError
	}

	logger.Debug(
		discoveryCompletedMessage,
		zap.Strings(logFieldRootsConstant, roots),
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
	)

	for _, repositoryPath := range repositories {
		fmt.Fprintf(command.OutOrStdout(), repositoryLineTemplateConstant, repositoryPath)
	}
	return nil
}
