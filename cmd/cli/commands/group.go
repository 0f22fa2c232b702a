package commands

import (
	"github.com/spf13/cobra"

	"github.com/temirov/rex/internal/catalog"
	"github.com/temirov/rex/internal/platform"
	"github.com/temirov/rex/internal/repos/shared"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	groupUseConstant      = "command"
	groupShortDescription = "Inspect and run catalog commands for mongo, redis, and git"
	groupLongDescription  = "command lists the built-in command catalog, prints resolved commands, and runs them in a directory."
)

// CommandGroupBuilder assembles the command group.
type CommandGroupBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	Catalog                      *catalog.Catalog
	Executor                     shared.ScriptExecutor
	PlatformGuard                *platform.Guard
	Normalizer                   *pathutils.Normalizer
	HumanReadableLoggingProvider func() bool
}

// Build constructs the command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	listBuilder := ListCommandBuilder{Catalog: builder.Catalog}
	listCommand, listBuildError := listBuilder.Build()
	if listBuildError != nil {
		return nil, listBuildError
	}
	command.AddCommand(listCommand)

	showBuilder := ShowCommandBuilder{Catalog: builder.Catalog}
	showCommand, showBuildError := showBuilder.Build()
	if showBuildError != nil {
		return nil, showBuildError
	}
	command.AddCommand(showCommand)

	runBuilder := RunCommandBuilder{
		LoggerProvider:               builder.LoggerProvider,
		ConsoleLoggerProvider:        builder.ConsoleLoggerProvider,
		Catalog:                      builder.Catalog,
		Executor:                     builder.Executor,
		PlatformGuard:                builder.PlatformGuard,
		Normalizer:                   builder.Normalizer,
		HumanReadableLoggingProvider: builder.HumanReadableLoggingProvider,
	}
	runCommand, runBuildError := runBuilder.Build()
	if runBuildError != nil {
		return nil, runBuildError
	}
	command.AddCommand(runCommand)

	return command, nil
}
