package project

import (
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/dependencies"
	projectconfig "github.com/temirov/rex/internal/project"
	"github.com/temirov/rex/internal/ui"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	versionUseConstant         = "version"
	versionShortDescription    = "Print the version tree of the project and its dependencies"
	platformTemplateSeparator  = "/"
	dependencySkippedMessage   = "dependency version unavailable"
	logFieldDependencyConstant = "dependency"
)

// VersionCommandBuilder assembles the version command.
type VersionCommandBuilder struct {
	LoggerProvider  LoggerProvider
	Loader          *projectconfig.Loader
	Normalizer      *pathutils.Normalizer
	VersionResolver VersionResolver
}

// Build constructs the version command.
func (builder *VersionCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   versionUseConstant,
		Short: versionShortDescription,
		Args:  cobra.NoArgs,
	}
	directory := command.Flags().StringP(directoryFlagNameConstant, directoryFlagShorthandConstant, defaultDirectoryConstant, directoryFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		logger := resolveLogger(builder.LoggerProvider)
		configuration, loadError := loadProjectConfiguration(builder.Loader, builder.Normalizer, *directory, logger)
		if loadError != nil {
			return loadError
		}

		extraction := dependencies.ExtractVersions(configuration.Dependencies)
		for _, dependencyName := range extraction.FailedNames() {
			logger.Warn(dependencySkippedMessage, zap.String(logFieldDependencyConstant, dependencyName), zap.Error(extraction.Failures[dependencyName]))
		}

		tree := ui.VersionTree{
			ApplicationName:    configuration.Name,
			ApplicationVersion: configuration.Version,
			Dependencies:       extraction.Versions,
			RuntimeVersion:     runtime.Version(),
			Platform:           runtime.GOOS + platformTemplateSeparator + runtime.GOARCH,
		}
		if len(tree.ApplicationName) == 0 {
			tree.ApplicationName = defaultApplicationNameConstant
		}
		if len(tree.ApplicationVersion) == 0 {
			tree.ApplicationVersion = builder.resolveVersion()
		}

		return tree.Render(command.OutOrStdout())
	}

	return command, nil
}

func (builder *VersionCommandBuilder) resolveVersion() string {
	if builder.VersionResolver != nil {
		return builder.VersionResolver()
	}
	return BuildVersion()
}
