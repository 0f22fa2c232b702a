package project

import (
	"github.com/spf13/cobra"

	projectconfig "github.com/temirov/rex/internal/project"
	"github.com/temirov/rex/internal/ui"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	usageUseConstant      = "usage"
	usageShortDescription = "Print the help screen described by the project file"
)

// UsageCommandBuilder assembles the usage command.
type UsageCommandBuilder struct {
	LoggerProvider LoggerProvider
	Loader         *projectconfig.Loader
	Normalizer     *pathutils.Normalizer
}

// Build constructs the usage command.
func (builder *UsageCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   usageUseConstant,
		Short: usageShortDescription,
		Args:  cobra.NoArgs,
	}
	directory := command.Flags().StringP(directoryFlagNameConstant, directoryFlagShorthandConstant, defaultDirectoryConstant, directoryFlagUsageConstant)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		configuration, loadError := loadProjectConfiguration(builder.Loader, builder.Normalizer, *directory, resolveLogger(builder.LoggerProvider))
		if loadError != nil {
			return loadError
		}

		help := ui.HelpText{
			Name:        configuration.Name,
			Description: configuration.Description,
			Usage:       configuration.Usage,
			Options:     configuration.Args,
		}
		if len(help.Name) == 0 {
			help.Name = defaultApplicationNameConstant
		}
		return help.Render(command.OutOrStdout())
	}

	return command, nil
}
