package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/rex/internal/catalog"
	flagutils "github.com/temirov/rex/internal/utils/flags"
)

const (
	showUseConstant               = "show <tool> <action>"
	showShortDescription          = "Print a resolved catalog command without running it"
	commandArgumentsCountConstant = 2
	resolvedCommandTemplate       = "%s\n"
)

// ShowCommandBuilder assembles the command show subcommand.
type ShowCommandBuilder struct {
	Catalog *catalog.Catalog
}

// Build constructs the command show subcommand.
func (builder *ShowCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   showUseConstant,
		Short: showShortDescription,
		Args:  cobra.ExactArgs(commandArgumentsCountConstant),
	}
	assignmentFlags := flagutils.BindAssignmentFlags(command)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		resolvedCommand, resolveError := resolveImplementedCommand(resolveCatalog(builder.Catalog), arguments, assignmentFlags.Assignments)
		if resolveError != nil {
			return resolveError
		}
		fmt.Fprintf(command.OutOrStdout(), resolvedCommandTemplate, resolvedCommand)
		return nil
	}

	return command, nil
}
