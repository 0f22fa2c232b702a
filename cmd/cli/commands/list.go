package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/rex/internal/catalog"
	"github.com/temirov/rex/internal/ui"
	flagutils "github.com/temirov/rex/internal/utils/flags"
)

const (
	listUseConstant                = "list"
	listShortDescription           = "List catalog tools, actions, and placeholders"
	formatFlagNameConstant         = "format"
	formatFlagDescriptionConstant  = "Listing format."
	formatTextConstant             = "text"
	formatYAMLConstant             = "yaml"
	actionAlignmentWidthConstant   = 16
	placeholderSeparatorConstant   = ", "
	placeholderTokenTemplate       = "{{%s}}"
	notImplementedMarkerConstant   = "(not implemented)"
	toolLineTemplateConstant       = "%s\n"
	actionLineTemplateConstant     = "%s%s\n"
	yamlEncoderIndentationConstant = 2
)

var supportedListFormats = []string{formatTextConstant, formatYAMLConstant}

type catalogListing struct {
	Tools []toolListing `yaml:"tools"`
}

type toolListing struct {
	Name    string          `yaml:"name"`
	Actions []actionListing `yaml:"actions"`
}

type actionListing struct {
	Name         string   `yaml:"name"`
	Implemented  bool     `yaml:"implemented"`
	Placeholders []string `yaml:"placeholders,omitempty"`
	Template     string   `yaml:"template,omitempty"`
}

// ListCommandBuilder assembles the command list subcommand.
type ListCommandBuilder struct {
	Catalog *catalog.Catalog
}

// Build constructs the command list subcommand.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescription,
		Args:  cobra.NoArgs,
	}

	format := command.Flags().String(
		formatFlagNameConstant,
		formatTextConstant,
		flagutils.FormatChoiceUsage(formatTextConstant, supportedListFormats, formatFlagDescriptionConstant),
	)

	command.RunE = func(command *cobra.Command, arguments []string) error {
		selectedFormat, formatError := flagutils.NormalizeChoice(formatFlagNameConstant, *format, supportedListFormats)
		if formatError != nil {
			return formatError
		}

		listing, listingError := buildCatalogListing(resolveCatalog(builder.Catalog))
		if listingError != nil {
			return listingError
		}

		if selectedFormat == formatYAMLConstant {
			return writeYAMLListing(command.OutOrStdout(), listing)
		}
		writeTextListing(command.OutOrStdout(), listing)
		return nil
	}

	return command, nil
}

func buildCatalogListing(commandCatalog *catalog.Catalog) (catalogListing, error) {
	listing := catalogListing{}
	for _, toolName := range commandCatalog.Tools() {
		actionNames, actionsError := commandCatalog.Actions(toolName)
		if actionsError != nil {
			return catalogListing{}, actionsError
		}

		tool := toolListing{Name: string(toolName)}
		for _, actionName := range actionNames {
			template, templateError := commandCatalog.Template(toolName, actionName)
			if templateError != nil {
				return catalogListing{}, templateError
			}
			tool.Actions = append(tool.Actions, actionListing{
				Name:         string(actionName),
				Implemented:  len(template) > 0,
				Placeholders: catalog.PlaceholderNames(template),
				Template:     template,
			})
		}
		listing.Tools = append(listing.Tools, tool)
	}
	return listing, nil
}

func writeTextListing(writer io.Writer, listing catalogListing) {
	for _, tool := range listing.Tools {
		fmt.Fprintf(writer, toolLineTemplateConstant, tool.Name)
		for _, action := range tool.Actions {
			fmt.Fprintf(writer, actionLineTemplateConstant, ui.Align(action.Name, actionAlignmentWidthConstant), describeAction(action))
		}
	}
}

func describeAction(action actionListing) string {
	if !action.Implemented {
		return notImplementedMarkerConstant
	}
	placeholderTokens := make([]string, 0, len(action.Placeholders))
	for _, placeholder := range action.Placeholders {
		placeholderTokens = append(placeholderTokens, fmt.Sprintf(placeholderTokenTemplate, placeholder))
	}
	return strings.Join(placeholderTokens, placeholderSeparatorConstant)
}

func writeYAMLListing(writer io.Writer, listing catalogListing) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlEncoderIndentationConstant)
	if encodeError := encoder.Encode(listing); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
