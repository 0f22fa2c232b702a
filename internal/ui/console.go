package ui

import (
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	alignmentPrefixConstant              = "  "
	defaultAlignmentWidthConstant        = 12
	versionAlignmentWidthConstant        = 20
	versionTreeHeaderSuffixConstant      = " Version Tree: "
	versionOpeningBracketConstant        = " [ "
	versionClosingBracketConstant        = " ]"
	runtimeComponentNameConstant         = "Go"
	platformComponentNameConstant        = "Platform"
	helpDescriptionHeadingConstant       = "Description: \n  "
	helpUsageHeadingConstant             = "Usage: \n  "
	helpOptionsHeadingConstant           = "Options:"
	helpOptionSeparatorConstant          = "- "
	helpVersionOptionNameConstant        = "version"
	helpVersionOptionDescriptionConstant = "Display the current version tree."
	helpHelpOptionNameConstant           = "help"
	helpHelpOptionDescriptionConstant    = "Display this help text."
	lineBreakConstant                    = "\n"
)

// Align prefixes text with two spaces and pads it with spaces to width characters.
// Widths of zero or less fall back to twelve characters; longer text is never truncated.
func Align(text string, width int) string {
	if width <= 0 {
		width = defaultAlignmentWidthConstant
	}
	aligned := alignmentPrefixConstant + text
	alignedLength := utf8.RuneCountInString(aligned)
	if alignedLength >= width {
		return aligned
	}
	return aligned + strings.Repeat(" ", width-alignedLength)
}

// VersionTree describes the components reported by a version command.
type VersionTree struct {
	ApplicationName    string
	ApplicationVersion string
	Dependencies       map[string]string
	RuntimeVersion     string
	Platform           string
}

// Render writes the header followed by one aligned row per component.
// Dependencies are listed in name order between the application and the runtime rows.
func (tree VersionTree) Render(writer io.Writer) error {
	var builder strings.Builder
	builder.WriteString(tree.ApplicationName + versionTreeHeaderSuffixConstant + lineBreakConstant)
	writeVersionRow(&builder, tree.ApplicationName, tree.ApplicationVersion)

	dependencyNames := make([]string, 0, len(tree.Dependencies))
	for dependencyName := range tree.Dependencies {
		dependencyNames = append(dependencyNames, dependencyName)
	}
	sort.Strings(dependencyNames)
	for _, dependencyName := range dependencyNames {
		writeVersionRow(&builder, dependencyName, tree.Dependencies[dependencyName])
	}

	if len(tree.RuntimeVersion) > 0 {
		writeVersionRow(&builder, runtimeComponentNameConstant, tree.RuntimeVersion)
	}
	if len(tree.Platform) > 0 {
		writeVersionRow(&builder, platformComponentNameConstant, tree.Platform)
	}

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func writeVersionRow(builder *strings.Builder, name string, version string) {
	builder.WriteString(Align(name, versionAlignmentWidthConstant))
	builder.WriteString(versionOpeningBracketConstant + version + versionClosingBracketConstant + lineBreakConstant)
}

// HelpText describes a tool's usage screen.
type HelpText struct {
	Name        string
	Description string
	Usage       string
	Options     map[string]string
}

// Render writes the usage screen with options in name order followed by the built-in version and help rows.
func (help HelpText) Render(writer io.Writer) error {
	var builder strings.Builder
	builder.WriteString(help.Name + lineBreakConstant)
	builder.WriteString(helpDescriptionHeadingConstant + help.Description + lineBreakConstant)
	builder.WriteString(helpUsageHeadingConstant + help.Usage + lineBreakConstant)
	builder.WriteString(helpOptionsHeadingConstant + lineBreakConstant)

	optionNames := make([]string, 0, len(help.Options))
	for optionName := range help.Options {
		optionNames = append(optionNames, optionName)
	}
	sort.Strings(optionNames)
	for _, optionName := range optionNames {
		writeHelpRow(&builder, optionName, help.Options[optionName])
	}
	writeHelpRow(&builder, helpVersionOptionNameConstant, helpVersionOptionDescriptionConstant)
	writeHelpRow(&builder, helpHelpOptionNameConstant, helpHelpOptionDescriptionConstant)

	_, writeError := io.WriteString(writer, builder.String())
	return writeError
}

func writeHelpRow(builder *strings.Builder, name string, description string) {
	builder.WriteString(Align(name, defaultAlignmentWidthConstant) + helpOptionSeparatorConstant + description + lineBreakConstant)
}
