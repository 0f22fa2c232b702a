package catalog

import (
	"regexp"
	"sort"
	"strings"
)

const (
	placeholderPatternConstant      = `\{\{\s*([A-Za-z0-9_.\-]+)\s*\}\}`
	placeholderNameSubmatchConstant = 1
)

var placeholderExpression = regexp.MustCompile(placeholderPatternConstant)

// Catalog is a read-only registry of command templates keyed by tool and action.
// A Catalog is never mutated after construction and is safe for concurrent use.
type Catalog struct {
	templates map[ToolName]map[ActionName]string
}

// NewDefaultCatalog constructs the catalog of built-in mongo, redis, and git commands.
func NewDefaultCatalog() *Catalog {
	return &Catalog{templates: defaultTemplates()}
}

// NewCatalog constructs a catalog from the provided templates. The input is copied.
func NewCatalog(templates map[ToolName]map[ActionName]string) *Catalog {
	copiedTemplates := make(map[ToolName]map[ActionName]string, len(templates))
	for toolName, actions := range templates {
		copiedActions := make(map[ActionName]string, len(actions))
		for actionName, template := range actions {
			copiedActions[actionName] = template
		}
		copiedTemplates[toolName] = copiedActions
	}
	return &Catalog{templates: copiedTemplates}
}

// Tools lists registered tool names in lexical order.
func (catalog *Catalog) Tools() []ToolName {
	toolNames := make([]ToolName, 0, len(catalog.templates))
	for toolName := range catalog.templates {
		toolNames = append(toolNames, toolName)
	}
	sort.Slice(toolNames, func(first int, second int) bool {
		return toolNames[first] < toolNames[second]
	})
	return toolNames
}

// Actions lists the actions registered for a tool in lexical order.
func (catalog *Catalog) Actions(tool ToolName) ([]ActionName, error) {
	actions, toolExists := catalog.templates[tool]
	if !toolExists {
		return nil, UnknownCommandError{Tool: tool, ToolMissing: true}
	}
	actionNames := make([]ActionName, 0, len(actions))
	for actionName := range actions {
		actionNames = append(actionNames, actionName)
	}
	sort.Slice(actionNames, func(first int, second int) bool {
		return actionNames[first] < actionNames[second]
	})
	return actionNames, nil
}

// Template returns the raw template registered for the tool and action.
func (catalog *Catalog) Template(tool ToolName, action ActionName) (string, error) {
	actions, toolExists := catalog.templates[tool]
	if !toolExists {
		return "", UnknownCommandError{Tool: tool, Action: action, ToolMissing: true}
	}
	template, actionExists := actions[action]
	if !actionExists {
		return "", UnknownCommandError{Tool: tool, Action: action}
	}
	return template, nil
}

// Placeholders lists the distinct placeholder names of a template in order of first appearance.
func (catalog *Catalog) Placeholders(tool ToolName, action ActionName) ([]string, error) {
	template, templateError := catalog.Template(tool, action)
	if templateError != nil {
		return nil, templateError
	}
	return PlaceholderNames(template), nil
}

// RejectUnexpectedValues returns UnexpectedValueError for the first value name, in lexical order,
// that the template registered for the tool and action does not use.
func (catalog *Catalog) RejectUnexpectedValues(tool ToolName, action ActionName, values map[string]string) error {
	placeholderNames, placeholdersError := catalog.Placeholders(tool, action)
	if placeholdersError != nil {
		return placeholdersError
	}
	knownPlaceholders := make(map[string]struct{}, len(placeholderNames))
	for _, placeholderName := range placeholderNames {
		knownPlaceholders[placeholderName] = struct{}{}
	}

	valueNames := make([]string, 0, len(values))
	for valueName := range values {
		valueNames = append(valueNames, valueName)
	}
	sort.Strings(valueNames)
	for _, valueName := range valueNames {
		if _, isKnown := knownPlaceholders[valueName]; !isKnown {
			return UnexpectedValueError{Tool: tool, Action: action, Placeholder: valueName}
		}
	}
	return nil
}

// Resolve substitutes values into the template registered for the tool and action.
// Every placeholder must have a value; empty templates resolve to an empty command.
func (catalog *Catalog) Resolve(tool ToolName, action ActionName, values map[string]string) (string, error) {
	template, templateError := catalog.Template(tool, action)
	if templateError != nil {
		return "", templateError
	}

	resolvedCommand, missingPlaceholder := substitute(template, values)
	if len(missingPlaceholder) > 0 {
		return "", MissingSubstitutionError{Tool: tool, Action: action, Placeholder: missingPlaceholder}
	}
	return resolvedCommand, nil
}

// substitute returns the resolved template, or the name of the first placeholder without a value.
func substitute(template string, values map[string]string) (string, string) {
	matchIndices := placeholderExpression.FindAllStringSubmatchIndex(template, -1)
	if len(matchIndices) == 0 {
		return template, ""
	}

	nameStartIndex := 2 * placeholderNameSubmatchConstant
	var resolvedBuilder strings.Builder
	previousEnd := 0
	for _, matchIndex := range matchIndices {
		placeholderName := template[matchIndex[nameStartIndex]:matchIndex[nameStartIndex+1]]
		value, valueExists := values[placeholderName]
		if !valueExists {
			return "", placeholderName
		}
		resolvedBuilder.WriteString(template[previousEnd:matchIndex[0]])
		resolvedBuilder.WriteString(value)
		previousEnd = matchIndex[1]
	}
	resolvedBuilder.WriteString(template[previousEnd:])

	return resolvedBuilder.String(), ""
}

// PlaceholderNames lists the distinct placeholder names in template in order of first appearance.
func PlaceholderNames(template string) []string {
	submatches := placeholderExpression.FindAllStringSubmatch(template, -1)
	seen := make(map[string]struct{}, len(submatches))
	names := make([]string, 0, len(submatches))
	for _, submatch := range submatches {
		placeholderName := submatch[placeholderNameSubmatchConstant]
		if _, alreadySeen := seen[placeholderName]; alreadySeen {
			continue
		}
		seen[placeholderName] = struct{}{}
		names = append(names, placeholderName)
	}
	return names
}
