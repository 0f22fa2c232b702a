package workflow

import (
	"fmt"

	"github.com/temirov/rex/internal/catalog"
)

const (
	operationNameTemplateConstant       = "%s %s"
	operationBuildErrorTemplateConstant = "workflow step %q: %w"
)

// Operation is a workflow step whose catalog command has been resolved into a script.
type Operation struct {
	Name   string
	Tool   catalog.ToolName
	Action catalog.ActionName
	Script string
}

// BuildOperations resolves every step against the catalog before anything runs.
// Override values apply to every step and take precedence over the step's own values.
func BuildOperations(commandCatalog *catalog.Catalog, configuration Configuration, overrides map[string]string) ([]Operation, error) {
	if commandCatalog == nil {
		commandCatalog = catalog.NewDefaultCatalog()
	}

	operations := make([]Operation, 0, len(configuration.Steps))
	for _, step := range configuration.Steps {
		operationName := step.Name
		if len(operationName) == 0 {
			operationName = fmt.Sprintf(operationNameTemplateConstant, step.Tool, step.Action)
		}

		values := make(map[string]string, len(step.With)+len(overrides))
		for name, value := range step.With {
			values[name] = value
		}
		for name, value := range overrides {
			values[name] = value
		}

		script, resolveError := commandCatalog.Resolve(step.Tool, step.Action, values)
		if resolveError != nil {
			return nil, fmt.Errorf(operationBuildErrorTemplateConstant, operationName, resolveError)
		}
		if implementedError := catalog.RequireImplemented(step.Tool, step.Action, script); implementedError != nil {
			return nil, fmt.Errorf(operationBuildErrorTemplateConstant, operationName, implementedError)
		}

		operations = append(operations, Operation{
			Name:   operationName,
			Tool:   step.Tool,
			Action: step.Action,
			Script: script,
		})
	}

	return operations, nil
}
