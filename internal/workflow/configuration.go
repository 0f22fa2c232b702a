package workflow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/rex/internal/catalog"
)

const (
	configurationLoadErrorTemplateConstant      = "failed to load workflow configuration: %w"
	configurationParseErrorTemplateConstant     = "failed to parse workflow configuration: %w"
	configurationPathRequiredMessageConstant    = "workflow configuration path must be provided"
	configurationEmptyStepsMessageConstant      = "workflow configuration must define at least one step"
	configurationStepIncompleteTemplateConstant = "workflow step %d must name a tool and an action"
)

// Configuration describes the ordered workflow steps loaded from YAML or JSON.
type Configuration struct {
	Steps []StepConfiguration `yaml:"steps" json:"steps"`
}

// StepConfiguration names a catalog command and the placeholder values used to resolve it.
type StepConfiguration struct {
	Name   string             `yaml:"name" json:"name"`
	Tool   catalog.ToolName   `yaml:"tool" json:"tool"`
	Action catalog.ActionName `yaml:"action" json:"action"`
	With   map[string]string  `yaml:"with" json:"with"`
}

// LoadConfiguration reads the workflow definition from disk and performs basic validation.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	return ParseConfiguration(contentBytes)
}

// ParseConfiguration decodes a workflow definition. Steps may sit at the top level or under a workflow key.
func ParseConfiguration(contentBytes []byte) (Configuration, error) {
	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}

	if len(configuration.Steps) == 0 {
		var wrapper struct {
			Workflow Configuration `yaml:"workflow" json:"workflow"`
		}
		if nestedError := yaml.Unmarshal(contentBytes, &wrapper); nestedError == nil {
			configuration = wrapper.Workflow
		}
	}

	if len(configuration.Steps) == 0 {
		return Configuration{}, errors.New(configurationEmptyStepsMessageConstant)
	}

	for stepIndex := range configuration.Steps {
		step := &configuration.Steps[stepIndex]
		step.Name = strings.TrimSpace(step.Name)
		step.Tool = catalog.ToolName(strings.TrimSpace(string(step.Tool)))
		step.Action = catalog.ActionName(strings.TrimSpace(string(step.Action)))
		if len(step.Tool) == 0 || len(step.Action) == 0 {
			return Configuration{}, fmt.Errorf(configurationStepIncompleteTemplateConstant, stepIndex+1)
		}
	}

	return configuration, nil
}
