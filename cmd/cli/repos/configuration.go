package repos

import "strings"

const (
	configurationRootsKeyConstant       = "roots"
	configurationDepthKeyConstant       = "depth"
	configurationConcurrencyKeyConstant = "concurrency"
	defaultRepositoryRootConstant       = "."
	defaultScanDepthConstant            = 1
	defaultConcurrencyConstant          = 4
)

// ToolsConfiguration captures repository command configuration.
type ToolsConfiguration struct {
	Roots       []string `mapstructure:"roots"`
	Depth       int      `mapstructure:"depth"`
	Concurrency int      `mapstructure:"concurrency"`
}

// DefaultToolsConfiguration returns baseline configuration values for repository commands.
func DefaultToolsConfiguration() ToolsConfiguration {
	return ToolsConfiguration{
		Roots:       []string{defaultRepositoryRootConstant},
		Depth:       defaultScanDepthConstant,
		Concurrency: defaultConcurrencyConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for repository commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultToolsConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootsKeyConstant:       defaults.Roots,
		rootKey + "." + configurationDepthKeyConstant:       defaults.Depth,
		rootKey + "." + configurationConcurrencyKeyConstant: defaults.Concurrency,
	}
}

// sanitize normalizes repository configuration values.
func (configuration ToolsConfiguration) sanitize() ToolsConfiguration {
	sanitized := configuration
	sanitized.Roots = make([]string, 0, len(configuration.Roots))
	for _, root := range configuration.Roots {
		trimmedRoot := strings.TrimSpace(root)
		if len(trimmedRoot) > 0 {
			sanitized.Roots = append(sanitized.Roots, trimmedRoot)
		}
	}
	if sanitized.Depth < defaultScanDepthConstant {
		sanitized.Depth = defaultScanDepthConstant
	}
	if sanitized.Concurrency < 1 {
		sanitized.Concurrency = defaultConcurrencyConstant
	}
	return sanitized
}
