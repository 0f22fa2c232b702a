package cli

import _ "embed"

//go:embed default_config.yaml
var defaultConfigurationYAML []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in rex configuration and its format.
// The embedded values sit beneath configuration files, environment variables, and flags.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), defaultConfigurationYAML...), configurationTypeConstant
}
