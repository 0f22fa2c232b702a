package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/rex/cmd/cli/repos"
	"github.com/temirov/rex/internal/utils"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: debug\n  log_format: console\ntools:\n  repos:\n    roots:\n      - /srv/repositories\n    depth: 3\n    concurrency: 2\n"
	testDepthEnvironmentNameConstant  = "REX_TOOLS_REPOS_DEPTH"
)

func executeApplication(testInstance *testing.T, arguments ...string) (*Application, string, error) {
	testInstance.Helper()

	application := NewApplication()
	var outputBuffer bytes.Buffer
	application.rootCommand.SetOut(&outputBuffer)
	application.rootCommand.SetErr(&outputBuffer)
	application.rootCommand.SetArgs(arguments)
	executionError := application.rootCommand.Execute()
	return application, outputBuffer.String(), executionError
}

func TestEmbeddedDefaultConfigurationMatchesToolDefaults(testInstance *testing.T) {
	configurationData, configurationType := EmbeddedDefaultConfiguration()
	require.Equal(testInstance, configurationTypeConstant, configurationType)

	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	var configuration ApplicationConfiguration
	require.NoError(testInstance, viperInstance.Unmarshal(&configuration))
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
	require.Equal(testInstance, repos.DefaultToolsConfiguration(), configuration.Tools.Repos)
}

func TestApplicationRegistersSubcommands(testInstance *testing.T) {
	application := NewApplication()

	registeredNames := make([]string, 0)
	for _, subcommand := range application.rootCommand.Commands() {
		registeredNames = append(registeredNames, subcommand.Name())
	}
	require.Subset(testInstance, registeredNames, []string{"repos", "command", "version", "usage"})
}

func TestApplicationConfigurationSources(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		configurationContent  string
		environment           map[string]string
		arguments             []string
		expectedLogLevel      string
		expectedHumanReadable bool
		expectedRepos         repos.ToolsConfiguration
	}{
		{
			name:             "embedded_defaults",
			arguments:        []string{"command", "show", "redis", "clear"},
			expectedLogLevel: "info",
			expectedRepos:    repos.DefaultToolsConfiguration(),
		},
		{
			name:                  "configuration_file",
			configurationContent:  testConfigurationContentConstant,
			arguments:             []string{"command", "show", "redis", "clear"},
			expectedLogLevel:      "debug",
			expectedHumanReadable: true,
			expectedRepos:         repos.ToolsConfiguration{Roots: []string{"/srv/repositories"}, Depth: 3, Concurrency: 2},
		},
		{
			name:             "environment_overrides_defaults",
			environment:      map[string]string{testDepthEnvironmentNameConstant: "5"},
			arguments:        []string{"command", "show", "redis", "clear"},
			expectedLogLevel: "info",
			expectedRepos:    repos.ToolsConfiguration{Roots: []string{"."}, Depth: 5, Concurrency: 4},
		},
		{
			name:                  "flags_override_configuration_file",
			configurationContent:  testConfigurationContentConstant,
			arguments:             []string{"--log-level", "error", "--log-format", "structured", "command", "show", "redis", "clear"},
			expectedLogLevel:      "error",
			expectedHumanReadable: false,
			expectedRepos:         repos.ToolsConfiguration{Roots: []string{"/srv/repositories"}, Depth: 3, Concurrency: 2},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			for environmentName, environmentValue := range testCase.environment {
				testInstance.Setenv(environmentName, environmentValue)
			}

			arguments := testCase.arguments
			if len(testCase.configurationContent) > 0 {
				configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
				require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testCase.configurationContent), 0o600))
				arguments = append([]string{"--config", configurationPath}, arguments...)
			}

			application, output, executionError := executeApplication(testInstance, arguments...)
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, "redis-cli flushall\n", output)
			require.Equal(testInstance, testCase.expectedLogLevel, application.configuration.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedHumanReadable, application.humanReadableLoggingEnabled())
			require.Equal(testInstance, testCase.expectedRepos, application.configuration.Tools.Repos)
			if !testCase.expectedHumanReadable {
				require.Nil(testInstance, application.humanReadableConsoleLogger())
			}
		})
	}
}

func TestApplicationRejectsInvalidLogLevel(testInstance *testing.T) {
	_, _, executionError := executeApplication(testInstance, "--log-level", "verbose", "command", "list")
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}

func TestApplicationRejectsMissingConfigurationFile(testInstance *testing.T) {
	missingPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	_, _, executionError := executeApplication(testInstance, "--config", missingPath, "command", "list")

	var missingFileError utils.MissingConfigurationFileError
	require.ErrorAs(testInstance, executionError, &missingFileError)
	require.Contains(testInstance, executionError.Error(), "unable to load configuration")
}

func TestApplicationWithoutArgumentsPrintsHelp(testInstance *testing.T) {
	_, output, executionError := executeApplication(testInstance)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, applicationLongDescriptionConstant)
}
