package repos

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/platform"
	"github.com/temirov/rex/internal/repos/dependencies"
	"github.com/temirov/rex/internal/repos/shared"
	flagutils "github.com/temirov/rex/internal/utils/flags"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const missingRepositoryRootsErrorMessageConstant = "no repository roots provided; pass roots as arguments, use --root, or configure tools.repos.roots"

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveConfiguration(provider func() ToolsConfiguration) ToolsConfiguration {
	if provider == nil {
		return DefaultToolsConfiguration()
	}
	return provider().sanitize()
}

// resolveRepositoryRoots picks roots by precedence and normalizes them into absolute, unique paths.
func resolveRepositoryRoots(sanitizer *pathutils.RepositoryPathSanitizer, positionalRoots []string, flagRoots []string, configuredRoots []string) ([]string, error) {
	candidateRoots := flagutils.ResolveRoots(positionalRoots, flagRoots, configuredRoots, defaultRepositoryRootConstant)
	if sanitizer == nil {
		sanitizer = pathutils.NewRepositoryPathSanitizer()
	}

	sanitizedRoots, sanitizeError := sanitizer.Sanitize(candidateRoots)
	if sanitizeError != nil {
		return nil, sanitizeError
	}
	if len(sanitizedRoots) == 0 {
		return nil, errors.New(missingRepositoryRootsErrorMessageConstant)
	}
	return sanitizedRoots, nil
}

// discoverTargetRepositories resolves roots and depth by precedence and returns the roots with the repositories found beneath them.
func discoverTargetRepositories(command *cobra.Command, discoverer shared.RepositoryDiscoverer, sanitizer *pathutils.RepositoryPathSanitizer, configuration ToolsConfiguration, positionalRoots []string, scanFlags *flagutils.ScanFlagValues) ([]string, []string, error) {
	roots, rootsError := resolveRepositoryRoots(sanitizer, positionalRoots, scanFlags.Roots, configuration.Roots)
	if rootsError != nil {
		return nil, nil, rootsError
	}

	depth := configuration.Depth
	if command.Flags().Changed(flagutils.DepthFlagName) {
		depth = scanFlags.Depth
	}

	repositories, discoveryError := dependencies.ResolveRepositoryDiscoverer(discoverer).DiscoverRepositories(roots, depth)
	if discoveryError != nil {
		return nil, nil, discoveryError
	}
	return roots, repositories, nil
}

func resolveConcurrency(command *cobra.Command, configuration ToolsConfiguration, concurrencyFlagValue int) int {
	if command.Flags().Changed(concurrencyFlagNameConstant) {
		return concurrencyFlagValue
	}
	return configuration.Concurrency
}

func resolveConsoleLogger(humanReadableLoggingProvider func() bool, consoleLoggerProvider LoggerProvider) *zap.Logger {
	if humanReadableLoggingProvider == nil || consoleLoggerProvider == nil || !humanReadableLoggingProvider() {
		return nil
	}
	return consoleLoggerProvider()
}

func resolvePlatformGuard(existing *platform.Guard) platform.Guard {
	if existing != nil {
		return *existing
	}
	return platform.NewGuard()
}
