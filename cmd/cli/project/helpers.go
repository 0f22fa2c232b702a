package project

import (
	"errors"
	"runtime/debug"

	"go.uber.org/zap"

	projectconfig "github.com/temirov/rex/internal/project"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	directoryFlagNameConstant      = "directory"
	directoryFlagShorthandConstant = "C"
	directoryFlagUsageConstant     = "Directory holding the rex.json project file"
	defaultDirectoryConstant       = "."
	defaultApplicationNameConstant = "rex"
	developmentVersionConstant     = "(devel)"
	projectFileMissingMessage      = "project file not found; continuing with defaults"
	logFieldProjectFileConstant    = "project_file"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// VersionResolver reports the version of the running binary.
type VersionResolver func() string

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

// BuildVersion reports the main module version recorded in the binary, or (devel) for local builds.
func BuildVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable || len(buildInfo.Main.Version) == 0 {
		return developmentVersionConstant
	}
	return buildInfo.Main.Version
}

// loadProjectConfiguration reads rex.json from directory. A missing file is logged and yields an empty configuration.
func loadProjectConfiguration(loader *projectconfig.Loader, normalizer *pathutils.Normalizer, directory string, logger *zap.Logger) (projectconfig.Configuration, error) {
	if normalizer == nil {
		normalizer = pathutils.NewNormalizer()
	}
	projectDirectory, normalizeError := normalizer.Normalize(directory)
	if normalizeError != nil {
		return projectconfig.Configuration{}, normalizeError
	}

	if loader == nil {
		loader = projectconfig.NewLoader()
	}
	configuration, loadError := loader.Load(projectDirectory)
	if loadError == nil {
		return configuration, nil
	}

	var notFoundError projectconfig.NotFoundError
	if errors.As(loadError, &notFoundError) {
		logger.Warn(projectFileMissingMessage, zap.String(logFieldProjectFileConstant, notFoundError.Path))
		return projectconfig.Configuration{}, nil
	}
	return projectconfig.Configuration{}, loadError
}
