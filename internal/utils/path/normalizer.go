package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	tildeSymbolConstant                   = "~"
	homeEnvironmentVariableConstant       = "HOME"
	configurationErrorTemplateConstant    = "cannot expand %s: environment variable %s is not set"
	workingDirectoryErrorTemplateConstant = "cannot resolve %s: %w"
)

// EnvironmentLookup reports the value of an environment variable and whether it is set.
type EnvironmentLookup func(key string) (string, bool)

// WorkingDirectoryProvider resolves the directory relative paths are anchored to.
type WorkingDirectoryProvider func() (string, error)

// ConfigurationError indicates that a home directory shorthand was used without HOME being set.
type ConfigurationError struct {
	Variable string
	Path     string
}

// Error describes the missing environment variable.
func (configurationError ConfigurationError) Error() string {
	return fmt.Sprintf(configurationErrorTemplateConstant, configurationError.Path, configurationError.Variable)
}

// Normalizer expands home directory shorthands and produces absolute, cleaned paths.
type Normalizer struct {
	environmentLookup        EnvironmentLookup
	workingDirectoryProvider WorkingDirectoryProvider
}

// NewNormalizer constructs a Normalizer using the process environment and working directory.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithProviders(nil, nil)
}

// NewNormalizerWithProviders constructs a Normalizer with custom environment and working directory sources.
func NewNormalizerWithProviders(environmentLookup EnvironmentLookup, workingDirectoryProvider WorkingDirectoryProvider) *Normalizer {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	if workingDirectoryProvider == nil {
		workingDirectoryProvider = os.Getwd
	}
	return &Normalizer{
		environmentLookup:        environmentLookup,
		workingDirectoryProvider: workingDirectoryProvider,
	}
}

// Expand replaces a leading tilde with the value of HOME.
func (normalizer *Normalizer) Expand(candidatePath string) (string, error) {
	if !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath, nil
	}

	homeDirectory, homeDirectorySet := normalizer.environmentLookup(homeEnvironmentVariableConstant)
	if !homeDirectorySet || len(homeDirectory) == 0 {
		return "", ConfigurationError{Variable: homeEnvironmentVariableConstant, Path: candidatePath}
	}

	return homeDirectory + strings.TrimPrefix(candidatePath, tildeSymbolConstant), nil
}

// Normalize expands the home directory shorthand and resolves the result to an absolute, cleaned path.
func (normalizer *Normalizer) Normalize(candidatePath string) (string, error) {
	expandedPath, expandError := normalizer.Expand(candidatePath)
	if expandError != nil {
		return "", expandError
	}

	if filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath), nil
	}

	workingDirectory, workingDirectoryError := normalizer.workingDirectoryProvider()
	if workingDirectoryError != nil {
		return "", fmt.Errorf(workingDirectoryErrorTemplateConstant, candidatePath, workingDirectoryError)
	}

	return filepath.Clean(filepath.Join(workingDirectory, expandedPath)), nil
}
