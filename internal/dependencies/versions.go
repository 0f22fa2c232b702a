// Package dependencies flattens dependency listings into package-to-version maps.
package dependencies

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

const (
	versionFieldNameConstant             = "version"
	missingVersionErrorTemplateConstant  = "dependency %s has no version field"
	invalidMetadataErrorTemplateConstant = "dependency %s metadata could not be decoded: %s"
)

// MissingVersionError indicates that a dependency's metadata lacks a usable version field.
type MissingVersionError struct {
	Name  string
	Cause error
}

// Error describes the dependency without a version.
func (missingVersionError MissingVersionError) Error() string {
	if missingVersionError.Cause != nil {
		return fmt.Sprintf(invalidMetadataErrorTemplateConstant, missingVersionError.Name, missingVersionError.Cause)
	}
	return fmt.Sprintf(missingVersionErrorTemplateConstant, missingVersionError.Name)
}

// Unwrap exposes the decoding failure, when present.
func (missingVersionError MissingVersionError) Unwrap() error {
	return missingVersionError.Cause
}

// Extraction holds the versions that were resolved and the per-dependency failures.
type Extraction struct {
	Versions map[string]string
	Failures map[string]error
}

// FailedNames lists the dependencies without a usable version in lexical order.
func (extraction Extraction) FailedNames() []string {
	failedNames := make([]string, 0, len(extraction.Failures))
	for name := range extraction.Failures {
		failedNames = append(failedNames, name)
	}
	sort.Strings(failedNames)
	return failedNames
}

// Err joins every per-dependency failure, in name order, for callers that abort on any failure.
func (extraction Extraction) Err() error {
	if len(extraction.Failures) == 0 {
		return nil
	}
	failedNames := extraction.FailedNames()
	failures := make([]error, 0, len(failedNames))
	for _, name := range failedNames {
		failures = append(failures, extraction.Failures[name])
	}
	return errors.Join(failures...)
}

type packageMetadata struct {
	Version string `mapstructure:"version"`
}

// ExtractVersions maps each dependency name to the version field of its metadata.
// A dependency without a version is recorded in Failures and does not affect the others.
func ExtractVersions(dependencies map[string]any) Extraction {
	extraction := Extraction{
		Versions: make(map[string]string, len(dependencies)),
		Failures: make(map[string]error),
	}

	for name, rawMetadata := range dependencies {
		version, versionError := decodeVersion(name, rawMetadata)
		if versionError != nil {
			extraction.Failures[name] = versionError
			continue
		}
		extraction.Versions[name] = version
	}

	return extraction
}

func decodeVersion(name string, rawMetadata any) (string, error) {
	if rawMetadata == nil {
		return "", MissingVersionError{Name: name}
	}

	var metadata packageMetadata
	var decoderMetadata mapstructure.Metadata
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &decoderMetadata,
		Result:           &metadata,
		WeaklyTypedInput: true,
	})
	if decoderError != nil {
		return "", MissingVersionError{Name: name, Cause: decoderError}
	}

	if decodeError := decoder.Decode(rawMetadata); decodeError != nil {
		return "", MissingVersionError{Name: name, Cause: decodeError}
	}

	for _, unsetField := range decoderMetadata.Unset {
		if unsetField == versionFieldNameConstant {
			return "", MissingVersionError{Name: name}
		}
	}

	return metadata.Version, nil
}
