// Package project loads per-directory rex.json project descriptors.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
)

// FileNameConstant is the project descriptor file name looked up in a directory.
const FileNameConstant = "rex.json"

const (
	mapstructureTagNameConstant   = "mapstructure"
	notFoundErrorTemplateConstant = "project file %s not found"
	readErrorTemplateConstant     = "unable to read project file %s: %v"
	parseErrorTemplateConstant    = "unable to parse project file %s: %v"
	readOperationNameConstant     = "read"
	parseOperationNameConstant    = "parse"
	decodeOperationNameConstant   = "decode"
)

// Configuration describes a project descriptor.
type Configuration struct {
	Name         string            `mapstructure:"name"`
	Version      string            `mapstructure:"version"`
	Description  string            `mapstructure:"description"`
	Usage        string            `mapstructure:"usage"`
	Args         map[string]string `mapstructure:"args"`
	Dependencies map[string]any    `mapstructure:"dependencies"`
}

// NotFoundError indicates that the directory holds no project descriptor.
type NotFoundError struct {
	Path string
}

// Error describes the missing descriptor.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.Path)
}

// LoadError wraps failures reading or decoding an existing descriptor.
type LoadError struct {
	Operation string
	Path      string
	Cause     error
}

// Error describes the failed operation.
func (loadError LoadError) Error() string {
	if loadError.Operation == readOperationNameConstant {
		return fmt.Sprintf(readErrorTemplateConstant, loadError.Path, loadError.Cause)
	}
	return fmt.Sprintf(parseErrorTemplateConstant, loadError.Path, loadError.Cause)
}

// Unwrap exposes the underlying failure.
func (loadError LoadError) Unwrap() error {
	return loadError.Cause
}

// FileReader reads descriptor contents.
type FileReader func(path string) ([]byte, error)

// Loader reads project descriptors.
type Loader struct {
	readFile FileReader
}

// NewLoader constructs a Loader backed by the operating system.
func NewLoader() *Loader {
	return NewLoaderWithReader(nil)
}

// NewLoaderWithReader constructs a Loader reading files through the provided reader.
func NewLoaderWithReader(reader FileReader) *Loader {
	if reader == nil {
		reader = os.ReadFile
	}
	return &Loader{readFile: reader}
}

// Load reads the descriptor in directory. Keys keep their original case.
func (loader *Loader) Load(directory string) (Configuration, error) {
	descriptorPath := filepath.Join(directory, FileNameConstant)

	contents, readError := loader.readFile(descriptorPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Configuration{}, NotFoundError{Path: descriptorPath}
		}
		return Configuration{}, LoadError{Operation: readOperationNameConstant, Path: descriptorPath, Cause: readError}
	}

	var rawDescriptor map[string]any
	if unmarshalError := json.Unmarshal(contents, &rawDescriptor); unmarshalError != nil {
		return Configuration{}, LoadError{Operation: parseOperationNameConstant, Path: descriptorPath, Cause: unmarshalError}
	}

	var configuration Configuration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &configuration,
		TagName:          mapstructureTagNameConstant,
		WeaklyTypedInput: true,
	})
	if decoderError != nil {
		return Configuration{}, LoadError{Operation: decodeOperationNameConstant, Path: descriptorPath, Cause: decoderError}
	}
	if decodeError := decoder.Decode(rawDescriptor); decodeError != nil {
		return Configuration{}, LoadError{Operation: decodeOperationNameConstant, Path: descriptorPath, Cause: decodeError}
	}

	return configuration, nil
}
