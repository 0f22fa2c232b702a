// Package platform reports whether the host operating system can run shell command templates.
package platform

import (
	"fmt"
	"runtime"
)

const (
	windowsOperatingSystemConstant           = "windows"
	unsupportedPlatformErrorTemplateConstant = "%s is not supported on %s: shell command templates require a POSIX shell"
)

// UnsupportedPlatformError indicates that an operation cannot run on the host operating system.
type UnsupportedPlatformError struct {
	Operation       string
	OperatingSystem string
}

// Error describes the rejected operation.
func (unsupportedPlatformError UnsupportedPlatformError) Error() string {
	return fmt.Sprintf(unsupportedPlatformErrorTemplateConstant, unsupportedPlatformError.Operation, unsupportedPlatformError.OperatingSystem)
}

// Guard rejects shell-dependent operations on unsupported operating systems.
type Guard struct {
	operatingSystem string
}

// NewGuard constructs a Guard for the running operating system.
func NewGuard() Guard {
	return NewGuardForOperatingSystem(runtime.GOOS)
}

// NewGuardForOperatingSystem constructs a Guard for the provided operating system name.
func NewGuardForOperatingSystem(operatingSystem string) Guard {
	return Guard{operatingSystem: operatingSystem}
}

// EnsureSupported returns UnsupportedPlatformError when operation cannot run on the guarded operating system.
func (guard Guard) EnsureSupported(operation string) error {
	if guard.operatingSystem == windowsOperatingSystemConstant {
		return UnsupportedPlatformError{Operation: operation, OperatingSystem: guard.operatingSystem}
	}
	return nil
}
