package discovery

import "fmt"

const (
	notFoundErrorTemplateConstant               = "scan root %s does not exist"
	notADirectoryErrorTemplateConstant          = "scan root %s is not a directory"
	filesystemErrorTemplateConstant             = "%s %s: %s"
	filesystemErrorWithoutCauseTemplateConstant = "%s %s failed"
	operationResolveRootConstant                = OperationName("resolve")
	operationStatConstant                       = OperationName("stat")
	operationListConstant                       = OperationName("list")
	operationResolveSymbolicLinkConstant        = OperationName("evaluate symlinks")
	operationProbeMetadataDirectoryConstant     = OperationName("probe")
)

// OperationName identifies the filesystem operation that failed during a scan.
type OperationName string

// NotFoundError indicates the scan root does not exist.
type NotFoundError struct {
	Path string
}

// Error describes the missing root.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, notFoundError.Path)
}

// NotADirectoryError indicates the scan root resolved to a file.
type NotADirectoryError struct {
	Path string
}

// Error describes the non-directory root.
func (notADirectoryError NotADirectoryError) Error() string {
	return fmt.Sprintf(notADirectoryErrorTemplateConstant, notADirectoryError.Path)
}

// FilesystemError wraps a filesystem failure with the path that triggered it.
type FilesystemError struct {
	Operation OperationName
	Path      string
	Cause     error
}

// Error describes the failing operation and path.
func (filesystemError FilesystemError) Error() string {
	if filesystemError.Cause == nil {
		return fmt.Sprintf(filesystemErrorWithoutCauseTemplateConstant, filesystemError.Operation, filesystemError.Path)
	}
	return fmt.Sprintf(filesystemErrorTemplateConstant, filesystemError.Operation, filesystemError.Path, filesystemError.Cause)
}

// Unwrap exposes the underlying filesystem error.
func (filesystemError FilesystemError) Unwrap() error {
	return filesystemError.Cause
}
