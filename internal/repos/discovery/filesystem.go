package discovery

import (
	"errors"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/temirov/rex/internal/repos/filesystem"
)

const (
	gitMetadataDirectoryNameConstant = ".git"
	singleLevelDepthConstant         = 1
)

var metadataArtifactNames = map[string]struct{}{
	".DS_Store":   {},
	"Thumbs.db":   {},
	"desktop.ini": {},
}

// FileSystem exposes the read-only operations required to scan for repositories.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	EvalSymlinks(path string) (string, error)
	Abs(path string) (string, error)
}

// FilesystemRepositoryDiscoverer locates git working trees beneath a root directory.
type FilesystemRepositoryDiscoverer struct {
	fileSystem FileSystem
}

// NewFilesystemRepositoryDiscoverer constructs a discoverer backed by the operating system filesystem.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return NewFilesystemRepositoryDiscovererWithFileSystem(nil)
}

// NewFilesystemRepositoryDiscovererWithFileSystem constructs a discoverer using the provided filesystem.
func NewFilesystemRepositoryDiscovererWithFileSystem(fileSystem FileSystem) *FilesystemRepositoryDiscoverer {
	if fileSystem == nil {
		fileSystem = filesystem.NewOSFileSystem()
	}
	return &FilesystemRepositoryDiscoverer{fileSystem: fileSystem}
}

type scanState struct {
	maximumDepth         int
	visitedDirectories   map[string]struct{}
	recordedRepositories map[string]struct{}
	repositories         []string
}

// record keeps the first path seen for each resolved working tree.
func (state *scanState) record(repositoryPath string, resolvedRepositoryPath string) {
	if _, alreadyRecorded := state.recordedRepositories[resolvedRepositoryPath]; alreadyRecorded {
		return
	}
	state.recordedRepositories[resolvedRepositoryPath] = struct{}{}
	state.repositories = append(state.repositories, repositoryPath)
}

// Scan lists the working trees found under rootDirectory in directory listing order.
// A maximumDepth of one or less inspects only the immediate children of the root.
func (discoverer *FilesystemRepositoryDiscoverer) Scan(rootDirectory string, maximumDepth int) ([]string, error) {
	absoluteRoot, absoluteError := discoverer.fileSystem.Abs(rootDirectory)
	if absoluteError != nil {
		return nil, FilesystemError{Operation: operationResolveRootConstant, Path: rootDirectory, Cause: absoluteError}
	}
	absoluteRoot = filepath.Clean(absoluteRoot)

	rootInfo, statError := discoverer.fileSystem.Stat(absoluteRoot)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return nil, NotFoundError{Path: absoluteRoot}
		}
		return nil, FilesystemError{Operation: operationStatConstant, Path: absoluteRoot, Cause: statError}
	}
	if !rootInfo.IsDir() {
		return nil, NotADirectoryError{Path: absoluteRoot}
	}

	if maximumDepth < singleLevelDepthConstant {
		maximumDepth = singleLevelDepthConstant
	}

	state := &scanState{
		maximumDepth:         maximumDepth,
		visitedDirectories:   make(map[string]struct{}),
		recordedRepositories: make(map[string]struct{}),
		repositories:         []string{},
	}

	if scanError := discoverer.scanDirectory(absoluteRoot, singleLevelDepthConstant, state); scanError != nil {
		return nil, scanError
	}

	return state.repositories, nil
}

// DiscoverRepositories scans every root to the requested depth and merges the results without duplicates.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string, maximumDepth int) ([]string, error) {
	seen := make(map[string]struct{})
	var repositories []string

	for _, root := range roots {
		rootRepositories, scanError := discoverer.Scan(root, maximumDepth)
		if scanError != nil {
			return nil, scanError
		}
		for _, repositoryPath := range rootRepositories {
			if _, alreadySeen := seen[repositoryPath]; alreadySeen {
				continue
			}
			seen[repositoryPath] = struct{}{}
			repositories = append(repositories, repositoryPath)
		}
	}

	return repositories, nil
}

func (discoverer *FilesystemRepositoryDiscoverer) scanDirectory(directoryPath string, depth int, state *scanState) error {
	resolvedDirectory, resolveError := discoverer.fileSystem.EvalSymlinks(directoryPath)
	if resolveError != nil {
		return FilesystemError{Operation: operationResolveSymbolicLinkConstant, Path: directoryPath, Cause: resolveError}
	}
	if _, alreadyVisited := state.visitedDirectories[resolvedDirectory]; alreadyVisited {
		return nil
	}
	state.visitedDirectories[resolvedDirectory] = struct{}{}

	directoryEntries, listError := discoverer.fileSystem.ReadDir(directoryPath)
	if listError != nil {
		return FilesystemError{Operation: operationListConstant, Path: directoryPath, Cause: listError}
	}

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if _, isArtifact := metadataArtifactNames[entryName]; isArtifact {
			continue
		}

		if entryName == gitMetadataDirectoryNameConstant {
			state.record(directoryPath, resolvedDirectory)
			continue
		}

		entryPath := filepath.Join(directoryPath, entryName)
		entryInfo, statError := discoverer.fileSystem.Stat(entryPath)
		if statError != nil {
			return FilesystemError{Operation: operationStatConstant, Path: entryPath, Cause: statError}
		}
		if !entryInfo.IsDir() {
			continue
		}

		isRepository, probeError := discoverer.containsMetadataDirectory(entryPath)
		if probeError != nil {
			return probeError
		}
		if isRepository {
			resolvedRepository, resolveRepositoryError := discoverer.fileSystem.EvalSymlinks(entryPath)
			if resolveRepositoryError != nil {
				return FilesystemError{Operation: operationResolveSymbolicLinkConstant, Path: entryPath, Cause: resolveRepositoryError}
			}
			state.record(entryPath, resolvedRepository)
			continue
		}

		if depth < state.maximumDepth {
			if descendError := discoverer.scanDirectory(entryPath, depth+1, state); descendError != nil {
				return descendError
			}
		}
	}

	return nil
}

func (discoverer *FilesystemRepositoryDiscoverer) containsMetadataDirectory(directoryPath string) (bool, error) {
	metadataPath := filepath.Join(directoryPath, gitMetadataDirectoryNameConstant)
	_, statError := discoverer.fileSystem.Stat(metadataPath)
	switch {
	case statError == nil:
		return true, nil
	case errors.Is(statError, fs.ErrNotExist), errors.Is(statError, syscall.ENOTDIR):
		return false, nil
	default:
		return false, FilesystemError{Operation: operationProbeMetadataDirectoryConstant, Path: metadataPath, Cause: statError}
	}
}
