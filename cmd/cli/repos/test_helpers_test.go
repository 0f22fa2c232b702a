package repos_test

import (
	"context"
	"sync"

	"github.com/temirov/rex/internal/execshell"
	pathutils "github.com/temirov/rex/internal/utils/path"
)

const (
	testWorkingDirectoryConstant = "/srv/work"
	testHomeDirectoryConstant    = "/home/rex"
)

type fakeRepositoryDiscoverer struct {
	repositories  []string
	receivedRoots []string
	receivedDepth int
}

func (discoverer *fakeRepositoryDiscoverer) DiscoverRepositories(roots []string, maximumDepth int) ([]string, error) {
	discoverer.receivedRoots = append([]string{}, roots...)
	discoverer.receivedDepth = maximumDepth
	return append([]string{}, discoverer.repositories...), nil
}

type scriptInvocation struct {
	script           string
	workingDirectory string
}

type fakeScriptExecutor struct {
	mutex       sync.Mutex
	invocations []scriptInvocation
	outputs     map[string]string
	failures    map[string]error
}

func (executor *fakeScriptExecutor) ExecuteScript(_ context.Context, script string, workingDirectory string) (execshell.ExecutionResult, error) {
	executor.mutex.Lock()
	executor.invocations = append(executor.invocations, scriptInvocation{script: script, workingDirectory: workingDirectory})
	executor.mutex.Unlock()

	if failure, exists := executor.failures[workingDirectory]; exists {
		return execshell.ExecutionResult{}, failure
	}
	return execshell.ExecutionResult{StandardOutput: executor.outputs[workingDirectory]}, nil
}

func newFixedPathSanitizer() *pathutils.RepositoryPathSanitizer {
	normalizer := pathutils.NewNormalizerWithProviders(
		func(key string) (string, bool) {
			if key == "HOME" {
				return testHomeDirectoryConstant, true
			}
			return "", false
		},
		func() (string, error) {
			return testWorkingDirectoryConstant, nil
		},
	)
	return pathutils.NewRepositoryPathSanitizerWithNormalizer(normalizer)
}
