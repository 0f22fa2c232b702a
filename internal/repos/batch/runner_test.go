package batch_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/rex/internal/execshell"
	"github.com/temirov/rex/internal/repos/batch"
	"github.com/temirov/rex/internal/repos/shared"
)

const (
	testScriptConstant      = "git rev-parse --abbrev-ref HEAD"
	testAlphaRepositoryPath = "/tmp/alpha"
	testBetaRepositoryPath  = "/tmp/beta"
	testGammaRepositoryPath = "/tmp/gamma"
	testRunnerFailureReason = "sh: not found"
	testDirtyStandardError  = "working tree dirty"
)

type recordingScriptExecutor struct {
	mutex             sync.Mutex
	receivedScripts   []string
	results           map[string]execshell.ExecutionResult
	failures          map[string]error
	activeExecutions  atomic.Int32
	maximumConcurrent atomic.Int32
	release           chan struct{}
}

func (executor *recordingScriptExecutor) ExecuteScript(_ context.Context, script string, workingDirectory string) (execshell.ExecutionResult, error) {
	active := executor.activeExecutions.Add(1)
	defer executor.activeExecutions.Add(-1)
	for {
		observed := executor.maximumConcurrent.Load()
		if active <= observed || executor.maximumConcurrent.CompareAndSwap(observed, active) {
			break
		}
	}
	if executor.release != nil {
		<-executor.release
	}

	executor.mutex.Lock()
	executor.receivedScripts = append(executor.receivedScripts, script)
	executor.mutex.Unlock()

	if failure, exists := executor.failures[workingDirectory]; exists {
		return execshell.ExecutionResult{}, failure
	}
	return executor.results[workingDirectory], nil
}

func TestRunnerRunSortsOutcomesAndRecordsFailures(testInstance *testing.T) {
	failedCommand := execshell.ShellCommand{Name: execshell.CommandShell, Details: execshell.CommandDetails{Arguments: []string{"-c", testScriptConstant}}}
	executor := &recordingScriptExecutor{
		results: map[string]execshell.ExecutionResult{
			testAlphaRepositoryPath: {StandardOutput: "main\n"},
		},
		failures: map[string]error{
			testBetaRepositoryPath: execshell.CommandFailedError{
				Command: failedCommand,
				Result:  execshell.ExecutionResult{ExitCode: 1, StandardError: testDirtyStandardError},
			},
			testGammaRepositoryPath: execshell.CommandExecutionError{Command: failedCommand, Cause: errors.New(testRunnerFailureReason)},
		},
	}

	runner, runnerError := batch.NewRunner(executor, zap.NewNop())
	require.NoError(testInstance, runnerError)

	outcomes := runner.Run(context.Background(), batch.Options{
		Script:       testScriptConstant,
		Repositories: []string{testGammaRepositoryPath, testAlphaRepositoryPath, testBetaRepositoryPath},
		Concurrency:  3,
	})

	require.Len(testInstance, outcomes, 3)
	require.Equal(testInstance, testAlphaRepositoryPath, outcomes[0].RepositoryPath)
	require.NoError(testInstance, outcomes[0].Failure)
	require.Equal(testInstance, "main\n", outcomes[0].Result.StandardOutput)

	require.Equal(testInstance, testBetaRepositoryPath, outcomes[1].RepositoryPath)
	require.Error(testInstance, outcomes[1].Failure)
	require.Equal(testInstance, 1, outcomes[1].Result.ExitCode)

	require.Equal(testInstance, testGammaRepositoryPath, outcomes[2].RepositoryPath)
	require.ErrorContains(testInstance, outcomes[2].Failure, testRunnerFailureReason)

	require.Equal(testInstance, []string{testScriptConstant, testScriptConstant, testScriptConstant}, executor.receivedScripts)
}

func TestRunnerRunHonorsConcurrencyLimit(testInstance *testing.T) {
	testCases := []struct {
		name               string
		concurrency        int
		expectedConcurrent int32
	}{
		{name: "sequential_when_zero", concurrency: 0, expectedConcurrent: 1},
		{name: "sequential", concurrency: 1, expectedConcurrent: 1},
		{name: "bounded", concurrency: 2, expectedConcurrent: 2},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingScriptExecutor{release: make(chan struct{})}
			runner, runnerError := batch.NewRunner(executor, nil)
			require.NoError(testInstance, runnerError)

			repositories := []string{"/r/1", "/r/2", "/r/3", "/r/4"}
			done := make(chan []batch.Outcome)
			go func() {
				done <- runner.Run(context.Background(), batch.Options{Script: testScriptConstant, Repositories: repositories, Concurrency: testCase.concurrency})
			}()

			for range repositories {
				executor.release <- struct{}{}
			}
			outcomes := <-done

			require.Len(testInstance, outcomes, len(repositories))
			require.LessOrEqual(testInstance, executor.maximumConcurrent.Load(), testCase.expectedConcurrent)
		})
	}
}

func TestRunnerRunSkipsRepositoriesAfterCancellation(testInstance *testing.T) {
	executor := &recordingScriptExecutor{}
	runner, runnerError := batch.NewRunner(executor, nil)
	require.NoError(testInstance, runnerError)

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := runner.Run(cancelledContext, batch.Options{Script: testScriptConstant, Repositories: []string{testAlphaRepositoryPath}})
	require.Len(testInstance, outcomes, 1)
	require.ErrorIs(testInstance, outcomes[0].Failure, context.Canceled)
	require.Empty(testInstance, executor.receivedScripts)
}

func TestNewRunnerRequiresExecutor(testInstance *testing.T) {
	_, runnerError := batch.NewRunner(nil, nil)
	require.ErrorIs(testInstance, runnerError, batch.ErrExecutorNotConfigured)
}

func TestReport(testInstance *testing.T) {
	outcomes := []batch.Outcome{
		{RepositoryPath: testAlphaRepositoryPath, Result: execshell.ExecutionResult{StandardOutput: "main"}},
		{RepositoryPath: testBetaRepositoryPath, Failure: errors.New(testDirtyStandardError)},
		{RepositoryPath: testGammaRepositoryPath},
	}

	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	reportError := batch.Report(outcomes, shared.NewWriterReporter(&outputBuffer), shared.NewWriterReporter(&errorBuffer))

	var failureError batch.FailureError
	require.ErrorAs(testInstance, reportError, &failureError)
	require.Equal(testInstance, batch.FailureError{FailedCount: 1, TotalCount: 3}, failureError)
	require.Equal(testInstance, "== /tmp/alpha\nmain\n== /tmp/gamma\n", outputBuffer.String())
	require.Equal(testInstance, "ERROR: /tmp/beta: working tree dirty\n", errorBuffer.String())

	require.NoError(testInstance, batch.Report(outcomes[:1], shared.NewWriterReporter(&outputBuffer), shared.NewWriterReporter(&errorBuffer)))
}
