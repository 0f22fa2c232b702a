// Package batch runs one resolved shell script across many repositories.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/rex/internal/execshell"
	"github.com/temirov/rex/internal/repos/shared"
)

const (
	minimumConcurrencyConstant           = 1
	repositoryHeaderTemplateConstant     = "== %s\n"
	repositoryFailureTemplateConstant    = "ERROR: %s: %v\n"
	lineBreakConstant                    = "\n"
	batchFailureErrorTemplateConstant    = "%d of %d repositories failed"
	executorNotConfiguredMessageConstant = "script executor not configured"
	batchStartedMessageConstant          = "batch execution started"
	batchFinishedMessageConstant         = "batch execution finished"
	logFieldRepositoryCountConstant      = "repository_count"
	logFieldConcurrencyConstant          = "concurrency"
	logFieldFailureCountConstant         = "failure_count"
)

// ErrExecutorNotConfigured indicates the runner was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// Options configures a batch run.
type Options struct {
	Script       string
	Repositories []string
	Concurrency  int
}

// Outcome captures the result of running the script in one repository.
type Outcome struct {
	RepositoryPath string
	Result         execshell.ExecutionResult
	Failure        error
}

// FailureError summarizes a batch in which at least one repository failed.
type FailureError struct {
	FailedCount int
	TotalCount  int
}

// Error reports the number of failed repositories.
func (failureError FailureError) Error() string {
	return fmt.Sprintf(batchFailureErrorTemplateConstant, failureError.FailedCount, failureError.TotalCount)
}

// Runner executes scripts across repositories with bounded concurrency.
type Runner struct {
	executor shared.ScriptExecutor
	logger   *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(executor shared.ScriptExecutor, logger *zap.Logger) (*Runner, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{executor: executor, logger: logger}, nil
}

// Run executes the script in every repository and returns outcomes sorted by repository path.
// Individual failures are recorded on their outcome; they never stop the remaining repositories.
func (runner *Runner) Run(executionContext context.Context, options Options) []Outcome {
	concurrency := options.Concurrency
	if concurrency < minimumConcurrencyConstant {
		concurrency = minimumConcurrencyConstant
	}

	runner.logger.Debug(
		batchStartedMessageConstant,
		zap.Int(logFieldRepositoryCountConstant, len(options.Repositories)),
		zap.Int(logFieldConcurrencyConstant, concurrency),
	)

	outcomes := make([]Outcome, len(options.Repositories))
	var group errgroup.Group
	group.SetLimit(concurrency)

	for repositoryIndex, repositoryPath := range options.Repositories {
		group.Go(func() error {
			outcomes[repositoryIndex] = runner.runRepository(executionContext, options.Script, repositoryPath)
			return nil
		})
	}
	_ = group.Wait()

	sort.SliceStable(outcomes, func(first int, second int) bool {
		return outcomes[first].RepositoryPath < outcomes[second].RepositoryPath
	})

	failureCount := 0
	for _, outcome := range outcomes {
		if outcome.Failure != nil {
			failureCount++
		}
	}
	runner.logger.Info(
		batchFinishedMessageConstant,
		zap.Int(logFieldRepositoryCountConstant, len(outcomes)),
		zap.Int(logFieldFailureCountConstant, failureCount),
	)

	return outcomes
}

func (runner *Runner) runRepository(executionContext context.Context, script string, repositoryPath string) Outcome {
	outcome := Outcome{RepositoryPath: repositoryPath}
	if contextError := executionContext.Err(); contextError != nil {
		outcome.Failure = contextError
		return outcome
	}

	executionResult, executionError := runner.executor.ExecuteScript(executionContext, script, repositoryPath)
	if executionError != nil {
		var commandFailedError execshell.CommandFailedError
		if errors.As(executionError, &commandFailedError) {
			outcome.Result = commandFailedError.Result
		}
		outcome.Failure = executionError
		return outcome
	}

	outcome.Result = executionResult
	return outcome
}

// Report prints each outcome in order: standard output under a repository header, failures to errors.
// It returns FailureError when any outcome failed.
func Report(outcomes []Outcome, output shared.Reporter, errorOutput shared.Reporter) error {
	failedCount := 0
	for _, outcome := range outcomes {
		if outcome.Failure != nil {
			failedCount++
			errorOutput.Printf(repositoryFailureTemplateConstant, outcome.RepositoryPath, outcome.Failure)
			continue
		}

		output.Printf(repositoryHeaderTemplateConstant, outcome.RepositoryPath)
		standardOutput := outcome.Result.StandardOutput
		if len(standardOutput) == 0 {
			continue
		}
		if !strings.HasSuffix(standardOutput, lineBreakConstant) {
			standardOutput += lineBreakConstant
		}
		output.Printf("%s", standardOutput)
	}

	if failedCount > 0 {
		return FailureError{FailedCount: failedCount, TotalCount: len(outcomes)}
	}
	return nil
}
