package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/rex/internal/repos/batch"
	"github.com/temirov/rex/internal/repos/shared"
)

const (
	workflowExecutionErrorTemplateConstant = "workflow operation %s failed: %w"
	workflowExecutorDependenciesMessage    = "workflow executor requires a script executor"
	workflowExecutorMissingRepositories    = "workflow executor requires at least one repository"
	workflowStepHeaderTemplateConstant     = "## %s\n"
	workflowStepStartedMessageConstant     = "workflow step started"
	logFieldOperationConstant              = "operation"
	logFieldRepositoryCountConstant        = "repository_count"
)

// Dependencies configures shared collaborators for workflow execution.
type Dependencies struct {
	Logger   *zap.Logger
	Executor shared.ScriptExecutor
	Output   shared.Reporter
	Errors   shared.Reporter
}

// Executor coordinates workflow operation execution.
type Executor struct {
	operations   []Operation
	dependencies Dependencies
}

// NewExecutor constructs an Executor instance.
func NewExecutor(operations []Operation, dependencies Dependencies) *Executor {
	return &Executor{operations: append([]Operation{}, operations...), dependencies: dependencies}
}

// Execute runs each operation across every repository in order.
// The first operation with a failing repository stops the workflow after its results are reported.
func (executor *Executor) Execute(executionContext context.Context, repositories []string, concurrency int) error {
	if executor.dependencies.Executor == nil {
		return errors.New(workflowExecutorDependenciesMessage)
	}
	if len(repositories) == 0 {
		return errors.New(workflowExecutorMissingRepositories)
	}

	logger := executor.dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	output := executor.dependencies.Output
	if output == nil {
		output = shared.NewWriterReporter(nil)
	}
	errorOutput := executor.dependencies.Errors
	if errorOutput == nil {
		errorOutput = output
	}

	runner, runnerError := batch.NewRunner(executor.dependencies.Executor, logger)
	if runnerError != nil {
		return runnerError
	}

	for _, operation := range executor.operations {
		logger.Info(workflowStepStartedMessageConstant, zap.String(logFieldOperationConstant, operation.Name), zap.Int(logFieldRepositoryCountConstant, len(repositories)))
		output.Printf(workflowStepHeaderTemplateConstant, operation.Name)

		outcomes := runner.Run(executionContext, batch.Options{
			Script:       operation.Script,
			Repositories: repositories,
			Concurrency:  concurrency,
		})
		if reportError := batch.Report(outcomes, output, errorOutput); reportError != nil {
			return fmt.Errorf(workflowExecutionErrorTemplateConstant, operation.Name, reportError)
		}
	}

	return nil
}
