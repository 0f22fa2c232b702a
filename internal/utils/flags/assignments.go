package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	// AssignmentFlagName exposes the shared placeholder assignment flag name.
	AssignmentFlagName = "set"
	// AssignmentFlagUsage describes the shared placeholder assignment flag purpose.
	AssignmentFlagUsage = "Placeholder value in name=value form (repeatable)"
)

const (
	assignmentSeparatorConstant  = "="
	assignmentPartsCountConstant = 2
	malformedAssignmentTemplate  = "malformed assignment %q: expected name=value"
	duplicateAssignmentTemplate  = "placeholder %q assigned more than once"
)

// MalformedAssignmentError reports an assignment lacking a name or separator.
type MalformedAssignmentError struct {
	Assignment string
}

// Error describes the malformed assignment.
func (assignmentError MalformedAssignmentError) Error() string {
	return fmt.Sprintf(malformedAssignmentTemplate, assignmentError.Assignment)
}

// DuplicateAssignmentError reports a placeholder assigned twice.
type DuplicateAssignmentError struct {
	Name string
}

// Error describes the duplicate placeholder.
func (assignmentError DuplicateAssignmentError) Error() string {
	return fmt.Sprintf(duplicateAssignmentTemplate, assignmentError.Name)
}

// AssignmentFlagValues stores raw assignment flag values.
type AssignmentFlagValues struct {
	Assignments []string
}

// BindAssignmentFlags attaches the repeatable --set flag to the provided command.
// Values are kept verbatim, commas included.
func BindAssignmentFlags(command *cobra.Command) *AssignmentFlagValues {
	values := AssignmentFlagValues{}
	if command == nil {
		return &values
	}
	if command.Flags().Lookup(AssignmentFlagName) == nil {
		command.Flags().StringArrayVar(&values.Assignments, AssignmentFlagName, nil, AssignmentFlagUsage)
	}
	return &values
}

// ParseAssignments converts name=value pairs into a substitution map.
// Only the first separator splits; values may be empty and keep surrounding whitespace.
func ParseAssignments(assignments []string) (map[string]string, error) {
	values := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		parts := strings.SplitN(assignment, assignmentSeparatorConstant, assignmentPartsCountConstant)
		if len(parts) != assignmentPartsCountConstant {
			return nil, MalformedAssignmentError{Assignment: assignment}
		}
		name := strings.TrimSpace(parts[0])
		if len(name) == 0 {
			return nil, MalformedAssignmentError{Assignment: assignment}
		}
		if _, alreadyAssigned := values[name]; alreadyAssigned {
			return nil, DuplicateAssignmentError{Name: name}
		}
		values[name] = parts[1]
	}
	return values, nil
}
