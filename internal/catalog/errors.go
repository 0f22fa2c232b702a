package catalog

import "fmt"

const (
	unknownToolErrorTemplateConstant             = "unknown command tool %q"
	unknownActionErrorTemplateConstant           = "unknown command %q for tool %q"
	missingSubstitutionErrorTemplateConstant     = "command %s %s requires a value for placeholder %q"
	missingSubstitutionAnonymousTemplateConstant = "template requires a value for placeholder %q"
	notImplementedErrorTemplateConstant          = "command not implemented: %s %s"
	unexpectedValueErrorTemplateConstant         = "command %s %s has no placeholder %q"
)

// UnknownCommandError indicates that a tool or action is absent from the registry.
type UnknownCommandError struct {
	Tool   ToolName
	Action ActionName
	// ToolMissing reports whether the tool itself, rather than the action, was not found.
	ToolMissing bool
}

// Error names the missing key.
func (unknownCommandError UnknownCommandError) Error() string {
	if unknownCommandError.ToolMissing {
		return fmt.Sprintf(unknownToolErrorTemplateConstant, unknownCommandError.Tool)
	}
	return fmt.Sprintf(unknownActionErrorTemplateConstant, unknownCommandError.Action, unknownCommandError.Tool)
}

// MissingSubstitutionError indicates that a template placeholder had no supplied value.
type MissingSubstitutionError struct {
	Tool        ToolName
	Action      ActionName
	Placeholder string
}

// Error names the unresolved placeholder.
func (missingSubstitutionError MissingSubstitutionError) Error() string {
	if len(missingSubstitutionError.Tool) == 0 {
		return fmt.Sprintf(missingSubstitutionAnonymousTemplateConstant, missingSubstitutionError.Placeholder)
	}
	return fmt.Sprintf(
		missingSubstitutionErrorTemplateConstant,
		missingSubstitutionError.Tool,
		missingSubstitutionError.Action,
		missingSubstitutionError.Placeholder,
	)
}

// UnexpectedValueError indicates that a value was supplied for a placeholder the template does not use.
type UnexpectedValueError struct {
	Tool        ToolName
	Action      ActionName
	Placeholder string
}

// Error names the unused placeholder value.
func (unexpectedValueError UnexpectedValueError) Error() string {
	return fmt.Sprintf(
		unexpectedValueErrorTemplateConstant,
		unexpectedValueError.Tool,
		unexpectedValueError.Action,
		unexpectedValueError.Placeholder,
	)
}

// NotImplementedError indicates that a registered action has an empty template and cannot be executed.
type NotImplementedError struct {
	Tool   ToolName
	Action ActionName
}

// Error names the unimplemented command.
func (notImplementedError NotImplementedError) Error() string {
	return fmt.Sprintf(notImplementedErrorTemplateConstant, notImplementedError.Tool, notImplementedError.Action)
}

// RequireImplemented returns NotImplementedError when command is empty.
func RequireImplemented(tool ToolName, action ActionName, command string) error {
	if len(command) == 0 {
		return NotImplementedError{Tool: tool, Action: action}
	}
	return nil
}
