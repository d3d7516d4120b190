package domain

import "go.trai.ch/zerr"

var (
	// ErrDefinitionLoad is returned when the task or settings file is missing or malformed.
	// The validation errors below wrap it.
	ErrDefinitionLoad = zerr.New("invalid task definitions")

	// ErrMissingTaskLabel is returned when a task definition has no label.
	ErrMissingTaskLabel = zerr.Wrap(ErrDefinitionLoad, "task label is required")

	// ErrDuplicateTaskLabel is returned when two tasks share the same label.
	ErrDuplicateTaskLabel = zerr.Wrap(ErrDefinitionLoad, "duplicate task label")

	// ErrDuplicateInputID is returned when two inputs share the same id.
	ErrDuplicateInputID = zerr.Wrap(ErrDefinitionLoad, "duplicate input id")

	// ErrInvalidTaskKind is returned when a task type is neither shell nor process.
	ErrInvalidTaskKind = zerr.Wrap(ErrDefinitionLoad, "invalid task type")

	// ErrInvalidInputKind is returned when an input type is neither promptString nor pickString.
	ErrInvalidInputKind = zerr.Wrap(ErrDefinitionLoad, "invalid input type")

	// ErrMissingPickOptions is returned when a pickString input declares no options.
	ErrMissingPickOptions = zerr.Wrap(ErrDefinitionLoad, "pickString input has no options")

	// ErrTaskNotFound is returned when a requested task is not found in the task set.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrUnknownInput is returned when an input reference names no declared input.
	ErrUnknownInput = zerr.New("input not found")

	// ErrConfigNotFound is returned when a config key is absent from the namespace.
	ErrConfigNotFound = zerr.New("config not found, check your settings.json")

	// ErrMissingEnvironmentVariable is returned when an env reference names an unset variable.
	ErrMissingEnvironmentVariable = zerr.New("environment variable not found")

	// ErrEmptyInputValue is returned when an input resolves to an empty value.
	ErrEmptyInputValue = zerr.New("input value could not be empty")

	// ErrInvalidSelection is returned when a typed pick-list index is out of range.
	ErrInvalidSelection = zerr.New("input value is not in the possible options")

	// ErrInteractiveInputUnavailable is returned when an input needs a prompt but prompting is disabled.
	ErrInteractiveInputUnavailable = zerr.New("cli inputs not set and interactive input is disabled")

	// ErrTaskExecutionFailed is returned when a task exits with a non-zero status.
	ErrTaskExecutionFailed = zerr.New("task execution failed")

	// ErrCollaboratorFailure is returned when an external collaborator command fails.
	ErrCollaboratorFailure = zerr.New("collaborator failed")

	// ErrMalformedManifest is returned when the build manifest lacks the expected key.
	ErrMalformedManifest = zerr.New("malformed build manifest")

	// ErrDependencyCycle is returned when a task transitively depends on itself.
	ErrDependencyCycle = zerr.New("dependency cycle detected")

	// ErrWorkingDirChange is returned when changing into a task working directory fails.
	ErrWorkingDirChange = zerr.New("failed to change working directory")

	// ErrMigrationMismatch is returned when a migrated file does not read back as written.
	ErrMigrationMismatch = zerr.New("migrated file content does not match the rewrite")
)
