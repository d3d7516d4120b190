package domain

// InputKind selects how an input is collected interactively.
type InputKind string

const (
	// InputKindPromptString asks for free text.
	InputKindPromptString InputKind = "promptString"
	// InputKindPickString asks for an index into Options.
	InputKindPickString InputKind = "pickString"
)

// Valid reports whether k is a known input kind.
func (k InputKind) Valid() bool {
	return k == InputKindPromptString || k == InputKindPickString
}

// Input is a named placeholder resolved at run time.
type Input struct {
	ID          string
	Description string
	Kind        InputKind
	Default     string
	Options     []string
}

// HasDefault reports whether the input declares a usable default.
// An empty default counts as absent.
func (i *Input) HasDefault() bool {
	return i.Default != ""
}
