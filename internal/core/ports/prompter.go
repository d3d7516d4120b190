package ports

// Prompter collects input values from the user.
//
//go:generate mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Prompt asks for free text.
	Prompt(description string) (string, error)
	// PromptChoice shows a zero-based numbered menu of options and returns the typed index.
	// The index is not range checked.
	PromptChoice(description string, options []string) (int, error)
}
