package resolver

import (
	"context"
	"strconv"

	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/zerr"
)

// resolveInput applies CLI value, then default, then interactive prompt.
// memo holds the values already resolved within the current string.
func (r *Resolver) resolveInput(_ context.Context, ref domain.Reference, memo map[string]string) (string, bool, error) {
	if ref.Namespace != domain.NamespaceInput {
		return "", false, nil
	}
	if v, ok := memo[ref.Key]; ok {
		return v, true, nil
	}

	in, ok := r.tasks.Input(ref.Key)
	if !ok {
		return "", false, zerr.With(zerr.Wrap(domain.ErrUnknownInput, "cannot resolve input"), "id", ref.Key)
	}

	v, err := r.inputValue(&in)
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, "cannot resolve input"), "id", in.ID)
	}
	if v == "" {
		return "", false, zerr.With(zerr.Wrap(domain.ErrEmptyInputValue, "cannot resolve input"), "id", in.ID)
	}

	memo[ref.Key] = v
	return v, true, nil
}

func (r *Resolver) inputValue(in *domain.Input) (string, error) {
	if v, ok := r.cliInputs[in.ID]; ok {
		return v, nil
	}
	if in.HasDefault() {
		return in.Default, nil
	}
	if !r.opts.Interactive {
		return "", zerr.Wrap(domain.ErrInteractiveInputUnavailable, "cannot prompt for input")
	}

	if in.Kind == domain.InputKindPickString {
		idx, err := r.prompter.PromptChoice(in.Description, in.Options)
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(in.Options) {
			return "", zerr.With(zerr.Wrap(domain.ErrInvalidSelection, "cannot resolve input"), "index", strconv.Itoa(idx))
		}
		return in.Options[idx], nil
	}

	return r.prompter.Prompt(in.Description)
}
