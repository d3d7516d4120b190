package config

import "go.trai.ch/tasks/internal/core/domain"

// TaskToDTO converts a task back into its tasks.json representation.
func TaskToDTO(t *domain.Task) TaskDTO {
	dto := TaskDTO{
		Label:          t.Label.String(),
		Type:           string(t.Kind),
		Command:        t.Command,
		Hide:           t.Hidden,
		IsBackground:   t.IsBackground,
		Args:           t.Args,
		Group:          t.Group,
		Presentation:   t.Presentation,
		ProblemMatcher: t.ProblemMatcher,
		RunOptions:     t.RunOptions,
		DependsOn:      domain.Strings(t.DependsOn),
		DependsOrder:   t.DependsOrder,
	}

	if t.WorkingDir != "" || len(t.Env) > 0 || t.Shell != nil {
		dto.Options = &OptionsDTO{Cwd: t.WorkingDir, Env: t.Env}
		if t.Shell != nil {
			dto.Options.Shell = &ShellDTO{Executable: t.Shell.Executable, Args: t.Shell.Args}
		}
	}

	if t.Icon != nil {
		dto.Icon = &IconDTO{ID: t.Icon.ID, Color: t.Icon.Color}
	}

	return dto
}

// InputToDTO converts an input back into its tasks.json representation.
func InputToDTO(in *domain.Input) InputDTO {
	return InputDTO{
		ID:          in.ID,
		Description: in.Description,
		Default:     in.Default,
		Type:        string(in.Kind),
		Options:     in.Options,
	}
}
