// Package config loads task and settings definitions from the editor workspace.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tailscale/hujson"
	"go.trai.ch/tasks/internal/core/domain"
	"go.trai.ch/tasks/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.DefinitionLoader over tasks.json and settings.json.
type Loader struct {
	fs     FileSystem
	logger ports.Logger
}

// NewLoader creates a new Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(NewOSFS(), logger)
}

// NewLoaderWithFS creates a new Loader reading through fsys.
func NewLoaderWithFS(fsys FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// LoadTasks reads and validates the task definition file at path.
func (l *Loader) LoadTasks(path string) (*domain.TaskSet, error) {
	var file TasksFile
	if err := l.readAndUnmarshalJSON(path, &file); err != nil {
		return nil, err
	}

	set := domain.NewTaskSet()

	for i := range file.Inputs {
		in, err := mapInput(&file.Inputs[i])
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		if err := set.AddInput(in); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	for i := range file.Tasks {
		task, err := mapTask(&file.Tasks[i])
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		if err := set.AddTask(task); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	l.logger.Debug(fmt.Sprintf("Loaded %d tasks and %d inputs from %s", set.Len(), len(file.Inputs), path))

	return set, nil
}

// LoadSettings reads the settings file at path.
// Keys are normalized to underscore form. Well-known settings keep any
// non-null value; other keys keep only strings, numbers and booleans.
func (l *Loader) LoadSettings(path string) (*domain.Settings, error) {
	var raw map[string]any
	if err := l.readAndUnmarshalJSON(path, &raw); err != nil {
		return nil, err
	}

	settings := domain.NewSettings()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := domain.NormalizeKey(key)
		value := raw[key]

		if domain.IsKnownSetting(name) {
			if value == nil {
				continue
			}
			s, err := settingString(value)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrDefinitionLoad, err.Error()), "path", path)
			}
			settings.Values[domain.SettingName(name)] = s
			continue
		}

		s, ok := primitiveString(value)
		if !ok {
			l.logger.Debug(fmt.Sprintf("Skipping non-primitive setting %s", key))
			continue
		}
		settings.Extra[name] = s
	}

	return settings, nil
}

func (l *Loader) readAndUnmarshalJSON(path string, out any) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDefinitionLoad, err.Error()), "path", path)
	}

	data, err = hujson.Standardize(data)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDefinitionLoad, "failed to parse "+err.Error()), "path", path)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDefinitionLoad, "failed to parse "+err.Error()), "path", path)
	}
	return nil
}

func mapTask(dto *TaskDTO) (*domain.Task, error) {
	kind := domain.TaskKind(dto.Type)
	if kind == "" {
		kind = domain.TaskKindShell
	}
	if !kind.Valid() {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidTaskKind, "cannot load task"),
			"label", dto.Label), "type", dto.Type)
	}

	task := &domain.Task{
		Label:          domain.NewInternedString(dto.Label),
		Kind:           kind,
		Command:        dto.Command,
		Args:           dto.Args,
		IsBackground:   dto.IsBackground,
		Hidden:         dto.Hide,
		DependsOn:      domain.NewInternedStrings(dto.DependsOn),
		DependsOrder:   dto.DependsOrder,
		Group:          dto.Group,
		Presentation:   dto.Presentation,
		ProblemMatcher: dto.ProblemMatcher,
		RunOptions:     dto.RunOptions,
	}

	if dto.Options != nil {
		task.WorkingDir = dto.Options.Cwd
		task.Env = dto.Options.Env
		if dto.Options.Shell != nil {
			task.Shell = &domain.ShellConfig{
				Executable: dto.Options.Shell.Executable,
				Args:       dto.Options.Shell.Args,
			}
		}
	}

	if dto.Icon != nil {
		task.Icon = &domain.Icon{ID: dto.Icon.ID, Color: dto.Icon.Color}
	}

	return task, nil
}

func mapInput(dto *InputDTO) (*domain.Input, error) {
	kind := domain.InputKind(dto.Type)
	if kind == "" {
		kind = domain.InputKindPromptString
	}
	if !kind.Valid() {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidInputKind, "cannot load input"),
			"id", dto.ID), "type", dto.Type)
	}
	if kind == domain.InputKindPickString && len(dto.Options) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingPickOptions, "cannot load input"), "id", dto.ID)
	}

	return &domain.Input{
		ID:          dto.ID,
		Description: dto.Description,
		Kind:        kind,
		Default:     dto.Default,
		Options:     dto.Options,
	}, nil
}

// primitiveString renders strings, numbers and booleans.
func primitiveString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		if val {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// settingString renders a well-known setting. Structured values keep their JSON form.
func settingString(v any) (string, error) {
	if s, ok := primitiveString(v); ok {
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
