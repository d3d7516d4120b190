package config

import "encoding/json"

// TasksFile represents the structure of .vscode/tasks.json.
type TasksFile struct {
	Version string     `json:"version"`
	Tasks   []TaskDTO  `json:"tasks"`
	Inputs  []InputDTO `json:"inputs"`

	// Platform override blocks are accepted but not interpreted.
	Windows json.RawMessage `json:"windows,omitempty"`
	OSX     json.RawMessage `json:"osx,omitempty"`
	Linux   json.RawMessage `json:"linux,omitempty"`
}

// TaskDTO represents a task definition in tasks.json.
type TaskDTO struct {
	Label          string      `json:"label"`
	Type           string      `json:"type"`
	Command        string      `json:"command"`
	Hide           bool        `json:"hide,omitempty"`
	IsBackground   bool        `json:"isBackground,omitempty"`
	Args           []string    `json:"args,omitempty"`
	Options        *OptionsDTO `json:"options,omitempty"`
	Group          any         `json:"group,omitempty"`
	Presentation   any         `json:"presentation,omitempty"`
	ProblemMatcher any         `json:"problemMatcher,omitempty"`
	RunOptions     any         `json:"runOptions,omitempty"`
	DependsOn      []string    `json:"dependsOn,omitempty"`
	DependsOrder   string      `json:"dependsOrder,omitempty"`
	Icon           *IconDTO    `json:"icon,omitempty"`
}

// OptionsDTO represents the options block of a task.
type OptionsDTO struct {
	Cwd   string            `json:"cwd,omitempty"`
	Env   map[string]string `json:"env,omitempty"`
	Shell *ShellDTO         `json:"shell,omitempty"`
}

// ShellDTO represents a shell override.
type ShellDTO struct {
	Executable string   `json:"executable"`
	Args       []string `json:"args,omitempty"`
}

// IconDTO represents a task icon.
type IconDTO struct {
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
}

// InputDTO represents an input definition in tasks.json.
type InputDTO struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Default     string   `json:"default,omitempty"`
	Type        string   `json:"type,omitempty"`
	Options     []string `json:"options,omitempty"`
}
