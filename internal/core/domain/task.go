package domain

// TaskKind selects how a task command is launched.
type TaskKind string

const (
	// TaskKindShell runs the command line through a shell.
	TaskKindShell TaskKind = "shell"
	// TaskKindProcess runs the command directly with an argument vector.
	TaskKindProcess TaskKind = "process"
)

// Valid reports whether k is a known task kind.
func (k TaskKind) Valid() bool {
	return k == TaskKindShell || k == TaskKindProcess
}

// ShellConfig overrides the shell used for a shell task.
type ShellConfig struct {
	Executable string
	Args       []string
}

// Icon is the editor icon attached to a task.
type Icon struct {
	ID    string
	Color string
}

// Task represents a unit of work loaded from the task definition file.
// It uses InternedString for labels since they are repeated across dependency lists.
type Task struct {
	Label        InternedString
	Kind         TaskKind
	Command      string
	Args         []string
	IsBackground bool
	Hidden       bool
	WorkingDir   string
	Env          map[string]string
	Shell        *ShellConfig
	DependsOn    []InternedString
	DependsOrder string
	Icon         *Icon

	// Editor metadata kept for describe output only.
	Group          any
	Presentation   any
	ProblemMatcher any
	RunOptions     any
}

// HasWorkingDir reports whether the task declares a working directory.
func (t *Task) HasWorkingDir() bool {
	return t.WorkingDir != ""
}
