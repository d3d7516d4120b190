package domain

import "path/filepath"

const (
	// VSCodeDirName is the editor metadata directory holding definitions.
	VSCodeDirName = ".vscode"

	// TasksFileName is the name of the task definition file.
	TasksFileName = "tasks.json"

	// SettingsFileName is the default name of the settings file.
	SettingsFileName = "settings.json"

	// ManifestFileName is the name of the build manifest read for output folders.
	ManifestFileName = "tcbuild.yaml"

	// RegistryScript is the script invoked for package registry lookups.
	RegistryScript = "./conf/torizon-io.xsh"

	// DefaultDockerRegistry replaces an empty docker_registry setting.
	DefaultDockerRegistry = "registry-1.docker.io"

	// CIDockerHost is the docker daemon address used inside CI runners.
	CIDockerHost = "tcp://docker:2375"

	// ConfigEnvPrefix prefixes config entries materialized into child environments.
	ConfigEnvPrefix = "config:"

	// FilePerm is the default permission for rewritten files (rw-r--r--).
	FilePerm = 0o644
)

// Environment variables consumed by the runner.
const (
	EnvDisableInteractiveInput = "TASKS_DISABLE_INTERACTIVE_INPUT"
	EnvGitLabCI                = "GITLAB_CI"
	EnvOverrideEnv             = "TASKS_OVERRIDE_ENV"
	EnvDebug                   = "TASKS_DEBUG"
	EnvDockerPassword          = "DOCKER_PSSWD"
	EnvRegistryCommand         = "TASKS_REGISTRY_COMMAND"
	EnvWorkspaceFolder         = "workspaceFolder"
	EnvWorkspaceFolderBasename = "workspaceFolderBasename"
)

// TasksPath returns the task definition path under root.
func TasksPath(root string) string {
	return filepath.Join(root, VSCodeDirName, TasksFileName)
}

// SettingsPath returns the settings path under root for the given file name.
// An empty name selects settings.json.
func SettingsPath(root, name string) string {
	if name == "" {
		name = SettingsFileName
	}
	return filepath.Join(root, VSCodeDirName, name)
}

// ManifestPath returns the build manifest path under root.
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFileName)
}
