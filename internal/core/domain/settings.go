package domain

import "strings"

// SettingName is one of the well-known setting keys, in underscore form.
type SettingName string

// Well-known settings published by the editor extension.
const (
	SettingTorizonPassword     SettingName = "torizon_psswd"
	SettingTorizonLogin        SettingName = "torizon_login"
	SettingTorizonIP           SettingName = "torizon_ip"
	SettingTorizonSSHPort      SettingName = "torizon_ssh_port"
	SettingHostIP              SettingName = "host_ip"
	SettingTorizonWorkspace    SettingName = "torizon_workspace"
	SettingTorizonDebugSSHPort SettingName = "torizon_debug_ssh_port"
	SettingTorizonDebugPort1   SettingName = "torizon_debug_port1"
	SettingTorizonDebugPort2   SettingName = "torizon_debug_port2"
	SettingTorizonDebugPort3   SettingName = "torizon_debug_port3"
	SettingTorizonGPU          SettingName = "torizon_gpu"
	SettingTorizonArch         SettingName = "torizon_arch"
	SettingWaitSync            SettingName = "wait_sync"
	SettingTorizonRunAs        SettingName = "torizon_run_as"
	SettingTorizonAppRoot      SettingName = "torizon_app_root"
	SettingDockerTag           SettingName = "docker_tag"
	SettingTCBPackageName      SettingName = "tcb_packageName"
	SettingTCBVersion          SettingName = "tcb_version"
	SettingTorizonGPUPrefixRC  SettingName = "torizon_gpuPrefixRC"
	SettingDockerPassword      SettingName = "docker_password"
	SettingDockerRegistry      SettingName = "docker_registry"
)

// KnownSettings lists the settings recognized as typed fields, in declaration order.
var KnownSettings = []SettingName{
	SettingTorizonPassword,
	SettingTorizonLogin,
	SettingTorizonIP,
	SettingTorizonSSHPort,
	SettingHostIP,
	SettingTorizonWorkspace,
	SettingTorizonDebugSSHPort,
	SettingTorizonDebugPort1,
	SettingTorizonDebugPort2,
	SettingTorizonDebugPort3,
	SettingTorizonGPU,
	SettingTorizonArch,
	SettingWaitSync,
	SettingTorizonRunAs,
	SettingTorizonAppRoot,
	SettingDockerTag,
	SettingTCBPackageName,
	SettingTCBVersion,
	SettingTorizonGPUPrefixRC,
}

// IsKnownSetting reports whether name is one of KnownSettings.
func IsKnownSetting(name string) bool {
	for _, s := range KnownSettings {
		if string(s) == name {
			return true
		}
	}
	return false
}

// NormalizeKey turns a dotted settings key into its underscore form.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}

// Settings is the typed view of the settings file.
// Values holds the well-known settings that were present and non-null.
// Extra holds every other primitive value in string form.
type Settings struct {
	Values map[SettingName]string
	Extra  map[string]string
}

// NewSettings creates an empty Settings.
func NewSettings() *Settings {
	return &Settings{
		Values: make(map[SettingName]string),
		Extra:  make(map[string]string),
	}
}
