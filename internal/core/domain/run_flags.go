package domain

// OverridePolicy controls whether task environment overrides replace
// variables already present in the environment.
type OverridePolicy int

const (
	// OverrideClobber always applies task overrides.
	OverrideClobber OverridePolicy = iota
	// OverridePreserve keeps variables that are already set.
	OverridePreserve
)

// String returns the policy name for logs.
func (p OverridePolicy) String() string {
	if p == OverridePreserve {
		return "preserve"
	}
	return "clobber"
}

// RunFlags captures the process-level switches read from the environment at startup.
type RunFlags struct {
	// Interactive is true when stdin is a terminal and prompting is not disabled.
	Interactive bool
	// CI is true inside a GitLab CI job.
	CI bool
	// Override is the environment override policy.
	Override OverridePolicy
	// Debug enables verbose tracing.
	Debug bool
	// DockerPassword is the CI secret published as config:docker_password.
	DockerPassword    string
	HasDockerPassword bool
	// RegistryCommand replaces the default package registry command when set.
	RegistryCommand string
}
