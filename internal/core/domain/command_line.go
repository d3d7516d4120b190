package domain

import "strings"

// CommandLine is a fully resolved invocation handed to the launcher.
// Shell command lines carry a single script string; process command lines
// carry a program and an explicit argument vector.
type CommandLine struct {
	Shell bool
	// Script is the shell command string for shell invocations.
	Script string
	// ShellExecutable and ShellArgs override the default shell.
	ShellExecutable string
	ShellArgs       []string
	// Program and Args describe a direct process invocation.
	Program string
	Args    []string
}

// String renders the command line for logs.
func (c CommandLine) String() string {
	if c.Shell {
		return c.Script
	}
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}
