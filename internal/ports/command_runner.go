package ports

// CommandRunner executes shell commands and returns their output.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
	// RunInteractive executes a command with stdin, stdout, and stderr connected
	// to the terminal so the child's progress is visible as it happens.
	// Returns error if command fails.
	RunInteractive(name string, args ...string) error
}
