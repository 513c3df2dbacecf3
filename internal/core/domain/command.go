package domain

// Command is an external process invocation.
type Command struct {
	// Name is a short label used in logs and telemetry.
	Name string
	// Args holds the program followed by its arguments.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is merged on top of the current process environment.
	Env map[string]string
}
