package executor

import "context"

// Command is one invocation of an external program.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// Executor runs external programs and returns their stdout.
type Executor interface {
	Run(ctx context.Context, cmd Command) (string, error)
}
