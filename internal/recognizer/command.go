package recognizer

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
	"github.com/nguyentantai21042004/voice-minutes/internal/speech"
	"github.com/nguyentantai21042004/voice-minutes/pkg/executor"
)

// LanguagePlaceholder in a command argument is replaced by the session language.
const LanguagePlaceholder = "{lang}"

type commandRecognizer struct {
	executor executor.Executor
	command  []string
	workDir  string
	logger   logger.Logger
	lookPath func(string) (string, error)
}

// NewCommand returns a Recognizer that runs command once per attempt and
// treats each non-blank stdout line as a recognized fragment. The command is
// expected to listen for one utterance and exit.
func NewCommand(exec executor.Executor, command []string, workDir string, log logger.Logger) speech.Recognizer {
	return &commandRecognizer{
		executor: exec,
		command:  command,
		workDir:  workDir,
		logger:   log,
		lookPath: lookPath,
	}
}

func lookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *commandRecognizer) Available() bool {
	if len(r.command) == 0 {
		return false
	}
	_, err := r.lookPath(r.command[0])
	return err == nil
}

func (r *commandRecognizer) Recognize(ctx context.Context, opts speech.Options) speech.Outcome {
	name := r.command[0]
	args := make([]string, 0, len(r.command)-1)
	for _, arg := range r.command[1:] {
		args = append(args, strings.ReplaceAll(arg, LanguagePlaceholder, opts.Language))
	}

	out, err := r.executor.Run(ctx, executor.Command{Name: name, Args: args, Dir: r.workDir})
	if err != nil {
		if ctx.Err() != nil {
			return speech.Outcome{Kind: speech.OutcomeError, Err: ctx.Err()}
		}
		var exitErr *executor.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Debug(ctx, "%s exited with code %d: %s", name, exitErr.ExitCode, exitErr.Stderr)
		}
		return speech.Outcome{Kind: speech.OutcomeError, Err: err}
	}

	texts := splitLines(out)
	if len(texts) == 0 {
		return speech.Outcome{Kind: speech.OutcomeEndOfInput}
	}
	r.logger.Debug(ctx, "Recognized %d fragment(s) from %s", len(texts), name)
	return speech.Outcome{Kind: speech.OutcomeResults, Texts: texts}
}

func splitLines(s string) []string {
	var texts []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			texts = append(texts, line)
		}
	}
	return texts
}
