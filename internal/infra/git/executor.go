package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

// CommandExecutor runs git commands. The indirection lets tests substitute
// canned output for real process invocations.
type CommandExecutor interface {
	// Run executes git with the given arguments in dir and returns stdout,
	// stderr and the exit code. A non-zero exit is not an error by itself;
	// callers decide what each code means (git diff uses 1 for "diff found").
	Run(ctx context.Context, dir string, args ...string) (stdout, stderr string, exitCode int, err error)
}

// ExecExecutor is the default CommandExecutor backed by os/exec.
type ExecExecutor struct{}

func NewExecExecutor() *ExecExecutor { return &ExecExecutor{} }

func (e *ExecExecutor) Run(ctx context.Context, dir string, args ...string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), stderr.String(), exitErr.ExitCode(), nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", -1, gitrepo.ErrGitMissing
		}
		return "", "", -1, fmt.Errorf("run git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), stderr.String(), 0, nil
}
