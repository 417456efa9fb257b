package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

// Repository adapts the git binary to the gitrepo.Gateway port for one target
// path. workDir is the directory commands run in; filterPath narrows diffs
// when the target is a file or subdirectory.
type Repository struct {
	exec       CommandExecutor
	workDir    string
	filterPath string
}

var _ gitrepo.Gateway = (*Repository)(nil)

// Open resolves path (a repository directory, subdirectory, or single file)
// into a Repository. A file path runs commands from its parent directory and
// filters diffs down to the file itself.
func Open(path string, exec CommandExecutor) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	workDir := abs
	if !info.IsDir() {
		workDir = filepath.Dir(abs)
	}
	return &Repository{exec: exec, workDir: workDir, filterPath: abs}, nil
}

// IsRepository reports whether path lies inside a git work tree. All failures,
// including a missing git binary, read as false.
func IsRepository(path string) bool {
	repo, err := Open(path, NewExecExecutor())
	if err != nil {
		return false
	}
	_, _, code, err := repo.exec.Run(context.Background(), repo.workDir, "rev-parse", "--git-dir")
	return err == nil && code == 0
}

// Diff returns the unified diff for the requested mode. All and Unstaged
// modes append synthesized diff blocks for untracked files.
func (r *Repository) Diff(ctx context.Context, mode gitrepo.DiffMode) (string, error) {
	args := []string{"diff"}
	switch mode {
	case gitrepo.DiffModeStaged:
		args = append(args, "--staged")
	case gitrepo.DiffModeAll:
		args = append(args, "HEAD")
	}
	args = append(args, "-U5", "--no-color", "--", r.filterPath)

	tracked, err := r.runDiff(ctx, args)
	if err != nil {
		return "", err
	}

	pieces := make([]string, 0, 2)
	if tracked != "" {
		pieces = append(pieces, tracked)
	}
	if mode == gitrepo.DiffModeAll || mode == gitrepo.DiffModeUnstaged {
		// Listing failures are not fatal; the tracked diff is still useful.
		if untracked, err := r.untrackedDiff(ctx); err == nil && untracked != "" {
			pieces = append(pieces, untracked)
		}
	}
	return strings.Join(pieces, "\n"), nil
}

// BranchDiff returns the changes in fromBranch that are not in toBranch.
func (r *Repository) BranchDiff(ctx context.Context, fromBranch, toBranch string) (string, error) {
	if fromBranch == "" {
		return "", fmt.Errorf("source branch name is empty")
	}
	if toBranch == "" {
		return "", fmt.Errorf("target branch name is empty")
	}
	return r.runDiff(ctx, []string{"diff", "-U5", "--no-color", toBranch, fromBranch})
}

func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Branches lists local and remote branch names with display noise stripped:
// the "* " current marker, "remotes/" and "origin/" prefixes. HEAD references
// are skipped. The result is deduplicated and sorted.
func (r *Repository) Branches(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "branch", "-a")
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.Contains(name, "HEAD") {
			continue
		}
		name = strings.TrimPrefix(name, "* ")
		name = strings.TrimPrefix(name, "remotes/")
		name = strings.TrimPrefix(name, "origin/")
		seen[name] = struct{}{}
	}
	return sortedKeys(seen), nil
}

// RemoteBranches lists remote branches with the "remotes/" prefix stripped
// but the remote name kept.
func (r *Repository) RemoteBranches(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "branch", "-r")
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" || strings.Contains(name, "HEAD") {
			continue
		}
		name = strings.TrimPrefix(name, "remotes/")
		seen[name] = struct{}{}
	}
	return sortedKeys(seen), nil
}

// HasStagedChanges reports whether the index differs from HEAD. git exits 1
// when staged changes exist.
func (r *Repository) HasStagedChanges(ctx context.Context) (bool, error) {
	_, stderr, code, err := r.exec.Run(ctx, r.workDir, "diff", "--staged", "--quiet")
	if err != nil {
		return false, err
	}
	switch code {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, commandError("diff", stderr, code)
	}
}

func (r *Repository) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "diff", "--staged", "--name-only")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func (r *Repository) StageAll(ctx context.Context) error {
	if _, err := r.run(ctx, "add", "."); err != nil {
		return fmt.Errorf("failed to stage all files: %w", err)
	}
	return nil
}

func (r *Repository) Commit(ctx context.Context, message string) error {
	if _, err := r.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}
	return nil
}

func (r *Repository) Push(ctx context.Context) error {
	if _, err := r.run(ctx, "push"); err != nil {
		return fmt.Errorf("failed to push branch: %w", err)
	}
	return nil
}

// run executes git and treats any non-zero exit as a failure.
func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, code, err := r.exec.Run(ctx, r.workDir, args...)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", commandError(args[0], stderr, code)
	}
	return stdout, nil
}

// runDiff executes a git diff variant where exit code 1 with output means
// "diff found", a normal outcome.
func (r *Repository) runDiff(ctx context.Context, args []string) (string, error) {
	stdout, stderr, code, err := r.exec.Run(ctx, r.workDir, args...)
	if err != nil {
		return "", err
	}
	if code == 1 && stdout != "" {
		return stdout, nil
	}
	if code != 0 {
		return "", commandError("diff", stderr, code)
	}
	return stdout, nil
}

// untrackedDiff synthesizes new-file diff blocks for files git does not track
// yet, so they show up in the analysis like everything else.
func (r *Repository) untrackedDiff(ctx context.Context) (string, error) {
	out, stderr, code, err := r.exec.Run(ctx, r.workDir, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", commandError("ls-files", stderr, code)
	}

	var blocks []string
	for _, file := range strings.Split(strings.TrimSpace(out), "\n") {
		if file == "" || !r.matchesFilter(file) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(r.workDir, file))
		if err != nil {
			continue
		}
		blocks = append(blocks, syntheticNewFileDiff(filepath.ToSlash(file), string(content)))
	}
	return strings.Join(blocks, "\n"), nil
}

// matchesFilter reports whether an untracked file (repo-relative, slash
// separated) falls under the target path.
func (r *Repository) matchesFilter(file string) bool {
	rel, err := filepath.Rel(r.workDir, r.filterPath)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return true
	}
	return file == rel || strings.HasPrefix(file, rel+"/")
}

// syntheticNewFileDiff renders a file's full content as a unified diff the
// way git would show a newly added file.
func syntheticNewFileDiff(path, content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", path, path)
	b.WriteString("new file mode 100644\n")
	b.WriteString("index 0000000..0000000\n")
	b.WriteString("--- /dev/null\n")
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	fmt.Fprintf(&b, "@@ -0,0 +1,%d @@\n", len(lines))
	for i, line := range lines {
		b.WriteString("+")
		b.WriteString(line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func commandError(op, stderr string, code int) error {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("git %s failed: %s", op, msg)
	}
	return fmt.Errorf("git %s failed with exit code %d", op, code)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
