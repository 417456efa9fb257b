package gitrepo

import "context"

// DiffMode selects which working-tree state a diff covers.
type DiffMode string

const (
	DiffModeAll      DiffMode = "all"      // everything since the last commit, untracked included
	DiffModeStaged   DiffMode = "staged"   // index only
	DiffModeUnstaged DiffMode = "unstaged" // working tree only, untracked included
)

// Gateway is the outbound port to the version-control tool. Diff output is
// unified-diff text; an empty string means no changes.
type Gateway interface {
	Diff(ctx context.Context, mode DiffMode) (string, error)
	BranchDiff(ctx context.Context, fromBranch, toBranch string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	Branches(ctx context.Context) ([]string, error)
	RemoteBranches(ctx context.Context) ([]string, error)
	HasStagedChanges(ctx context.Context) (bool, error)
	StagedFiles(ctx context.Context) ([]string, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
}
