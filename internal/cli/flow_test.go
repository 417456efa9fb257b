package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielss-dev/critica/internal/application/review"
	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

// fakeGateway scripts the git side of a flow and records mutations.
type fakeGateway struct {
	stagedDiff     string
	unstagedDiff   string
	branchDiff     string
	hasStaged      bool
	current        string
	local          []string
	remote         []string
	remoteErr      error
	pushErr        error
	stagedAll      bool
	committedWith  string
	pushed         bool
	branchDiffFrom string
	branchDiffTo   string
}

func (f *fakeGateway) Diff(ctx context.Context, mode gitrepo.DiffMode) (string, error) {
	switch mode {
	case gitrepo.DiffModeStaged:
		return f.stagedDiff, nil
	case gitrepo.DiffModeUnstaged:
		return f.unstagedDiff, nil
	default:
		return f.stagedDiff + f.unstagedDiff, nil
	}
}

func (f *fakeGateway) BranchDiff(ctx context.Context, fromBranch, toBranch string) (string, error) {
	f.branchDiffFrom, f.branchDiffTo = fromBranch, toBranch
	return f.branchDiff, nil
}

func (f *fakeGateway) CurrentBranch(ctx context.Context) (string, error) { return f.current, nil }
func (f *fakeGateway) Branches(ctx context.Context) ([]string, error)   { return f.local, nil }

func (f *fakeGateway) RemoteBranches(ctx context.Context) ([]string, error) {
	return f.remote, f.remoteErr
}

func (f *fakeGateway) HasStagedChanges(ctx context.Context) (bool, error) { return f.hasStaged, nil }
func (f *fakeGateway) StagedFiles(ctx context.Context) ([]string, error) {
	return []string{"a.go"}, nil
}

func (f *fakeGateway) StageAll(ctx context.Context) error {
	f.stagedAll = true
	f.hasStaged = true
	return nil
}

func (f *fakeGateway) Commit(ctx context.Context, message string) error {
	f.committedWith = message
	return nil
}

func (f *fakeGateway) Push(ctx context.Context) error {
	f.pushed = true
	return f.pushErr
}

// scriptedInteractor answers prompts from pre-recorded lists.
type scriptedInteractor struct {
	yesNo []bool
	ints  []int
}

func (s *scriptedInteractor) PromptYesNo(question string) bool {
	if len(s.yesNo) == 0 {
		return false
	}
	answer := s.yesNo[0]
	s.yesNo = s.yesNo[1:]
	return answer
}

func (s *scriptedInteractor) PromptInt(question string, defaultValue int) (int, error) {
	if len(s.ints) == 0 {
		return defaultValue, nil
	}
	answer := s.ints[0]
	s.ints = s.ints[1:]
	return answer, nil
}

// staticClient satisfies the inference port with a canned answer.
type staticClient struct{ response string }

func (s staticClient) Complete(ctx context.Context, prompt string, echo bool) (string, error) {
	return s.response, nil
}

func testService(response string) *review.Service {
	return review.NewService(staticClient{response: response}, zerolog.Nop())
}

func TestCommitFlowNoChanges(t *testing.T) {
	repo := &fakeGateway{}
	var out bytes.Buffer

	err := commitFlow(context.Background(), repo, testService(""), &scriptedInteractor{}, &out, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No changes to commit")
	assert.False(t, repo.stagedAll)
	assert.Empty(t, repo.committedWith)
}

func TestCommitFlowStagesWhenNothingStaged(t *testing.T) {
	repo := &fakeGateway{unstagedDiff: "diff --git a/x b/x\n", stagedDiff: "diff --git a/x b/x\n"}
	var out bytes.Buffer
	interact := &scriptedInteractor{yesNo: []bool{true, false}}

	err := commitFlow(context.Background(), repo, testService("feat: add x"), interact, &out, false)
	require.NoError(t, err)
	assert.True(t, repo.stagedAll)
	assert.Equal(t, "feat: add x", repo.committedWith)
	assert.False(t, repo.pushed)
	assert.Contains(t, out.String(), "Staging all modified files")
	assert.Contains(t, out.String(), "Push cancelled.")
}

func TestCommitFlowDeclinedCommit(t *testing.T) {
	repo := &fakeGateway{hasStaged: true, stagedDiff: "diff --git a/x b/x\n"}
	var out bytes.Buffer
	interact := &scriptedInteractor{yesNo: []bool{false}}

	err := commitFlow(context.Background(), repo, testService("feat: add x"), interact, &out, false)
	require.NoError(t, err)
	assert.Empty(t, repo.committedWith)
	assert.Contains(t, out.String(), "Commit cancelled.")
}

func TestCommitFlowCommitAndPush(t *testing.T) {
	repo := &fakeGateway{hasStaged: true, stagedDiff: "diff --git a/x b/x\n"}
	var out bytes.Buffer
	interact := &scriptedInteractor{yesNo: []bool{true, true}}

	err := commitFlow(context.Background(), repo, testService("fix: handle nil"), interact, &out, false)
	require.NoError(t, err)
	assert.Equal(t, "fix: handle nil", repo.committedWith)
	assert.True(t, repo.pushed)
	assert.Contains(t, out.String(), "fix: handle nil")
	assert.Contains(t, out.String(), "Branch pushed successfully")
}

func TestCommitFlowPushFailureKeepsCommit(t *testing.T) {
	repo := &fakeGateway{
		hasStaged:  true,
		stagedDiff: "diff --git a/x b/x\n",
		pushErr:    errors.New("remote rejected"),
	}
	interact := &scriptedInteractor{yesNo: []bool{true, true}}

	err := commitFlow(context.Background(), repo, testService("fix: y"), interact, &bytes.Buffer{}, false)
	require.Error(t, err)
	assert.Equal(t, "fix: y", repo.committedWith)
}

func TestPRFlowNotEnoughBranches(t *testing.T) {
	repo := &fakeGateway{current: "main", local: []string{"main"}, remoteErr: errors.New("no remote")}
	var out bytes.Buffer

	err := prFlow(context.Background(), repo, testService(""), &scriptedInteractor{}, &out, "", false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Not enough branches for comparison")
}

func TestPRFlowWithExplicitTarget(t *testing.T) {
	repo := &fakeGateway{
		current:    "feature/x",
		local:      []string{"feature/x", "main"},
		branchDiff: "diff --git a/x b/x\n",
	}
	var out bytes.Buffer

	err := prFlow(context.Background(), repo, testService("## Summary"), &scriptedInteractor{}, &out, "main", false)
	require.NoError(t, err)
	assert.Equal(t, "feature/x", repo.branchDiffFrom)
	assert.Equal(t, "main", repo.branchDiffTo)
	assert.Contains(t, out.String(), "Using target branch: main")
	assert.Contains(t, out.String(), "## Summary")
}

func TestPRFlowUnknownTarget(t *testing.T) {
	repo := &fakeGateway{current: "feature/x", local: []string{"feature/x", "main"}}

	err := prFlow(context.Background(), repo, testService(""), &scriptedInteractor{}, &bytes.Buffer{}, "missing", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPRFlowSelfCompare(t *testing.T) {
	repo := &fakeGateway{current: "main", local: []string{"dev", "main"}}

	err := prFlow(context.Background(), repo, testService(""), &scriptedInteractor{}, &bytes.Buffer{}, "main", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "itself")
}

func TestPRFlowInteractiveSelection(t *testing.T) {
	repo := &fakeGateway{
		current:    "feature/x",
		local:      []string{"feature/x"},
		remote:     []string{"origin/main"},
		branchDiff: "diff --git a/x b/x\n",
	}
	var out bytes.Buffer
	// Branches merge and sort to [feature/x, origin/main]; pick the second.
	interact := &scriptedInteractor{ints: []int{2}}

	err := prFlow(context.Background(), repo, testService("desc"), interact, &out, "", false)
	require.NoError(t, err)
	assert.Equal(t, "origin/main", repo.branchDiffTo)
	assert.Contains(t, out.String(), "→ 1. feature/x (current)")
}

func TestPRFlowSelectionOutOfRange(t *testing.T) {
	repo := &fakeGateway{current: "a", local: []string{"a", "b"}}
	interact := &scriptedInteractor{ints: []int{7}}

	err := prFlow(context.Background(), repo, testService(""), interact, &bytes.Buffer{}, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestPRFlowNoChangesBetweenBranches(t *testing.T) {
	repo := &fakeGateway{current: "feature/x", local: []string{"feature/x", "main"}}
	var out bytes.Buffer

	err := prFlow(context.Background(), repo, testService(""), &scriptedInteractor{}, &out, "main", false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No changes between branches")
}
