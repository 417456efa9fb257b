package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielss-dev/critica/internal/application/review"
	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

var commitCmd = &cobra.Command{
	Use:   "commit [path]",
	Short: "Generate a conventional commit message and optionally apply it",
	Long: `Generate a conventional commit message based on the git diff.
Staged changes are used when present; otherwise all modified files are
staged first. You are asked before the commit is created and again before
the branch is pushed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommit,
}

func runCommit(cmd *cobra.Command, args []string) error {
	repo, err := openRepository(targetPath(args))
	if err != nil {
		return err
	}
	svc, err := newReviewService()
	if err != nil {
		return err
	}
	return commitFlow(cmd.Context(), repo, svc, NewInteractor(), cmd.OutOrStdout(), stdoutIsTerminal())
}

// commitFlow drives the stage/generate/confirm/commit/push sequence. A push
// failure after a successful commit leaves the commit in place.
func commitFlow(ctx context.Context, repo gitrepo.Gateway, svc *review.Service, interact Interactor, out io.Writer, echo bool) error {
	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		return err
	}

	if !staged {
		unstaged, err := repo.Diff(ctx, gitrepo.DiffModeUnstaged)
		if err != nil {
			return fmt.Errorf("failed to get git diff: %w", err)
		}
		if strings.TrimSpace(unstaged) == "" {
			fmt.Fprintln(out, "No changes to commit")
			return nil
		}

		fmt.Fprintln(out, "No staged changes found. Staging all modified files...")
		if err := repo.StageAll(ctx); err != nil {
			return err
		}
		if files, err := repo.StagedFiles(ctx); err == nil {
			fmt.Fprintf(out, "✅ Staged %d file(s) successfully!\n", len(files))
		}
	}

	diff, err := repo.Diff(ctx, gitrepo.DiffModeStaged)
	if err != nil {
		return fmt.Errorf("failed to get git diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		fmt.Fprintln(out, "No changes to commit")
		return nil
	}

	fmt.Fprintln(out, "🤖 Generating commit message...")
	fmt.Fprintln(out)
	message, err := svc.CommitMessage(ctx, diff, echo)
	if err != nil {
		return err
	}
	if !echo {
		fmt.Fprintln(out, message)
	}
	fmt.Fprintln(out)

	if !interact.PromptYesNo("Do you want to apply this commit?") {
		fmt.Fprintln(out, "Commit cancelled.")
		return nil
	}
	fmt.Fprintln(out, "Applying commit...")
	if err := repo.Commit(ctx, message); err != nil {
		return err
	}
	fmt.Fprintln(out, "✅ Commit applied successfully!")
	fmt.Fprintln(out)

	if !interact.PromptYesNo("Do you want to push the branch?") {
		fmt.Fprintln(out, "Push cancelled.")
		return nil
	}
	fmt.Fprintln(out, "Pushing branch...")
	if err := repo.Push(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "✅ Branch pushed successfully!")
	return nil
}
