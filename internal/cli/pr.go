package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielss-dev/critica/internal/application/review"
	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

var prCmd = &cobra.Command{
	Use:   "pr [path] [target_branch]",
	Short: "Generate a PR description from a branch diff",
	Long: `Generate a comprehensive PR description based on the diff between
the current branch and a target branch. Without a target branch argument you
are prompted to select one.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPR,
}

func runPR(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 1 {
		target = args[1]
	}

	repo, err := openRepository(targetPath(args))
	if err != nil {
		return err
	}
	svc, err := newReviewService()
	if err != nil {
		return err
	}
	return prFlow(cmd.Context(), repo, svc, NewInteractor(), cmd.OutOrStdout(), target, stdoutIsTerminal())
}

// prFlow resolves the branch pair, diffs them and generates the description.
func prFlow(ctx context.Context, repo gitrepo.Gateway, svc *review.Service, interact Interactor, out io.Writer, targetBranch string, echo bool) error {
	current, err := repo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current branch: %w", err)
	}

	branches, err := repo.Branches(ctx)
	if err != nil {
		return fmt.Errorf("failed to get branches: %w", err)
	}
	// Remote listing failures are ignored; local branches are enough.
	if remote, err := repo.RemoteBranches(ctx); err == nil {
		branches = mergeBranches(branches, remote)
	}

	if len(branches) < 2 {
		fmt.Fprintln(out, "Not enough branches for comparison")
		return nil
	}

	if targetBranch == "" {
		targetBranch, err = selectTargetBranch(interact, out, branches, current)
		if err != nil {
			return err
		}
	} else {
		if !slices.Contains(branches, targetBranch) {
			return fmt.Errorf("target branch %q not found in available branches", targetBranch)
		}
		if targetBranch == current {
			return fmt.Errorf("cannot compare branch to itself")
		}
		fmt.Fprintf(out, "Using target branch: %s\n", targetBranch)
	}

	fmt.Fprintf(out, "\nComparing %s → %s\n\n", current, targetBranch)

	diff, err := repo.BranchDiff(ctx, current, targetBranch)
	if err != nil {
		return fmt.Errorf("failed to get branch diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		fmt.Fprintln(out, "No changes between branches")
		return nil
	}

	fmt.Fprintln(out, "🤖 Generating PR description...")
	fmt.Fprintln(out)
	description, err := svc.PRDescriptionBetween(ctx, diff, current, targetBranch, echo)
	if err != nil {
		return err
	}
	if !echo {
		fmt.Fprintln(out, description)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 52))
	return nil
}

// selectTargetBranch shows the numbered branch list and prompts for a pick.
func selectTargetBranch(interact Interactor, out io.Writer, branches []string, current string) (string, error) {
	fmt.Fprintln(out, "\nAvailable branches:")
	for i, branch := range branches {
		marker, suffix := "  ", ""
		if branch == current {
			marker, suffix = "→ ", " (current)"
		}
		fmt.Fprintf(out, "%s%d. %s%s\n", marker, i+1, branch, suffix)
	}
	fmt.Fprintf(out, "\nCurrent branch: %s\n", current)
	fmt.Fprintln(out, "Selecting target branch to compare against (where you want to merge into)")
	fmt.Fprintln(out)

	selection, err := interact.PromptInt(fmt.Sprintf("Enter target branch number (1-%d)", len(branches)), 1)
	if err != nil {
		return "", err
	}
	if selection < 1 || selection > len(branches) {
		return "", fmt.Errorf("selection out of range: %d", selection)
	}
	target := branches[selection-1]
	if target == current {
		return "", fmt.Errorf("cannot compare branch to itself")
	}
	return target, nil
}

func mergeBranches(local, remote []string) []string {
	seen := make(map[string]struct{}, len(local)+len(remote))
	for _, b := range local {
		seen[b] = struct{}{}
	}
	for _, b := range remote {
		seen[b] = struct{}{}
	}
	merged := make([]string, 0, len(seen))
	for b := range seen {
		merged = append(merged, b)
	}
	sort.Strings(merged)
	return merged
}
