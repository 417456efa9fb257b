package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

var improveStaged bool

var improveCmd = &cobra.Command{
	Use:   "improve [path]",
	Short: "Suggest specific improvements for the git diff",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImprove,
}

func init() {
	improveCmd.Flags().BoolVarP(&improveStaged, "staged", "s", false, "Use only staged changes")
}

func runImprove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	repo, err := openRepository(targetPath(args))
	if err != nil {
		return err
	}

	mode := gitrepo.DiffModeAll
	if improveStaged {
		mode = gitrepo.DiffModeStaged
	}
	diff, err := repo.Diff(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to get git diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		fmt.Fprintln(out, "No changes to review")
		return nil
	}

	svc, err := newReviewService()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "🤖 Suggesting improvements...")
	fmt.Fprintln(out)
	echo := stdoutIsTerminal()
	suggestions, err := svc.Improvements(ctx, diff, echo)
	if err != nil {
		return err
	}
	if !echo {
		for i, suggestion := range suggestions {
			fmt.Fprintf(out, "%d. %s\n", i+1, suggestion)
		}
	}
	return nil
}
