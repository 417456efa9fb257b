package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

var explainStaged bool

var explainCmd = &cobra.Command{
	Use:   "explain [path]",
	Short: "Explain what the git diff changes and why",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().BoolVarP(&explainStaged, "staged", "s", false, "Use only staged changes")
}

func runExplain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	repo, err := openRepository(targetPath(args))
	if err != nil {
		return err
	}

	mode := gitrepo.DiffModeAll
	if explainStaged {
		mode = gitrepo.DiffModeStaged
	}
	diff, err := repo.Diff(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to get git diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		fmt.Fprintln(out, "No changes to explain")
		return nil
	}

	svc, err := newReviewService()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "🤖 Explaining changes...")
	fmt.Fprintln(out)
	echo := stdoutIsTerminal()
	explanation, err := svc.Explain(ctx, diff, echo)
	if err != nil {
		return err
	}
	if !echo {
		fmt.Fprintln(out, explanation)
	}
	return nil
}
