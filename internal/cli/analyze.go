package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielss-dev/critica/internal/domain/gitrepo"
)

var analyzeStaged bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Run a comprehensive AI analysis of the git diff",
	Long: `Analyze the git diff with AI to get insights about code quality,
potential issues and bugs, security concerns, performance implications,
improvement suggestions and explanations of the changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVarP(&analyzeStaged, "staged", "s", false, "Analyze only staged changes")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	repo, err := openRepository(targetPath(args))
	if err != nil {
		return err
	}

	mode := gitrepo.DiffModeAll
	if analyzeStaged {
		mode = gitrepo.DiffModeStaged
	}
	diff, err := repo.Diff(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to get git diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		fmt.Fprintln(out, "No changes to analyze")
		return nil
	}

	svc, err := newReviewService()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "🤖 Analyzing changes with AI...")
	result, err := svc.AnalyzeDiff(ctx, diff)
	if err != nil {
		return err
	}

	renderAnalysis(out, result)
	return nil
}
