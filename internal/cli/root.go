// Package cli is the delivery layer: cobra commands orchestrating the git
// gateway and the review service, and terminal rendering of their results.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danielss-dev/critica/internal/application/review"
	"github.com/danielss-dev/critica/internal/config"
	"github.com/danielss-dev/critica/internal/domain/gitrepo"
	aiclient "github.com/danielss-dev/critica/internal/infra/ai/openai"
	gitinfra "github.com/danielss-dev/critica/internal/infra/git"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "critica",
	Short:   "AI-powered git analysis for the terminal",
	Long: `Critica inspects your git changes with an AI model: comprehensive
diff analysis, conventional commit messages, PR descriptions, improvement
suggestions and change explanations.`,
	Version:       "2.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(analyzeCmd, commitCmd, prCmd, improveCmd, explainCmd)
}

// Execute runs the root command. Any fatal error terminates the process with
// a one-line message and a non-zero exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func targetPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// openRepository resolves the target path, failing fast when it is not
// inside a git repository.
func openRepository(path string) (*gitinfra.Repository, error) {
	if !gitinfra.IsRepository(path) {
		return nil, fmt.Errorf("%w: %s", gitrepo.ErrNotRepository, path)
	}
	return gitinfra.Open(path, gitinfra.NewExecExecutor())
}

// newReviewService validates configuration and wires the inference client.
// Config problems surface here, before any network or further git call.
func newReviewService() (*review.Service, error) {
	cfg := config.Load()
	if !cfg.AIEnabled {
		return nil, fmt.Errorf("ai features are disabled in the configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return review.NewService(aiclient.NewClient(cfg), log.Logger), nil
}

// stdoutIsTerminal gates live echo of streamed responses: raw text is only
// mirrored while it arrives when a person is watching.
func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
