package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danielss-dev/critica/internal/domain/analysis"
	"github.com/danielss-dev/critica/internal/infra/ai/prompt"
)

// Service implements the use-cases around one diff: comprehensive analysis,
// commit message, PR description, improvement suggestions and explanation.
// Empty diffs short-circuit without touching the network.
type Service struct {
	AI    analysis.Client
	Log   zerolog.Logger
	Clock Clock
}

// Clock abstraction so request durations are testable.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func NewService(client analysis.Client, log zerolog.Logger) *Service {
	return &Service{AI: client, Log: log, Clock: SystemClock{}}
}

// AnalyzeDiff runs the comprehensive analysis. The raw model output is JSON,
// not meant for display, so it is never echoed; the normalizer always
// produces a usable result from whatever comes back.
func (s *Service) AnalyzeDiff(ctx context.Context, diff string) (*analysis.Result, error) {
	if strings.TrimSpace(diff) == "" {
		return analysis.NewResult(), nil
	}
	response, err := s.complete(ctx, "analyze", prompt.Analysis(diff), false)
	if err != nil {
		return nil, fmt.Errorf("AI analysis failed: %w", err)
	}
	return analysis.Normalize(response), nil
}

// CommitMessage generates a conventional commit message for the diff.
func (s *Service) CommitMessage(ctx context.Context, diff string, echo bool) (string, error) {
	if strings.TrimSpace(diff) == "" {
		return "No changes to commit", nil
	}
	response, err := s.complete(ctx, "commit-message", prompt.CommitMessage(diff), echo)
	if err != nil {
		return "", fmt.Errorf("commit message generation failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// PRDescription generates a pull-request description for the diff.
func (s *Service) PRDescription(ctx context.Context, diff string, echo bool) (string, error) {
	if strings.TrimSpace(diff) == "" {
		return "No changes to describe", nil
	}
	response, err := s.complete(ctx, "pr-description", prompt.PRDescription(diff), echo)
	if err != nil {
		return "", fmt.Errorf("PR description generation failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// PRDescriptionBetween generates a pull-request description with branch
// context for a source-to-target branch diff.
func (s *Service) PRDescriptionBetween(ctx context.Context, diff, sourceBranch, targetBranch string, echo bool) (string, error) {
	if strings.TrimSpace(diff) == "" {
		return "No changes to describe", nil
	}
	p := prompt.PRDescriptionBetween(diff, sourceBranch, targetBranch)
	response, err := s.complete(ctx, "pr-description", p, echo)
	if err != nil {
		return "", fmt.Errorf("PR description generation failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// Improvements returns one suggestion per response line. Lines starting with
// "-" are treated as continuation bullets and skipped.
func (s *Service) Improvements(ctx context.Context, diff string, echo bool) ([]string, error) {
	if strings.TrimSpace(diff) == "" {
		return []string{}, nil
	}
	response, err := s.complete(ctx, "improvements", prompt.Improvements(diff), echo)
	if err != nil {
		return nil, fmt.Errorf("improvement suggestions failed: %w", err)
	}

	lines := strings.Split(response, "\n")
	suggestions := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		suggestions = append(suggestions, line)
	}
	return suggestions, nil
}

// Explain returns a prose explanation of the diff.
func (s *Service) Explain(ctx context.Context, diff string, echo bool) (string, error) {
	if strings.TrimSpace(diff) == "" {
		return "No changes to explain", nil
	}
	response, err := s.complete(ctx, "explain", prompt.Explanation(diff), echo)
	if err != nil {
		return "", fmt.Errorf("change explanation failed: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// complete sends one prompt through the inference port with a correlation id
// on the debug logs. Exactly one request is in flight at a time.
func (s *Service) complete(ctx context.Context, operation, p string, echo bool) (string, error) {
	requestID := uuid.New().String()
	start := s.Clock.Now()
	s.Log.Debug().
		Str("request_id", requestID).
		Str("operation", operation).
		Int("prompt_bytes", len(p)).
		Msg("sending inference request")

	response, err := s.AI.Complete(ctx, p, echo)
	if err != nil {
		s.Log.Debug().Str("request_id", requestID).Err(err).Msg("inference request failed")
		return "", err
	}

	s.Log.Debug().
		Str("request_id", requestID).
		Dur("duration", s.Clock.Now().Sub(start)).
		Int("response_bytes", len(response)).
		Msg("inference request complete")
	return response, nil
}
