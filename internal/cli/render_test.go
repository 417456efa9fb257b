package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielss-dev/critica/internal/domain/analysis"
)

func TestRenderAnalysisFullResult(t *testing.T) {
	result := &analysis.Result{
		Summary:          "Adds retry logic to the client.",
		CodeQuality:      "Good",
		Issues:           []string{"No backoff cap"},
		Improvements:     []string{"Add jitter"},
		Explanations:     []string{"Retries wrap the send call"},
		SecurityNotes:    []string{"Token is never logged"},
		PerformanceNotes: []string{"One extra allocation per retry"},
		CommitMessage:    "feat(client): add retries",
		PRDescription:    "This PR adds retry logic.",
	}

	var out bytes.Buffer
	renderAnalysis(&out, result)
	text := out.String()

	assert.Contains(t, text, "📊 Analysis Results")
	assert.Contains(t, text, "📝 Summary:")
	assert.Contains(t, text, "Adds retry logic to the client.")
	assert.Contains(t, text, "🏆 Code Quality:")
	assert.Contains(t, text, "  1. No backoff cap")
	assert.Contains(t, text, "  1. Add jitter")
	assert.Contains(t, text, "  1. Token is never logged")
	assert.Contains(t, text, "feat(client): add retries")
	assert.Contains(t, text, "This PR adds retry logic.")
}

func TestRenderAnalysisSkipsEmptySections(t *testing.T) {
	var out bytes.Buffer
	renderAnalysis(&out, analysis.NewResult())
	text := out.String()

	assert.Contains(t, text, "📊 Analysis Results")
	assert.NotContains(t, text, "Summary:")
	assert.NotContains(t, text, "Issues Found")
	assert.NotContains(t, text, "Commit Message")
}
