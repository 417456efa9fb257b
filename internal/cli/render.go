package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielss-dev/critica/internal/domain/analysis"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	issueStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	improveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	securityStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	perfStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

// renderAnalysis writes the sectioned analysis report. Empty sections are
// skipped entirely.
func renderAnalysis(out io.Writer, result *analysis.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render("📊 Analysis Results"))
	fmt.Fprintln(out, strings.Repeat("─", 52))

	if result.Summary != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("📝 Summary:"))
		fmt.Fprintln(out, result.Summary)
	}
	if result.CodeQuality != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("🏆 Code Quality:"))
		fmt.Fprintln(out, result.CodeQuality)
	}

	renderList(out, issueStyle.Render("⚠️  Issues Found:"), result.Issues)
	renderList(out, improveStyle.Render("💡 Improvement Suggestions:"), result.Improvements)
	renderList(out, securityStyle.Render("🔒 Security Notes:"), result.SecurityNotes)
	renderList(out, perfStyle.Render("⚡ Performance Notes:"), result.PerformanceNotes)

	renderBlock(out, "📝 Suggested Commit Message:", result.CommitMessage)
	renderBlock(out, "📋 PR Description:", result.PRDescription)
}

func renderList(out io.Writer, header string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, header)
	for i, item := range items {
		fmt.Fprintf(out, "  %d. %s\n", i+1, item)
	}
}

func renderBlock(out io.Writer, header, text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(header))
	fmt.Fprintln(out, strings.Repeat("─", 32))
	fmt.Fprintln(out, text)
	fmt.Fprintln(out, strings.Repeat("─", 32))
}
