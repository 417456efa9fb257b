// Package prompt holds the fixed prompt templates, one per operation kind.
// Each template embeds the diff text (and branch names, where applicable) and
// instructs the model on the expected output shape.
package prompt

import "fmt"

// Analysis asks for the structured nine-field JSON the normalizer expects.
func Analysis(diff string) string {
	return fmt.Sprintf(`Analyze the following git diff and provide a comprehensive analysis in JSON format.

IMPORTANT: Return ONLY a single JSON object with these exact fields:
- summary: plain text string (2-3 sentences) - NO NESTED JSON
- improvements: array of strings (improvement suggestions)
- issues: array of strings (potential problems)
- explanations: array of strings (explanations of changes)
- commit_message: plain text string (conventional commit format)
- pr_description: plain text string (multi-line description)
- code_quality: plain text string (quality assessment)
- security_notes: array of strings (security observations)
- performance_notes: array of strings (performance observations)

Focus your analysis on:
1. Code quality and best practices
2. Potential bugs or issues
3. Security concerns
4. Performance implications
5. Code improvements and suggestions
6. Explanations of what changed and why

Git diff:
%s

RESPOND ONLY WITH VALID JSON - no markdown, no code blocks, no extra text. Each string field must be plain text, never JSON.`, diff)
}

// CommitMessage asks for a conventional commit message and nothing else.
func CommitMessage(diff string) string {
	return fmt.Sprintf(`Generate a conventional commit message for the following git diff. Use the format:
<type>[optional scope]: <description>

[optional body]

[optional footer(s)]

Types: feat, fix, docs, style, refactor, perf, test, chore, build, ci, revert

Git diff:
%s

Respond only with the commit message, no additional text.`, diff)
}

// PRDescription asks for a full pull-request description.
func PRDescription(diff string) string {
	return fmt.Sprintf(`Generate a comprehensive PR description for the following git diff. Include:

1. Summary of changes
2. What was changed and why
3. Testing considerations
4. Breaking changes (if any)
5. Screenshots or examples (if applicable)

Git diff:
%s

Respond with a well-formatted PR description.`, diff)
}

// PRDescriptionBetween is the branch-aware variant of PRDescription.
func PRDescriptionBetween(diff, sourceBranch, targetBranch string) string {
	return fmt.Sprintf(`Generate a comprehensive PR description for a pull request from branch "%s" to "%s". Include:

1. Summary of changes
2. What was changed and why
3. Testing considerations
4. Breaking changes (if any)
5. Screenshots or examples (if applicable)
6. Branch context and merge considerations

Git diff from %s to %s:
%s

Respond with a well-formatted PR description that includes the branch context.`, sourceBranch, targetBranch, sourceBranch, targetBranch, diff)
}

// Improvements asks for one actionable suggestion per line.
func Improvements(diff string) string {
	return fmt.Sprintf(`Analyze the following git diff and provide specific, actionable improvement suggestions. Focus on:

1. Code quality and readability
2. Performance optimizations
3. Security improvements
4. Best practices adherence
5. Error handling
6. Documentation needs

Git diff:
%s

Provide each suggestion as a separate line, starting with a brief description.`, diff)
}

// Explanation asks for a prose walkthrough of the changes.
func Explanation(diff string) string {
	return fmt.Sprintf(`Explain the following git diff changes in detail. Provide:

1. What each change does
2. Why the change was made (if apparent)
3. Impact of the changes
4. Any potential side effects
5. How the changes relate to each other

Git diff:
%s

Provide a clear, comprehensive explanation.`, diff)
}
