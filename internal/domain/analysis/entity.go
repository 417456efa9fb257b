package analysis

// Result holds the structured outcome of one diff analysis request.
// List fields are always non-nil; after normalization they contain only
// non-empty, already-sanitized strings, in model output order.
type Result struct {
	Summary          string   `json:"summary"`
	Improvements     []string `json:"improvements"`
	Issues           []string `json:"issues"`
	Explanations     []string `json:"explanations"`
	CommitMessage    string   `json:"commit_message"`
	PRDescription    string   `json:"pr_description"`
	CodeQuality      string   `json:"code_quality"`
	SecurityNotes    []string `json:"security_notes"`
	PerformanceNotes []string `json:"performance_notes"`
}

// NewResult returns an empty result with every list field initialised.
func NewResult() *Result {
	return &Result{
		Improvements:     []string{},
		Issues:           []string{},
		Explanations:     []string{},
		SecurityNotes:    []string{},
		PerformanceNotes: []string{},
	}
}
