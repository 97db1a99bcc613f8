package recommendations

// Recommendation represents a deterministic suggestion derived from analysis results.
type Recommendation struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Why      string `json:"why"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Order    int    `json:"order"`
}

// Input is the normalized analysis data the engine draws from.
type Input struct {
	ATSPriorities     []string
	ATSSuggestions    []string
	BestRole          string
	CriticalGaps      []string
	MissingMustHave   []string
	MissingNiceToHave []string
	SkillCount        int
}
