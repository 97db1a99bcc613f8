package rolematch

import "fmt"

// Insight thresholds. Text selection is a pure function of the score
// breakdown so identical inputs always produce identical output.
const (
	excellentCutoff = 80.0
	goodCutoff      = 60.0
	moderateCutoff  = 40.0

	weakGroupCutoff   = 50.0
	strongGroupCutoff = 70.0
)

func insights(r Result) []string {
	out := make([]string, 0, 4)

	switch {
	case r.OverallScore >= excellentCutoff:
		out = append(out, fmt.Sprintf("Excellent match for %s.", r.Role))
	case r.OverallScore >= goodCutoff:
		out = append(out, fmt.Sprintf("Good match for %s.", r.Role))
	case r.OverallScore >= moderateCutoff:
		out = append(out, "Moderate match - significant skill development needed.")
	default:
		out = append(out, "Low match - consider building foundational skills first.")
	}

	if len(r.Missing.Critical) == 0 {
		out = append(out, "All critical requirements are covered.")
	} else {
		out = append(out, fmt.Sprintf("Missing %d critical skill(s) for this role.", len(r.Missing.Critical)))
	}

	if r.Breakdown.Technical < weakGroupCutoff {
		out = append(out, "Focus on building core technical skills for this role.")
	} else if r.Breakdown.Technical >= strongGroupCutoff {
		out = append(out, "Strong technical foundation for this role.")
	}

	if r.Breakdown.Tools < weakGroupCutoff {
		out = append(out, "Gain hands-on experience with industry-standard tools.")
	} else if r.Breakdown.Tools >= strongGroupCutoff {
		out = append(out, "Good familiarity with relevant tools and technologies.")
	}

	return out
}
