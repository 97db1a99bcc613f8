package recommendations

import (
	"fmt"
	"strings"
)

const minHealthySkillCount = 10

// atsPriorityDetails maps the analyzer's category names to ready-made
// recommendations. Unknown categories fall through to a generic entry.
var atsPriorityDetails = map[string]Recommendation{
	"sections": {
		Category: "STRUCTURE",
		Title:    "Add the standard resume sections",
		Why:      "Parsers look for experience, education and skills headings to segment the document.",
		Action:   "Add clearly labeled Experience, Education and Skills sections.",
	},
	"keywords": {
		Category: "ATS",
		Title:    "Increase relevant keyword coverage",
		Why:      "Keyword matches drive most automated screening scores.",
		Action:   "Mention 10-15 relevant skills, both in a skills list and inside experience bullets.",
	},
	"action_verbs": {
		Category: "EXPERIENCE",
		Title:    "Lead bullets with action verbs",
		Why:      "Strong verbs read as accomplishments rather than duties.",
		Action:   "Start bullets with verbs like Led, Built, Improved instead of passive phrasing.",
	},
	"metrics": {
		Category: "EXPERIENCE",
		Title:    "Quantify your impact",
		Why:      "Numbers make achievements concrete and comparable.",
		Action:   "Add percentages, dollar amounts or counts to your strongest bullets.",
	},
	"formatting": {
		Category: "FORMATTING",
		Title:    "Tighten the document format",
		Why:      "Length and layout problems hurt both parsers and human readers.",
		Action:   "Use bullet points and keep the resume between 400 and 1000 words.",
	},
	"contact": {
		Category: "STRUCTURE",
		Title:    "Complete your contact details",
		Why:      "Missing contact channels make follow-up harder and look unfinished.",
		Action:   "Include an email, phone number, LinkedIn URL and a portfolio or GitHub link.",
	},
}

func fromATSPriorities(priorities []string) []Recommendation {
	out := make([]Recommendation, 0, len(priorities))
	for _, p := range priorities {
		key := strings.ToLower(strings.TrimSpace(p))
		if key == "" {
			continue
		}
		rec, ok := atsPriorityDetails[key]
		if !ok {
			rec = Recommendation{
				Category: "ATS",
				Title:    "Improve " + key,
				Why:      "This category scored well below its target.",
				Action:   "Review the " + key + " suggestions in the compatibility report.",
			}
		}
		rec.ID = "ATS_PRIORITY_" + slugify(key)
		rec.Severity = "warning"
		rec.Impact = "high"
		out = append(out, rec)
	}
	return out
}

func fromATSSuggestions(suggestions []string) []Recommendation {
	out := make([]Recommendation, 0, len(suggestions))
	for _, s := range uniqueSortedStrings(suggestions) {
		out = append(out, Recommendation{
			ID:       "ATS_" + slugify(s),
			Category: "ATS",
			Severity: "info",
			Title:    s,
			Why:      "Raises the compatibility score for automated screening.",
			Action:   s,
			Impact:   "medium",
		})
	}
	return out
}

func fromCriticalGaps(bestRole string, gaps []string) []Recommendation {
	items := uniqueSortedStrings(gaps)
	if len(items) == 0 {
		return nil
	}
	role := strings.TrimSpace(bestRole)
	if role == "" {
		role = "your best-fit role"
	}
	return []Recommendation{
		{
			ID:       "ROLE_CRITICAL_GAPS",
			Category: "SKILLS",
			Severity: "critical",
			Title:    fmt.Sprintf("Close critical skill gaps for %s", role),
			Why:      fmt.Sprintf("These skills carry double weight when matching against %s.", role),
			Action:   "Add or gain experience with: " + strings.Join(capItems(items, 5), ", ") + ".",
			Impact:   "high",
		},
	}
}

func fromJDGaps(missingMust, missingNice []string) []Recommendation {
	var out []Recommendation
	if items := uniqueSortedStrings(missingMust); len(items) > 0 {
		out = append(out, Recommendation{
			ID:       "JD_MISSING_MUST_HAVE",
			Category: "SKILLS",
			Severity: "critical",
			Title:    "Cover the job's required skills",
			Why:      "The job description emphasizes these skills and screeners will filter on them.",
			Action:   "Address these required skills: " + strings.Join(capItems(items, 5), ", ") + ".",
			Impact:   "high",
		})
	}
	if items := uniqueSortedStrings(missingNice); len(items) > 0 {
		out = append(out, Recommendation{
			ID:       "JD_MISSING_NICE_TO_HAVE",
			Category: "SKILLS",
			Severity: "info",
			Title:    "Consider the job's nice-to-have skills",
			Why:      "Secondary skills differentiate otherwise similar candidates.",
			Action:   "If you have them, mention: " + strings.Join(capItems(items, 5), ", ") + ".",
			Impact:   "medium",
		})
	}
	return out
}

func fromSkillCount(count int) []Recommendation {
	if count >= minHealthySkillCount {
		return nil
	}
	return []Recommendation{
		{
			ID:       "SKILLS_BROADEN",
			Category: "SKILLS",
			Severity: "warning",
			Title:    "Broaden your skills section",
			Why:      fmt.Sprintf("Only %d recognizable skills were found; strong resumes surface 10 or more.", count),
			Action:   "List the tools, languages and platforms you have worked with, using their common names.",
			Impact:   "medium",
		},
	}
}

func capItems(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
