package recommendations

import (
	"sort"
	"strings"
	"unicode"
)

const maxRecommendations = 7

// Generate builds deterministic recommendations from the analysis output.
// Candidates are collected per source, deduped by ID, ranked by severity,
// impact, category and title, then capped and numbered.
func Generate(input Input) []Recommendation {
	candidates := make([]Recommendation, 0, 16)
	mappers := []func(Input) []Recommendation{
		func(in Input) []Recommendation {
			return fromCriticalGaps(in.BestRole, in.CriticalGaps)
		},
		func(in Input) []Recommendation {
			return fromJDGaps(in.MissingMustHave, in.MissingNiceToHave)
		},
		func(in Input) []Recommendation {
			return fromATSPriorities(in.ATSPriorities)
		},
		func(in Input) []Recommendation {
			return fromATSSuggestions(in.ATSSuggestions)
		},
		func(in Input) []Recommendation {
			return fromSkillCount(in.SkillCount)
		},
	}
	for _, mapper := range mappers {
		candidates = append(candidates, mapper(input)...)
	}

	deduped := dedupe(candidates)
	sortRecommendations(deduped)
	if len(deduped) > maxRecommendations {
		deduped = deduped[:maxRecommendations]
	}
	for i := range deduped {
		deduped[i].Order = i + 1
	}
	return deduped
}

func severityRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "critical":
		return 3
	case "warning":
		return 2
	default:
		return 1
	}
}

func impactRank(value string) int {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func categoryRank(value string) int {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "SKILLS":
		return 5
	case "ATS":
		return 4
	case "EXPERIENCE":
		return 3
	case "STRUCTURE":
		return 2
	case "FORMATTING":
		return 1
	default:
		return 0
	}
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[string]bool, len(items))
	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, item)
	}
	return out
}

func sortRecommendations(items []Recommendation) {
	sort.Slice(items, func(i, j int) bool {
		a := items[i]
		b := items[j]
		if severityRank(a.Severity) != severityRank(b.Severity) {
			return severityRank(a.Severity) > severityRank(b.Severity)
		}
		if impactRank(a.Impact) != impactRank(b.Impact) {
			return impactRank(a.Impact) > impactRank(b.Impact)
		}
		if categoryRank(a.Category) != categoryRank(b.Category) {
			return categoryRank(a.Category) > categoryRank(b.Category)
		}
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
}

func uniqueSortedStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
