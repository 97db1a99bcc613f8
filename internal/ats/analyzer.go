package ats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"resume-insight/internal/skills"
)

// Category maxima sum to 100, so the overall score is bounded by
// construction.
const (
	maxSections    = 25.0
	maxKeywords    = 20.0
	maxActionVerbs = 15.0
	maxMetrics     = 20.0
	maxFormatting  = 10.0
	maxContact     = 10.0
)

// Grade cutoffs.
const (
	gradeACutoff = 85.0
	gradeBCutoff = 70.0
	gradeCCutoff = 55.0
	gradeDCutoff = 40.0
)

// Per-category target share: at or above counts as a strength, below earns a
// suggestion.
const targetShare = 0.7

const maxPriorityImprovements = 3

// Breakdown is the fixed-shape per-category score record.
type Breakdown struct {
	Sections    float64 `json:"sections"`
	Keywords    float64 `json:"keywords"`
	ActionVerbs float64 `json:"actionVerbs"`
	Metrics     float64 `json:"metrics"`
	Formatting  float64 `json:"formatting"`
	Contact     float64 `json:"contact"`
}

// Result is the full ATS compatibility report.
type Result struct {
	OverallScore         float64         `json:"overallScore"`
	Grade                string          `json:"grade"`
	Feedback             string          `json:"feedback"`
	Breakdown            Breakdown       `json:"breakdown"`
	SectionsDetected     map[string]bool `json:"sectionsDetected"`
	ActionVerbCount      int             `json:"actionVerbCount"`
	MetricCount          int             `json:"metricCount"`
	WordCount            int             `json:"wordCount"`
	Suggestions          []string        `json:"suggestions"`
	Strengths            []string        `json:"strengths"`
	PriorityImprovements []string        `json:"priorityImprovements"`
}

// Analyze scores the raw resume text across the six fixed categories. Empty
// or whitespace-only text yields zero scores and grade F, never an error.
func Analyze(rawText string, extracted []skills.ExtractedSkill) Result {
	if strings.TrimSpace(rawText) == "" {
		return Result{
			Grade:                "F",
			Feedback:             "No resume content to analyze. Provide resume text to get an ATS score.",
			SectionsDetected:     map[string]bool{},
			Suggestions:          []string{"Add resume content: the document appears to be empty."},
			Strengths:            []string{},
			PriorityImprovements: priorities(categoryShares(Breakdown{})),
		}
	}

	lower := strings.ToLower(rawText)
	words := strings.Fields(rawText)
	sections := detectSections(lower)

	var suggestions []string
	breakdown := Breakdown{}

	breakdown.Sections, suggestions = scoreSections(sections, suggestions)
	breakdown.Keywords, suggestions = scoreKeywords(len(extracted), len(words), suggestions)

	var verbCount, metricCount int
	breakdown.ActionVerbs, verbCount, suggestions = scoreActionVerbs(lower, suggestions)
	breakdown.Metrics, metricCount, suggestions = scoreMetrics(rawText, suggestions)
	breakdown.Formatting, suggestions = scoreFormatting(rawText, len(words), suggestions)
	breakdown.Contact, suggestions = scoreContact(rawText, lower, suggestions)

	overall := round2(breakdown.Sections + breakdown.Keywords + breakdown.ActionVerbs +
		breakdown.Metrics + breakdown.Formatting + breakdown.Contact)

	grade, feedback := gradeAndFeedback(overall)
	shares := categoryShares(breakdown)

	return Result{
		OverallScore:         overall,
		Grade:                grade,
		Feedback:             feedback,
		Breakdown:            breakdown,
		SectionsDetected:     sections,
		ActionVerbCount:      verbCount,
		MetricCount:          metricCount,
		WordCount:            len(words),
		Suggestions:          suggestions,
		Strengths:            strengths(shares),
		PriorityImprovements: priorities(shares),
	}
}

func detectSections(lower string) map[string]bool {
	found := make(map[string]bool, len(sectionKeywords))
	for section, keywords := range sectionKeywords {
		present := false
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				present = true
				break
			}
		}
		found[section] = present
	}
	return found
}

func scoreSections(sections map[string]bool, suggestions []string) (float64, []string) {
	requiredPresent := 0
	for _, s := range requiredSections {
		if sections[s] {
			requiredPresent++
		} else {
			suggestions = append(suggestions, fmt.Sprintf("Add a %q section - required by most ATS systems.", s))
		}
	}
	recommendedPresent := 0
	for _, s := range recommendedSections {
		if sections[s] {
			recommendedPresent++
		} else {
			suggestions = append(suggestions, fmt.Sprintf("Add a %q section to strengthen your resume.", s))
		}
	}

	score := float64(requiredPresent)/float64(len(requiredSections))*15 +
		float64(recommendedPresent)/float64(len(recommendedSections))*10
	return round2(score), suggestions
}

func scoreKeywords(skillCount, wordCount int, suggestions []string) (float64, []string) {
	score := 0.0

	switch {
	case skillCount >= 15:
		score += 10
	case skillCount >= 10:
		score += 7
	case skillCount >= 5:
		score += 4
	default:
		suggestions = append(suggestions, "Add more relevant technical skills - aim for 10-15 skills.")
	}

	if wordCount > 0 {
		// Diminishing returns above the density target: keyword stuffing
		// cannot push the sub-score past its band.
		density := float64(skillCount*3) / float64(wordCount)
		switch {
		case density >= 0.05:
			score += 10
		case density >= 0.03:
			score += 7
		case density >= 0.01:
			score += 4
		default:
			suggestions = append(suggestions, "Increase keyword density by mentioning skills in context.")
		}
	}

	return clampScore(score, maxKeywords), suggestions
}

func scoreActionVerbs(lower string, suggestions []string) (float64, int, []string) {
	uniqueVerbs := 0
	totalUsage := 0
	for _, verb := range actionVerbs {
		count := countWord(lower, verb)
		if count > 0 {
			uniqueVerbs++
			totalUsage += count
		}
	}

	score := 0.0
	switch {
	case uniqueVerbs >= 10:
		score += 7
	case uniqueVerbs >= 6:
		score += 5
	case uniqueVerbs >= 3:
		score += 3
	default:
		suggestions = append(suggestions, "Use more diverse action verbs - aim for 10+ different verbs.")
	}

	switch {
	case totalUsage >= 15:
		score += 8
	case totalUsage >= 10:
		score += 5
	case totalUsage >= 5:
		score += 3
	default:
		suggestions = append(suggestions, "Start more bullet points with strong action verbs.")
	}

	for _, phrase := range weakPhrases {
		if strings.Contains(lower, phrase) {
			suggestions = append(suggestions, fmt.Sprintf("Replace %q with action verbs like 'Led', 'Developed', 'Managed'.", phrase))
		}
	}

	return clampScore(score, maxActionVerbs), totalUsage, suggestions
}

func scoreMetrics(rawText string, suggestions []string) (float64, int, []string) {
	metricCount := 0
	hasPercent, hasCurrency := false, false
	for _, pattern := range metricPatterns {
		matches := pattern.FindAllString(rawText, -1)
		metricCount += len(matches)
		for _, m := range matches {
			if strings.Contains(m, "%") {
				hasPercent = true
			}
			if strings.Contains(m, "$") {
				hasCurrency = true
			}
		}
	}

	score := 0.0
	switch {
	case metricCount >= 8:
		score += 15
	case metricCount >= 5:
		score += 10
	case metricCount >= 3:
		score += 6
	case metricCount >= 1:
		score += 3
	default:
		suggestions = append(suggestions, "Add quantifiable metrics to demonstrate impact, e.g. '20% improvement', '1000+ users'.")
	}

	quality := 0
	if hasPercent {
		quality++
	}
	if hasCurrency {
		quality++
	}
	if metricCount > 0 {
		quality++
	}
	score += float64(quality) / 3 * 5

	if metricCount > 0 && !hasPercent {
		suggestions = append(suggestions, "Include percentage improvements, e.g. 'reduced build time by 30%'.")
	}

	return clampScore(score, maxMetrics), metricCount, suggestions
}

func scoreFormatting(rawText string, wordCount int, suggestions []string) (float64, []string) {
	score := 0.0

	switch {
	case wordCount >= 400 && wordCount <= 1000:
		score += 5
	case wordCount >= 300 && wordCount <= 1200:
		score += 3
	case wordCount < 300:
		suggestions = append(suggestions, "Resume seems short - add more detail about projects and experience.")
	default:
		suggestions = append(suggestions, "Consider condensing - resumes read best at 400-1000 words.")
	}

	if bulletPattern.MatchString(rawText) {
		score += 5
	} else {
		suggestions = append(suggestions, "Use bullet points for better readability and ATS parsing.")
	}

	return clampScore(score, maxFormatting), suggestions
}

func scoreContact(rawText, lower string, suggestions []string) (float64, []string) {
	score := 0.0

	if emailPattern.MatchString(rawText) {
		score += 3
	} else {
		suggestions = append(suggestions, "Include an email address in the contact section.")
	}
	if phonePattern.MatchString(rawText) {
		score += 2
	} else {
		suggestions = append(suggestions, "Include a phone number for contact.")
	}
	if linkedinPattern.MatchString(lower) {
		score += 3
	} else {
		suggestions = append(suggestions, "Add a LinkedIn profile URL.")
	}
	if portfolioPatt.MatchString(lower) {
		score += 2
	} else {
		suggestions = append(suggestions, "Include a GitHub or portfolio link to showcase work.")
	}

	return clampScore(score, maxContact), suggestions
}

func gradeAndFeedback(overall float64) (string, string) {
	switch {
	case overall >= gradeACutoff:
		return "A", "Excellent. Your resume should pass most ATS systems."
	case overall >= gradeBCutoff:
		return "B", "Good. Address key suggestions to improve ATS compatibility."
	case overall >= gradeCCutoff:
		return "C", "Fair. Important improvements needed for reliable ATS parsing."
	case overall >= gradeDCutoff:
		return "D", "Below average. Significant revisions recommended."
	default:
		return "F", "Critical issues detected. A restructure is recommended before applying."
	}
}

type categoryShare struct {
	name  string
	share float64
}

func categoryShares(b Breakdown) []categoryShare {
	return []categoryShare{
		{"sections", b.Sections / maxSections},
		{"keywords", b.Keywords / maxKeywords},
		{"action_verbs", b.ActionVerbs / maxActionVerbs},
		{"metrics", b.Metrics / maxMetrics},
		{"formatting", b.Formatting / maxFormatting},
		{"contact", b.Contact / maxContact},
	}
}

func strengths(shares []categoryShare) []string {
	out := []string{}
	for _, cs := range shares {
		if cs.share >= targetShare {
			out = append(out, fmt.Sprintf("%s: strong (%.0f%%)", cs.name, cs.share*100))
		}
	}
	return out
}

// priorities returns the weakest categories relative to their maxima,
// ascending, capped at maxPriorityImprovements.
func priorities(shares []categoryShare) []string {
	below := make([]categoryShare, 0, len(shares))
	for _, cs := range shares {
		if cs.share < targetShare {
			below = append(below, cs)
		}
	}
	sort.Slice(below, func(i, j int) bool {
		if below[i].share != below[j].share {
			return below[i].share < below[j].share
		}
		return below[i].name < below[j].name
	})
	if len(below) > maxPriorityImprovements {
		below = below[:maxPriorityImprovements]
	}
	out := make([]string, 0, len(below))
	for _, cs := range below {
		out = append(out, cs.name)
	}
	return out
}

// countWord counts whole-word occurrences of w in lower-cased text.
func countWord(lower, w string) int {
	count := 0
	from := 0
	for {
		idx := strings.Index(lower[from:], w)
		if idx < 0 {
			return count
		}
		start := from + idx
		end := start + len(w)
		from = start + 1
		if start > 0 && isLetter(lower[start-1]) {
			continue
		}
		if end < len(lower) && isLetter(lower[end]) {
			continue
		}
		count++
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func clampScore(v, max float64) float64 {
	return round2(math.Min(math.Max(v, 0), max))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
