package jdmatch

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"resume-insight/internal/skills"
)

// Weighting policy: must-have gaps cost twice as much as nice-to-have gaps.
// A skill is must-have when the job description emphasizes it early (first
// few sentences) or repeats it.
const (
	mustHaveWeight   = 2.0
	niceToHaveWeight = 1.0

	earlySentences     = 3
	emphasisOccurrence = 2
)

// Grade bands.
const (
	excellentCutoff = 80.0
	goodCutoff      = 60.0
	fairCutoff      = 40.0
)

// Missing splits absent job-description skills by inferred priority.
type Missing struct {
	MustHave   []string `json:"mustHave"`
	NiceToHave []string `json:"niceToHave"`
}

// Result is the resume-vs-job-description gap report.
type Result struct {
	MatchScore      float64  `json:"matchScore"`
	Grade           string   `json:"grade"`
	MustHave        []string `json:"mustHave"`
	NiceToHave      []string `json:"niceToHave"`
	Matched         []string `json:"matched"`
	Missing         Missing  `json:"missing"`
	Recommendations []string `json:"recommendations"`
}

// Match extracts skills from the job description and diffs them against the
// resume's extracted skills. A JD yielding no catalog skills is a vacuous
// match and scores 100.
func Match(resumeSkills []skills.ExtractedSkill, jdText string, extractor *skills.Extractor) Result {
	jdSkills := extractor.Extract(jdText)
	if len(jdSkills) == 0 {
		return Result{
			MatchScore:      100,
			Grade:           gradeLabel(100),
			MustHave:        []string{},
			NiceToHave:      []string{},
			Matched:         []string{},
			Missing:         Missing{MustHave: []string{}, NiceToHave: []string{}},
			Recommendations: []string{"The job description mentions no catalog skills; no skill gaps detected."},
		}
	}

	earlySet := skills.IDSet(extractor.Extract(firstSentences(jdText, earlySentences)))
	resumeSet := skills.IDSet(resumeSkills)

	var mustHave, niceToHave, matched []string
	var missingMust, missingNice []string

	for _, s := range jdSkills {
		_, early := earlySet[s.ID]
		isMust := early || s.Occurrences >= emphasisOccurrence
		_, has := resumeSet[s.ID]

		if isMust {
			mustHave = append(mustHave, s.ID)
			if !has {
				missingMust = append(missingMust, s.ID)
			}
		} else {
			niceToHave = append(niceToHave, s.ID)
			if !has {
				missingNice = append(missingNice, s.ID)
			}
		}
		if has {
			matched = append(matched, s.ID)
		}
	}

	sort.Strings(mustHave)
	sort.Strings(niceToHave)
	sort.Strings(matched)
	sort.Strings(missingMust)
	sort.Strings(missingNice)

	matchedMust := len(mustHave) - len(missingMust)
	matchedNice := len(niceToHave) - len(missingNice)
	total := float64(len(mustHave))*mustHaveWeight + float64(len(niceToHave))*niceToHaveWeight
	score := 100.0
	if total > 0 {
		score = (float64(matchedMust)*mustHaveWeight + float64(matchedNice)*niceToHaveWeight) / total * 100
	}
	score = round2(math.Min(math.Max(score, 0), 100))

	return Result{
		MatchScore:      score,
		Grade:           gradeLabel(score),
		MustHave:        emptyIfNil(mustHave),
		NiceToHave:      emptyIfNil(niceToHave),
		Matched:         emptyIfNil(matched),
		Missing:         Missing{MustHave: emptyIfNil(missingMust), NiceToHave: emptyIfNil(missingNice)},
		Recommendations: recommendations(score, missingMust, missingNice),
	}
}

func gradeLabel(score float64) string {
	switch {
	case score >= excellentCutoff:
		return "Excellent Match"
	case score >= goodCutoff:
		return "Good Match"
	case score >= fairCutoff:
		return "Fair Match"
	default:
		return "Poor Match"
	}
}

// recommendations prioritizes must-have gaps over nice-to-have gaps.
func recommendations(score float64, missingMust, missingNice []string) []string {
	out := make([]string, 0, 4)

	switch {
	case score >= excellentCutoff:
		out = append(out, "Your resume aligns well with this job description.")
	case score >= goodCutoff:
		out = append(out, "Good alignment - address the key gaps to strengthen your application.")
	case score >= fairCutoff:
		out = append(out, "Moderate alignment - significant gaps against this job description.")
	default:
		out = append(out, "Low alignment - consider whether this role matches your background.")
	}

	if len(missingMust) > 0 {
		out = append(out, fmt.Sprintf("Add these required skills: %s.", strings.Join(cap3(missingMust), ", ")))
	}
	if len(missingNice) > 0 {
		out = append(out, fmt.Sprintf("Consider adding: %s.", strings.Join(cap3(missingNice), ", ")))
	}
	if len(missingMust)+len(missingNice) > 0 {
		out = append(out, "Mirror the job description's language in your experience bullets.")
	}
	return out
}

// firstSentences returns the first n sentences of text, treating newlines as
// sentence breaks so bullet-style JDs still expose their lead requirements.
func firstSentences(text string, n int) string {
	count := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			count++
			if count >= n {
				return text[:i+1]
			}
		}
	}
	return text
}

func cap3(items []string) []string {
	if len(items) > 3 {
		return items[:3]
	}
	return items
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
