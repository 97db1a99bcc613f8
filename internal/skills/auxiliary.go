package skills

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Pattern tables for auxiliary resume signals: certifications, years of
// experience, and education. Kept declarative so they stay testable apart
// from any scoring.

var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:AWS|Azure|GCP|Google Cloud)\s+Certified(?:\s+[A-Za-z]+)+`),
	regexp.MustCompile(`(?i)\b(?:PMP|CISSP|CEH|OSCP|CCNA|CCNP|CPA|CFA|CMA|PHR|SPHR)\b`),
	regexp.MustCompile(`(?i)\b(?:SHRM-CP|SHRM-SCP)\b`),
	regexp.MustCompile(`(?i)\b(?:Security|Network|A)\+`),
	regexp.MustCompile(`(?i)\bCertified\s+Scrum\s*Master\b`),
	regexp.MustCompile(`(?i)\bSix\s+Sigma(?:\s+(?:Black|Green)\s+Belt)?`),
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(?i)experience\s+(?:of\s+)?(\d+)\+?\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:working|in)\b`),
}

var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(Bachelor|B\.?S\.?|B\.?A\.?)(?:\s+of\s+(?:Science|Arts))?\s+in\s+([A-Za-z][A-Za-z ]{2,40})`),
	regexp.MustCompile(`(?i)\b(Master|M\.?S\.?|M\.?A\.?|MBA)(?:\s+of\s+(?:Science|Arts|Business))?\s+in\s+([A-Za-z][A-Za-z ]{2,40})`),
	regexp.MustCompile(`(?i)\b(Ph\.?D\.?|Doctorate)\s+in\s+([A-Za-z][A-Za-z ]{2,40})`),
}

// Degree is one detected education credential.
type Degree struct {
	Level string `json:"level"`
	Major string `json:"major"`
}

// ExperienceYears summarizes explicit years-of-experience claims.
type ExperienceYears struct {
	Max int `json:"maxYears"`
	Min int `json:"minYears"`
	Avg int `json:"avgYears"`
}

// ExtractCertifications returns detected credentials, deduplicated and sorted.
func ExtractCertifications(text string) []string {
	seen := make(map[string]struct{})
	for _, pattern := range certificationPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			cleaned := strings.Join(strings.Fields(match), " ")
			seen[strings.ToLower(cleaned)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for cert := range seen {
		out = append(out, cert)
	}
	sort.Strings(out)
	return out
}

// ExtractExperienceYears scans for "N years of experience" style claims.
// No claims found yields the zero value.
func ExtractExperienceYears(text string) ExperienceYears {
	var years []int
	for _, pattern := range experiencePatterns {
		for _, groups := range pattern.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(groups[1]); err == nil {
				years = append(years, n)
			}
		}
	}
	if len(years) == 0 {
		return ExperienceYears{}
	}

	result := ExperienceYears{Max: years[0], Min: years[0]}
	sum := 0
	for _, n := range years {
		if n > result.Max {
			result.Max = n
		}
		if n < result.Min {
			result.Min = n
		}
		sum += n
	}
	result.Avg = sum / len(years)
	return result
}

// ExtractEducation returns detected degrees in document order, deduplicated.
func ExtractEducation(text string) []Degree {
	var out []Degree
	seen := make(map[string]struct{})
	for _, pattern := range degreePatterns {
		for _, groups := range pattern.FindAllStringSubmatch(text, -1) {
			degree := Degree{
				Level: strings.TrimSpace(groups[1]),
				Major: strings.TrimSpace(groups[2]),
			}
			key := strings.ToLower(degree.Level + "|" + degree.Major)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, degree)
		}
	}
	return out
}
