package ats

import "regexp"

// Declarative heuristic tables. The scoring logic in analyzer.go consumes
// these; keeping them data-only lets the heuristics evolve without touching
// the score math.

var sectionKeywords = map[string][]string{
	"summary":        {"summary", "profile", "objective", "about"},
	"experience":     {"experience", "work history", "employment", "professional experience"},
	"education":      {"education", "academic", "degree", "university", "college"},
	"skills":         {"skills", "technical skills", "core competencies", "expertise"},
	"projects":       {"projects", "portfolio", "key projects"},
	"certifications": {"certifications", "licenses", "credentials"},
}

var requiredSections = []string{"experience", "education", "skills"}
var recommendedSections = []string{"summary", "projects", "certifications"}

var actionVerbs = []string{
	// leadership
	"led", "managed", "directed", "supervised", "coordinated", "headed", "spearheaded",
	// achievement
	"achieved", "accomplished", "delivered", "exceeded", "surpassed", "completed",
	// creation
	"built", "created", "developed", "designed", "established", "founded", "launched",
	// improvement
	"improved", "optimized", "enhanced", "streamlined", "reduced", "increased",
	// technical
	"implemented", "engineered", "deployed", "integrated", "migrated", "automated",
	// analysis
	"analyzed", "evaluated", "assessed", "researched", "investigated", "identified",
	// collaboration
	"collaborated", "partnered", "contributed", "facilitated",
}

var weakPhrases = []string{"responsible for", "duties include", "tasks include"}

var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+(?:\.\d+)?%`),
	regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d+)?\s*(?:million|billion|thousand|[MBK])?`),
	regexp.MustCompile(`(?i)\d+(?:,\d{3})*\+?\s+(?:users|customers|clients|projects|features|products|engineers|people|requests|transactions)`),
	regexp.MustCompile(`(?i)(?:team|group)\s+of\s+\d+`),
	regexp.MustCompile(`(?i)(?:increased|decreased|improved|reduced|grew|cut|saved)\s+(?:\w+\s+){0,3}by\s+\d+`),
}

var bulletPattern = regexp.MustCompile(`(?m)^\s*[-•►→*]`)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin`)
	portfolioPatt   = regexp.MustCompile(`(?i)github|portfolio`)
)
