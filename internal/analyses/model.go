package analyses

import (
	"time"

	"resume-insight/internal/analyses/recommendations"
	"resume-insight/internal/ats"
	"resume-insight/internal/jdmatch"
	"resume-insight/internal/rolematch"
	"resume-insight/internal/skills"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Analysis is one stored analysis run. The pipeline is synchronous, so a row
// is either completed with a result or failed.
type Analysis struct {
	ID             string
	DocumentID     string
	UserID         string
	Status         string
	JobDescription string
	Result         *Report
	CompletedAt    *time.Time
	CreatedAt      time.Time
}

// Report aggregates every analyzer's output for one resume.
type Report struct {
	HealthScore     float64                          `json:"healthScore"`
	ATS             ats.Result                       `json:"ats"`
	Skills          SkillsReport                     `json:"skills"`
	Roles           RolesReport                      `json:"roles"`
	JobMatch        *jdmatch.Result                  `json:"jobMatch,omitempty"`
	Insights        []string                         `json:"insights"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
}

// SkillsReport covers detected skills plus the auxiliary signals pulled from
// the same text.
type SkillsReport struct {
	Extracted       []skills.ExtractedSkill `json:"extracted"`
	ByCategory      map[string][]string     `json:"byCategory"`
	Certifications  []string                `json:"certifications"`
	ExperienceYears *skills.ExperienceYears `json:"experienceYears,omitempty"`
	Education       []skills.Degree         `json:"education"`
}

// RoleScore is a compact role/score pair for per-category listings.
type RoleScore struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

// RolesReport carries the ranked role matches.
type RolesReport struct {
	TopMatches []rolematch.Result     `json:"topMatches"`
	BestFit    *rolematch.Result      `json:"bestFit,omitempty"`
	ByCategory map[string][]RoleScore `json:"byCategory"`
}
