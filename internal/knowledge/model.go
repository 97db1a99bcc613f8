package knowledge

// SkillCategory classifies a skill entry.
type SkillCategory string

const (
	CategoryTechnical     SkillCategory = "technical"
	CategoryTool          SkillCategory = "tool"
	CategorySoft          SkillCategory = "soft"
	CategoryCertification SkillCategory = "certification"
)

// Tier marks how heavily a required skill weighs in role matching.
type Tier string

const (
	TierCritical Tier = "critical"
	TierStandard Tier = "standard"
)

// SkillEntry is one canonical skill in the catalog. Entries with ContextWords
// are ambiguous: a mention only counts when a context word appears nearby.
type SkillEntry struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     SkillCategory `json:"category"`
	Synonyms     []string      `json:"synonyms,omitempty"`
	ContextWords []string      `json:"contextWords,omitempty"`
}

// Ambiguous reports whether the entry requires disambiguating context.
func (e SkillEntry) Ambiguous() bool {
	return len(e.ContextWords) > 0
}

// RequiredSkill is a technical skill a role calls for, with its tier.
type RequiredSkill struct {
	ID   string `json:"id"`
	Tier Tier   `json:"tier,omitempty"`
}

// Weights overrides the default technical/tools/soft combination for a role.
type Weights struct {
	Technical float64 `json:"technical"`
	Tools     float64 `json:"tools"`
	Soft      float64 `json:"soft"`
}

// RoleProfile describes one job role and its requirements.
type RoleProfile struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Skills         []RequiredSkill `json:"skills"`
	Tools          []string        `json:"tools,omitempty"`
	SoftSkills     []string        `json:"softSkills,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	Keywords       []string        `json:"keywords,omitempty"`
	Weights        *Weights        `json:"weights,omitempty"`
}
