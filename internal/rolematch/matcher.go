package rolematch

import (
	"fmt"
	"math"
	"sort"

	"resume-insight/internal/knowledge"
	"resume-insight/internal/skills"
)

// Scoring policy. Critical-tier requirements weigh double, and the overall
// score combines the three coverage groups 50/25/25 unless the role profile
// overrides the weights.
const (
	tierWeightCritical = 2.0
	tierWeightStandard = 1.0

	defaultTechnicalWeight = 0.50
	defaultToolsWeight     = 0.25
	defaultSoftWeight      = 0.25

	confidenceHighCutoff   = 70.0
	confidenceMediumCutoff = 40.0
)

// Breakdown holds per-group coverage percentages.
type Breakdown struct {
	Technical float64 `json:"technical"`
	Tools     float64 `json:"tools"`
	Soft      float64 `json:"soft"`
}

// Matched lists the required skill ids found in the resume, per group.
type Matched struct {
	Technical []string `json:"technical"`
	Tools     []string `json:"tools"`
	Soft      []string `json:"soft"`
}

// Missing splits absent requirements into critical-tier and everything.
type Missing struct {
	Critical []string `json:"critical"`
	All      []string `json:"all"`
}

// Result is the match outcome for one role profile.
type Result struct {
	Role         string    `json:"role"`
	Category     string    `json:"category"`
	OverallScore float64   `json:"overallScore"`
	Confidence   string    `json:"confidence"`
	Breakdown    Breakdown `json:"breakdown"`
	Matched      Matched   `json:"matched"`
	Missing      Missing   `json:"missing"`
	Insights     []string  `json:"insights"`
	Rank         int       `json:"rank"`
}

// Match scores the extracted skills against every role profile and returns
// the top N results ordered by score descending, ties broken by role name.
// topN <= 0 returns all roles. An empty catalog is a configuration error.
func Match(extracted []skills.ExtractedSkill, catalog *knowledge.Catalog, topN int) ([]Result, error) {
	if catalog == nil || len(catalog.Roles()) == 0 {
		return nil, fmt.Errorf("role matching: %w", knowledge.ErrEmptyCatalog)
	}

	have := skills.IDSet(extracted)

	results := make([]Result, 0, len(catalog.Roles()))
	for _, role := range catalog.Roles() {
		results = append(results, scoreRole(role, have))
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		return results[i].Role < results[j].Role
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	if topN > 0 && topN < len(results) {
		results = results[:topN]
	}
	return results, nil
}

func scoreRole(role knowledge.RoleProfile, have map[string]struct{}) Result {
	var matchedWeight, totalWeight float64
	var matchedTech, missingCritical []string
	var missingAll []string

	for _, req := range role.Skills {
		w := tierWeightStandard
		if req.Tier == knowledge.TierCritical {
			w = tierWeightCritical
		}
		totalWeight += w
		if _, ok := have[req.ID]; ok {
			matchedWeight += w
			matchedTech = append(matchedTech, req.ID)
		} else {
			missingAll = append(missingAll, req.ID)
			if req.Tier == knowledge.TierCritical {
				missingCritical = append(missingCritical, req.ID)
			}
		}
	}

	technicalScore := coverage(matchedWeight, totalWeight)
	toolScore, matchedTools, missingTools := flatCoverage(role.Tools, have)
	softScore, matchedSoft, missingSoft := flatCoverage(role.SoftSkills, have)
	missingAll = append(missingAll, missingTools...)
	missingAll = append(missingAll, missingSoft...)

	// Certifications stay out of the weighted score and the critical list,
	// but an absent one is still a missing requirement.
	for _, id := range role.Certifications {
		if _, ok := have[id]; !ok {
			missingAll = append(missingAll, id)
		}
	}

	wTech, wTools, wSoft := roleWeights(role)
	overall := clamp(technicalScore*wTech+toolScore*wTools+softScore*wSoft, 0, 100)

	sort.Strings(matchedTech)
	sort.Strings(missingCritical)
	sort.Strings(missingAll)

	result := Result{
		Role:         role.Name,
		Category:     role.Category,
		OverallScore: round2(overall),
		Confidence:   confidenceLabel(overall),
		Breakdown: Breakdown{
			Technical: round2(technicalScore),
			Tools:     round2(toolScore),
			Soft:      round2(softScore),
		},
		Matched: Matched{
			Technical: matchedTech,
			Tools:     matchedTools,
			Soft:      matchedSoft,
		},
		Missing: Missing{
			Critical: missingCritical,
			All:      missingAll,
		},
	}
	result.Insights = insights(result)
	return result
}

// flatCoverage scores an untiered requirement list at standard weight.
func flatCoverage(required []string, have map[string]struct{}) (float64, []string, []string) {
	matched := []string{}
	missing := []string{}
	for _, id := range required {
		if _, ok := have[id]; ok {
			matched = append(matched, id)
		} else {
			missing = append(missing, id)
		}
	}
	sort.Strings(matched)
	return coverage(float64(len(matched)), float64(len(required))), matched, missing
}

// coverage is the matched share as a percentage. A group with no
// requirements counts as fully covered.
func coverage(matched, total float64) float64 {
	if total <= 0 {
		return 100
	}
	return matched / total * 100
}

func roleWeights(role knowledge.RoleProfile) (float64, float64, float64) {
	if role.Weights == nil {
		return defaultTechnicalWeight, defaultToolsWeight, defaultSoftWeight
	}
	sum := role.Weights.Technical + role.Weights.Tools + role.Weights.Soft
	if sum <= 0 {
		return defaultTechnicalWeight, defaultToolsWeight, defaultSoftWeight
	}
	return role.Weights.Technical / sum, role.Weights.Tools / sum, role.Weights.Soft / sum
}

func confidenceLabel(score float64) string {
	switch {
	case score >= confidenceHighCutoff:
		return "High"
	case score >= confidenceMediumCutoff:
		return "Medium"
	default:
		return "Low"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
