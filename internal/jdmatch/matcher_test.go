package jdmatch

import (
	"reflect"
	"strings"
	"testing"

	"resume-insight/internal/knowledge"
	"resume-insight/internal/skills"
)

func newExtractor(t *testing.T) *skills.Extractor {
	t.Helper()
	catalog, err := knowledge.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return skills.NewExtractor(catalog)
}

func contains(items []string, want string) bool {
	for _, s := range items {
		if s == want {
			return true
		}
	}
	return false
}

func TestMatch_VacuousJD(t *testing.T) {
	e := newExtractor(t)
	got := Match(nil, "We are a friendly company that values growth.", e)
	if got.MatchScore != 100 {
		t.Fatalf("expected vacuous score 100, got %v", got.MatchScore)
	}
	if len(got.Missing.MustHave) != 0 || len(got.Missing.NiceToHave) != 0 {
		t.Fatalf("expected no missing skills, got %+v", got.Missing)
	}
}

func TestMatch_EarlyEmphasisScenario(t *testing.T) {
	e := newExtractor(t)
	jd := "We are hiring a data engineer skilled in Python and Spark.\n" +
		"You will design pipelines processing large datasets daily.\n" +
		"The team values curiosity and ownership.\n" +
		"Familiarity with Tableau is a plus."

	resume := []skills.ExtractedSkill{{ID: "python", Confidence: 0.8, Occurrences: 2}}
	got := Match(resume, jd, e)

	if !contains(got.Missing.MustHave, "spark") {
		t.Fatalf("expected spark in missing must-have: %+v", got.Missing)
	}
	if !contains(got.Missing.NiceToHave, "tableau") {
		t.Fatalf("expected tableau in missing nice-to-have: %+v", got.Missing)
	}
	if !contains(got.Matched, "python") {
		t.Fatalf("expected python matched: %v", got.Matched)
	}
	if got.MatchScore <= 0 || got.MatchScore >= 100 {
		t.Fatalf("expected partial score, got %v", got.MatchScore)
	}
}

func TestMatch_FrequencyPromotesToMustHave(t *testing.T) {
	e := newExtractor(t)
	jd := "About the role and our mission and values and team culture here.\n" +
		"Some responsibilities follow for the position below now.\n" +
		"More context about the day-to-day work follows here.\n" +
		"You will work with Kubernetes daily. Kubernetes experience matters."

	got := Match(nil, jd, e)
	if !contains(got.MustHave, "kubernetes") {
		t.Fatalf("repeated skill should be must-have: %+v", got)
	}
}

func TestMatch_WeightedScore(t *testing.T) {
	e := newExtractor(t)
	jd := "Requires Python and Spark.\nSecond sentence here.\nThird sentence here.\nTableau is a plus."

	full := Match([]skills.ExtractedSkill{
		{ID: "python"}, {ID: "spark"}, {ID: "tableau"},
	}, jd, e)
	if full.MatchScore != 100 {
		t.Fatalf("full coverage should score 100, got %v", full.MatchScore)
	}
	if full.Grade != "Excellent Match" {
		t.Fatalf("unexpected grade %q", full.Grade)
	}

	// Covering only the nice-to-have scores below covering one must-have.
	onlyNice := Match([]skills.ExtractedSkill{{ID: "tableau"}}, jd, e)
	onlyMust := Match([]skills.ExtractedSkill{{ID: "python"}}, jd, e)
	if onlyNice.MatchScore >= onlyMust.MatchScore {
		t.Fatalf("must-have coverage %v should outscore nice-to-have coverage %v",
			onlyMust.MatchScore, onlyNice.MatchScore)
	}
}

func TestMatch_RecommendationsPrioritizeMustHave(t *testing.T) {
	e := newExtractor(t)
	jd := "Requires Python and Spark.\nSecond sentence here.\nThird sentence here.\nTableau is a plus."

	got := Match(nil, jd, e)
	if len(got.Recommendations) < 2 {
		t.Fatalf("expected recommendations, got %v", got.Recommendations)
	}

	mustIdx, niceIdx := -1, -1
	for i, r := range got.Recommendations {
		if mustIdx < 0 && strings.Contains(r, "required skills") {
			mustIdx = i
		}
		if niceIdx < 0 && strings.Contains(r, "Consider adding") {
			niceIdx = i
		}
	}
	if mustIdx < 0 || niceIdx < 0 || mustIdx > niceIdx {
		t.Fatalf("must-have recommendation should precede nice-to-have: %v", got.Recommendations)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	e := newExtractor(t)
	jd := "Requires Python, SQL and Docker.\nKubernetes is a plus.\nThird sentence.\nFourth sentence."
	resume := []skills.ExtractedSkill{{ID: "python"}, {ID: "docker"}}

	first := Match(resume, jd, e)
	second := Match(resume, jd, e)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("jd matching is not deterministic")
	}
}
