package recommendations

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerate_EmptyInput(t *testing.T) {
	got := Generate(Input{SkillCount: 20})
	if len(got) != 0 {
		t.Fatalf("expected no recommendations, got %+v", got)
	}
}

func TestGenerate_CriticalGapsRankFirst(t *testing.T) {
	got := Generate(Input{
		ATSPriorities: []string{"metrics"},
		BestRole:      "Backend Engineer",
		CriticalGaps:  []string{"kubernetes", "go"},
		SkillCount:    20,
	})
	if len(got) < 2 {
		t.Fatalf("expected at least 2 recommendations, got %d", len(got))
	}
	if got[0].ID != "ROLE_CRITICAL_GAPS" {
		t.Fatalf("critical gap should rank first, got %s", got[0].ID)
	}
	if !strings.Contains(got[0].Title, "Backend Engineer") {
		t.Fatalf("title should name the role: %q", got[0].Title)
	}
	if !strings.Contains(got[0].Action, "go") || !strings.Contains(got[0].Action, "kubernetes") {
		t.Fatalf("action should list the gaps: %q", got[0].Action)
	}
}

func TestGenerate_CapAndOrdering(t *testing.T) {
	got := Generate(Input{
		ATSPriorities: []string{"sections", "keywords", "contact"},
		ATSSuggestions: []string{
			"Add a LinkedIn profile URL.",
			"Include a phone number for contact.",
			"Use bullet points for better readability and ATS parsing.",
			"Add quantifiable metrics to demonstrate impact.",
			"Include an email address in the contact section.",
		},
		BestRole:          "Data Scientist",
		CriticalGaps:      []string{"python"},
		MissingMustHave:   []string{"spark"},
		MissingNiceToHave: []string{"tableau"},
		SkillCount:        3,
	})
	if len(got) != maxRecommendations {
		t.Fatalf("expected cap of %d, got %d", maxRecommendations, len(got))
	}
	for i, rec := range got {
		if rec.Order != i+1 {
			t.Fatalf("order not sequential at %d: %+v", i, rec)
		}
		if i > 0 && severityRank(got[i-1].Severity) < severityRank(rec.Severity) {
			t.Fatalf("severity ordering violated at %d: %s after %s", i, rec.Severity, got[i-1].Severity)
		}
	}
}

func TestGenerate_DedupeByID(t *testing.T) {
	got := Generate(Input{
		ATSSuggestions: []string{
			"Add a LinkedIn profile URL.",
			"Add a LinkedIn profile URL.",
			"  add a linkedin profile url.  ",
		},
		SkillCount: 20,
	})
	if len(got) != 1 {
		t.Fatalf("expected deduped single recommendation, got %+v", got)
	}
}

func TestGenerate_JDGapSeverities(t *testing.T) {
	got := Generate(Input{
		MissingMustHave:   []string{"docker"},
		MissingNiceToHave: []string{"terraform"},
		SkillCount:        20,
	})
	var must, nice *Recommendation
	for i := range got {
		switch got[i].ID {
		case "JD_MISSING_MUST_HAVE":
			must = &got[i]
		case "JD_MISSING_NICE_TO_HAVE":
			nice = &got[i]
		}
	}
	if must == nil || nice == nil {
		t.Fatalf("expected both jd gap recommendations: %+v", got)
	}
	if must.Severity != "critical" || nice.Severity != "info" {
		t.Fatalf("unexpected severities: must=%s nice=%s", must.Severity, nice.Severity)
	}
	if must.Order >= nice.Order {
		t.Fatalf("must-have should rank before nice-to-have: %+v", got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	in := Input{
		ATSPriorities:   []string{"metrics", "contact"},
		ATSSuggestions:  []string{"Use bullet points for better readability and ATS parsing."},
		BestRole:        "DevOps Engineer",
		CriticalGaps:    []string{"kubernetes"},
		MissingMustHave: []string{"docker"},
		SkillCount:      4,
	}
	first := Generate(in)
	second := Generate(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("recommendation generation is not deterministic")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Add a LinkedIn profile URL.", "add-a-linkedin-profile-url"},
		{"  spaced   out  ", "spaced-out"},
		{"---", "item"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Fatalf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
