package skills

import (
	"reflect"
	"testing"

	"resume-insight/internal/knowledge"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	catalog, err := knowledge.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewExtractor(catalog)
}

func find(extracted []ExtractedSkill, id string) (ExtractedSkill, bool) {
	for _, s := range extracted {
		if s.ID == id {
			return s, true
		}
	}
	return ExtractedSkill{}, false
}

func TestExtract_EmptyText(t *testing.T) {
	e := newTestExtractor(t)
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		if got := e.Extract(text); len(got) != 0 {
			t.Fatalf("expected empty result for %q, got %d skills", text, len(got))
		}
	}
}

func TestExtract_Canonicalization(t *testing.T) {
	e := newTestExtractor(t)

	for _, text := range []string{
		"Experienced Python developer",
		"experienced python developer",
		"Shipped services in python3",
	} {
		got := e.Extract(text)
		skill, ok := find(got, "python")
		if !ok {
			t.Fatalf("text %q: python not extracted: %+v", text, got)
		}
		if skill.Confidence <= 0 || skill.Confidence > 1 {
			t.Fatalf("confidence out of range: %v", skill.Confidence)
		}
	}
}

func TestExtract_CanonicalBeatsSynonym(t *testing.T) {
	e := newTestExtractor(t)

	canonical, _ := find(e.Extract("built pipelines with kubernetes"), "kubernetes")
	synonym, _ := find(e.Extract("built pipelines with k8s"), "kubernetes")
	if canonical.Confidence <= synonym.Confidence {
		t.Fatalf("canonical %v should outscore synonym %v", canonical.Confidence, synonym.Confidence)
	}
}

func TestExtract_AmbiguousRequiresContext(t *testing.T) {
	e := newTestExtractor(t)

	if _, ok := find(e.Extract("let it go and move on"), "go"); ok {
		t.Fatal("ambiguous 'go' matched without context")
	}
	if _, ok := find(e.Extract("built backend services in Go"), "go"); !ok {
		t.Fatal("'go' with backend context should match")
	}

	if _, ok := find(e.Extract("walking down the r street"), "r"); ok {
		t.Fatal("ambiguous 'r' matched without context")
	}
	if _, ok := find(e.Extract("statistical analysis in R"), "r"); !ok {
		t.Fatal("'r' with statistical context should match")
	}
}

func TestExtract_RepeatMentionsRaiseConfidence(t *testing.T) {
	e := newTestExtractor(t)

	once, _ := find(e.Extract("used docker"), "docker")
	twice, _ := find(e.Extract("used docker and more docker"), "docker")
	if twice.Confidence <= once.Confidence {
		t.Fatalf("repeat mention should raise confidence: %v vs %v", once.Confidence, twice.Confidence)
	}
	if twice.Occurrences != 2 {
		t.Fatalf("expected 2 occurrences, got %d", twice.Occurrences)
	}

	many, _ := find(e.Extract("docker docker docker docker docker docker docker docker"), "docker")
	if many.Occurrences > occurrenceCap {
		t.Fatalf("occurrences above cap: %d", many.Occurrences)
	}
	if many.Confidence > 1 {
		t.Fatalf("confidence above 1: %v", many.Confidence)
	}
}

func TestExtract_OverlapPrefersLongerMatch(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract("deployed node.js services")
	if _, ok := find(got, "node.js"); !ok {
		t.Fatalf("node.js not extracted: %+v", got)
	}
	// "js" (a javascript synonym) sits inside the node.js span and must not
	// produce a second skill.
	if _, ok := find(got, "javascript"); ok {
		t.Fatal("javascript extracted from inside node.js span")
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := newTestExtractor(t)
	text := "Skills: Python, SQL, Docker, Kubernetes, machine learning and communication"

	first := e.Extract(text)
	second := e.Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("extraction is not deterministic")
	}

	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if cur.Confidence > prev.Confidence {
			t.Fatal("results not sorted by confidence desc")
		}
		if cur.Confidence == prev.Confidence && cur.ID < prev.ID {
			t.Fatal("ties not broken by id asc")
		}
	}
}

func TestExtract_DeploymentScenario(t *testing.T) {
	e := newTestExtractor(t)
	text := "Led a team of 5 engineers, improved deployment speed by 40%, built CI/CD pipelines with Jenkins and Docker"

	got := e.Extract(text)
	for _, want := range []string{"ci/cd", "jenkins", "docker"} {
		if _, ok := find(got, want); !ok {
			t.Fatalf("expected %q in %+v", want, got)
		}
	}
}

func TestExtract_SectionBoost(t *testing.T) {
	e := newTestExtractor(t)

	plain, _ := find(e.Extract("I once deployed terraform"), "terraform")
	sectioned, _ := find(e.Extract("Technical Skills: terraform"), "terraform")
	if sectioned.Confidence <= plain.Confidence {
		t.Fatalf("skills-section mention should outscore plain mention: %v vs %v",
			sectioned.Confidence, plain.Confidence)
	}
}
