package knowledge

import (
	"errors"
	"sort"
	"testing"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	roles, skills := catalog.Size()
	if roles == 0 || skills == 0 {
		t.Fatalf("expected non-empty catalog, got roles=%d skills=%d", roles, skills)
	}

	names := make(map[string]struct{}, roles)
	for _, role := range catalog.Roles() {
		if _, dup := names[role.Name]; dup {
			t.Fatalf("duplicate role name %q", role.Name)
		}
		names[role.Name] = struct{}{}
	}

	if !sort.StringsAreSorted(catalog.Categories()) {
		t.Fatal("categories not sorted")
	}
}

func TestCanonicalize_SynonymsResolve(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	cases := []struct {
		term string
		want string
	}{
		{"Python", "python"},
		{"python3", "python"},
		{"k8s", "kubernetes"},
		{"Amazon Web Services", "aws"},
		{"golang", "go"},
		{"cicd", "ci/cd"},
	}
	for _, tc := range cases {
		got, ok := catalog.Canonicalize(tc.term)
		if !ok {
			t.Fatalf("term %q did not resolve", tc.term)
		}
		if got != tc.want {
			t.Fatalf("term %q resolved to %q, want %q", tc.term, got, tc.want)
		}
	}

	if _, ok := catalog.Canonicalize("definitely-not-a-skill"); ok {
		t.Fatal("unknown term unexpectedly resolved")
	}
}

func TestRoleByName_CaseInsensitive(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	role, err := catalog.RoleByName("data scientist")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if role.Name != "Data Scientist" {
		t.Fatalf("got role %q", role.Name)
	}

	if _, err := catalog.RoleByName("Chief Astronaut"); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestRolesByCategory(t *testing.T) {
	catalog, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	roles := catalog.RolesByCategory("cybersecurity")
	if len(roles) == 0 {
		t.Fatal("expected cybersecurity roles")
	}
	for _, role := range roles {
		if role.Category != "Cybersecurity" {
			t.Fatalf("unexpected category %q", role.Category)
		}
	}

	if got := catalog.RolesByCategory("Basket Weaving"); len(got) != 0 {
		t.Fatalf("expected empty slice for unknown category, got %d roles", len(got))
	}
}

func TestParse_RejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty roles", `{"skills": [], "roles": []}`},
		{"duplicate role", `{"roles": [{"name": "A", "category": "X"}, {"name": "a", "category": "X"}]}`},
		{"duplicate skill id", `{"skills": [{"id": "go"}, {"id": "GO"}], "roles": [{"name": "A"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parse([]byte(tc.raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParse_ImplicitSkillEntries(t *testing.T) {
	raw := `{
		"skills": [{"id": "python", "category": "technical"}],
		"roles": [{
			"name": "Tester",
			"category": "Technology",
			"skills": [{"id": "python", "tier": "critical"}, {"id": "selenium"}],
			"tools": ["jira"],
			"softSkills": ["patience"]
		}]
	}`
	catalog, err := parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	entry, ok := catalog.SkillByID("selenium")
	if !ok || entry.Category != CategoryTechnical {
		t.Fatalf("implicit technical entry missing: %+v ok=%v", entry, ok)
	}
	entry, ok = catalog.SkillByID("jira")
	if !ok || entry.Category != CategoryTool {
		t.Fatalf("implicit tool entry missing: %+v ok=%v", entry, ok)
	}
	entry, ok = catalog.SkillByID("patience")
	if !ok || entry.Category != CategorySoft {
		t.Fatalf("implicit soft entry missing: %+v ok=%v", entry, ok)
	}

	role, err := catalog.RoleByName("Tester")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if role.Skills[1].Tier != TierStandard {
		t.Fatalf("expected default standard tier, got %q", role.Skills[1].Tier)
	}
}
