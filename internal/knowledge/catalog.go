package knowledge

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed data/catalog.json
var catalogFiles embed.FS

// Sentinel errors for catalog lookups and configuration.
var (
	ErrRoleNotFound = errors.New("role not found")
	ErrEmptyCatalog = errors.New("catalog contains no role profiles")
)

// Catalog is the immutable knowledge base: role profiles and the skill
// dictionary. Loaded once at startup; safe for concurrent readers.
type Catalog struct {
	skills      []SkillEntry
	skillByID   map[string]SkillEntry
	synonymToID map[string]string
	roles       []RoleProfile
	roleByName  map[string]RoleProfile
	categories  []string
}

type catalogFile struct {
	Skills []SkillEntry  `json:"skills"`
	Roles  []RoleProfile `json:"roles"`
}

// Load parses and validates the embedded catalog.
func Load() (*Catalog, error) {
	raw, err := catalogFiles.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(raw)
}

// ParseCatalog builds a catalog from raw JSON, mainly for tests and tooling
// that supply their own data.
func ParseCatalog(raw []byte) (*Catalog, error) {
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Roles) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		skillByID:   make(map[string]SkillEntry),
		synonymToID: make(map[string]string),
		roleByName:  make(map[string]RoleProfile),
	}

	for _, entry := range file.Skills {
		entry.ID = normalizeTerm(entry.ID)
		if entry.ID == "" {
			return nil, fmt.Errorf("catalog: skill entry with empty id")
		}
		if _, dup := c.skillByID[entry.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate skill id %q", entry.ID)
		}
		if entry.Name == "" {
			entry.Name = entry.ID
		}
		if entry.Category == "" {
			entry.Category = CategoryTechnical
		}
		c.skillByID[entry.ID] = entry
		c.synonymToID[entry.ID] = entry.ID
	}

	for _, entry := range c.skillByID {
		for _, syn := range entry.Synonyms {
			syn = normalizeTerm(syn)
			if syn == "" || syn == entry.ID {
				continue
			}
			if owner, taken := c.synonymToID[syn]; taken && owner != entry.ID {
				return nil, fmt.Errorf("catalog: synonym %q claimed by %q and %q", syn, owner, entry.ID)
			}
			c.synonymToID[syn] = entry.ID
		}
	}

	seenCategories := make(map[string]struct{})
	for _, role := range file.Roles {
		role.Name = strings.TrimSpace(role.Name)
		if role.Name == "" {
			return nil, fmt.Errorf("catalog: role with empty name")
		}
		key := strings.ToLower(role.Name)
		if _, dup := c.roleByName[key]; dup {
			return nil, fmt.Errorf("catalog: duplicate role name %q", role.Name)
		}
		if role.Category == "" {
			role.Category = "General"
		}
		if w := role.Weights; w != nil && w.Technical+w.Tools+w.Soft <= 0 {
			return nil, fmt.Errorf("catalog: role %q has zero-sum weight override", role.Name)
		}

		for i, req := range role.Skills {
			id := normalizeTerm(req.ID)
			if req.Tier != TierCritical {
				req.Tier = TierStandard
			}
			role.Skills[i] = RequiredSkill{ID: id, Tier: req.Tier}
			c.ensureSkill(id, CategoryTechnical)
		}
		for i, id := range role.Tools {
			role.Tools[i] = normalizeTerm(id)
			c.ensureSkill(role.Tools[i], CategoryTool)
		}
		for i, id := range role.SoftSkills {
			role.SoftSkills[i] = normalizeTerm(id)
			c.ensureSkill(role.SoftSkills[i], CategorySoft)
		}
		for i, id := range role.Certifications {
			role.Certifications[i] = normalizeTerm(id)
			c.ensureSkill(role.Certifications[i], CategoryCertification)
		}

		c.roleByName[key] = role
		c.roles = append(c.roles, role)
		if _, seen := seenCategories[role.Category]; !seen {
			seenCategories[role.Category] = struct{}{}
			c.categories = append(c.categories, role.Category)
		}
	}

	for id := range c.skillByID {
		c.skills = append(c.skills, c.skillByID[id])
	}
	sort.Slice(c.skills, func(i, j int) bool { return c.skills[i].ID < c.skills[j].ID })
	sort.Slice(c.roles, func(i, j int) bool { return c.roles[i].Name < c.roles[j].Name })
	sort.Strings(c.categories)

	return c, nil
}

// ensureSkill registers an implicit entry for a role-referenced id that has no
// explicit dictionary record. Explicit entries keep their category.
func (c *Catalog) ensureSkill(id string, category SkillCategory) {
	if id == "" {
		return
	}
	if _, ok := c.skillByID[id]; ok {
		return
	}
	c.skillByID[id] = SkillEntry{ID: id, Name: id, Category: category}
	c.synonymToID[id] = id
}

// Skills returns every skill entry sorted by id.
func (c *Catalog) Skills() []SkillEntry {
	return c.skills
}

// SkillByID looks up a canonical skill entry.
func (c *Catalog) SkillByID(id string) (SkillEntry, bool) {
	entry, ok := c.skillByID[normalizeTerm(id)]
	return entry, ok
}

// Canonicalize resolves a term through the synonym table to its canonical
// skill id. Comparison is case-insensitive.
func (c *Catalog) Canonicalize(term string) (string, bool) {
	id, ok := c.synonymToID[normalizeTerm(term)]
	return id, ok
}

// Roles returns every role profile sorted by name.
func (c *Catalog) Roles() []RoleProfile {
	return c.roles
}

// RoleByName looks a role up case-insensitively.
func (c *Catalog) RoleByName(name string) (RoleProfile, error) {
	role, ok := c.roleByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return RoleProfile{}, fmt.Errorf("%w: %s", ErrRoleNotFound, strings.TrimSpace(name))
	}
	return role, nil
}

// Categories returns the sorted list of industry categories.
func (c *Catalog) Categories() []string {
	return c.categories
}

// RolesByCategory returns roles in a category sorted by name. The category
// comparison is case-insensitive; an unknown category yields an empty slice.
func (c *Catalog) RolesByCategory(category string) []RoleProfile {
	want := strings.ToLower(strings.TrimSpace(category))
	var out []RoleProfile
	for _, role := range c.roles {
		if strings.ToLower(role.Category) == want {
			out = append(out, role)
		}
	}
	return out
}

// Size reports role and skill counts, used by the health endpoint.
func (c *Catalog) Size() (roles int, skills int) {
	return len(c.roles), len(c.skills)
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
