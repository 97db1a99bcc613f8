package skills

import (
	"sort"
	"strings"

	"resume-insight/internal/knowledge"
)

// Confidence policy. Canonical-name mentions score above synonym mentions,
// repeat mentions add up to the occurrence cap, and a mention inside a
// skills-style section earns a boost. Always clamped to [0,1].
const (
	canonicalBase    = 0.5
	synonymBase      = 0.35
	perOccurrence    = 0.15
	sectionBoost     = 0.2
	occurrenceCap    = 5
	contextTokenSpan = 5
)

var sectionWords = map[string]struct{}{
	"skills":       {},
	"technologies": {},
	"tools":        {},
	"expertise":    {},
	"competencies": {},
}

// ExtractedSkill is one canonical skill found in a text.
type ExtractedSkill struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Category    knowledge.SkillCategory `json:"category"`
	Confidence  float64                 `json:"confidence"`
	Occurrences int                     `json:"occurrences"`
}

// Extractor finds catalog skills in free text. Stateless after construction;
// safe for concurrent use.
type Extractor struct {
	catalog *knowledge.Catalog
	terms   []term
}

type term struct {
	surface   string
	entryID   string
	canonical bool
}

// NewExtractor builds the surface-form table from the catalog, longest
// surfaces first so multi-word skills win overlapping spans.
func NewExtractor(catalog *knowledge.Catalog) *Extractor {
	var terms []term
	for _, entry := range catalog.Skills() {
		terms = append(terms, term{surface: entry.ID, entryID: entry.ID, canonical: true})
		for _, syn := range entry.Synonyms {
			syn = strings.ToLower(strings.Join(strings.Fields(syn), " "))
			if syn != "" && syn != entry.ID {
				terms = append(terms, term{surface: syn, entryID: entry.ID})
			}
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i].surface) != len(terms[j].surface) {
			return len(terms[i].surface) > len(terms[j].surface)
		}
		return terms[i].surface < terms[j].surface
	})
	return &Extractor{catalog: catalog, terms: terms}
}

type token struct {
	start int
	end   int
	text  string
}

type hit struct {
	canonical bool
	count     int
	inSection bool
}

// Extract returns one ExtractedSkill per canonical id found in text, sorted
// by confidence descending then id ascending. Empty or whitespace-only text
// yields an empty slice, never an error.
func (e *Extractor) Extract(text string) []ExtractedSkill {
	normalized := normalize(text)
	if normalized == "" {
		return []ExtractedSkill{}
	}

	tokens := tokenize(normalized)
	claimed := make([]bool, len(normalized))
	hits := make(map[string]*hit)

	for _, t := range e.terms {
		from := 0
		for {
			idx := strings.Index(normalized[from:], t.surface)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(t.surface)
			from = start + 1

			if !boundaryOK(normalized, start, end) || spanClaimed(claimed, start, end) {
				continue
			}

			entry, _ := e.catalog.SkillByID(t.entryID)
			window := windowTokens(tokens, start, end)
			if entry.Ambiguous() && !hasContext(window, entry.ContextWords) {
				continue
			}

			for i := start; i < end; i++ {
				claimed[i] = true
			}

			h := hits[t.entryID]
			if h == nil {
				h = &hit{}
				hits[t.entryID] = h
			}
			h.count++
			if t.canonical {
				h.canonical = true
			}
			if !h.inSection && inSkillsSection(window) {
				h.inSection = true
			}
		}
	}

	out := make([]ExtractedSkill, 0, len(hits))
	for id, h := range hits {
		entry, _ := e.catalog.SkillByID(id)
		occurrences := h.count
		if occurrences > occurrenceCap {
			occurrences = occurrenceCap
		}
		out = append(out, ExtractedSkill{
			ID:          id,
			Name:        entry.Name,
			Category:    entry.Category,
			Confidence:  confidence(h.canonical, occurrences, h.inSection),
			Occurrences: occurrences,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// IDs returns just the canonical ids, preserving Extract's ordering.
func IDs(extracted []ExtractedSkill) []string {
	ids := make([]string, 0, len(extracted))
	for _, s := range extracted {
		ids = append(ids, s.ID)
	}
	return ids
}

// IDSet returns the extracted ids as a membership set.
func IDSet(extracted []ExtractedSkill) map[string]struct{} {
	set := make(map[string]struct{}, len(extracted))
	for _, s := range extracted {
		set[s.ID] = struct{}{}
	}
	return set
}

func confidence(canonical bool, occurrences int, inSection bool) float64 {
	base := synonymBase
	if canonical {
		base = canonicalBase
	}
	score := base + perOccurrence*float64(occurrences-1)
	if inSection {
		score += sectionBoost
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

func normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func tokenize(normalized string) []token {
	var tokens []token
	start := -1
	for i := 0; i <= len(normalized); i++ {
		if i < len(normalized) && normalized[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, token{start: start, end: i, text: normalized[start:i]})
			start = -1
		}
	}
	return tokens
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '+' || b == '#'
}

func boundaryOK(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

func spanClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

// windowTokens returns tokens within contextTokenSpan positions of the match,
// excluding the matched tokens themselves.
func windowTokens(tokens []token, start, end int) []string {
	first, last := -1, -1
	for i, t := range tokens {
		if t.end > start && t.start < end {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}

	lo := first - contextTokenSpan
	if lo < 0 {
		lo = 0
	}
	hi := last + contextTokenSpan
	if hi > len(tokens)-1 {
		hi = len(tokens) - 1
	}

	var out []string
	for i := lo; i <= hi; i++ {
		if i >= first && i <= last {
			continue
		}
		out = append(out, strings.Trim(tokens[i].text, ".,;:()[]\"'"))
	}
	return out
}

func hasContext(window []string, contextWords []string) bool {
	for _, w := range window {
		for _, cw := range contextWords {
			if w == cw {
				return true
			}
		}
	}
	return false
}

func inSkillsSection(window []string) bool {
	for _, w := range window {
		if _, ok := sectionWords[w]; ok {
			return true
		}
	}
	return false
}
