package knowledge

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Category groups materials by the role they usually play in a project.
type Category string

const (
	CategoryBase      Category = "base"
	CategorySurface   Category = "surface"
	CategorySpecialty Category = "specialty"
)

// GeneralDepth is the TypicalDepth key used when a material has a single typical depth
// rather than one per project.
const GeneralDepth = "general"

// Material describes one bulk material the yards sell.
type Material struct {
	Key               string            `yaml:"key" json:"key"`
	CommonNames       []string          `yaml:"common_names" json:"common_names"`
	Category          Category          `yaml:"category" json:"category"`
	Description       string            `yaml:"description" json:"description"`
	SizeDescription   string            `yaml:"size_description" json:"size_description"`
	HowItWorks        string            `yaml:"how_it_works" json:"how_it_works"`
	BestFor           []string          `yaml:"best_for" json:"best_for"`
	NotRecommendedFor []string          `yaml:"not_recommended_for" json:"not_recommended_for,omitempty"`
	TypicalDepth      map[string]string `yaml:"typical_depth" json:"typical_depth"`
	Density           float64           `yaml:"density" json:"density"`
	CommonMistakes    []string          `yaml:"common_mistakes" json:"common_mistakes,omitempty"`
	ProTips           []string          `yaml:"pro_tips" json:"pro_tips,omitempty"`
	FAQ               map[string]string `yaml:"customer_faq" json:"customer_faq,omitempty"`
}

// FirstTip returns the first pro tip or "".
func (m Material) FirstTip() string {
	if len(m.ProTips) == 0 {
		return ""
	}
	return m.ProTips[0]
}

// FirstMistake returns the first common mistake or "".
func (m Material) FirstMistake() string {
	if len(m.CommonMistakes) == 0 {
		return ""
	}
	return m.CommonMistakes[0]
}

// Explanation is the customer-facing description of a material.
type Explanation struct {
	WhatItIs       string            `json:"what_it_is"`
	Size           string            `json:"size"`
	HowItWorks     string            `json:"how_it_works"`
	BestFor        []string          `json:"best_for"`
	CommonMistakes []string          `json:"common_mistakes"`
	ProTips        []string          `json:"pro_tips"`
	FAQ            map[string]string `json:"faq"`
}

// FAQEntry is one question and answer, used when order matters.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var (
	// ErrDuplicateMaterial is returned when two materials share a key.
	ErrDuplicateMaterial = errors.New("knowledge: duplicate material key")
	// ErrInvalidMaterial is returned for a material with no key or a non-positive density.
	ErrInvalidMaterial = errors.New("knowledge: invalid material")
)

// KnowledgeBase is an immutable, ordered table of materials. Safe for concurrent reads.
type KnowledgeBase struct {
	materials []Material
	byKey     map[string]int
}

// NewKnowledgeBase validates materials and indexes them. Table order is kept and
// drives resolution priority.
func NewKnowledgeBase(materials []Material) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		materials: make([]Material, 0, len(materials)),
		byKey:     make(map[string]int, len(materials)),
	}

	for _, m := range materials {
		if m.Key == "" {
			return nil, fmt.Errorf("%w: missing key", ErrInvalidMaterial)
		}
		if m.Density <= 0 {
			return nil, fmt.Errorf("%w: %s has density %v", ErrInvalidMaterial, m.Key, m.Density)
		}
		if _, dup := kb.byKey[m.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMaterial, m.Key)
		}
		kb.byKey[m.Key] = len(kb.materials)
		kb.materials = append(kb.materials, m)
	}

	return kb, nil
}

// Materials returns a copy of the table in order.
func (kb *KnowledgeBase) Materials() []Material {
	out := make([]Material, len(kb.materials))
	copy(out, kb.materials)
	return out
}

// Material looks up a material by its exact key.
func (kb *KnowledgeBase) Material(key string) (Material, bool) {
	i, ok := kb.byKey[key]
	if !ok {
		return Material{}, false
	}
	return kb.materials[i], true
}

// Resolve maps a spoken or typed material name to a material. Keys are tried first
// across the whole table, then aliases, both in table order.
func (kb *KnowledgeBase) Resolve(name string) (Material, bool) {
	needle := normalizeName(name)
	if needle == "" {
		return Material{}, false
	}

	for _, m := range kb.materials {
		if normalizeName(m.Key) == needle {
			return m, true
		}
	}

	for _, m := range kb.materials {
		for _, alias := range m.CommonNames {
			if normalizeName(alias) == needle {
				return m, true
			}
		}
	}

	return Material{}, false
}

// Explain returns the customer explanation for a material key.
func (kb *KnowledgeBase) Explain(key string) (Explanation, bool) {
	m, ok := kb.Material(key)
	if !ok {
		return Explanation{}, false
	}
	return Explanation{
		WhatItIs:       m.Description,
		Size:           m.SizeDescription,
		HowItWorks:     m.HowItWorks,
		BestFor:        m.BestFor,
		CommonMistakes: m.CommonMistakes,
		ProTips:        m.ProTips,
		FAQ:            m.FAQ,
	}, true
}

// SortedFAQ returns the FAQ ordered by question.
func (e Explanation) SortedFAQ() []FAQEntry {
	out := make([]FAQEntry, 0, len(e.FAQ))
	for q, a := range e.FAQ {
		out = append(out, FAQEntry{Question: q, Answer: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Question < out[j].Question })
	return out
}

// normalizeName lowercases and keeps only letters and digits.
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
