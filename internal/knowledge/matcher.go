package knowledge

import "strings"

// Candidate is anything with a store-facing name that a layer can be matched against.
type Candidate interface {
	CatalogName() string
}

// MatchLayer returns the first candidate, in input order, whose name fits the layer's
// material. A name fits when it contains one of the material's aliases, or every word of
// the material key.
func MatchLayer[C Candidate](kb *KnowledgeBase, layer ResolvedLayer, candidates []C) (C, bool) {
	var zero C

	m, ok := kb.Material(layer.Material)
	if !ok {
		return zero, false
	}

	aliases := make([]string, 0, len(m.CommonNames))
	for _, a := range m.CommonNames {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			aliases = append(aliases, a)
		}
	}
	tokens := keyTokens(m.Key)

	for _, c := range candidates {
		name := strings.ToLower(c.CatalogName())
		if containsAny(name, aliases) || containsAll(name, tokens) {
			return c, true
		}
	}
	return zero, false
}

// keyTokens splits "#57_stone" into ["57", "stone"].
func keyTokens(key string) []string {
	k := strings.ToLower(key)
	k = strings.ReplaceAll(k, "_", " ")
	k = strings.ReplaceAll(k, "#", "")
	return strings.Fields(k)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAll(s string, subs []string) bool {
	if len(subs) == 0 {
		return false
	}
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
