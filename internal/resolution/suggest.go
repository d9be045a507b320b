package resolution

import "github.com/sahilm/fuzzy"

const maxSuggestions = 3

// suggest ranks candidates that fuzzily match name.
func suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}
	matches := fuzzy.Find(name, candidates)
	var out []string
	for _, m := range matches {
		if m.Str == name {
			continue
		}
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
