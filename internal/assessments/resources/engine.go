package resources

import (
	"strings"
	"unicode"
)

// MergeStrings concatenates lists, trimming items and dropping empties and
// case-insensitive duplicates. The first occurrence wins, so earlier lists
// take precedence in the output order.
func MergeStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, list := range lists {
		for _, item := range list {
			trimmed := strings.TrimSpace(item)
			if trimmed == "" {
				continue
			}
			key := slugify(trimmed)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, trimmed)
		}
	}
	return out
}

// MergeProfessionals dedupes by professional type. A later duplicate fills in a
// missing reason on the earlier entry.
func MergeProfessionals(lists ...[]Professional) []Professional {
	index := make(map[string]int)
	out := make([]Professional, 0)
	for _, list := range lists {
		for _, p := range list {
			p.ProfessionalType = strings.TrimSpace(p.ProfessionalType)
			p.Reason = strings.TrimSpace(p.Reason)
			if p.ProfessionalType == "" {
				continue
			}
			key := slugify(p.ProfessionalType)
			if i, ok := index[key]; ok {
				if out[i].Reason == "" {
					out[i].Reason = p.Reason
				}
				continue
			}
			index[key] = len(out)
			out = append(out, p)
		}
	}
	return out
}

// WithCrisis puts the crisis resources ahead of extra, deduplicated.
func WithCrisis(extra []string) []string {
	return MergeStrings(Crisis(), extra)
}

// WithCrisisStep makes CrisisNextStep the first step.
func WithCrisisStep(steps []string) []string {
	return MergeStrings([]string{CrisisNextStep}, steps)
}

// WithCrisisProfessional makes the crisis counselor the first professional.
func WithCrisisProfessional(items []Professional) []Professional {
	return MergeProfessionals([]Professional{crisisProfessional}, items)
}

// slugify keys items for deduplication. Items with no letters or digits
// key on their lower-cased text so distinct symbols stay distinct.
func slugify(input string) string {
	lowered := strings.ToLower(strings.TrimSpace(input))
	var b strings.Builder
	lastDash := false
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return lowered
	}
	return out
}
