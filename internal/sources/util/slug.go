package util

import "strings"

// SlugCandidates derives the provider slugs worth probing for a company
// domain: the domain minus its TLD, the same without hyphens, and the bare
// first label. "acme-corp.io" -> ["acme-corp", "acmecorp"]. The first slug a
// board answers for wins; no answer means the company is simply not on that
// board.
func SlugCandidates(domain string) []string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "www.")
	if d == "" {
		return nil
	}

	labels := strings.Split(d, ".")
	if labels[0] == "" {
		return nil
	}

	noTLD := labels[0]
	if len(labels) > 1 {
		noTLD = strings.Join(labels[:len(labels)-1], "")
	}

	return Uniq([]string{
		noTLD,
		strings.ReplaceAll(noTLD, "-", ""),
		labels[0],
	})
}
