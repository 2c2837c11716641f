package util

import (
	"net/url"
	"sort"
	"strings"
)

// CanonicalURL lower-cases scheme/host, drops fragments and tracking params,
// and sorts the query so the same link from two sources compares equal.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "mc_cid" || lk == "mc_eid" ||
			lk == "mkt_tok" {
			q.Del(k)
		}
	}

	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func HostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(u.Host, "www."))
}

var corpSuffixes = []string{"inc", "llc", "ltd", "corp", "co", "labs", "technologies", "hq"}

// CompanyDomain reports the host of rawURL when the URL points at the
// company's own site: the host's first label must spell the company name,
// ignoring hyphens, case, and a trailing corporate suffix. Links hosted on
// news sites return "".
func CompanyDomain(company, rawURL string) string {
	host := HostOf(rawURL)
	if host == "" {
		return ""
	}
	label := strings.ReplaceAll(strings.SplitN(host, ".", 2)[0], "-", "")
	name := alnum(company)
	if label == "" || name == "" {
		return ""
	}
	if label == name {
		return host
	}
	for _, suffix := range corpSuffixes {
		trimmed := strings.TrimSuffix(name, suffix)
		if trimmed != name && trimmed != "" && label == trimmed {
			return host
		}
	}
	return ""
}

func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
