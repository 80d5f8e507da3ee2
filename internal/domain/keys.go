package domain

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Key prefixes for the derived local identifiers. Keys are stable across
// runs: the same inputs always produce the same key.
const (
	// KeyPrefixAuthor prefixes author keys derived from the OpenAlex author ID.
	KeyPrefixAuthor = "DSN"

	// KeyPrefixPublication prefixes publication keys derived from the OpenAlex work ID.
	KeyPrefixPublication = "PUB"

	// KeyPrefixJournal prefixes journal keys derived from (name, issn).
	KeyPrefixJournal = "JRN"
)

// issnSeparator joins the members of an ISSN set into a single column value.
const issnSeparator = "; "

// DeriveKey derives a deterministic local key from a prefix and one or more
// identifying values. The key is the prefix joined to the first 8 hex
// characters of the MD5 digest of the values, which are joined with "|"
// before hashing. MD5 is used for key derivation only, not for security.
func DeriveKey(prefix string, values ...string) string {
	sum := md5.Sum([]byte(strings.Join(values, "|")))
	return prefix + "_" + hex.EncodeToString(sum[:])[:8]
}

// CleanText collapses runs of whitespace, line breaks included, to single
// spaces, strips double quotes and trims the result. Empty input stays
// empty.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	space := false
	for _, r := range text {
		switch r {
		case '"':
			continue
		case ' ', '\t', '\n', '\r', '\f', '\v':
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeDOI strips URL and scheme prefixes from a DOI and lowercases it.
// Crossref is keyed by the bare DOI, while OpenAlex returns the
// https://doi.org/ form.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return ""
	}
	for _, prefix := range []string{
		"https://doi.org/",
		"http://doi.org/",
		"https://dx.doi.org/",
		"http://dx.doi.org/",
		"doi:",
	} {
		doi = strings.TrimPrefix(doi, prefix)
	}
	return strings.ToLower(strings.TrimSpace(doi))
}

// NormalizeOpenAlexID extracts the short identifier (e.g. A5012345678 or
// W2741809807) from a full OpenAlex URL.
func NormalizeOpenAlexID(id string) string {
	id = strings.TrimPrefix(strings.TrimSpace(id), "https://openalex.org/")
	return strings.TrimSpace(id)
}

// NormalizeORCID strips the https://orcid.org/ prefix from an ORCID.
func NormalizeORCID(orcid string) string {
	orcid = strings.TrimPrefix(strings.TrimSpace(orcid), "https://orcid.org/")
	return strings.TrimSpace(orcid)
}

// NormalizeInstitution maps known spellings of the home institution to its
// canonical short name. Other institutions pass through unchanged.
func NormalizeInstitution(inst string) string {
	if inst == "" {
		return ""
	}
	lower := strings.ToLower(inst)
	if strings.Contains(lower, "komputer indonesia") || strings.Contains(lower, "unikom") {
		return "UNIKOM"
	}
	return inst
}

// MergeISSN unions ISSN values from multiple sources into a single
// deduplicated, order-preserving "; "-joined set. Inputs may themselves be
// "; "-joined sets from a previous merge; the operation is idempotent and
// commutative over set membership.
func MergeISSN(groups ...[]string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range groups {
		for _, raw := range group {
			for _, issn := range strings.Split(raw, issnSeparator) {
				issn = strings.TrimSpace(issn)
				if issn == "" {
					continue
				}
				if _, ok := seen[issn]; ok {
					continue
				}
				seen[issn] = struct{}{}
				out = append(out, issn)
			}
		}
	}
	return strings.Join(out, issnSeparator)
}

// JoinSet joins values with the standard "; " separator, skipping empties
// and duplicates while preserving first-seen order.
func JoinSet(values []string) string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return strings.Join(out, issnSeparator)
}
