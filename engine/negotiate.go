package engine

import "strings"

// Acceptable reports whether offer (a concrete media type such as
// "application/json") satisfies accept (the raw value of an Accept
// header). accept is a comma-separated list of media ranges; each
// range may use "*/*", "type/*", or "type/subtype". Parameters
// (including q-values) are ignored — this is wildcard matching, not
// weighted negotiation, matching SPEC_FULL.md §4.3. Acceptable judges
// one offer at a time; c4 takes whichever acceptable offer it reaches
// first while ranging over the ProviderMap, with no notion of
// preference among multiple acceptable offers.
func Acceptable(offer, accept string) bool {
	if accept == "" {
		return true
	}
	offerType, offerSub, ok := splitMediaType(offer)
	if !ok {
		return false
	}
	for _, rawRange := range strings.Split(accept, ",") {
		r := strings.TrimSpace(rawRange)
		if semi := strings.IndexByte(r, ';'); semi >= 0 {
			r = strings.TrimSpace(r[:semi])
		}
		rangeType, rangeSub, ok := splitMediaType(r)
		if !ok {
			continue
		}
		if rangeType == "*" {
			return true
		}
		if !strings.EqualFold(rangeType, offerType) {
			continue
		}
		if rangeSub == "*" || strings.EqualFold(rangeSub, offerSub) {
			return true
		}
	}
	return false
}

func splitMediaType(s string) (typ, sub string, ok bool) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
