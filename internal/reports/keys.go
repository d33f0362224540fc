package reports

import (
	"sort"
	"strings"
)

// cacheKey builds the deterministic key for a cached read endpoint. Empty
// parameters are dropped and the rest are sorted by name, so two requests
// that differ only in parameter order or omitted defaults share an entry.
func cacheKey(endpoint string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		names = append(names, k)
	}

	if len(names) == 0 {
		return "reports:" + endpoint + ":all"
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, k+"="+params[k])
	}
	return "reports:" + endpoint + ":" + strings.Join(parts, "&")
}
