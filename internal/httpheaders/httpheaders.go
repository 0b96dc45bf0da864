// Package httpheaders merges configured header maps into outgoing requests.
// Header names compare case-insensitively, the way HTTP treats them.
package httpheaders

import (
	"net/http"
	"sort"
	"strings"
)

// Fixed returns the headers every tool call carries regardless of config.
func Fixed() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

// Merge applies src entries into dst.
// When overwrite is false, existing dst entries win even if the casing differs.
func Merge(dst map[string]string, src map[string]string, overwrite bool) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}

	for _, key := range sortedKeys(src) {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if existing, ok := findFold(dst, name); ok {
			if !overwrite {
				continue
			}
			delete(dst, existing)
		}
		dst[name] = src[key]
	}
	return dst
}

// Build returns the fixed headers with configured ones merged underneath,
// so a config entry can never replace Content-Type.
func Build(configured map[string]string) map[string]string {
	return Merge(Fixed(), configured, false)
}

// Apply sets every header in headers on h, replacing earlier values.
func Apply(h http.Header, headers map[string]string) {
	for _, key := range sortedKeys(headers) {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		h.Set(name, headers[key])
	}
}

func sortedKeys(src map[string]string) []string {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func findFold(headers map[string]string, name string) (string, bool) {
	for key := range headers {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return key, true
		}
	}
	return "", false
}
