// Package extract pulls structured partial updates out of raw text that has
// already been routed by the classifier. Matching is label-driven: every
// field label tolerates an optional "=" or ":" separator and any letter
// case. Fields that do not appear in the text are left nil so that the
// upsert path only touches what was actually mentioned.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// MissingKeyError reports that the mandatory business key for an entity
// could not be found in the text.
type MissingKeyError struct {
	Entity string
	Field  string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no %s found in %s update text", e.Field, e.Entity)
}

// Label patterns are built from small tables per entity, so they are
// compiled lazily and cached instead of being spelled out one var at a time.
var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func cachedRe(pattern string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	re, ok := patternCache[pattern]
	if !ok {
		re = regexp.MustCompile(pattern)
		patternCache[pattern] = re
	}
	return re
}

func labelRe(label string) *regexp.Regexp {
	return cachedRe(`(?i)\b` + label + `\s*[:=]?\s*`)
}

// captureWord returns the single word following a label, or false when the
// label is absent.
func captureWord(text, label string) (string, bool) {
	re := cachedRe(`(?i)\b` + label + `\s*[:=]?\s*([A-Za-z][A-Za-z_-]*)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// captureInt returns the non-negative integer following a label.
func captureInt(text, label string) (int, bool) {
	re := cachedRe(`(?i)\b` + label + `\s*[:=]?\s*(\d+)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// captureUntil returns the free text following a label, cut off at the next
// recognized label or the end of the string. A label word can also show up
// as another field's value (STATUS=Error followed by ERROR=...), so every
// occurrence is tried and the first one with a non-empty capture wins.
func captureUntil(text, label string, stopLabels []string) (string, bool) {
	for _, loc := range labelRe(label).FindAllStringIndex(text, -1) {
		rest := text[loc[1]:]

		cut := len(rest)
		for _, stop := range stopLabels {
			if l := labelRe(stop).FindStringIndex(rest); l != nil && l[0] < cut {
				cut = l[0]
			}
		}

		if captured := strings.TrimSpace(rest[:cut]); captured != "" {
			return captured, true
		}
	}
	return "", false
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
