package classify

import (
	"regexp"
	"strings"
)

// Kind is the classified update kind of an incoming text line.
type Kind string

const (
	KindMachine Kind = "machine"
	KindSafety  Kind = "safety"
	KindOrder   Kind = "order"
	KindUnknown Kind = "unknown"
)

var (
	machineCodeRe = regexp.MustCompile(`(?i)^M\d+\b`)
	orderCodeRe   = regexp.MustCompile(`(?i)\bORD\d+\b`)
)

// Classify decides which entity kind a raw text update refers to.
//
// The rules are evaluated in a fixed priority order and the first match
// wins. A leading machine code beats everything; "SAFETY" beats "ORDER",
// so a message mentioning both is routed to the safety extractor.
func Classify(raw string) Kind {
	s := strings.TrimSpace(raw)
	if s == "" {
		return KindUnknown
	}

	if machineCodeRe.MatchString(s) {
		return KindMachine
	}

	upper := strings.ToUpper(s)
	if strings.Contains(upper, "SAFETY") {
		return KindSafety
	}
	if strings.Contains(upper, "ORDER") || orderCodeRe.MatchString(s) {
		return KindOrder
	}

	return KindUnknown
}
