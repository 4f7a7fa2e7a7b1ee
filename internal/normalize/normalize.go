// Package normalize maps free-form vocabulary captured from update text
// onto the canonical enumerations used by the record models.
package normalize

import (
	"strings"

	"factory-status-backend/internal/model"
)

// stemRule maps a lowercase stem to its canonical enum value. Rules are
// evaluated in slice order and the first containment match wins.
type stemRule struct {
	stem      string
	canonical string
}

var machineStatusStems = []stemRule{
	{"run", string(model.MachineRunning)},
	{"idle", string(model.MachineIdle)},
	{"maintain", string(model.MachineMaintenance)},
	{"error", string(model.MachineError)},
	{"down", string(model.MachineError)},
}

var orderStageStems = []stemRule{
	{"plan", string(model.StagePlanning)},
	{"product", string(model.StageProduction)},
	{"quality", string(model.StageQuality)},
	{"qc", string(model.StageQuality)},
	{"pack", string(model.StagePackaging)},
	{"ship", string(model.StageShipping)},
	{"complete", string(model.StageCompleted)},
	{"done", string(model.StageCompleted)},
}

func applyStems(raw string, rules []stemRule) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range rules {
		if strings.Contains(lower, r.stem) {
			return r.canonical
		}
	}
	// Unrecognized vocabulary passes through title-cased rather than being
	// rejected here; the validator is the final gate.
	return TitleCase(raw)
}

// MachineStatus maps a captured status word onto the canonical machine
// status, falling back to a title-cased passthrough.
func MachineStatus(raw string) string {
	return applyStems(raw, machineStatusStems)
}

// OrderStage maps a captured stage word onto the canonical order stage,
// falling back to a title-cased passthrough.
func OrderStage(raw string) string {
	return applyStems(raw, orderStageStems)
}

// Closed matches a captured word against a closed set of canonical values
// using case-insensitive equality. The second return is false when the word
// is not a member of the set.
func Closed(raw string, allowed []string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, v := range allowed {
		if strings.EqualFold(trimmed, v) {
			return v, true
		}
	}
	return "", false
}

// TitleCase upper-cases the first rune of a word and lower-cases the rest.
func TitleCase(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
}
