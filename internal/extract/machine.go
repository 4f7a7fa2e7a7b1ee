package extract

import (
	"regexp"
	"strings"

	"factory-status-backend/internal/normalize"
)

var machineCodeRe = regexp.MustCompile(`(?i)^\s*(M\d+)\b`)

// machineLabels are the recognized field labels in a machine update; free
// text captures stop at the next one of these.
var machineLabels = []string{"STATUS", "OUTPUT", "ERROR", "OPERATOR"}

// MachineUpdate holds the fields found in a machine status message. Nil
// fields were not mentioned in the text.
type MachineUpdate struct {
	MachineCode      string  `json:"machine_code"`
	Status           *string `json:"status,omitempty"`
	Output           *int    `json:"output,omitempty"`
	ErrorDescription *string `json:"error_description,omitempty"`
	Operator         *string `json:"operator,omitempty"`
}

// Machine extracts a partial machine update from raw text. The machine code
// is the only mandatory field; extraction fails without it.
func Machine(text string) (*MachineUpdate, error) {
	m := machineCodeRe.FindStringSubmatch(text)
	if m == nil {
		return nil, &MissingKeyError{Entity: "machine", Field: "machine code"}
	}

	upd := &MachineUpdate{MachineCode: strings.ToUpper(m[1])}

	if word, ok := captureWord(text, "STATUS"); ok {
		upd.Status = strPtr(normalize.MachineStatus(word))
	}
	if n, ok := captureInt(text, "OUTPUT"); ok {
		upd.Output = intPtr(n)
	}
	if desc, ok := captureUntil(text, "ERROR", machineLabels); ok {
		upd.ErrorDescription = strPtr(desc)
	}
	if op, ok := captureUntil(text, "OPERATOR", machineLabels); ok {
		upd.Operator = strPtr(op)
	}

	return upd, nil
}
