package model

import "time"

// MachineStatus is the canonical status of a production machine.
type MachineStatus string

const (
	MachineRunning     MachineStatus = "Running"
	MachineIdle        MachineStatus = "Idle"
	MachineMaintenance MachineStatus = "Maintenance"
	MachineError       MachineStatus = "Error"
)

// MachineStatusValues lists the allowed machine statuses in canonical spelling.
func MachineStatusValues() []string {
	return []string{
		string(MachineRunning),
		string(MachineIdle),
		string(MachineMaintenance),
		string(MachineError),
	}
}

// Machine represents a production machine's current state, keyed by its code.
type Machine struct {
	MachineCode      string        `gorm:"primaryKey;size:32" json:"machine_code"`
	DisplayName      string        `gorm:"size:256" json:"display_name"`
	Status           MachineStatus `gorm:"size:32;not null" json:"status"`
	Output           int           `gorm:"not null" json:"output"`
	ErrorDescription string        `gorm:"size:512" json:"error_description,omitempty"`
	Operator         string        `gorm:"size:128" json:"operator,omitempty"`
	LastUpdate       time.Time     `gorm:"not null" json:"last_update"`
}
