package model

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel classifies the hazard level of a safety area.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskLevelValues lists the allowed risk levels in canonical spelling.
func RiskLevelValues() []string {
	return []string{string(RiskLow), string(RiskMedium), string(RiskHigh), string(RiskCritical)}
}

// AreaStatus is the canonical operational status of a safety area.
type AreaStatus string

const (
	AreaSafe        AreaStatus = "Safe"
	AreaWarning     AreaStatus = "Warning"
	AreaCritical    AreaStatus = "Critical"
	AreaMaintenance AreaStatus = "Maintenance"
)

// AreaStatusValues lists the allowed area statuses in canonical spelling.
func AreaStatusValues() []string {
	return []string{string(AreaSafe), string(AreaWarning), string(AreaCritical), string(AreaMaintenance)}
}

// Compliance classifies the PPE compliance observed in a safety event.
type Compliance string

const (
	Compliant    Compliance = "Compliant"
	NonCompliant Compliance = "NonCompliant"
	Partial      Compliance = "Partial"
)

// ComplianceValues lists the allowed compliance classifications.
func ComplianceValues() []string {
	return []string{string(Compliant), string(NonCompliant), string(Partial)}
}

// SafetyArea represents the monitored state of one factory zone, keyed by
// its derived area name.
type SafetyArea struct {
	AreaName       string     `gorm:"primaryKey;size:128" json:"area_name"`
	Zone           string     `gorm:"size:128;not null" json:"zone"`
	RequiredPPE    string     `gorm:"size:512" json:"required_ppe"`
	RiskLevel      RiskLevel  `gorm:"size:32;not null" json:"risk_level"`
	Status         AreaStatus `gorm:"size:32;not null" json:"status"`
	Notes          string     `gorm:"size:512" json:"notes,omitempty"`
	LastInspection time.Time  `gorm:"not null" json:"last_inspection"`
}

// SafetyLog is an append-only record of a single PPE compliance event.
// Rows are created once and never updated.
type SafetyLog struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AreaName      string     `gorm:"size:128;index;not null" json:"area_name"`
	Zone          string     `gorm:"size:128" json:"zone"`
	PPECompliance Compliance `gorm:"size:32;not null" json:"ppe_compliance"`
	IncidentType  string     `gorm:"size:128" json:"incident_type,omitempty"`
	Description   string     `gorm:"size:512" json:"description,omitempty"`
	ReportedBy    string     `gorm:"size:128" json:"reported_by,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}
