package extract

import (
	"regexp"

	"factory-status-backend/internal/model"
	"factory-status-backend/internal/normalize"
)

// AreaNameSuffix is appended to a zone to form the area's business key.
const AreaNameSuffix = "_Area"

var safetyZoneRe = regexp.MustCompile(`(?i)\bSAFETY\s+([A-Za-z][A-Za-z0-9_-]*)`)

var safetyLabels = []string{"PPE", "RISK", "STATUS", "NOTES", "COMPLIANCE", "INCIDENT", "REPORTER", "DESCRIPTION"}

// SafetyUpdate holds the fields found in a safety area message. Nil fields
// were not mentioned in the text. Compliance, IncidentType and ReportedBy
// describe an accompanying compliance event rather than the area itself.
type SafetyUpdate struct {
	Zone         string  `json:"zone"`
	AreaName     string  `json:"area_name"`
	RequiredPPE  *string `json:"required_ppe,omitempty"`
	RiskLevel    *string `json:"risk_level,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Compliance   *string `json:"compliance,omitempty"`
	IncidentType *string `json:"incident_type,omitempty"`
	Description  *string `json:"description,omitempty"`
	ReportedBy   *string `json:"reported_by,omitempty"`
}

// Safety extracts a partial safety area update from raw text. The zone name
// must immediately follow the SAFETY token; extraction fails without it.
func Safety(text string) (*SafetyUpdate, error) {
	m := safetyZoneRe.FindStringSubmatch(text)
	if m == nil {
		return nil, &MissingKeyError{Entity: "safety area", Field: "zone name"}
	}

	zone := m[1]
	upd := &SafetyUpdate{
		Zone:     zone,
		AreaName: zone + AreaNameSuffix,
	}

	if ppe, ok := captureUntil(text, "PPE", safetyLabels); ok {
		upd.RequiredPPE = strPtr(ppe)
	}
	if word, ok := captureWord(text, "RISK"); ok {
		// A mentioned but unrecognized risk level falls back to Medium.
		level, match := normalize.Closed(word, model.RiskLevelValues())
		if !match {
			level = string(model.RiskMedium)
		}
		upd.RiskLevel = strPtr(level)
	}
	if word, ok := captureWord(text, "STATUS"); ok {
		// Same fallback shape as RISK: mentioned but unrecognized means Safe.
		status, match := normalize.Closed(word, model.AreaStatusValues())
		if !match {
			status = string(model.AreaSafe)
		}
		upd.Status = strPtr(status)
	}
	if notes, ok := captureUntil(text, "NOTES", safetyLabels); ok {
		upd.Notes = strPtr(notes)
	}

	if word, ok := captureWord(text, "COMPLIANCE"); ok {
		if c, match := normalize.Closed(word, model.ComplianceValues()); match {
			upd.Compliance = strPtr(c)
		}
	}
	if incident, ok := captureUntil(text, "INCIDENT", safetyLabels); ok {
		upd.IncidentType = strPtr(incident)
	}
	if desc, ok := captureUntil(text, "DESCRIPTION", safetyLabels); ok {
		upd.Description = strPtr(desc)
	}
	if reporter, ok := captureUntil(text, "REPORTER", safetyLabels); ok {
		upd.ReportedBy = strPtr(reporter)
	}

	return upd, nil
}
