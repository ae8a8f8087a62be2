package domain

import "time"

// AuditFields records who created and last touched a ledger record.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemUserID is recorded as creator for entries posted without an acting user.
const SystemUserID = "system"
