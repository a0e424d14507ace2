package db

import (
	"database/sql"
	"time"
)

const (
	CallStatusQueued     = "queued"
	CallStatusDeferred   = "deferred"
	CallStatusDispatched = "dispatched"
	CallStatusFailed     = "failed"
)

type Tenant struct {
	ID        int
	Name      string
	Timezone  string
	CreatedAt time.Time
}

// BusinessHoursRow mirrors the business_hours table: one text column per
// day of week holding the stored window blob, which may be structured JSON
// or a string-encoded form depending on which dashboard version wrote it.
type BusinessHoursRow struct {
	TenantID  int
	Timezone  sql.NullString
	Days      [7]sql.NullString // 0=Sunday..6=Saturday
	UpdatedAt time.Time
}

type OutboundCall struct {
	ID            int
	TenantID      int
	ContactName   string
	ContactPhone  string
	Script        string
	Status        string
	Reason        string
	NextAttemptAt *time.Time
	ProviderSID   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
