package entities

import "time"

type CallRequest struct {
	TenantID     int    `json:"tenant_id"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	Script       string `json:"script"`
}

type CallResponse struct {
	ID            int        `json:"id"`
	Status        string     `json:"status"`
	Reason        string     `json:"reason,omitempty"`
	NextAttemptAt *time.Time `json:"next_attempt_at,omitempty"`
	ProviderSID   string     `json:"provider_sid,omitempty"`
	Message       string     `json:"message,omitempty"`
}
