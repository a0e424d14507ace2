package entities

import "encoding/json"

// BusinessHoursPayload is the admin API form of a tenant's calling
// windows, keyed by lowercase day name. Day values are kept raw: the
// schedule engine accepts both structured windows and string-encoded
// blobs, and the dashboard has historically sent both.
type BusinessHoursPayload struct {
	Timezone string                     `json:"timezone,omitempty"`
	Days     map[string]json.RawMessage `json:"days"`
}
