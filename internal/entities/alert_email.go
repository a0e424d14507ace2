package entities

// AlertEmailData feeds the operator misconfiguration alert sent when a
// call can only be deferred by the 30-day sentinel.
type AlertEmailData struct {
	TenantID     int
	TenantName   string
	CallID       int
	ContactPhone string
	RequestedAt  string
	DeferredTo   string
	Reason       string
}
