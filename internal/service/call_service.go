package service

import (
	"dialdesk/internal/db"
	"dialdesk/internal/entities"
	dderrors "dialdesk/internal/errors"
	"dialdesk/internal/schedule"
	"fmt"
	"log"
	"time"
)

type TenantStore interface {
	GetTenant(id int) (*db.Tenant, error)
	GetBusinessHours(tenantID int) (*schedule.BusinessHoursConfig, error)
}

type CallStore interface {
	CreateCall(call *db.OutboundCall) error
	GetCall(id int) (*db.OutboundCall, error)
	GetDueDeferredCalls(now time.Time) ([]db.OutboundCall, error)
	MarkDispatched(id int, providerSID string) error
	DeferCall(id int, nextAttempt time.Time, reason string) error
	MarkFailed(ids []int, reason string) error
}

// CallService decides whether an outbound call goes out now or is parked
// in the deferred queue until the tenant's next business window.
type CallService struct {
	Tenants TenantStore
	Calls   CallStore
	Voice   VoiceProvider
	Alerts  Alerter
	Now     func() time.Time
}

func NewCallService(tenants TenantStore, calls CallStore, voice VoiceProvider, alerts Alerter) *CallService {
	return &CallService{
		Tenants: tenants,
		Calls:   calls,
		Voice:   voice,
		Alerts:  alerts,
		Now:     time.Now,
	}
}

// EvaluateWindow runs the business-hours engine for a tenant at the given
// instant, without side effects beyond logging the engine's trace.
func (s *CallService) EvaluateWindow(tenantID int, at time.Time) (*schedule.EvaluationResult, error) {
	tenant, err := s.Tenants.GetTenant(tenantID)
	if err != nil {
		return nil, fmt.Errorf("error loading tenant %d: %w", tenantID, err)
	}
	if tenant == nil {
		return nil, dderrors.ErrNotFound("tenant not found")
	}
	cfg, err := s.Tenants.GetBusinessHours(tenantID)
	if err != nil {
		return nil, fmt.Errorf("error loading business hours for tenant %d: %w", tenantID, err)
	}

	res := schedule.Evaluate(at, tenant.Timezone, cfg)
	for _, note := range res.Trace {
		log.Printf("tenant %d: %s", tenantID, note)
	}
	return &res, nil
}

// RequestCall admits or defers a new outbound call. Allowed calls are
// dispatched to the voice provider immediately; denied calls are stored
// with the engine's next allowed time so the cron job can pick them up.
func (s *CallService) RequestCall(req entities.CallRequest) (*entities.CallResponse, error) {
	if req.ContactPhone == "" {
		return nil, dderrors.ErrBadRequest("contact_phone is required")
	}

	tenant, err := s.Tenants.GetTenant(req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("error loading tenant %d: %w", req.TenantID, err)
	}
	if tenant == nil {
		return nil, dderrors.ErrNotFound("tenant not found")
	}
	cfg, err := s.Tenants.GetBusinessHours(req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("error loading business hours for tenant %d: %w", req.TenantID, err)
	}

	now := s.Now().UTC()
	res := schedule.Evaluate(now, tenant.Timezone, cfg)
	for _, note := range res.Trace {
		log.Printf("tenant %d: %s", req.TenantID, note)
	}

	call := &db.OutboundCall{
		TenantID:     req.TenantID,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Script:       req.Script,
		Status:       db.CallStatusQueued,
	}

	if res.Allowed {
		sid, callErr := s.Voice.StartCall(req.ContactPhone, req.Script)
		if callErr != nil {
			call.Status = db.CallStatusFailed
			call.Reason = callErr.Error()
		} else {
			call.Status = db.CallStatusDispatched
			call.ProviderSID = sid
		}
	} else {
		call.Status = db.CallStatusDeferred
		call.Reason = res.Reason
		call.NextAttemptAt = res.NextAllowedTime
		if call.NextAttemptAt == nil {
			// The default policy computes no next time; the queue
			// only retries calls with a concrete next_attempt_at.
			next := defaultPolicyRetry(now)
			call.NextAttemptAt = &next
		}
	}

	if err := s.Calls.CreateCall(call); err != nil {
		log.Printf("Error creating outbound call for tenant %d: %v", req.TenantID, err)
		return nil, err
	}

	if call.Status == db.CallStatusDeferred && s.isSentinelDeferral(now, res.NextAllowedTime) {
		log.Printf("WARNING: tenant %d has no usable calling window in the next 7 days, call %d deferred 30 days", tenant.ID, call.ID)
		s.Alerts.SendMisconfigAlert(entities.AlertEmailData{
			TenantID:     tenant.ID,
			TenantName:   tenant.Name,
			CallID:       call.ID,
			ContactPhone: call.ContactPhone,
			RequestedAt:  now.Format(time.RFC3339),
			DeferredTo:   res.NextAllowedTime.Format(time.RFC3339),
			Reason:       res.Reason,
		})
	}

	return &entities.CallResponse{
		ID:            call.ID,
		Status:        call.Status,
		Reason:        call.Reason,
		NextAttemptAt: call.NextAttemptAt,
		ProviderSID:   call.ProviderSID,
		Message:       callStatusMessage(call.Status),
	}, nil
}

func (s *CallService) GetCall(id int) (*db.OutboundCall, error) {
	call, err := s.Calls.GetCall(id)
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, dderrors.ErrNotFound("call not found")
	}
	return call, nil
}

// DispatchDueCalls drains the deferred queue. Each due call is evaluated
// again because the tenant's configuration may have changed since it was
// parked; calls denied again are re-deferred to the new next window.
func (s *CallService) DispatchDueCalls() (int, error) {
	now := s.Now().UTC()
	due, err := s.Calls.GetDueDeferredCalls(now)
	if err != nil {
		return 0, fmt.Errorf("failed to get due deferred calls: %w", err)
	}

	dispatched := 0
	for _, call := range due {
		res, err := s.EvaluateWindow(call.TenantID, now)
		if err != nil {
			log.Printf("Error re-evaluating call %d (tenant %d): %v", call.ID, call.TenantID, err)
			continue
		}

		if !res.Allowed {
			next := defaultPolicyRetry(now)
			if res.NextAllowedTime != nil {
				next = *res.NextAllowedTime
			}
			if err := s.Calls.DeferCall(call.ID, next, res.Reason); err != nil {
				log.Printf("Error re-deferring call %d: %v", call.ID, err)
			}
			continue
		}

		sid, callErr := s.Voice.StartCall(call.ContactPhone, call.Script)
		if callErr != nil {
			if err := s.Calls.MarkFailed([]int{call.ID}, callErr.Error()); err != nil {
				log.Printf("Error marking call %d failed: %v", call.ID, err)
			}
			continue
		}
		if err := s.Calls.MarkDispatched(call.ID, sid); err != nil {
			log.Printf("Error marking call %d dispatched: %v", call.ID, err)
			continue
		}
		dispatched++
	}
	return dispatched, nil
}

// isSentinelDeferral detects the engine's "no window within 7 days"
// signal: a deferral of exactly 30 days from the candidate instant.
func (s *CallService) isSentinelDeferral(at time.Time, next *time.Time) bool {
	return next != nil && next.Sub(at) == schedule.SentinelDeferral
}

// defaultPolicyRetry picks the retry instant for calls denied by the
// default policy, which computes no next time itself: the next weekday
// 08:00 strictly after the candidate, in the candidate's own frame.
func defaultPolicyRetry(at time.Time) time.Time {
	opening := time.Date(at.Year(), at.Month(), at.Day(), 8, 0, 0, 0, at.Location())
	for i := 0; i <= 7; i++ {
		slot := opening.AddDate(0, 0, i)
		if wd := slot.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if slot.After(at) {
			return slot
		}
	}
	return at.Add(schedule.SentinelDeferral)
}

func callStatusMessage(status string) string {
	switch status {
	case db.CallStatusDispatched:
		return "Call dispatched."
	case db.CallStatusDeferred:
		return "Outside business hours, call deferred."
	case db.CallStatusFailed:
		return "Call could not be placed."
	}
	return ""
}
