package service

import (
	"dialdesk/internal/db"
	"dialdesk/internal/entities"
	dderrors "dialdesk/internal/errors"
	"dialdesk/internal/repository"
	"dialdesk/internal/schedule"
	"dialdesk/internal/utils"
	"encoding/json"
	"time"
)

// AdminService backs the dashboard's tenant configuration screens.
type AdminService struct {
	tenantRepo *repository.TenantRepository
	callRepo   *repository.CallRepository
}

func NewAdminService(tenantRepo *repository.TenantRepository, callRepo *repository.CallRepository) *AdminService {
	return &AdminService{tenantRepo: tenantRepo, callRepo: callRepo}
}

func (s *AdminService) GetBusinessHours(tenantID int) (*entities.BusinessHoursPayload, error) {
	tenant, err := s.tenantRepo.GetTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, dderrors.ErrNotFound("tenant not found")
	}

	cfg, err := s.tenantRepo.GetBusinessHours(tenantID)
	if err != nil {
		return nil, err
	}
	payload := &entities.BusinessHoursPayload{Days: map[string]json.RawMessage{}}
	if cfg == nil {
		return payload, nil
	}
	payload.Timezone = cfg.Timezone
	for i, raw := range cfg.Days {
		if len(raw) > 0 {
			payload.Days[utils.DayKey(i)] = raw
		}
	}
	return payload, nil
}

// UpdateBusinessHours stores the submitted windows. Day values are kept
// raw; the engine's resolver is the single place that interprets them.
// Unknown day names are rejected, an invalid window body is not: the
// engine degrades those to its default window at evaluation time.
func (s *AdminService) UpdateBusinessHours(tenantID int, payload *entities.BusinessHoursPayload) error {
	tenant, err := s.tenantRepo.GetTenant(tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return dderrors.ErrNotFound("tenant not found")
	}
	if payload.Timezone != "" {
		if _, err := time.LoadLocation(payload.Timezone); err != nil {
			return dderrors.ErrBadRequest("unknown timezone: " + payload.Timezone)
		}
	}

	cfg := &schedule.BusinessHoursConfig{Timezone: payload.Timezone}
	for name, raw := range payload.Days {
		idx, ok := utils.DayIndex(name)
		if !ok {
			return dderrors.ErrBadRequest("unknown day name: " + name)
		}
		cfg.Days[idx] = raw
	}
	return s.tenantRepo.UpsertBusinessHours(tenantID, cfg)
}

func (s *AdminService) ListCalls(tenantID int, status string) ([]db.OutboundCall, error) {
	return s.callRepo.ListCalls(tenantID, status)
}
