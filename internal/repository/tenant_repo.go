package repository

import (
	"database/sql"
	"dialdesk/internal/db"
	"dialdesk/internal/schedule"
	"encoding/json"
	"fmt"
)

type TenantRepository struct {
	DB *sql.DB
}

func NewTenantRepository(database *sql.DB) *TenantRepository {
	return &TenantRepository{DB: database}
}

func (r *TenantRepository) GetTenant(id int) (*db.Tenant, error) {
	var t db.Tenant
	err := r.DB.QueryRow(
		`SELECT id, name, COALESCE(timezone, ''), created_at FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Timezone, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying tenant %d: %w", id, err)
	}
	return &t, nil
}

// GetBusinessHours loads the tenant's business-hours configuration. A
// missing row yields (nil, nil): the schedule engine then applies its
// default policy. Day blobs are passed through untouched so the window
// resolver can deal with whichever form the dashboard stored.
func (r *TenantRepository) GetBusinessHours(tenantID int) (*schedule.BusinessHoursConfig, error) {
	var row db.BusinessHoursRow
	err := r.DB.QueryRow(
		`SELECT timezone, sunday, monday, tuesday, wednesday, thursday, friday, saturday
		 FROM business_hours WHERE tenant_id = $1`, tenantID,
	).Scan(&row.Timezone, &row.Days[0], &row.Days[1], &row.Days[2], &row.Days[3],
		&row.Days[4], &row.Days[5], &row.Days[6])
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying business hours for tenant %d: %w", tenantID, err)
	}

	cfg := &schedule.BusinessHoursConfig{}
	if row.Timezone.Valid {
		cfg.Timezone = row.Timezone.String
	}
	for i, day := range row.Days {
		if day.Valid {
			cfg.Days[i] = json.RawMessage(day.String)
		}
	}
	return cfg, nil
}

func (r *TenantRepository) UpsertBusinessHours(tenantID int, cfg *schedule.BusinessHoursConfig) error {
	days := make([]interface{}, 7)
	for i, raw := range cfg.Days {
		if len(raw) > 0 {
			days[i] = string(raw)
		}
	}

	query := `
	INSERT INTO business_hours (tenant_id, timezone, sunday, monday, tuesday, wednesday, thursday, friday, saturday, updated_at)
	VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, NOW())
	ON CONFLICT (tenant_id) DO UPDATE SET
		timezone = EXCLUDED.timezone,
		sunday = EXCLUDED.sunday,
		monday = EXCLUDED.monday,
		tuesday = EXCLUDED.tuesday,
		wednesday = EXCLUDED.wednesday,
		thursday = EXCLUDED.thursday,
		friday = EXCLUDED.friday,
		saturday = EXCLUDED.saturday,
		updated_at = NOW()
	`
	args := append([]interface{}{tenantID, cfg.Timezone}, days...)
	if _, err := r.DB.Exec(query, args...); err != nil {
		return fmt.Errorf("error upserting business hours for tenant %d: %w", tenantID, err)
	}
	return nil
}
