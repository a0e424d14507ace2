package repository

import (
	"database/sql"
	"dialdesk/internal/db"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/lib/pq"
)

type CallRepository struct {
	DB *sql.DB
}

func NewCallRepository(database *sql.DB) *CallRepository {
	return &CallRepository{DB: database}
}

const callColumns = `id, tenant_id, contact_name, contact_phone, script, status,
	COALESCE(reason, ''), next_attempt_at, COALESCE(provider_sid, ''), created_at, updated_at`

func scanCall(row interface{ Scan(...interface{}) error }) (*db.OutboundCall, error) {
	var c db.OutboundCall
	err := row.Scan(&c.ID, &c.TenantID, &c.ContactName, &c.ContactPhone, &c.Script,
		&c.Status, &c.Reason, &c.NextAttemptAt, &c.ProviderSID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CallRepository) CreateCall(call *db.OutboundCall) error {
	query := `
	INSERT INTO outbound_calls (tenant_id, contact_name, contact_phone, script, status, reason, next_attempt_at, provider_sid, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), NOW(), NOW())
	RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(query, call.TenantID, call.ContactName, call.ContactPhone,
		call.Script, call.Status, call.Reason, call.NextAttemptAt, call.ProviderSID,
	).Scan(&call.ID, &call.CreatedAt, &call.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating outbound call: %w", err)
	}
	return nil
}

func (r *CallRepository) GetCall(id int) (*db.OutboundCall, error) {
	call, err := scanCall(r.DB.QueryRow(
		`SELECT `+callColumns+` FROM outbound_calls WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying call %d: %w", id, err)
	}
	return call, nil
}

func (r *CallRepository) ListCalls(tenantID int, status string) ([]db.OutboundCall, error) {
	query := `SELECT ` + callColumns + ` FROM outbound_calls WHERE tenant_id = $1`
	args := []interface{}{tenantID}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(len(args)+1)
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing calls for tenant %d: %w", tenantID, err)
	}
	defer rows.Close()

	var calls []db.OutboundCall
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning call row: %w", err)
		}
		calls = append(calls, *call)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating call rows: %w", err)
	}
	return calls, nil
}

// GetDueDeferredCalls returns deferred calls whose next attempt time has
// passed, oldest first.
func (r *CallRepository) GetDueDeferredCalls(now time.Time) ([]db.OutboundCall, error) {
	rows, err := r.DB.Query(
		`SELECT `+callColumns+` FROM outbound_calls
		 WHERE status = $1 AND next_attempt_at <= $2
		 ORDER BY next_attempt_at ASC`, db.CallStatusDeferred, now)
	if err != nil {
		return nil, fmt.Errorf("error querying due deferred calls: %w", err)
	}
	defer rows.Close()

	var calls []db.OutboundCall
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning deferred call: %w", err)
		}
		calls = append(calls, *call)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating deferred calls: %w", err)
	}
	return calls, nil
}

func (r *CallRepository) MarkDispatched(id int, providerSID string) error {
	_, err := r.DB.Exec(
		`UPDATE outbound_calls SET status = $1, provider_sid = $2, reason = NULL, next_attempt_at = NULL, updated_at = NOW() WHERE id = $3`,
		db.CallStatusDispatched, providerSID, id)
	if err != nil {
		return fmt.Errorf("error marking call %d dispatched: %w", id, err)
	}
	return nil
}

func (r *CallRepository) DeferCall(id int, nextAttempt time.Time, reason string) error {
	_, err := r.DB.Exec(
		`UPDATE outbound_calls SET status = $1, next_attempt_at = $2, reason = $3, updated_at = NOW() WHERE id = $4`,
		db.CallStatusDeferred, nextAttempt, reason, id)
	if err != nil {
		return fmt.Errorf("error deferring call %d: %w", id, err)
	}
	return nil
}

func (r *CallRepository) MarkFailed(ids []int, reason string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(
		`UPDATE outbound_calls SET status = $1, reason = $2, next_attempt_at = NULL, updated_at = NOW() WHERE id = ANY($3)`,
		db.CallStatusFailed, reason, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error marking calls failed: %w", err)
	}
	if rowsAffected, err := result.RowsAffected(); err == nil {
		log.Printf("Marked %d calls as '%s'", rowsAffected, db.CallStatusFailed)
	}
	return nil
}
