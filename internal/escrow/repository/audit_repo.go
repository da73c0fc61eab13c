package repository

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

// AuditEvent is one persisted row of the append-only transition log.
type AuditEvent struct {
	ID        string    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	EventType string    `json:"event_type"`
	Account   string    `json:"account,omitempty"`
	Amount    int64     `json:"amount"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditRepository mirrors committed transitions into Postgres for external
// reads. The engine's in-memory store stays the source of truth; this table
// is an observability surface, so writes are best-effort.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the escrow_events table if it does not exist.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS escrow_events (
    id         uuid PRIMARY KEY,
    project_id bigint      NOT NULL,
    event_type text        NOT NULL,
    account    text        NOT NULL DEFAULT '',
    amount     bigint      NOT NULL DEFAULT 0,
    success    boolean     NOT NULL DEFAULT false,
    created_at timestamptz NOT NULL
);
CREATE INDEX IF NOT EXISTS escrow_events_project_idx ON escrow_events (project_id, created_at);
`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Record appends one transition row.
func (r *AuditRepository) Record(ctx context.Context, ev domain.Event) error {
	const q = `
INSERT INTO escrow_events (id, project_id, event_type, account, amount, success, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := r.db.ExecContext(ctx, q,
		uuid.New().String(),
		ev.ProjectID,
		string(ev.Type),
		ev.Account,
		ev.Amount,
		ev.Success,
		ev.Timestamp,
	)
	return err
}

// Notify lets the repository act as a notification sink. Failures are
// logged, never propagated to the originating operation.
func (r *AuditRepository) Notify(ctx context.Context, ev domain.Event) {
	if err := r.Record(ctx, ev); err != nil {
		log.Printf("[warn] operation=audit_record project_id=%d type=%s error=%v", ev.ProjectID, ev.Type, err)
	}
}

// ListByProject returns a project's audit trail in commit order.
func (r *AuditRepository) ListByProject(ctx context.Context, projectID uint64) ([]AuditEvent, error) {
	const q = `
SELECT id, project_id, event_type, account, amount, success, created_at
FROM escrow_events
WHERE project_id = $1
ORDER BY created_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AuditEvent, 0, 16)
	for rows.Next() {
		var ev AuditEvent
		if err := rows.Scan(&ev.ID, &ev.ProjectID, &ev.EventType, &ev.Account, &ev.Amount, &ev.Success, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
