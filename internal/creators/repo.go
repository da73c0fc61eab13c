package creators

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo answers creator authorization checks from the project_creators table.
// Granting and revoking rows is owned by an external access-control service;
// this repo only reads.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) IsAuthorizedCreator(ctx context.Context, accountID string) (bool, error) {
	if accountID == "" {
		return false, nil
	}

	const q = `
select exists (
  select 1 from project_creators
  where account_id = $1 and revoked_at is null
);
`
	var ok bool
	if err := r.db.QueryRow(ctx, q, accountID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
