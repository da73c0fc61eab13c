package domain

import "time"

// Project is a single funding campaign. A project is created open, accepts
// contributions until its deadline, and is finalized exactly once after the
// deadline into either a payout to the creator or a refundable failure.
type Project struct {
	ID          uint64    `json:"id"`
	Creator     string    `json:"creator"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	GoalAmount  int64     `json:"goal_amount"`
	Deadline    time.Time `json:"deadline"`
	FundsRaised int64     `json:"funds_raised"`
	Finalized   bool      `json:"finalized"`
	Failed      bool      `json:"failed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open reports whether the project still accepts funding operations at now.
func (p *Project) Open(now time.Time) bool {
	return !p.Finalized && now.Before(p.Deadline)
}

// CreateProjectRequest carries the caller-supplied fields of a create call.
type CreateProjectRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	GoalAmount  int64         `json:"goal_amount"`
	Duration    time.Duration `json:"duration"`
}

// FundResult reports how a contribution was split: Accepted was credited to
// the ledger, Surplus was returned to the contributor.
type FundResult struct {
	Accepted int64 `json:"accepted"`
	Surplus  int64 `json:"surplus"`
}

// Counters are the aggregate finalize outcomes across all projects.
type Counters struct {
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
}
