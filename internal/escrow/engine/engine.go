package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

// Authorizer answers whether an account may create projects.
type Authorizer interface {
	IsAuthorizedCreator(ctx context.Context, accountID string) (bool, error)
}

// Transferer moves value to an account. A transfer is atomic from the
// engine's point of view: it either fully succeeds or reports an error.
type Transferer interface {
	Transfer(ctx context.Context, toAccount string, amount int64) error
}

// Clock supplies the current time, monotonic non-decreasing across calls.
type Clock interface {
	Now() time.Time
}

// Notifier receives one event per committed state transition. Notifications
// are observable side effects only; the engine never reads them back.
type Notifier interface {
	Notify(ctx context.Context, ev domain.Event)
}

// Engine is the funds-accounting state machine. All monetary operations on a
// project are serialized by that project's lock; the lock is held across the
// external transfer so every bookkeeping mutation commits before control
// leaves the engine, and a failed transfer rolls the operation back under
// the same lock.
type Engine struct {
	store    *Store
	auth     Authorizer
	transfer Transferer
	clock    Clock
	notify   Notifier
}

func New(store *Store, auth Authorizer, transfer Transferer, clock Clock, notify Notifier) *Engine {
	return &Engine{
		store:    store,
		auth:     auth,
		transfer: transfer,
		clock:    clock,
		notify:   notify,
	}
}

// CreateProject registers a new open project for an authorized creator.
func (e *Engine) CreateProject(ctx context.Context, creator string, req domain.CreateProjectRequest) (*domain.Project, error) {
	ok, err := e.auth.IsAuthorizedCreator(ctx, creator)
	if err != nil {
		return nil, fmt.Errorf("check creator authorization: %w", err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if req.GoalAmount <= 0 {
		return nil, fmt.Errorf("%w: goal amount must be positive", domain.ErrInvalidInput)
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}

	now := e.clock.Now()
	p := &domain.Project{
		Creator:     creator,
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Deadline:    now.Add(req.Duration),
		CreatedAt:   now,
	}
	e.store.insert(p)

	e.emit(ctx, domain.Event{
		Type:      domain.EventProjectCreated,
		ProjectID: p.ID,
		Account:   creator,
		Timestamp: now,
	})

	snapshot := *p
	return &snapshot, nil
}

// Fund contributes amount toward the project's goal. A contribution that
// exceeds the remaining capacity is capped: only the capped portion is
// credited to the ledger and the surplus is transferred straight back to the
// contributor. The ledger and raised total are updated before the surplus
// transfer is initiated.
func (e *Engine) Fund(ctx context.Context, id uint64, contributor string, amount int64) (*domain.FundResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	p, lock, err := e.store.forUpdate(id)
	if err != nil {
		return nil, err
	}
	lock.Lock()
	defer lock.Unlock()

	now := e.clock.Now()
	if !now.Before(p.Deadline) {
		return nil, domain.ErrDeadlinePassed
	}

	needed := p.GoalAmount - p.FundsRaised
	accepted := amount
	var surplus int64
	if amount > needed {
		accepted = needed
		surplus = amount - needed
	}

	prevRaised := p.FundsRaised
	prevEntry, hadEntry := e.store.entry(id, contributor)

	if accepted > 0 {
		p.FundsRaised += accepted
		e.store.setEntry(id, contributor, prevEntry+accepted)
	}

	if surplus > 0 {
		if err := e.transfer.Transfer(ctx, contributor, surplus); err != nil {
			p.FundsRaised = prevRaised
			if hadEntry {
				e.store.setEntry(id, contributor, prevEntry)
			} else {
				e.store.removeEntry(id, contributor)
			}
			return nil, fmt.Errorf("%w: return surplus: %v", domain.ErrTransferFailed, err)
		}
	}

	if accepted > 0 {
		e.emit(ctx, domain.Event{
			Type:      domain.EventFunded,
			ProjectID: id,
			Account:   contributor,
			Amount:    accepted,
			Timestamp: now,
		})
	}
	if surplus > 0 {
		e.emit(ctx, domain.Event{
			Type:      domain.EventExcessRefunded,
			ProjectID: id,
			Account:   contributor,
			Amount:    surplus,
			Timestamp: now,
		})
	}

	return &domain.FundResult{Accepted: accepted, Surplus: surplus}, nil
}

// Finalize performs the one-time transition at or after the deadline. A
// project that reached its goal pays out the raised amount to its creator;
// the payout transfer failing rolls the whole transition back so it can be
// retried. A project short of its goal is marked failed, enabling refunds.
func (e *Engine) Finalize(ctx context.Context, id uint64) (*domain.Project, error) {
	p, lock, err := e.store.forUpdate(id)
	if err != nil {
		return nil, err
	}
	lock.Lock()
	defer lock.Unlock()

	now := e.clock.Now()
	if now.Before(p.Deadline) {
		return nil, domain.ErrDeadlineNotReached
	}
	if p.Finalized {
		return nil, domain.ErrAlreadyFinalized
	}

	if p.FundsRaised >= p.GoalAmount {
		payout := p.FundsRaised
		p.FundsRaised = 0
		p.Finalized = true
		e.store.addSucceeded(1)

		if err := e.transfer.Transfer(ctx, p.Creator, payout); err != nil {
			p.FundsRaised = payout
			p.Finalized = false
			e.store.addSucceeded(-1)
			return nil, fmt.Errorf("%w: pay out creator: %v", domain.ErrTransferFailed, err)
		}

		e.emit(ctx, domain.Event{
			Type:      domain.EventPayoutWithdrawn,
			ProjectID: id,
			Account:   p.Creator,
			Amount:    payout,
			Timestamp: now,
		})
		e.emit(ctx, domain.Event{
			Type:      domain.EventFinalized,
			ProjectID: id,
			Success:   true,
			Timestamp: now,
		})
	} else {
		p.Failed = true
		p.Finalized = true
		e.store.addFailed(1)

		e.emit(ctx, domain.Event{
			Type:      domain.EventFinalized,
			ProjectID: id,
			Success:   false,
			Timestamp: now,
		})
	}

	snapshot := *p
	return &snapshot, nil
}

// Refund returns a contributor's full ledger balance on a failed project.
// The ledger entry is zeroed before the transfer is initiated and restored
// if the transfer fails.
func (e *Engine) Refund(ctx context.Context, id uint64, contributor string) (int64, error) {
	p, lock, err := e.store.forUpdate(id)
	if err != nil {
		return 0, err
	}
	lock.Lock()
	defer lock.Unlock()

	if !p.Failed {
		return 0, domain.ErrNotFailed
	}

	amount, _ := e.store.entry(id, contributor)
	if amount <= 0 {
		return 0, domain.ErrNoFunds
	}

	e.store.setEntry(id, contributor, 0)

	if err := e.transfer.Transfer(ctx, contributor, amount); err != nil {
		e.store.setEntry(id, contributor, amount)
		return 0, fmt.Errorf("%w: refund contributor: %v", domain.ErrTransferFailed, err)
	}

	e.emit(ctx, domain.Event{
		Type:      domain.EventRefunded,
		ProjectID: id,
		Account:   contributor,
		Amount:    amount,
		Timestamp: e.clock.Now(),
	})

	return amount, nil
}

// WithdrawCommitment lets a contributor reclaim their full balance while the
// project is still undecided. The vacated capacity may be refilled by later
// contributions.
func (e *Engine) WithdrawCommitment(ctx context.Context, id uint64, contributor string) (int64, error) {
	p, lock, err := e.store.forUpdate(id)
	if err != nil {
		return 0, err
	}
	lock.Lock()
	defer lock.Unlock()

	now := e.clock.Now()
	if !now.Before(p.Deadline) {
		return 0, domain.ErrDeadlinePassed
	}
	if p.Finalized {
		return 0, domain.ErrAlreadyFinalized
	}

	amount, _ := e.store.entry(id, contributor)
	if amount <= 0 {
		return 0, domain.ErrNoFunds
	}

	p.FundsRaised -= amount
	e.store.setEntry(id, contributor, 0)

	if err := e.transfer.Transfer(ctx, contributor, amount); err != nil {
		p.FundsRaised += amount
		e.store.setEntry(id, contributor, amount)
		return 0, fmt.Errorf("%w: return commitment: %v", domain.ErrTransferFailed, err)
	}

	e.emit(ctx, domain.Event{
		Type:      domain.EventCommitmentWithdrawn,
		ProjectID: id,
		Account:   contributor,
		Amount:    amount,
		Timestamp: now,
	})

	return amount, nil
}

// GetProject returns a copy of the project record.
func (e *Engine) GetProject(ctx context.Context, id uint64) (*domain.Project, error) {
	p, lock, err := e.store.forUpdate(id)
	if err != nil {
		return nil, err
	}
	lock.Lock()
	defer lock.Unlock()

	snapshot := *p
	return &snapshot, nil
}

// FundingPercentage returns floor(fundsRaised * 100 / goalAmount).
func (e *Engine) FundingPercentage(ctx context.Context, id uint64) (int64, error) {
	p, lock, err := e.store.forUpdate(id)
	if err != nil {
		return 0, err
	}
	lock.Lock()
	defer lock.Unlock()

	// Creation rejects non-positive goals; guard anyway.
	if p.GoalAmount <= 0 {
		return 0, fmt.Errorf("%w: project has no goal amount", domain.ErrInvalidInput)
	}
	return p.FundsRaised * 100 / p.GoalAmount, nil
}

// LedgerEntry returns the raw ledger balance for (id, contributor). A
// contributor with no recorded contribution reads as zero.
func (e *Engine) LedgerEntry(ctx context.Context, id uint64, contributor string) (int64, error) {
	_, lock, err := e.store.forUpdate(id)
	if err != nil {
		return 0, err
	}
	lock.Lock()
	defer lock.Unlock()

	amount, _ := e.store.entry(id, contributor)
	return amount, nil
}

// Counters returns the aggregate finalize outcome counters.
func (e *Engine) Counters(ctx context.Context) domain.Counters {
	return e.store.countersSnapshot()
}

// DueProjects returns the ids of open projects whose deadline is at or
// before now, in id order. Used by the deadline sweeper.
func (e *Engine) DueProjects(ctx context.Context, now time.Time) []uint64 {
	var due []uint64
	for _, id := range e.store.projectIDs() {
		p, lock, err := e.store.forUpdate(id)
		if err != nil {
			continue
		}
		lock.Lock()
		if !p.Finalized && !now.Before(p.Deadline) {
			due = append(due, id)
		}
		lock.Unlock()
	}
	return due
}

func (e *Engine) emit(ctx context.Context, ev domain.Event) {
	if e.notify != nil {
		e.notify.Notify(ctx, ev)
	}
}
