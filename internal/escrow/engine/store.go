package engine

import (
	"sync"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
)

// Store owns the project registry, the contribution ledger and the aggregate
// counters for one engine instance. It is passed to New explicitly so
// independent engines never share state.
//
// Store does no locking of its own beyond guarding its maps; monetary
// read-then-write sequences are serialized by the per-project locks the
// engine acquires.
type Store struct {
	mu       sync.RWMutex
	nextID   uint64
	projects map[uint64]*domain.Project
	ledger   map[uint64]map[string]int64
	locks    map[uint64]*sync.Mutex
	counters domain.Counters
}

func NewStore() *Store {
	return &Store{
		nextID:   1,
		projects: make(map[uint64]*domain.Project),
		ledger:   make(map[uint64]map[string]int64),
		locks:    make(map[uint64]*sync.Mutex),
	}
}

// insert assigns the next sequential id, registers the project and creates
// its lock and ledger bucket.
func (s *Store) insert(p *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.projects[p.ID] = p
	s.ledger[p.ID] = make(map[string]int64)
	s.locks[p.ID] = &sync.Mutex{}
}

// forUpdate returns the live project record and the lock serializing its
// monetary operations. The caller must hold the lock before reading or
// writing the record.
func (s *Store) forUpdate(id uint64) (*domain.Project, *sync.Mutex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, nil, domain.ErrProjectNotFound
	}
	return p, s.locks[id], nil
}

// entry returns the ledger balance for (id, contributor) and whether the key
// exists. Keys are created on first contribution and zeroed in place after
// refunds and withdrawals, never removed.
func (s *Store) entry(id uint64, contributor string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amount, ok := s.ledger[id][contributor]
	return amount, ok
}

func (s *Store) setEntry(id uint64, contributor string, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger[id][contributor] = amount
}

// removeEntry undoes the creation of a ledger key during rollback.
func (s *Store) removeEntry(id uint64, contributor string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ledger[id], contributor)
}

// ledgerTotal sums all contributor balances for a project.
func (s *Store) ledgerTotal(id uint64) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, amount := range s.ledger[id] {
		total += amount
	}
	return total
}

func (s *Store) addSucceeded(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters.Succeeded = uint64(int64(s.counters.Succeeded) + int64(delta))
}

func (s *Store) addFailed(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters.Failed = uint64(int64(s.counters.Failed) + int64(delta))
}

func (s *Store) countersSnapshot() domain.Counters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.counters
}

// projectIDs returns all registered ids in ascending order of assignment.
func (s *Store) projectIDs() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint64, 0, len(s.projects))
	for id := uint64(1); id < s.nextID; id++ {
		if _, ok := s.projects[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
