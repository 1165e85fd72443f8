// Package memory provides an in-process implementation of the repository
// interfaces. It enforces the same constraints as the PostgreSQL schema
// (unique project names, task ownership, cascading deletes) and supports
// transactions with snapshot rollback.
package memory

import (
	"context"
	"sync"
	"time"

	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

// Store holds all rows. A single mutex serializes every operation; ExecTx
// holds it for the lifetime of the transaction.
type Store struct {
	mu            sync.Mutex
	projects      map[int64]models.Project
	tasks         map[int64]models.Task
	nextProjectID int64
	nextTaskID    int64

	// Now stamps created_at/updated_at. Tests may replace it.
	Now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		projects:      make(map[int64]models.Project),
		tasks:         make(map[int64]models.Task),
		nextProjectID: 1,
		nextTaskID:    1,
		Now:           time.Now,
	}
}

type txKey struct{}

// inTx reports whether ctx carries a transaction opened on this store.
func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// with runs fn under the store lock unless ctx already holds it.
func (s *Store) with(ctx context.Context, fn func() error) error {
	if s.inTx(ctx) {
		return fn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

type snapshot struct {
	projects      map[int64]models.Project
	tasks         map[int64]models.Task
	nextProjectID int64
	nextTaskID    int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		projects:      make(map[int64]models.Project, len(s.projects)),
		tasks:         make(map[int64]models.Task, len(s.tasks)),
		nextProjectID: s.nextProjectID,
		nextTaskID:    s.nextTaskID,
	}
	for id, p := range s.projects {
		snap.projects[id] = cloneProject(p)
	}
	for id, t := range s.tasks {
		snap.tasks[id] = cloneTask(t)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.projects = snap.projects
	s.tasks = snap.tasks
	s.nextProjectID = snap.nextProjectID
	s.nextTaskID = snap.nextTaskID
}

// TransactionManager implements repositories.TransactionManager over a Store
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager for store
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return &TransactionManager{store: store}
}

// ExecTx runs fn with the store locked. Any error or panic restores the
// state captured when the transaction began.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) (err error) {
	s := tm.store
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		return err
	}
	committed = true
	return nil
}

// HealthChecker reports the in-memory store as always available.
type HealthChecker struct{}

// Name returns the checker name.
func (HealthChecker) Name() string { return "memory" }

// Check always succeeds.
func (HealthChecker) Check(ctx context.Context) error { return ctx.Err() }

func cloneProject(p models.Project) models.Project {
	if p.Team != nil {
		p.Team = append([]string(nil), p.Team...)
	}
	p.Description = cloneString(p.Description)
	p.Category = cloneString(p.Category)
	if p.Budget != nil {
		b := *p.Budget
		p.Budget = &b
	}
	if p.Deadline != nil {
		d := *p.Deadline
		p.Deadline = &d
	}
	p.Tasks = nil
	return p
}

func cloneTask(t models.Task) models.Task {
	t.Description = cloneString(t.Description)
	t.Assignee = cloneString(t.Assignee)
	if t.Deadline != nil {
		d := *t.Deadline
		t.Deadline = &d
	}
	return t
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
