package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// store implementations serve pooled queries and transactional ones.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Stores struct {
	db DBTX
}

func NewStores(db DBTX) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Evaluations() EvaluationStore {
	return &evaluationStore{db: s.db}
}

func (s *Stores) Assignments() AssignmentStore {
	return &assignmentStore{db: s.db}
}

func (s *Stores) Summaries() SummaryStore {
	return &summaryStore{db: s.db}
}

func (s *Stores) Ideas() IdeaStore {
	return &ideaStore{db: s.db}
}

func (s *Stores) Evaluators() EvaluatorStore {
	return &evaluatorStore{db: s.db}
}

func (s *Stores) EventLogs() EventLogStore {
	return &eventLogStore{db: s.db}
}
