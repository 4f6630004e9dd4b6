// exposes the read-only scheduling store backed by PostgreSQL
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

type Store struct {
	db *sqlx.DB
}

// compile-time check that Store satisfies the engine's port
var _ scheduling.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}
