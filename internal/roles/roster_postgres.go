package roles

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

const rosterQueryTimeout = 5 * time.Second

// PostgresRoster reads the staff table. The table is maintained out of
// band; this service only ever asks a single boolean question of it.
type PostgresRoster struct {
	db  *sql.DB
	log *slog.Logger
}

func NewPostgresRoster(db *sql.DB, log *slog.Logger) *PostgresRoster {
	return &PostgresRoster{db: db, log: log}
}

// IsStaff reports whether exactly one staff row exists for userNumber.
// More than one matching row should not be possible; it is logged and
// treated as not found rather than granting staff on a corrupt table.
func (r *PostgresRoster) IsStaff(ctx context.Context, userNumber int64) (bool, error) {
	queryCtx, cancel := context.WithTimeout(ctx, rosterQueryTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(queryCtx,
		`SELECT COUNT(*) FROM staff WHERE user_number = $1`, userNumber,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("staff roster lookup for %d: %w", userNumber, err)
	}

	switch {
	case count == 1:
		return true, nil
	case count > 1:
		r.log.Warn("multiple staff rows for user number, check table integrity",
			"user_number", userNumber, "rows", count)
		return false, nil
	default:
		return false, nil
	}
}
