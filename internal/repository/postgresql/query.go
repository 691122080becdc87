package postgresql

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// buildSet turns a column/value map into a SET clause starting at placeholder $start.
// Columns are sorted so the generated SQL is stable.
func buildSet(updates map[string]interface{}, start int) (string, []interface{}, int) {
	cols := make([]string, 0, len(updates))
	for col := range updates {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	setClauses := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	i := start
	for _, col := range cols {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, updates[col])
		i++
	}
	return strings.Join(setClauses, ", "), args, i
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
