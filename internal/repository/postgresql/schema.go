package postgresql

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/google/uuid"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables and indexes if they do not exist.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// localDate moves a DATE column value to local midnight of the same day.
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func localDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := localDate(*t)
	return &d
}

// dateParam formats a date for a DATE parameter so the session time zone cannot shift it.
func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}

func dateParamPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateParam(*t)
	return &s
}
