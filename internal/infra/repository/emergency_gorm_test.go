package repository

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errNoDatabase = errors.New("no database in dry-run tests")

// nopConn satisfies gorm.ConnPool; dry-run sessions never reach it.
type nopConn struct{}

func (nopConn) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (nopConn) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoDatabase
}

func (nopConn) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (nopConn) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

type capturedQuery struct {
	SQL  string
	Vars []any
}

// dryRunDB builds postgres SQL without a server and records every
// statement issued through Scan/Rows.
func dryRunDB(t *testing.T) (*gorm.DB, *[]capturedQuery) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: nopConn{}}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var captured []capturedQuery
	err = db.Callback().Row().After("gorm:row").Register("test:capture", func(tx *gorm.DB) {
		captured = append(captured, capturedQuery{
			SQL:  tx.Statement.SQL.String(),
			Vars: append([]any(nil), tx.Statement.Vars...),
		})
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	return db, &captured
}

func TestCountByMonth_SQL(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewEmergencyGormRepository(db)

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CountByMonth(context.Background(), "BHADRAK", loc); !errors.Is(err, gorm.ErrDryRunModeUnsupported) {
		t.Fatalf("err = %v, want dry-run error", err)
	}

	if len(*captured) != 1 {
		t.Fatalf("captured %d statements, want 1", len(*captured))
	}
	q := (*captured)[0]

	for _, want := range []string{
		"CAST(EXTRACT(YEAR FROM created_at AT TIME ZONE $1) AS INTEGER) AS year",
		"CAST(EXTRACT(MONTH FROM created_at AT TIME ZONE $2) AS INTEGER) AS month",
		"COUNT(*) AS count",
		`FROM "emergencies"`,
		"LOWER(location) = LOWER($3)",
		"GROUP BY year, month, status",
		"ORDER BY year, month, status",
	} {
		if !strings.Contains(q.SQL, want) {
			t.Errorf("SQL missing %q:\n%s", want, q.SQL)
		}
	}
	if want := []any{"Asia/Kolkata", "Asia/Kolkata", "BHADRAK"}; !reflect.DeepEqual(q.Vars, want) {
		t.Errorf("vars = %v, want %v", q.Vars, want)
	}
}

func TestCountByMonth_SQLWithoutLocation(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewEmergencyGormRepository(db)

	_, _ = repo.CountByMonth(context.Background(), "", nil)

	if len(*captured) != 1 {
		t.Fatalf("captured %d statements, want 1", len(*captured))
	}
	q := (*captured)[0]
	if strings.Contains(q.SQL, "WHERE") {
		t.Errorf("unexpected filter:\n%s", q.SQL)
	}
	if want := []any{"UTC", "UTC"}; !reflect.DeepEqual(q.Vars, want) {
		t.Errorf("vars = %v, want %v", q.Vars, want)
	}
}

func TestCountByLocation_SQL(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewEmergencyGormRepository(db)

	_, _ = repo.CountByLocation(context.Background(), "Cuttack")

	if len(*captured) != 1 {
		t.Fatalf("captured %d statements, want 1", len(*captured))
	}
	q := (*captured)[0]
	for _, want := range []string{
		"SELECT location, status, COUNT(*) AS count",
		"LOWER(location) = LOWER($1)",
		"GROUP BY location, status",
		"ORDER BY location, status",
	} {
		if !strings.Contains(q.SQL, want) {
			t.Errorf("SQL missing %q:\n%s", want, q.SQL)
		}
	}
	if want := []any{"Cuttack"}; !reflect.DeepEqual(q.Vars, want) {
		t.Errorf("vars = %v, want %v", q.Vars, want)
	}
}
