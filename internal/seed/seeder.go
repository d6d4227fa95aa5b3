// Package seed sets up the database schema and loads a small sample
// organization used for local development: a department hierarchy, user
// and employee records, and documents left in the messy states the
// reconciler exists to clean up.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"sirtis/internal/repository/postgres"
)

// Seeder manages schema setup and sample data for one environment.
type Seeder struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	prefix string
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(pool *pgxpool.Pool, tables *postgres.TableNames, prefix string, logger *slog.Logger) *Seeder {
	return &Seeder{
		pool:   pool,
		tables: tables,
		prefix: prefix,
		logger: logger,
	}
}

// EnsureSchema creates the tables and indexes if they don't exist.
func (s *Seeder) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return fmt.Errorf("enable uuid extension: %w", err)
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				name TEXT NOT NULL,
				parent_id UUID REFERENCES %s(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ DEFAULT NOW(),
				UNIQUE(name, parent_id)
			)`, s.tables.Departments, s.tables.Departments),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				email TEXT NOT NULL UNIQUE,
				first_name TEXT,
				last_name TEXT,
				department TEXT,
				created_at TIMESTAMPTZ DEFAULT NOW()
			)`, s.tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				user_id UUID REFERENCES %s(id) ON DELETE SET NULL,
				email TEXT,
				first_name TEXT,
				last_name TEXT,
				department TEXT,
				department_id UUID REFERENCES %s(id) ON DELETE SET NULL,
				created_at TIMESTAMPTZ DEFAULT NOW()
			)`, s.tables.Employees, s.tables.Users, s.tables.Departments),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				title TEXT NOT NULL,
				department TEXT NOT NULL DEFAULT '',
				department_id UUID REFERENCES %s(id) ON DELETE SET NULL,
				category TEXT,
				folder_path TEXT NOT NULL DEFAULT '',
				custom_metadata JSONB DEFAULT '{}'::jsonb,
				uploaded_by TEXT NOT NULL DEFAULT '',
				is_personal BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ DEFAULT NOW(),
				updated_at TIMESTAMPTZ DEFAULT NOW()
			)`, s.tables.Documents, s.tables.Departments),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				document_id UUID NOT NULL,
				actor_id TEXT NOT NULL DEFAULT '',
				action TEXT NOT NULL,
				created_at TIMESTAMPTZ DEFAULT NOW()
			)`, s.tables.AuditLog),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				path TEXT NOT NULL UNIQUE,
				department TEXT NOT NULL,
				category_label TEXT NOT NULL,
				document_count INTEGER NOT NULL DEFAULT 0,
				metadata JSONB DEFAULT '{}'::jsonb,
				active BOOLEAN NOT NULL DEFAULT TRUE,
				updated_at TIMESTAMPTZ DEFAULT NOW()
			)`, s.tables.FolderAggregates),
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sdocuments_department ON %s(LOWER(TRIM(department)))`, s.prefix, s.tables.Documents),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sdocuments_folder_path ON %s(folder_path)`, s.prefix, s.tables.Documents),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%saudit_log_document ON %s(document_id, created_at)`, s.prefix, s.tables.AuditLog),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfolder_aggregates_active ON %s(active) WHERE active`, s.prefix, s.tables.FolderAggregates),
	}
	for _, stmt := range indexes {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}

// DropTables drops all tables in reverse dependency order.
func (s *Seeder) DropTables(ctx context.Context) error {
	tables := []string{
		s.tables.FolderAggregates,
		s.tables.AuditLog,
		s.tables.Documents,
		s.tables.Employees,
		s.tables.Users,
		s.tables.Departments,
	}
	for _, table := range tables {
		if _, err := s.pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		s.logger.Info("dropped table", "table", table)
	}
	return nil
}

// ClearData deletes all rows but keeps the schema.
func (s *Seeder) ClearData(ctx context.Context) error {
	tables := []string{
		s.tables.FolderAggregates,
		s.tables.AuditLog,
		s.tables.Documents,
		s.tables.Employees,
		s.tables.Users,
		s.tables.Departments,
	}
	for _, table := range tables {
		if _, err := s.pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
