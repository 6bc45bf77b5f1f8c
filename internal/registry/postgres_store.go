package registry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/dartfin/pkg/database"
)

const companiesSchema = `
	CREATE TABLE IF NOT EXISTS companies (
		seq         INTEGER PRIMARY KEY,
		corp_code   TEXT NOT NULL,
		corp_name   TEXT NOT NULL,
		stock_code  TEXT NOT NULL DEFAULT '',
		modify_date TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_corp_name ON companies (corp_name);
	CREATE INDEX IF NOT EXISTS idx_corp_code ON companies (corp_code);
	CREATE INDEX IF NOT EXISTS idx_stock_code ON companies (stock_code);
`

// PostgresStore persists the snapshot in the companies table.
// seq keeps catalog order; Save replaces all rows in one transaction.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a Postgres-backed store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the companies table and its indexes
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Pool.Exec(ctx, companiesSchema); err != nil {
		return fmt.Errorf("migrate companies: %w", err)
	}
	return nil
}

// Load returns all companies ordered by catalog position
func (s *PostgresStore) Load(ctx context.Context) ([]Company, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT corp_code, corp_name, stock_code, modify_date
		FROM companies
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	companies := make([]Company, 0, 1024)
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.CorpCode, &c.CorpName, &c.StockCode, &c.ModifyDate); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}

	if len(companies) == 0 {
		return nil, ErrStoreEmpty
	}
	return companies, nil
}

// Save replaces every row with companies
func (s *PostgresStore) Save(ctx context.Context, companies []Company) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		// DELETE rather than TRUNCATE: readers keep seeing the old rows until commit
		if _, err := tx.Exec(ctx, `DELETE FROM companies`); err != nil {
			return fmt.Errorf("clear companies: %w", err)
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"companies"},
			[]string{"seq", "corp_code", "corp_name", "stock_code", "modify_date"},
			pgx.CopyFromSlice(len(companies), func(i int) ([]any, error) {
				c := companies[i]
				return []any{i, c.CorpCode, c.CorpName, c.StockCode, c.ModifyDate}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy companies: %w", err)
		}
		return nil
	})
}
