package registry

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/dartfin/pkg/config"
	"github.com/wonny/dartfin/pkg/database"
)

// openTestStore connects to DATABASE_URL or skips
func openTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping Postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, &config.Config{
		Database: config.DatabaseConfig{URL: url, MaxConns: 2, MinConns: 1},
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	s := NewPostgresStore(db)
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	companies := []Company{
		{CorpCode: "00164779", CorpName: "SK하이닉스", StockCode: "000660", ModifyDate: "20230315"},
		{CorpCode: "00126380", CorpName: "삼성전자", StockCode: "005930", ModifyDate: "20230110"},
		{CorpCode: "00434003", CorpName: "다코", ModifyDate: "20170630"},
	}
	require.NoError(t, s.Save(ctx, companies))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, companies, loaded, "catalog order survives persistence")

	require.NoError(t, s.Save(ctx, companies[:1]))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestPostgresStore_EmptyTable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, nil))
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrStoreEmpty)
}
