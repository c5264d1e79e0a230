//go:build integration

// Package integration runs the services and the HTTP API against a real
// PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/erp/erpcore/internal/infrastructure/migration"
	"github.com/erp/erpcore/internal/infrastructure/persistence"
	"github.com/erp/erpcore/migrations"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sharedDSN points at the container started by TestMain
var sharedDSN string

// mutableTables are emptied between tests. Roles and accounts keep the
// rows seeded by the migrations.
var mutableTables = []string{
	"transactions", "invoices", "inventory_alerts", "inventory_movements",
	"products", "categories", "suppliers", "users",
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("erp_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start PostgreSQL container: %v\n", err)
		os.Exit(1)
	}

	code := func() int {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = container.Terminate(ctx)
		}()

		sharedDSN, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get connection string: %v\n", err)
			return 1
		}
		if err := migrate(sharedDSN); err != nil {
			fmt.Fprintf(os.Stderr, "failed to migrate: %v\n", err)
			return 1
		}
		return m.Run()
	}()
	os.Exit(code)
}

func migrate(dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

// newTestDB connects to the shared database and empties the mutable tables
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	l := gormlogger.Discard
	if os.Getenv("TEST_DB_DEBUG") != "" {
		l = gormlogger.Default.LogMode(gormlogger.Info)
	}
	db, err := persistence.Open(gormpostgres.Open(sharedDSN), l)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, table := range mutableTables {
		require.NoError(t, db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error)
	}
	// Seeded defaults may have been changed by an earlier test
	require.NoError(t, db.Exec(`UPDATE accounts SET is_active = TRUE, is_default = TRUE
		WHERE code IN ('1105', '2205', '3105', '4135', '5195')`).Error)
	require.NoError(t, db.Exec(`DELETE FROM accounts
		WHERE code NOT IN ('1105', '2205', '3105', '4135', '5195')`).Error)
	return db
}
