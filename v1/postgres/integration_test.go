package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcwait "github.com/testcontainers/testcontainers-go/wait"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/trek/v1/processor"
)

// setupPostgresContainer starts postgres:15 and returns a config pointing at it.
func setupPostgresContainer(ctx context.Context, t *testing.T) Connection {
	t.Helper()
	port, err := getFreePort()
	require.NoError(t, err)
	portStr := fmt.Sprintf("%d", port)

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = nat.PortMap{
				"5432/tcp": []nat.PortBinding{{HostPort: portStr}},
			}
		},
		WaitingFor: tcwait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)

	conn := Connection{
		Host:     host,
		Port:     portStr,
		User:     "testuser",
		Password: "testpass",
		DbName:   "testdb",
		SSLMode:  "disable",
	}
	require.NoError(t, waitForPostgresReady(conn.dsn(), 30*time.Second))
	return conn
}

// waitForPostgresReady pings until the server accepts connections. The log
// line above is printed once during initdb too, so it alone is not enough.
func waitForPostgresReady(dsn string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
			_ = db.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("postgres not ready after %s: %w", timeout, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func TestPostgresExporterWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	conn := setupPostgresContainer(ctx, t)

	var exp processor.Exporter
	app := fxtest.New(t,
		fx.Provide(func() Config {
			return Config{Connection: conn, AutoMigrate: true}
		}),
		FXModule,
		fx.Populate(&exp),
	)
	app.RequireStart()

	span := testSpan(t, "00f067aa0ba902b7")
	require.NoError(t, wait(t, exp.Export([]sdktrace.ReadOnlySpan{span})))
	// A second insert of the same span is skipped.
	require.NoError(t, wait(t, exp.Export([]sdktrace.ReadOnlySpan{span})))
	app.RequireStop()

	db, err := sql.Open("postgres", conn.dsn())
	require.NoError(t, err)
	defer db.Close()

	var count int
	var name string
	var elapsed int64
	require.NoError(t, db.QueryRow(
		`SELECT count(*), max(name), max(elapsed_nanos) FROM trek_spans WHERE trace_id = $1`,
		"4bf92f3577b34da6a3ce929d0e0e4736",
	).Scan(&count, &name, &elapsed))
	assert.Equal(t, 1, count)
	assert.Equal(t, "query", name)
	assert.Equal(t, int64(30*time.Millisecond), elapsed)
}
