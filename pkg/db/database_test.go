package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := dialector(Options{DSN: "postgres://localhost/db", Driver: "mysql"})
	require.Error(t, err)
}

func TestDialector_KnownDrivers(t *testing.T) {
	for _, driver := range []string{"", DriverPGX, DriverPQ} {
		d, err := dialector(Options{DSN: "postgres://localhost/db", Driver: driver})
		require.NoError(t, err, driver)
		assert.Equal(t, "postgres", d.Name())
	}
}

func TestPingAndClose(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Ping(context.Background(), gdb))
	require.NoError(t, Close(gdb))
	assert.Error(t, Ping(context.Background(), gdb))
}
