package profile

import (
	"bytes"
	"testing"
	"time"

	"github.com/Murari1104/pharmaAi/internal/store"
	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: ":memory:"}, &gorm.Config{})
	require.NoError(t, err)

	// One pooled connection, or each would see its own empty in-memory db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	st, err := store.NewWithDB(db)
	require.NoError(t, err)

	svc := NewService(st, zap.NewNop())
	require.NoError(t, svc.SeedDefault())
	return svc
}

func TestSeedDefault(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "USR-2024-001", p.UserID)

	// Seeding again must not overwrite edits
	_, err = svc.Update(Details{Name: "Jane Doe", Phone: p.Phone})
	require.NoError(t, err)
	require.NoError(t, svc.SeedDefault())

	p, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
}

func TestUpdate(t *testing.T) {
	svc := setupService(t)

	p, err := svc.Update(Details{Name: "  Jane Doe ", Phone: "+1 (555) 999-0000"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "+1 (555) 999-0000", p.Phone)
	// User id carries forward when not supplied
	assert.Equal(t, "USR-2024-001", p.UserID)
}

func TestUpdate_EmptyName(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Update(Details{Name: "  "})
	require.Error(t, err)

	p, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "John Doe", p.Name)
}

func TestQRCard(t *testing.T) {
	svc := setupService(t)

	png, err := svc.QRCard(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 256)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}

func TestQRCard_DefaultSize(t *testing.T) {
	svc := setupService(t)

	png, err := svc.QRCard(time.Now(), 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
