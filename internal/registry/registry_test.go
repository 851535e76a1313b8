package registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leozex777/syncschwab/internal/cache"
	"github.com/leozex777/syncschwab/internal/store"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.json")
	fs := store.NewFileStore(path, cache.NewMemory("reg", time.Minute))
	return New(fs), path
}

func TestAddAndReload(t *testing.T) {
	ctx := context.Background()
	reg, path := newTestRegistry(t)

	added, err := reg.Add(ctx, "hash1", "12345", "Cuenta Uno", map[string]any{"ratio": 0.5})
	require.NoError(t, err)
	assert.Equal(t, "slave_1", added.ID)
	assert.True(t, added.Enabled)

	// Recargar desde disco con un registro nuevo: mismo record.
	fresh := New(store.NewFileStore(path, nil))
	got, err := fresh.Get(ctx, "slave_1")
	require.NoError(t, err)
	assert.Equal(t, added.AccountHash, got.AccountHash)
	assert.Equal(t, added.AccountNumber, got.AccountNumber)
	assert.Equal(t, added.Name, got.Name)
	assert.Equal(t, added.Enabled, got.Enabled)
	assert.Equal(t, 0.5, got.Settings["ratio"])
}

func TestIDsNotReusedAfterRemove(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	c1, err := reg.Add(ctx, "h1", "n1", "uno", nil)
	require.NoError(t, err)
	c2, err := reg.Add(ctx, "h2", "n2", "dos", nil)
	require.NoError(t, err)
	require.Equal(t, "slave_1", c1.ID)
	require.Equal(t, "slave_2", c2.ID)

	// Borrar el primero y agregar otro: el id no debe colisionar con
	// slave_2 ni reusar slave_1.
	require.NoError(t, reg.Remove(ctx, "slave_1"))
	c3, err := reg.Add(ctx, "h3", "n3", "tres", nil)
	require.NoError(t, err)
	assert.Equal(t, "slave_3", c3.ID)
}

func TestUpdate_SettingsMergeNotReplace(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	_, err := reg.Add(ctx, "h", "n", "uno", map[string]any{})
	require.NoError(t, err)

	require.NoError(t, reg.Update(ctx, "slave_1", map[string]any{
		"settings": map[string]any{"x": float64(1)},
	}))
	require.NoError(t, reg.Update(ctx, "slave_1", map[string]any{
		"settings": map[string]any{"y": float64(2)},
	}))

	got, err := reg.Get(ctx, "slave_1")
	require.NoError(t, err)
	assert.Equal(t, float64(1), got.Settings["x"])
	assert.Equal(t, float64(2), got.Settings["y"])
}

func TestUpdate_AttributesAndNotFound(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	_, err := reg.Add(ctx, "h", "n", "uno", nil)
	require.NoError(t, err)

	require.NoError(t, reg.Update(ctx, "slave_1", map[string]any{
		"name":    "renombrado",
		"enabled": false,
	}))
	got, _ := reg.Get(ctx, "slave_1")
	assert.Equal(t, "renombrado", got.Name)
	assert.False(t, got.Enabled)

	err = reg.Update(ctx, "slave_99", map[string]any{"name": "x"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestRemove_Idempotent(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	_, err := reg.Add(ctx, "h", "n", "uno", nil)
	require.NoError(t, err)

	// Borrar un id inexistente no es error y no toca el resto.
	require.NoError(t, reg.Remove(ctx, "slave_42"))
	clients, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, 1)

	require.NoError(t, reg.Remove(ctx, "slave_1"))
	require.NoError(t, reg.Remove(ctx, "slave_1"))
	clients, _ = reg.List(ctx)
	assert.Empty(t, clients)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	reg, path := newTestRegistry(t)

	_, err := reg.Add(ctx, "h", "n", "uno", nil)
	require.NoError(t, err)

	enabled, err := reg.Toggle(ctx, "slave_1")
	require.NoError(t, err)
	assert.False(t, enabled)

	// Persistido: un registro fresco lo ve deshabilitado.
	fresh := New(store.NewFileStore(path, nil))
	got, err := fresh.Get(ctx, "slave_1")
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	// Dos toggles vuelven al estado original.
	enabled, err = reg.Toggle(ctx, "slave_1")
	require.NoError(t, err)
	assert.True(t, enabled)

	// Not found se distingue de "ahora deshabilitado".
	_, err = reg.Toggle(ctx, "slave_9")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestEnabledFilter(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	_, err := reg.Add(ctx, "h", "n", "uno", nil)
	require.NoError(t, err)

	enabled, err := reg.Enabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "slave_1", enabled[0].ID)

	_, err = reg.Toggle(ctx, "slave_1")
	require.NoError(t, err)

	enabled, err = reg.Enabled(ctx)
	require.NoError(t, err)
	assert.Empty(t, enabled)
}

func TestEnabledPreservesOrder(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := reg.Add(ctx, "h", "n", name, nil)
		require.NoError(t, err)
	}
	_, err := reg.Toggle(ctx, "slave_2")
	require.NoError(t, err)

	enabled, err := reg.Enabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
	assert.Equal(t, "slave_1", enabled[0].ID)
	assert.Equal(t, "slave_3", enabled[1].ID)
}

func TestMainAccount(t *testing.T) {
	ctx := context.Background()
	reg, path := newTestRegistry(t)

	main, err := reg.MainAccount(ctx)
	require.NoError(t, err)
	assert.True(t, main.IsZero())

	require.NoError(t, reg.SetMainAccount(ctx, "mainhash", "99999"))

	fresh := New(store.NewFileStore(path, nil))
	main, err = fresh.MainAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mainhash", main.AccountHash)
	assert.Equal(t, "99999", main.AccountNumber)
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	_, err := reg.Get(ctx, "slave_1")
	assert.True(t, errors.Is(err, ErrClientNotFound))
}
