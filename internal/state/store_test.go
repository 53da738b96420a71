package state_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entropyseed/seedseal/internal/events"
	"github.com/entropyseed/seedseal/internal/models"
	"github.com/entropyseed/seedseal/internal/state"
)

func newStores(t *testing.T) map[string]state.Store {
	t.Helper()

	jsonStore, err := state.NewJSONStore(filepath.Join(t.TempDir(), "packages"), events.Nop())
	require.NoError(t, err)

	sqliteStore, err := state.NewSQLiteStore(filepath.Join(t.TempDir(), "packages.db"), events.Nop())
	require.NoError(t, err)

	stores := map[string]state.Store{
		"json":   jsonStore,
		"sqlite": sqliteStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func sampleRecord(label string) *state.PackageRecord {
	return &state.PackageRecord{
		Label:    label,
		Variant:  "coords",
		Encoding: "hex",
		Package:  "00112233445566778899aabbccddeeff",
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			rec := sampleRecord("notes")
			require.NoError(t, store.Save(rec))
			assert.NotEmpty(t, rec.ID)
			assert.False(t, rec.CreatedAt.IsZero())

			loaded, err := store.Load("notes")
			require.NoError(t, err)
			assert.Equal(t, rec.Label, loaded.Label)
			assert.Equal(t, rec.Package, loaded.Package)
			assert.Equal(t, rec.Encoding, loaded.Encoding)
			assert.WithinDuration(t, rec.CreatedAt, loaded.CreatedAt, time.Second)
		})
	}
}

func TestStoreUpsert(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(sampleRecord("dup")))

			updated := sampleRecord("dup")
			updated.Package = "ffeeddccbbaa"
			require.NoError(t, store.Save(updated))

			loaded, err := store.Load("dup")
			require.NoError(t, err)
			assert.Equal(t, "ffeeddccbbaa", loaded.Package)

			records, err := store.List()
			require.NoError(t, err)
			assert.Len(t, records, 1)
		})
	}
}

func TestStoreListSorted(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, label := range []string{"zeta", "alpha", "mid"} {
				require.NoError(t, store.Save(sampleRecord(label)))
			}

			records, err := store.List()
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, "alpha", records[0].Label)
			assert.Equal(t, "mid", records[1].Label)
			assert.Equal(t, "zeta", records[2].Label)
		})
	}
}

func TestStoreMissingLabel(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load("absent")
			assert.ErrorIs(t, err, models.ErrPackageNotFound)

			err = store.Delete("absent")
			assert.ErrorIs(t, err, models.ErrPackageNotFound)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(sampleRecord("gone")))
			require.NoError(t, store.Delete("gone"))

			_, err := store.Load("gone")
			assert.ErrorIs(t, err, models.ErrPackageNotFound)
		})
	}
}

func TestStoreRejectsBadLabels(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			bad := []string{"", "../escape", "a b", ".hidden", "x/y"}
			for _, label := range bad {
				err := store.Save(sampleRecord(label))
				assert.Error(t, err, "label %q", label)
			}
		})
	}
}

func TestNewFactory(t *testing.T) {
	dir := t.TempDir()

	jsonStore, err := state.New("json", filepath.Join(dir, "pkgs"), events.Nop())
	require.NoError(t, err)
	assert.IsType(t, &state.JSONStore{}, jsonStore)
	_ = jsonStore.Close()

	sqliteStore, err := state.New("sqlite", filepath.Join(dir, "pkgs.db"), events.Nop())
	require.NoError(t, err)
	assert.IsType(t, &state.SQLiteStore{}, sqliteStore)
	_ = sqliteStore.Close()

	_, err = state.New("etcd", "", events.Nop())
	assert.Error(t, err)
}
