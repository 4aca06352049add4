package store_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autistnet/internal/domain"
	"autistnet/internal/store"
)

// Low scrypt cost keeps the sealed tests fast.
const testScryptCost = 1 << 10

func sampleSnapshot() domain.Snapshot {
	at := time.Date(2025, 5, 2, 18, 0, 0, 0, time.UTC)
	return domain.Snapshot{
		Version:      1,
		ActiveID:     "u1",
		GovernmentID: "gov1",
		Accounts: []domain.Account{
			{ID: "u1", Name: "Gabriel Silva", Role: domain.RoleMember, Coins: 1250},
			{ID: "gov1", Name: "Secretaria de Saude - SP", Role: domain.RoleGovernment, Verified: true},
		},
		Posts: []domain.Post{
			{
				ID:        "p_1",
				AuthorID:  "u1",
				Body:      "No accessible entrance at the clinic.",
				CreatedAt: at,
				Kind: domain.ComplaintPost{
					Details: domain.ComplaintDetails{Agency: "UBS Centro", Location: "Sao Paulo, SP"},
					Response: &domain.OfficialResponse{
						Text: "A ramp is being installed.", ResponderID: "gov1",
						ResponderName: "Secretaria de Saude - SP", At: at, Verified: true,
					},
				},
			},
			{ID: "p_0", AuthorID: "u1", Body: "Hello", CreatedAt: at, Kind: domain.RegularPost{}},
		},
		Follows: []domain.FollowEdge{{Follower: "u1", Followee: "gov1"}},
		Ledgers: map[domain.UserID][]domain.Transaction{
			"u1": {{ID: "t_1", Direction: domain.Debit, Amount: 100, Description: "Transfer to Carlos", At: at}},
		},
		SavedAt: at,
	}
}

func TestSnapshotFileStore_SaveLoad_OK(t *testing.T) {
	var st domain.SnapshotStore = store.NewSnapshotFileStore(t.TempDir())

	want := sampleSnapshot()
	require.NoError(t, st.SaveSnapshot(want))

	got, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSnapshotFileStore_MissingFile(t *testing.T) {
	st := store.NewSnapshotFileStore(filepath.Join(t.TempDir(), "not-yet"))

	_, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotFileStore_CreatesDirAndLeavesNoTemp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "home")
	st := store.NewSnapshotFileStore(dir)

	require.NoError(t, st.SaveSnapshot(sampleSnapshot()))
	require.NoError(t, st.SaveSnapshot(sampleSnapshot()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())

	info, err := os.Stat(st.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSnapshotFileStore_CorruptFile(t *testing.T) {
	st := store.NewSnapshotFileStore(t.TempDir())
	require.NoError(t, os.WriteFile(st.Path(), []byte("{not json"), 0o600))

	_, ok, err := st.LoadSnapshot()
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSealedSnapshotStore_SaveLoad_OK(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewSealedSnapshotStore(dir, "correct horse", store.WithScryptCost(testScryptCost))
	require.NoError(t, err)

	want := sampleSnapshot()
	require.NoError(t, st.SaveSnapshot(want))

	raw, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Gabriel")

	got, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSealedSnapshotStore_WrongPassphrase_Fails(t *testing.T) {
	dir := t.TempDir()
	st, err := store.NewSealedSnapshotStore(dir, "correct", store.WithScryptCost(testScryptCost))
	require.NoError(t, err)
	require.NoError(t, st.SaveSnapshot(sampleSnapshot()))

	other, err := store.NewSealedSnapshotStore(dir, "wrong", store.WithScryptCost(testScryptCost))
	require.NoError(t, err)
	_, ok, err := other.LoadSnapshot()
	assert.ErrorIs(t, err, store.ErrWrongPassphrase)
	assert.False(t, ok)
}

func TestSealedSnapshotStore_RequiresPassphrase(t *testing.T) {
	_, err := store.NewSealedSnapshotStore(t.TempDir(), "")
	assert.ErrorIs(t, err, store.ErrNoPassphrase)
}

func TestSealedSnapshotStore_MissingFile(t *testing.T) {
	st, err := store.NewSealedSnapshotStore(t.TempDir(), "pass")
	require.NoError(t, err)

	_, ok, err := st.LoadSnapshot()
	require.NoError(t, err)
	assert.False(t, ok)
}
