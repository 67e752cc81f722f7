package entry

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoGuestbook/GoGuestbook/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Entry{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func insertEntries(t *testing.T, db *gorm.DB, n int, approved bool) []uint64 {
	t.Helper()

	ids := make([]uint64, 0, n)

	for i := 0; i < n; i++ {
		e := &models.Entry{
			Name:     fmt.Sprintf("visitor-%d", i),
			Message:  fmt.Sprintf("message %d", i),
			Approved: approved,
		}
		require.NoError(t, Insert(db, e))
		ids = append(ids, e.ID)
	}

	return ids
}

func TestInsert_AssignsIDAndTimestamp(t *testing.T) {
	db := setupTestDB(t)

	e := &models.Entry{ID: 999, Name: "alice", Message: "hello"}
	require.NoError(t, Insert(db, e))

	assert.NotZero(t, e.ID)
	assert.NotEqual(t, uint64(999), e.ID, "caller-supplied id must be discarded")
	assert.False(t, e.CreatedAt.IsZero())

	require.ErrorIs(t, Insert(db, nil), ErrEntryNil)
	require.ErrorIs(t, Insert(nil, e), ErrDBNil)
}

func TestListPublic_PaginatesNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	ids := insertEntries(t, db, 25, true)

	// first page: 20 newest, next cursor set
	page1, cursor1, err := ListPublic(db, 0, DefaultPublicLimit)
	require.NoError(t, err)
	require.Len(t, page1, 20)
	assert.Equal(t, ids[24], page1[0].ID, "newest entry comes first")
	assert.Equal(t, page1[19].ID, cursor1)

	// second page: remaining 5, end of list
	page2, cursor2, err := ListPublic(db, cursor1, DefaultPublicLimit)
	require.NoError(t, err)
	require.Len(t, page2, 5)
	assert.Zero(t, cursor2)

	// pages must not overlap and must cover everything
	seen := make(map[uint64]bool)
	for _, e := range append(page1, page2...) {
		assert.False(t, seen[e.ID], "entry %d appeared twice", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 25)
}

func TestListPublic_ExcludesPending(t *testing.T) {
	db := setupTestDB(t)

	insertEntries(t, db, 3, true)
	insertEntries(t, db, 2, false)

	entries, cursor, err := ListPublic(db, 0, DefaultPublicLimit)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Zero(t, cursor)

	for _, e := range entries {
		assert.True(t, e.Approved)
	}
}

func TestListPublic_StableUnderInserts(t *testing.T) {
	db := setupTestDB(t)

	insertEntries(t, db, 20, true)

	page1, cursor, err := ListPublic(db, 0, DefaultPublicLimit)
	require.NoError(t, err)
	require.Len(t, page1, 20)

	// entries arriving between page fetches must not shift the cursor window
	insertEntries(t, db, 5, true)

	page2, _, err := ListPublic(db, cursor, DefaultPublicLimit)
	require.NoError(t, err)

	for _, e := range page2 {
		assert.Less(t, e.ID, cursor, "second page leaked an entry at or after the cursor")
	}
}

func TestListPublic_DefaultLimit(t *testing.T) {
	db := setupTestDB(t)

	insertEntries(t, db, 25, true)

	entries, _, err := ListPublic(db, 0, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultPublicLimit)
}

func TestListAll_IncludesPending(t *testing.T) {
	db := setupTestDB(t)

	insertEntries(t, db, 2, true)
	insertEntries(t, db, 3, false)

	entries, err := ListAll(db, DefaultAdminLimit)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestListApproved(t *testing.T) {
	db := setupTestDB(t)

	approved := insertEntries(t, db, 3, true)
	insertEntries(t, db, 2, false)

	entries, err := ListApproved(db)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, approved[2], entries[0].ID, "newest first")
}

func TestApprove_IsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	ids := insertEntries(t, db, 1, false)

	require.NoError(t, Approve(db, ids[0]))

	var e models.Entry
	require.NoError(t, db.First(&e, ids[0]).Error)
	assert.True(t, e.Approved)

	// approving again or approving the unknown is a no-op
	require.NoError(t, Approve(db, ids[0]))
	require.NoError(t, Approve(db, 424242))
}

func TestDelete_IsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	ids := insertEntries(t, db, 2, true)

	require.NoError(t, Delete(db, ids[0]))
	require.NoError(t, Delete(db, ids[0]))
	require.NoError(t, Delete(db, 424242))

	entries, err := ListAll(db, DefaultAdminLimit)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
