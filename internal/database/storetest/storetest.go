// Package storetest holds the behaviour every database.Store must show. Each
// backend runs it from its own tests.
package storetest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"serwer-tabel/internal/database"
	"serwer-tabel/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

// unique keeps names distinct when several tests share one database.
func unique(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

func createTestUser(t *testing.T, s database.Store, username string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), unique(username), "hash")
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func createTestFile(t *testing.T, s database.Store, owner *models.User, name string, vis models.Visibility) *models.File {
	t.Helper()
	f, err := s.CreateFile(context.Background(), database.CreateFileParams{
		Name:       name,
		Delimiter:  ";",
		Visibility: vis,
		OwnerID:    owner.ID,
		Path:       unique("path/" + name),
	})
	require.NoError(t, err)
	return f
}

// Run executes the whole suite against s.
func Run(t *testing.T, s database.Store) {
	t.Run("Users", func(t *testing.T) { testUsers(t, s) })
	t.Run("CreateFile", func(t *testing.T) { testCreateFile(t, s) })
	t.Run("ReplaceFile", func(t *testing.T) { testReplaceFile(t, s) })
	t.Run("Visibility", func(t *testing.T) { testVisibility(t, s) })
	t.Run("ListVisibleFiles", func(t *testing.T) { testListVisibleFiles(t, s) })
	t.Run("DeleteFile", func(t *testing.T) { testDeleteFile(t, s) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, s) })
	t.Run("Events", func(t *testing.T) { testEvents(t, s) })
	t.Run("ExecTx", func(t *testing.T) { testExecTx(t, s) })
}

func testUsers(t *testing.T, s database.Store) {
	ctx := context.Background()
	name := unique("user")

	user, err := s.CreateUser(ctx, name, "hash1")
	require.NoError(t, err)
	require.Equal(t, name, user.Username)
	require.NotZero(t, user.ID)
	require.False(t, user.CreatedAt.IsZero())

	_, err = s.CreateUser(ctx, name, "hash2")
	require.ErrorIs(t, err, database.ErrUserExists)

	found, err := s.GetUserByUsername(ctx, name)
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
	require.Equal(t, "hash1", found.PasswordHash)

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, name, byID.Username)

	missing, err := s.GetUserByUsername(ctx, "nonexistent_"+name)
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, s.UpdateUserPassword(ctx, user.ID, "hash3"))
	found, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "hash3", found.PasswordHash)
}

func testCreateFile(t *testing.T, s database.Store) {
	ctx := context.Background()
	owner := createTestUser(t, s, "file_owner")
	path := unique("private/x/ab/cd/data.csv")

	f, err := s.CreateFile(ctx, database.CreateFileParams{
		Name: "data.csv", Delimiter: ",", Visibility: models.VisibilityPrivate, OwnerID: owner.ID, Path: path,
	})
	require.NoError(t, err)
	require.Equal(t, "data.csv", f.Name)
	require.Equal(t, ",", f.Delimiter)
	require.Equal(t, models.VisibilityPrivate, f.Visibility)
	require.Equal(t, owner.Username, f.OwnerName)
	require.Equal(t, path, f.Path)

	_, err = s.CreateFile(ctx, database.CreateFileParams{
		Name: "other.csv", Delimiter: ";", Visibility: models.VisibilityPrivate, OwnerID: owner.ID, Path: path,
	})
	require.ErrorIs(t, err, database.ErrPathTaken)

	byPath, err := s.GetFileByPath(ctx, path)
	require.NoError(t, err)
	require.Equal(t, f.ID, byPath.ID)

	none, err := s.GetFileByPath(ctx, path+"_missing")
	require.NoError(t, err)
	require.Nil(t, none)
}

func testReplaceFile(t *testing.T, s database.Store) {
	ctx := context.Background()
	owner := createTestUser(t, s, "replace_owner")
	f := createTestFile(t, s, owner, "r.csv", models.VisibilityPublic)

	replaced, err := s.ReplaceFile(ctx, f.ID, "|")
	require.NoError(t, err)
	require.Equal(t, f.ID, replaced.ID)
	require.Equal(t, "|", replaced.Delimiter)
	require.Equal(t, f.Path, replaced.Path)

	none, err := s.ReplaceFile(ctx, f.ID+100000, ",")
	require.NoError(t, err)
	require.Nil(t, none)
}

func testVisibility(t *testing.T, s database.Store) {
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	name := unique("shared") + ".csv"

	priv := createTestFile(t, s, alice, name, models.VisibilityPrivate)
	pub := createTestFile(t, s, alice, name, models.VisibilityPublic)

	f, err := s.FindVisibleFile(ctx, alice.ID, name, models.VisibilityPrivate)
	require.NoError(t, err)
	require.Equal(t, priv.ID, f.ID)

	f, err = s.FindVisibleFile(ctx, alice.ID, name, models.VisibilityPublic)
	require.NoError(t, err)
	require.Equal(t, pub.ID, f.ID)

	// Bob sees Alice's public file but not her private one.
	f, err = s.FindVisibleFile(ctx, bob.ID, name, models.VisibilityPublic)
	require.NoError(t, err)
	require.Equal(t, pub.ID, f.ID)
	require.Equal(t, alice.Username, f.OwnerName)

	f, err = s.FindVisibleFile(ctx, bob.ID, name, models.VisibilityPrivate)
	require.NoError(t, err)
	require.Nil(t, f)

	// Only owners find their files for deletion.
	f, err = s.FindOwnedFile(ctx, bob.ID, name, models.VisibilityPublic)
	require.NoError(t, err)
	require.Nil(t, f)

	f, err = s.FindOwnedFile(ctx, alice.ID, name, models.VisibilityPublic)
	require.NoError(t, err)
	require.Equal(t, pub.ID, f.ID)
}

func testListVisibleFiles(t *testing.T, s database.Store) {
	ctx := context.Background()
	carol := createTestUser(t, s, "carol")
	dave := createTestUser(t, s, "dave")

	mine := createTestFile(t, s, carol, "mine.csv", models.VisibilityPrivate)
	theirsPublic := createTestFile(t, s, dave, "theirs_pub.csv", models.VisibilityPublic)
	theirsPrivate := createTestFile(t, s, dave, "theirs_priv.csv", models.VisibilityPrivate)

	files, err := s.ListVisibleFiles(ctx, carol.ID)
	require.NoError(t, err)

	ids := make(map[int64]bool, len(files))
	var lastID int64
	for _, f := range files {
		ids[f.ID] = true
		require.Greater(t, f.ID, lastID)
		lastID = f.ID
		if f.IsPrivate() {
			require.Equal(t, carol.ID, f.OwnerID)
		}
	}
	require.True(t, ids[mine.ID])
	require.True(t, ids[theirsPublic.ID])
	require.False(t, ids[theirsPrivate.ID])

	stranger := createTestUser(t, s, "stranger")
	files, err = s.ListVisibleFiles(ctx, stranger.ID)
	require.NoError(t, err)
	require.NotNil(t, files)
}

func testDeleteFile(t *testing.T, s database.Store) {
	ctx := context.Background()
	owner := createTestUser(t, s, "del_owner")
	other := createTestUser(t, s, "del_other")
	f := createTestFile(t, s, owner, "gone.csv", models.VisibilityPublic)

	ok, err := s.DeleteFile(ctx, f.ID, other.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = s.DeleteFile(ctx, f.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, ok)

	found, err := s.GetFileByPath(ctx, f.Path)
	require.NoError(t, err)
	require.Nil(t, found)

	ok, err = s.DeleteFile(ctx, f.ID, owner.ID)
	require.NoError(t, err)
	require.False(t, ok)
}

func testSessions(t *testing.T, s database.Store) {
	ctx := context.Background()
	user := createTestUser(t, s, "session_user")

	active := database.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: unique("refresh"),
		UserAgent:    "test-agent",
		ClientIP:     "127.0.0.1",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}
	expired := active
	expired.ID = uuid.New()
	expired.RefreshToken = unique("expired")
	expired.ExpiresAt = time.Now().Add(-time.Hour)

	require.NoError(t, s.CreateSession(ctx, active))
	require.NoError(t, s.CreateSession(ctx, expired))

	found, err := s.GetUserByRefreshToken(ctx, active.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	found, err = s.GetUserByRefreshToken(ctx, expired.RefreshToken)
	require.NoError(t, err)
	require.Nil(t, found)

	sessions, err := s.ListSessionsForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, active.ID, sessions[0].ID)
	require.Equal(t, "test-agent", sessions[0].UserAgent)

	require.NoError(t, s.DeleteSessionByRefreshToken(ctx, active.RefreshToken))
	found, err = s.GetUserByRefreshToken(ctx, active.RefreshToken)
	require.NoError(t, err)
	require.Nil(t, found)

	second := active
	second.ID = uuid.New()
	second.RefreshToken = unique("second")
	require.NoError(t, s.CreateSession(ctx, second))

	require.NoError(t, s.DeleteSessionByID(ctx, second.ID, user.ID+1000000))
	sessions, err = s.ListSessionsForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, s.DeleteSessionByID(ctx, second.ID, user.ID))
	sessions, err = s.ListSessionsForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)

	third := active
	third.ID = uuid.New()
	third.RefreshToken = unique("third")
	require.NoError(t, s.CreateSession(ctx, third))
	require.NoError(t, s.DeleteAllSessionsForUser(ctx, user.ID))
	sessions, err = s.ListSessionsForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func testEvents(t *testing.T, s database.Store) {
	ctx := context.Background()
	user := createTestUser(t, s, "user_events")
	otherUser := createTestUser(t, s, "other_user_events")

	payload1 := map[string]string{"name": "a.csv"}
	payload2 := map[string]string{"name": "b.csv"}

	ev, err := s.LogEvent(ctx, user.ID, models.EventFileUploaded, payload1)
	require.NoError(t, err)
	require.NotZero(t, ev.ID)
	_, err = s.LogEvent(ctx, user.ID, models.EventFileDeleted, payload2)
	require.NoError(t, err)
	_, err = s.LogEvent(ctx, otherUser.ID, models.EventFileDeleted, payload2)
	require.NoError(t, err)

	events, err := s.GetEventsSince(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, ev.ID, events[0].ID)

	type wrapper struct {
		EventType string            `json:"event_type"`
		Payload   map[string]string `json:"payload"`
	}
	var w wrapper
	require.NoError(t, json.Unmarshal(events[1].Payload, &w))
	require.Equal(t, models.EventFileDeleted, w.EventType)
	require.Equal(t, payload2, w.Payload)

	since, err := s.GetEventsSince(ctx, user.ID, events[0].ID)
	require.NoError(t, err)
	require.Len(t, since, 1)

	none, err := s.GetEventsSince(ctx, user.ID, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func testExecTx(t *testing.T, s database.Store) {
	ctx := context.Background()
	owner := createTestUser(t, s, "tx_owner")
	path := unique("tx/path")
	boom := errors.New("boom")

	err := s.ExecTx(ctx, func(q database.Querier) error {
		_, err := q.CreateFile(ctx, database.CreateFileParams{
			Name: "tx.csv", Delimiter: ";", Visibility: models.VisibilityPrivate, OwnerID: owner.ID, Path: path,
		})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	f, err := s.GetFileByPath(ctx, path)
	require.NoError(t, err)
	require.Nil(t, f)

	err = s.ExecTx(ctx, func(q database.Querier) error {
		if _, err := q.CreateFile(ctx, database.CreateFileParams{
			Name: "tx.csv", Delimiter: ";", Visibility: models.VisibilityPrivate, OwnerID: owner.ID, Path: path,
		}); err != nil {
			return err
		}
		_, err := q.LogEvent(ctx, owner.ID, models.EventFileUploaded, map[string]string{"name": "tx.csv"})
		return err
	})
	require.NoError(t, err)

	f, err = s.GetFileByPath(ctx, path)
	require.NoError(t, err)
	require.NotNil(t, f)

	require.NoError(t, s.Ping(ctx))
}
