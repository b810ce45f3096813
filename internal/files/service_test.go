package files

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"serwer-tabel/internal/apperr"
	"serwer-tabel/internal/database/sqlite"
	"serwer-tabel/internal/logging"
	"serwer-tabel/internal/models"
	"serwer-tabel/internal/storage"
	"serwer-tabel/internal/table"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu      sync.Mutex
	private map[int64][][]byte
	public  [][]byte
}

func (p *recordingPublisher) PublishEvent(userID int64, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.private == nil {
		p.private = make(map[int64][][]byte)
	}
	p.private[userID] = append(p.private[userID], data)
}

func (p *recordingPublisher) PublishAll(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.public = append(p.public, data)
}

type testEnv struct {
	svc   *Service
	store *sqlite.Store
	fs    *storage.LocalStorage
	root  string
	pub   *recordingPublisher
	alice *models.User
	bob   *models.User
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	store, err := sqlite.Open(ctx, filepath.Join(dir, "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	root := filepath.Join(dir, "files")
	fs, err := storage.NewLocalStorage(root)
	require.NoError(t, err)

	alice, err := store.CreateUser(ctx, "alice", "x")
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, "bob", "x")
	require.NoError(t, err)

	pub := &recordingPublisher{}
	return &testEnv{
		svc:   NewService(store, fs, pub, logging.Nop(), opts),
		store: store,
		fs:    fs,
		root:  root,
		pub:   pub,
		alice: alice,
		bob:   bob,
	}
}

const people = "name;age\na;30\nb;20\nc;40\n"

func (e *testEnv) upload(t *testing.T, owner *models.User, name, data string, vis models.Visibility) *models.File {
	t.Helper()
	f, err := e.svc.Upload(context.Background(), owner, UploadInput{
		Filename: name, Delimiter: ";", Visibility: vis, Body: strings.NewReader(data),
	})
	require.NoError(t, err)
	return f
}

func TestUpload_PrivateLayout(t *testing.T) {
	env := newTestEnv(t, Options{})
	f := env.upload(t, env.alice, "people.csv", people, models.VisibilityPrivate)

	want, err := storage.ObjectKey("alice", models.VisibilityPrivate, "people.csv")
	require.NoError(t, err)
	require.Equal(t, want, f.Path)
	require.True(t, strings.HasPrefix(f.Path, "private/"+storage.Digest("alice")+"/"))
	require.Equal(t, "alice", f.OwnerName)

	data, err := os.ReadFile(filepath.Join(env.root, filepath.FromSlash(f.Path)))
	require.NoError(t, err)
	require.Equal(t, people, string(data))

	require.Len(t, env.pub.private[env.alice.ID], 1)
	require.Empty(t, env.pub.public)

	var ev models.Event
	require.NoError(t, json.Unmarshal(env.pub.private[env.alice.ID][0], &ev))
	require.Equal(t, models.EventFileUploaded, ev.EventType)
}

func TestUpload_PublicIsBroadcast(t *testing.T) {
	env := newTestEnv(t, Options{})
	f := env.upload(t, env.alice, "open.csv", people, models.VisibilityPublic)
	require.True(t, strings.HasPrefix(f.Path, "public/"))
	require.Len(t, env.pub.public, 1)
}

func TestUpload_Validation(t *testing.T) {
	env := newTestEnv(t, Options{})
	cases := []UploadInput{
		{Filename: "", Delimiter: ";", Visibility: models.VisibilityPrivate, Body: strings.NewReader("a")},
		{Filename: "x.exe", Delimiter: ";", Visibility: models.VisibilityPrivate, Body: strings.NewReader("a")},
		{Filename: "x.csv", Delimiter: ";;", Visibility: models.VisibilityPrivate, Body: strings.NewReader("a")},
		{Filename: "x.csv", Delimiter: "", Visibility: models.VisibilityPrivate, Body: strings.NewReader("a")},
		{Filename: "x.csv", Delimiter: "\"", Visibility: models.VisibilityPrivate, Body: strings.NewReader("a")},
		{Filename: "x.csv", Delimiter: ";", Visibility: "shared", Body: strings.NewReader("a")},
	}
	for _, in := range cases {
		_, err := env.svc.Upload(context.Background(), env.alice, in)
		require.Error(t, err, in.Filename)
		require.Equal(t, apperr.KindValidation, apperr.KindOf(err), "%+v", in)
	}
}

func TestUpload_AllowedExtensions(t *testing.T) {
	env := newTestEnv(t, Options{AllowedExtensions: []string{".csv", "tsv"}})
	_, err := env.svc.Upload(context.Background(), env.alice, UploadInput{
		Filename: "t.TSV", Delimiter: "\t", Visibility: models.VisibilityPrivate, Body: strings.NewReader("a\tb\n"),
	})
	require.NoError(t, err)
}

func TestUpload_TooLarge(t *testing.T) {
	env := newTestEnv(t, Options{MaxUploadBytes: 8})
	env.upload(t, env.alice, "small.csv", "a;b\n1;2\n", models.VisibilityPrivate)

	_, err := env.svc.Upload(context.Background(), env.alice, UploadInput{
		Filename: "small.csv", Delimiter: ";", Visibility: models.VisibilityPrivate, Body: strings.NewReader(people),
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// The earlier bytes survive the rejected re-upload.
	_, rc, err := env.svc.Download(context.Background(), env.alice, "small.csv", models.VisibilityPrivate)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "a;b\n1;2\n", string(data))
}

func TestUpload_ReuploadReplaces(t *testing.T) {
	env := newTestEnv(t, Options{})
	first := env.upload(t, env.alice, "p.csv", people, models.VisibilityPrivate)
	second := env.upload(t, env.alice, "p.csv", "name;age\nz;1\n", models.VisibilityPrivate)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.Path, second.Path)

	res, err := env.svc.View(context.Background(), env.alice, "p.csv", models.VisibilityPrivate, table.Spec{})
	require.NoError(t, err)
	require.Len(t, res.Data, 1)

	files, err := env.store.ListVisibleFiles(context.Background(), env.alice.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestUpload_PublicCollisionRejected(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.upload(t, env.alice, "shared.csv", people, models.VisibilityPublic)

	_, err := env.svc.Upload(context.Background(), env.bob, UploadInput{
		Filename: "shared.csv", Delimiter: ";", Visibility: models.VisibilityPublic, Body: strings.NewReader("x;y\n"),
	})
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	require.Equal(t, "file name already taken", apperr.ReasonOf(err))

	res, err := env.svc.View(context.Background(), env.bob, "shared.csv", models.VisibilityPublic, table.Spec{})
	require.NoError(t, err)
	require.Equal(t, []string{"name", "age"}, res.Columns)
}

func TestUpload_PrivateNamesDoNotCollide(t *testing.T) {
	env := newTestEnv(t, Options{})
	a := env.upload(t, env.alice, "same.csv", people, models.VisibilityPrivate)
	b := env.upload(t, env.bob, "same.csv", "x;y\n1;2\n", models.VisibilityPrivate)
	require.NotEqual(t, a.Path, b.Path)
}

func TestView_SortAndFilter(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.upload(t, env.alice, "people.csv", people, models.VisibilityPrivate)
	ctx := context.Background()

	res, err := env.svc.View(ctx, env.alice, "people.csv", models.VisibilityPrivate, table.Spec{
		Sort: &table.SortSpec{Columns: []string{"age"}, Ascending: []bool{true}},
	})
	require.NoError(t, err)
	require.Equal(t, []any{"b", "a", "c"}, []any{res.Data[0][0], res.Data[1][0], res.Data[2][0]})

	res, err = env.svc.View(ctx, env.alice, "people.csv", models.VisibilityPrivate, table.Spec{Filter: "age > 25"})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)

	_, err = env.svc.View(ctx, env.alice, "people.csv", models.VisibilityPrivate, table.Spec{Filter: "height > 10"})
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
	require.Equal(t, table.KindUnknownColumn, table.KindOf(err))
}

func TestView_PrivateIsolation(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.upload(t, env.alice, "secret.csv", people, models.VisibilityPrivate)

	_, err := env.svc.View(context.Background(), env.bob, "secret.csv", models.VisibilityPrivate, table.Spec{})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = env.svc.View(context.Background(), env.bob, "secret.csv", models.VisibilityPublic, table.Spec{})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestView_MissingBytes(t *testing.T) {
	env := newTestEnv(t, Options{})
	f := env.upload(t, env.alice, "lost.csv", people, models.VisibilityPrivate)
	require.NoError(t, os.Remove(filepath.Join(env.root, filepath.FromSlash(f.Path))))

	_, err := env.svc.View(context.Background(), env.alice, "lost.csv", models.VisibilityPrivate, table.Spec{})
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()
	f := env.upload(t, env.alice, "pub.csv", people, models.VisibilityPublic)

	// Bob can read it but not delete it.
	err := env.svc.Delete(ctx, env.bob, "pub.csv", models.VisibilityPublic)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	require.NoError(t, env.svc.Delete(ctx, env.alice, "pub.csv", models.VisibilityPublic))
	_, err = os.Stat(filepath.Join(env.root, filepath.FromSlash(f.Path)))
	require.True(t, os.IsNotExist(err))

	err = env.svc.Delete(ctx, env.alice, "pub.csv", models.VisibilityPublic)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	events, err := env.store.GetEventsSince(ctx, env.alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, models.EventFileDeleted, events[1].EventType)
	require.Len(t, env.pub.public, 2)
}

func TestDelete_MissingBytesStillRemovesRecord(t *testing.T) {
	env := newTestEnv(t, Options{})
	f := env.upload(t, env.alice, "half.csv", people, models.VisibilityPrivate)
	require.NoError(t, os.Remove(filepath.Join(env.root, filepath.FromSlash(f.Path))))

	require.NoError(t, env.svc.Delete(context.Background(), env.alice, "half.csv", models.VisibilityPrivate))
	found, err := env.store.GetFileByPath(context.Background(), f.Path)
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestList(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.upload(t, env.alice, "mine.csv", people, models.VisibilityPrivate)
	env.upload(t, env.bob, "theirs.csv", "x;y;z\n1;2;3\n", models.VisibilityPublic)
	env.upload(t, env.bob, "hidden.csv", "q\n1\n", models.VisibilityPrivate)
	broken := env.upload(t, env.alice, "broken.csv", people, models.VisibilityPrivate)
	require.NoError(t, os.Remove(filepath.Join(env.root, filepath.FromSlash(broken.Path))))

	list, err := env.svc.List(context.Background(), env.alice)
	require.NoError(t, err)
	require.Len(t, list, 3)

	byName := map[string]Listing{}
	for _, l := range list {
		byName[l.Name] = l
	}
	require.Equal(t, []string{"name", "age"}, byName["mine.csv"].Keys)
	require.Equal(t, []string{"x", "y", "z"}, byName["theirs.csv"].Keys)
	require.Equal(t, "bob", byName["theirs.csv"].OwnerName)
	require.Empty(t, byName["broken.csv"].Keys)
	require.NotContains(t, byName, "hidden.csv")

	out, err := json.Marshal(byName["mine.csv"])
	require.NoError(t, err)
	require.Contains(t, string(out), `"keys":["name","age"]`)
	require.Contains(t, string(out), `"user":"alice"`)
	require.Contains(t, string(out), `"is_private":true`)
}

func TestUpload_ConcurrentSameKey(t *testing.T) {
	env := newTestEnv(t, Options{})
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Upload(context.Background(), env.alice, UploadInput{
				Filename: "race.csv", Delimiter: ";", Visibility: models.VisibilityPrivate, Body: strings.NewReader(people),
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	files, err := env.store.ListVisibleFiles(context.Background(), env.alice.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Zero(t, env.svc.locks.size())
}

func TestKeyLocks_Exclusive(t *testing.T) {
	locks := newKeyLocks()
	unlock := locks.Lock("k")

	acquired := make(chan struct{})
	go func() {
		u := locks.Lock("k")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock returned while the key was held")
	default:
	}
	unlock()
	<-acquired
}
