// Package files ties the metadata index, the file store and the table engine
// together. All errors it returns are *apperr.Error.
package files

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"serwer-tabel/internal/apperr"
	"serwer-tabel/internal/database"
	"serwer-tabel/internal/logging"
	"serwer-tabel/internal/models"
	"serwer-tabel/internal/storage"
	"serwer-tabel/internal/table"
)

// Publisher pushes journal entries to connected clients.
type Publisher interface {
	PublishEvent(userID int64, eventData []byte)
	PublishAll(eventData []byte)
}

type Options struct {
	// AllowedExtensions lists accepted upload extensions without the dot.
	AllowedExtensions []string
	// MaxUploadBytes caps the body of one upload; 0 means no limit.
	MaxUploadBytes int64
}

type Service struct {
	store   database.Store
	files   storage.FileStore
	pub     Publisher
	log     logging.Logger
	allowed map[string]bool
	maxSize int64
	locks   *keyLocks
}

func NewService(store database.Store, fs storage.FileStore, pub Publisher, log logging.Logger, opts Options) *Service {
	allowed := make(map[string]bool, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	if len(allowed) == 0 {
		allowed["csv"] = true
	}
	return &Service{
		store:   store,
		files:   fs,
		pub:     pub,
		log:     log,
		allowed: allowed,
		maxSize: opts.MaxUploadBytes,
		locks:   newKeyLocks(),
	}
}

type UploadInput struct {
	Filename   string
	Delimiter  string
	Visibility models.Visibility
	Body       io.Reader
}

// Listing is one entry of List: the record plus the file's header.
type Listing struct {
	models.File
	IsPrivate bool     `json:"is_private"`
	Keys      []string `json:"keys"`
}

type filePayload struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Visibility models.Visibility `json:"visibility"`
	Owner      string            `json:"user"`
}

func payloadOf(f *models.File) filePayload {
	return filePayload{ID: f.ID, Name: f.Name, Visibility: f.Visibility, Owner: f.OwnerName}
}

func (s *Service) validateUpload(in UploadInput) error {
	if strings.TrimSpace(in.Filename) == "" {
		return apperr.Validation("no file provided")
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(in.Filename), "."))
	if !s.allowed[ext] {
		return apperr.Validation(fmt.Sprintf("file extension %q is not allowed", ext))
	}
	if utf8.RuneCountInString(in.Delimiter) != 1 {
		return apperr.Validation("delimiter must be exactly one character")
	}
	if delim, _ := utf8.DecodeRuneInString(in.Delimiter); !table.ValidDelimiter(delim) {
		return apperr.Validation(fmt.Sprintf("invalid delimiter %q", in.Delimiter))
	}
	if in.Visibility != models.VisibilityPrivate && in.Visibility != models.VisibilityPublic {
		return apperr.Validation(fmt.Sprintf("unknown visibility %q", in.Visibility))
	}
	if in.Body == nil {
		return apperr.Validation("no file provided")
	}
	return nil
}

// Upload stores the body under the sharded key of (owner, visibility,
// filename) and records it in the index.
func (s *Service) Upload(ctx context.Context, owner *models.User, in UploadInput) (*models.File, error) {
	if err := s.validateUpload(in); err != nil {
		return nil, err
	}
	key, err := storage.ObjectKey(owner.Username, in.Visibility, in.Filename)
	if err != nil {
		return nil, apperr.Validation("invalid file name")
	}

	body := in.Body
	if s.maxSize > 0 {
		// Read the capped body up front so an oversized upload never
		// overwrites the bytes of an existing file.
		buf, err := io.ReadAll(io.LimitReader(in.Body, s.maxSize+1))
		if err != nil {
			return nil, apperr.BadRequest("failed to read upload", err)
		}
		if int64(len(buf)) > s.maxSize {
			return nil, apperr.Validation(fmt.Sprintf("file exceeds the upload limit of %d bytes", s.maxSize))
		}
		uploadedBytesTotal.Add(float64(len(buf)))
		body = bytes.NewReader(buf)
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	existing, err := s.store.GetFileByPath(ctx, key)
	if err != nil {
		return nil, apperr.Storage("failed to look up file", err)
	}
	if existing != nil && existing.OwnerID != owner.ID {
		return nil, apperr.Validation("file name already taken")
	}

	savedKey, err := s.files.Save(ctx, owner.Username, in.Visibility, in.Filename, body)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFilename) {
			return nil, apperr.Validation("invalid file name")
		}
		return nil, apperr.Storage("failed to save file", err)
	}

	var file *models.File
	var event *models.Event
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		var err error
		if existing != nil {
			file, err = q.ReplaceFile(ctx, existing.ID, in.Delimiter)
			if err == nil && file == nil {
				err = fmt.Errorf("file %d vanished during replace", existing.ID)
			}
		} else {
			file, err = q.CreateFile(ctx, database.CreateFileParams{
				Name:       in.Filename,
				Delimiter:  in.Delimiter,
				Visibility: in.Visibility,
				OwnerID:    owner.ID,
				Path:       savedKey,
			})
		}
		if err != nil {
			return err
		}
		event, err = q.LogEvent(ctx, owner.ID, models.EventFileUploaded, payloadOf(file))
		return err
	})
	if err != nil {
		if existing == nil {
			s.removeBytes(ctx, savedKey)
		}
		if errors.Is(err, database.ErrPathTaken) {
			return nil, apperr.Validation("file name already taken")
		}
		return nil, apperr.Storage("failed to record file", err)
	}

	s.log.Info(ctx, "file uploaded", "user", owner.Username, "name", file.Name, "key", file.Path)
	s.publish(owner.ID, file, event)
	return file, nil
}

// removeBytes drops bytes written for a record that never made it into the
// index. Replaced files keep their new bytes.
func (s *Service) removeBytes(ctx context.Context, key string) {
	if err := s.files.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.log.Error(ctx, "failed to remove orphaned upload", "key", key, "error", err)
	}
}

func (s *Service) publish(userID int64, f *models.File, ev *models.Event) {
	if s.pub == nil || ev == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if f.IsPrivate() {
		s.pub.PublishEvent(userID, data)
		return
	}
	s.pub.PublishAll(data)
}

func (s *Service) findVisible(ctx context.Context, user *models.User, name string, vis models.Visibility) (*models.File, error) {
	f, err := s.store.FindVisibleFile(ctx, user.ID, name, vis)
	if err != nil {
		return nil, apperr.Storage("failed to look up file", err)
	}
	if f == nil {
		return nil, apperr.NotFound("file not found")
	}
	return f, nil
}

func (s *Service) open(ctx context.Context, f *models.File) (io.ReadCloser, error) {
	rc, err := s.files.Open(ctx, f.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn(ctx, "file record without bytes", "key", f.Path)
			return nil, apperr.NotFound("file not found")
		}
		return nil, apperr.Storage("failed to open file", err)
	}
	return rc, nil
}

// View runs spec against the file name visible to user in the given scope.
func (s *Service) View(ctx context.Context, user *models.User, name string, vis models.Visibility, spec table.Spec) (*table.Result, error) {
	f, err := s.findVisible(ctx, user, name, vis)
	if err != nil {
		return nil, err
	}
	rc, err := s.open(ctx, f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	res, err := table.Query(rc, f.DelimiterRune(), spec)
	if err != nil {
		if kind := table.KindOf(err); kind != "" {
			tableQueriesTotal.WithLabelValues(string(kind)).Inc()
			return nil, apperr.BadRequest(err.Error(), err)
		}
		tableQueriesTotal.WithLabelValues("io_error").Inc()
		return nil, apperr.Storage("failed to read file", err)
	}
	tableQueriesTotal.WithLabelValues("ok").Inc()
	return res, nil
}

// Download returns the record and its raw bytes. The caller closes the reader.
func (s *Service) Download(ctx context.Context, user *models.User, name string, vis models.Visibility) (*models.File, io.ReadCloser, error) {
	f, err := s.findVisible(ctx, user, name, vis)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.open(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return f, rc, nil
}

// Delete removes a file the user owns. The record goes first; a failure to
// remove the bytes afterwards is only logged.
func (s *Service) Delete(ctx context.Context, user *models.User, name string, vis models.Visibility) error {
	f, err := s.store.FindOwnedFile(ctx, user.ID, name, vis)
	if err != nil {
		return apperr.Storage("failed to look up file", err)
	}
	if f == nil {
		return apperr.NotFound("file not found")
	}

	unlock := s.locks.Lock(f.Path)
	defer unlock()

	var event *models.Event
	err = s.store.ExecTx(ctx, func(q database.Querier) error {
		deleted, err := q.DeleteFile(ctx, f.ID, user.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return errFileGone
		}
		event, err = q.LogEvent(ctx, user.ID, models.EventFileDeleted, payloadOf(f))
		return err
	})
	if err != nil {
		if errors.Is(err, errFileGone) {
			return apperr.NotFound("file not found")
		}
		return apperr.Storage("failed to delete file record", err)
	}

	if err := s.files.Delete(ctx, f.Path); err != nil {
		s.log.Error(ctx, "failed to delete file bytes", "key", f.Path, "error", err)
	}
	s.log.Info(ctx, "file deleted", "user", user.Username, "name", f.Name, "key", f.Path)
	s.publish(user.ID, f, event)
	return nil
}

var errFileGone = errors.New("file deleted concurrently")

// List returns every file visible to user with its column names. A file whose
// header cannot be read is listed with no keys.
func (s *Service) List(ctx context.Context, user *models.User) ([]Listing, error) {
	records, err := s.store.ListVisibleFiles(ctx, user.ID)
	if err != nil {
		return nil, apperr.Storage("failed to list files", err)
	}
	out := make([]Listing, len(records))
	for i, f := range records {
		out[i] = Listing{File: f, IsPrivate: f.IsPrivate(), Keys: s.header(ctx, &f)}
	}
	return out, nil
}

func (s *Service) header(ctx context.Context, f *models.File) []string {
	rc, err := s.files.Open(ctx, f.Path)
	if err != nil {
		s.log.Warn(ctx, "cannot open file for listing", "key", f.Path, "error", err)
		return []string{}
	}
	defer rc.Close()
	keys, err := table.ReadHeader(rc, f.DelimiterRune())
	if err != nil {
		s.log.Warn(ctx, "cannot read file header", "key", f.Path, "error", err)
		return []string{}
	}
	return keys
}
