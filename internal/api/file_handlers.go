package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"serwer-tabel/internal/files"
	"serwer-tabel/internal/models"
	"serwer-tabel/internal/table"

	"github.com/go-chi/chi/v5"
)

// multipartOverhead covers form fields and part headers on top of the upload
// limit.
const (
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20
)

type UploadOptions struct {
	Delimiter string `json:"delimiter" example:";"`
	IsPrivate bool   `json:"is_private" example:"true"`
}

type UploadResponse struct {
	Username string       `json:"username" example:"alice"`
	Filename string       `json:"filename" example:"people.csv"`
	File     *models.File `json:"file"`
}

type FileListResponse struct {
	Data []files.Listing `json:"data"`
}

type ViewResponse struct {
	Data *table.Result `json:"data"`
}

type DeleteResponse struct {
	Deleted string `json:"deleted" example:"people.csv"`
}

// ascendingList accepts either one bool for every sort column or a list.
type ascendingList struct {
	set    bool
	all    bool
	values []bool
}

func (a *ascendingList) UnmarshalJSON(data []byte) error {
	var one bool
	if err := json.Unmarshal(data, &one); err == nil {
		*a = ascendingList{set: true, all: one}
		return nil
	}
	var many []bool
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("ascending must be a bool or a list of bools")
	}
	*a = ascendingList{set: true, values: many}
	return nil
}

type SortingParams struct {
	Values    []string      `json:"values" example:"age,name"`
	Ascending ascendingList `json:"ascending" swaggertype:"array,boolean"`
}

type ViewRequest struct {
	FromPrivate   bool           `json:"from_private" example:"false"`
	SortingParams *SortingParams `json:"sorting_params"`
	FilterQuery   string         `json:"filter_query" example:"age > 30 and city == 'Kraków'"`
}

type DeleteRequest struct {
	FromPrivate bool `json:"from_private" example:"true"`
}

// sortSpec expands a missing or scalar ascending flag to one entry per
// column. An explicit list is passed through so the table engine can report
// a length mismatch.
func sortSpec(columns []string, asc ascendingList) *table.SortSpec {
	if len(columns) == 0 && !asc.set {
		return nil
	}
	spec := &table.SortSpec{Columns: columns, Ascending: asc.values}
	if !asc.set || asc.values == nil {
		all := !asc.set || asc.all
		spec.Ascending = make([]bool, len(columns))
		for i := range spec.Ascending {
			spec.Ascending[i] = all
		}
	}
	return spec
}

func filenameParam(r *http.Request) string {
	name := chi.URLParam(r, "filename")
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

func parseBoolParam(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid '%s' parameter, must be a boolean", key)
	}
	return v, nil
}

// splitList reads a repeated or comma separated query parameter.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// uploadOptions reads the options from a "json" part (sent either as a file
// or a plain field) or, failing that, from the delimiter, is_private and
// visibility fields.
func uploadOptions(r *http.Request) (string, models.Visibility, error) {
	raw, err := jsonPart(r)
	if err != nil {
		return "", "", err
	}
	if raw != nil {
		var opts UploadOptions
		if err := json.Unmarshal(raw, &opts); err != nil {
			return "", "", errors.New("invalid json part")
		}
		return opts.Delimiter, models.VisibilityFromPrivate(opts.IsPrivate), nil
	}

	delimiter := r.FormValue("delimiter")
	if v := strings.TrimSpace(r.FormValue("visibility")); v != "" {
		vis, err := models.ParseVisibility(v)
		if err != nil {
			return "", "", err
		}
		return delimiter, vis, nil
	}
	isPrivate := false
	if v := strings.TrimSpace(r.FormValue("is_private")); v != "" {
		isPrivate, err = strconv.ParseBool(v)
		if err != nil {
			return "", "", errors.New("is_private must be a boolean")
		}
	}
	return delimiter, models.VisibilityFromPrivate(isPrivate), nil
}

func jsonPart(r *http.Request) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	if headers := r.MultipartForm.File["json"]; len(headers) > 0 {
		f, err := headers[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	if values := r.MultipartForm.Value["json"]; len(values) > 0 {
		return []byte(values[0]), nil
	}
	return nil, nil
}

// @Summary      Upload a table
// @Description  Uploads a delimited file. Options come from a "json" part `{"delimiter": ";", "is_private": true}` or from the form fields delimiter and is_private (or visibility). Re-uploading your own file replaces it.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        file        formData  file    true   "Delimited file"
// @Param        json        formData  string  false  "Options as JSON"
// @Param        delimiter   formData  string  false  "Field delimiter"
// @Param        is_private  formData  bool    false  "Store in the private scope"
// @Success      201  {object}  UploadResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /files [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	if limit := s.config.Upload.MaxBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "file exceeds the upload limit")
			return
		}
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "expected a multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	delimiter, visibility, err := uploadOptions(r)
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, err.Error())
		return
	}

	saved, err := s.files.Upload(r.Context(), user, files.UploadInput{
		Filename:   header.Filename,
		Delimiter:  delimiter,
		Visibility: visibility,
		Body:       file,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Username: user.Username,
		Filename: saved.Name,
		File:     saved,
	})
}

// @Summary      List tables
// @Description  Lists your own files and every public file, each with its column names.
// @Tags         files
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Success      200  {object}  FileListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /files [get]
func (s *Server) ListFilesHandler(w http.ResponseWriter, r *http.Request) {
	listing, err := s.files.List(r.Context(), currentUser(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FileListResponse{Data: listing})
}

func viewRequestFromQuery(r *http.Request) (bool, table.Spec, error) {
	fromPrivate, err := parseBoolParam(r, "from_private")
	if err != nil {
		return false, table.Spec{}, err
	}
	q := r.URL.Query()
	var asc ascendingList
	if raw := splitList(q["ascending"]); len(raw) > 0 {
		asc.set = true
		for _, v := range raw {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return false, table.Spec{}, errors.New("invalid 'ascending' parameter, must be booleans")
			}
			asc.values = append(asc.values, b)
		}
		if len(asc.values) == 1 {
			asc.all, asc.values = asc.values[0], nil
		}
	}
	spec := table.Spec{
		Sort:   sortSpec(splitList(q["sort"]), asc),
		Filter: q.Get("filter"),
	}
	return fromPrivate, spec, nil
}

func viewRequestFromBody(r *http.Request) (bool, table.Spec, error) {
	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return false, table.Spec{}, fmt.Errorf("invalid request body: %v", err)
	}
	spec := table.Spec{Filter: req.FilterQuery}
	if req.SortingParams != nil {
		spec.Sort = sortSpec(req.SortingParams.Values, req.SortingParams.Ascending)
		if spec.Sort == nil {
			spec.Sort = &table.SortSpec{}
		}
	}
	return req.FromPrivate, spec, nil
}

// @Summary      View a table
// @Description  Returns the table in split orientation after an optional filter and sort. The filter is a boolean expression over column names, e.g. `age > 30 and not (city == 'Gdańsk')`. GET takes query parameters; POST takes a JSON body.
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        filename      path      string       true   "File name"
// @Param        from_private  query     bool         false  "Look in your private scope (GET)"
// @Param        sort          query     string       false  "Comma separated sort columns (GET)"
// @Param        ascending     query     string       false  "Comma separated sort directions (GET)"
// @Param        filter        query     string       false  "Filter expression (GET)"
// @Param        viewRequest   body      ViewRequest  false  "View request (POST)"
// @Success      200  {object}  ViewResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /files/{filename}/view [get]
// @Router       /files/{filename}/view [post]
func (s *Server) ViewFileHandler(w http.ResponseWriter, r *http.Request) {
	var (
		fromPrivate bool
		spec        table.Spec
		err         error
	)
	if r.Method == http.MethodPost {
		s.limitBody(w, r)
		fromPrivate, spec, err = viewRequestFromBody(r)
	} else {
		fromPrivate, spec, err = viewRequestFromQuery(r)
	}
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, err.Error())
		return
	}

	res, err := s.files.View(r.Context(), currentUser(r.Context()), filenameParam(r), models.VisibilityFromPrivate(fromPrivate), spec)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ViewResponse{Data: res})
}

// @Summary      Download a table
// @Description  Streams the raw bytes of a file you can see.
// @Tags         files
// @Produce      octet-stream
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        filename      path   string  true   "File name"
// @Param        from_private  query  bool    false  "Look in your private scope"
// @Success      200  {file}    file
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /files/{filename}/download [get]
func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	fromPrivate, err := parseBoolParam(r, "from_private")
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, err.Error())
		return
	}

	f, rc, err := s.files.Download(r.Context(), currentUser(r.Context()), filenameParam(r), models.VisibilityFromPrivate(fromPrivate))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		s.log.Warn(r.Context(), "download interrupted", "name", f.Name, "error", err)
	}
}

// @Summary      Delete a table
// @Description  Deletes one of your files. The scope comes from the from_private query parameter or a JSON body.
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        filename       path      string         true   "File name"
// @Param        from_private   query     bool           false  "Delete from your private scope"
// @Param        deleteRequest  body      DeleteRequest  false  "Scope as JSON"
// @Success      200  {object}  DeleteResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /files/{filename} [delete]
func (s *Server) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	fromPrivate, err := parseBoolParam(r, "from_private")
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, err.Error())
		return
	}
	if r.URL.Query().Get("from_private") == "" && r.Body != nil {
		var req DeleteRequest
		s.limitBody(w, r)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "Invalid request body")
			return
		}
		fromPrivate = req.FromPrivate
	}

	name := filenameParam(r)
	if err := s.files.Delete(r.Context(), currentUser(r.Context()), name, models.VisibilityFromPrivate(fromPrivate)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: name})
}
