package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"serwer-tabel/internal/table"

	"github.com/stretchr/testify/require"
)

const peopleCSV = "name;age;city\nbeata;34;Kraków\nadam;28;Gdańsk\ncezary;41;Kraków\n"

func uploadPeople(t *testing.T, a *testAPI, user string, private bool) {
	t.Helper()
	req := uploadRequest(t, "people.csv", peopleCSV, &UploadOptions{Delimiter: ";", IsPrivate: private}, nil)
	rr := a.do(t, asUser(req, user))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func viewData(t *testing.T, rr *httptest.ResponseRecorder) *table.Result {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[ViewResponse](t, rr)
	require.NotNil(t, resp.Data)
	return resp.Data
}

func TestAPI_UploadViewDownloadDelete(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")

	rr := a.do(t, asUser(uploadRequest(t, "people.csv", peopleCSV, &UploadOptions{Delimiter: ";"}, nil), "alice"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	up := decode[UploadResponse](t, rr)
	require.Equal(t, "alice", up.Username)
	require.Equal(t, "people.csv", up.Filename)
	require.False(t, up.File.IsPrivate())

	// GET sortuje po wieku rosnąco
	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view?sort=age", nil), "alice"))
	res := viewData(t, rr)
	require.Equal(t, []string{"name", "age", "city"}, res.Columns)
	require.Equal(t, []int{1, 0, 2}, res.Index)

	// POST: filtr i sortowanie malejące po nazwie
	rr = a.do(t, asUser(jsonRequest(t, http.MethodPost, "/api/v1/files/people.csv/view", map[string]any{
		"sorting_params": map[string]any{"values": []string{"name"}, "ascending": false},
		"filter_query":   "city == 'Kraków' and age > 30",
	}), "alice"))
	res = viewData(t, rr)
	require.Equal(t, []int{2, 0}, res.Index)
	require.Equal(t, "cezary", res.Data[0][0])
	require.Equal(t, float64(41), res.Data[0][1])

	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/download", nil), "alice"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Disposition"), "people.csv")
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.Equal(t, peopleCSV, string(body))

	rr = a.do(t, asUser(jsonRequest(t, http.MethodDelete, "/api/v1/files/people.csv", DeleteRequest{FromPrivate: false}), "alice"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "people.csv", decode[DeleteResponse](t, rr).Deleted)

	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view", nil), "alice"))
	requireError(t, rr, http.StatusNotFound, statusNotFound)
}

func TestAPI_ViewQueryErrors(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")
	uploadPeople(t, a, "alice", false)

	tests := []struct {
		name   string
		req    *http.Request
		reason string
	}{
		{
			name:   "unknown column in filter",
			req:    httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view?filter="+url.QueryEscape("height > 3"), nil),
			reason: "name 'height' is not defined",
		},
		{
			name:   "unknown sort column",
			req:    httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view?sort=height", nil),
			reason: "column 'height' not found",
		},
		{
			name: "ascending length mismatch",
			req: jsonRequest(t, http.MethodPost, "/api/v1/files/people.csv/view", map[string]any{
				"sorting_params": map[string]any{"values": []string{"name", "age"}, "ascending": []bool{true}},
			}),
			reason: "Length of ascending (1) != length of by (2)",
		},
		{
			name:   "syntax error",
			req:    httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view?filter="+url.QueryEscape("age >"), nil),
			reason: "syntax",
		},
		{
			name:   "bad from_private",
			req:    httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view?from_private=maybe", nil),
			reason: "from_private",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := a.do(t, asUser(tc.req, "alice"))
			resp := requireError(t, rr, http.StatusBadRequest, statusBadRequest)
			require.Contains(t, resp.Reason, tc.reason)
		})
	}
}

func TestAPI_UploadValidation(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"wrong extension", uploadRequest(t, "people.txt", peopleCSV, &UploadOptions{Delimiter: ";"}, nil)},
		{"no file", uploadRequest(t, "", "", &UploadOptions{Delimiter: ";"}, nil)},
		{"missing delimiter", uploadRequest(t, "people.csv", peopleCSV, nil, map[string]string{"is_private": "true"})},
		{"quote delimiter", uploadRequest(t, "people.csv", peopleCSV, nil, map[string]string{"delimiter": `"`})},
		{"bad is_private", uploadRequest(t, "people.csv", peopleCSV, nil, map[string]string{"delimiter": ";", "is_private": "tak"})},
		{"bad visibility", uploadRequest(t, "people.csv", peopleCSV, nil, map[string]string{"delimiter": ";", "visibility": "secret"})},
		{"not multipart", jsonRequest(t, http.MethodPost, "/api/v1/files", map[string]string{"delimiter": ";"})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := a.do(t, asUser(tc.req, "alice"))
			requireError(t, rr, http.StatusBadRequest, statusBadRequest)
		})
	}

	rr := a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files", nil), "alice"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, decode[FileListResponse](t, rr).Data)
}

func TestAPI_UploadTooLarge(t *testing.T) {
	a := newTestAPI(t, 64)
	a.register(t, "alice")

	big := "a;b\n" + strings.Repeat("1;2\n", 100)
	rr := a.do(t, asUser(uploadRequest(t, "big.csv", big, &UploadOptions{Delimiter: ";"}, nil), "alice"))
	requireError(t, rr, http.StatusBadRequest, statusBadRequest)
}

func TestAPI_PrivateFilesStayPrivate(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")
	a.register(t, "bob")

	req := uploadRequest(t, "people.csv", peopleCSV, nil, map[string]string{"delimiter": ";", "is_private": "true"})
	rr := a.do(t, asUser(req, "alice"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view?from_private=true", nil), "alice"))
	require.Len(t, viewData(t, rr).Index, 3)

	// bez from_private szukamy w plikach publicznych
	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view", nil), "alice"))
	requireError(t, rr, http.StatusNotFound, statusNotFound)

	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view?from_private=true", nil), "bob"))
	requireError(t, rr, http.StatusNotFound, statusNotFound)

	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files", nil), "bob"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, decode[FileListResponse](t, rr).Data)

	rr = a.do(t, asUser(httptest.NewRequest(http.MethodDelete, "/api/v1/files/people.csv?from_private=true", nil), "bob"))
	requireError(t, rr, http.StatusNotFound, statusNotFound)
}

func TestAPI_ListIncludesKeys(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")
	a.register(t, "bob")
	uploadPeople(t, a, "alice", false)

	rr := a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files", nil), "bob"))
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[FileListResponse](t, rr)
	require.Len(t, list.Data, 1)
	require.Equal(t, "people.csv", list.Data[0].Name)
	require.Equal(t, "alice", list.Data[0].OwnerName)
	require.False(t, list.Data[0].IsPrivate)
	require.Equal(t, []string{"name", "age", "city"}, list.Data[0].Keys)
}

func TestAPI_PublicNameTakenByAnotherUser(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")
	a.register(t, "bob")
	uploadPeople(t, a, "alice", false)

	rr := a.do(t, asUser(uploadRequest(t, "people.csv", "x;y\n1;2\n", &UploadOptions{Delimiter: ";"}, nil), "bob"))
	resp := requireError(t, rr, http.StatusBadRequest, statusBadRequest)
	require.Contains(t, resp.Reason, "already taken")

	// bob nie może usunąć cudzego pliku publicznego
	rr = a.do(t, asUser(httptest.NewRequest(http.MethodDelete, "/api/v1/files/people.csv", nil), "bob"))
	requireError(t, rr, http.StatusNotFound, statusNotFound)
}

func TestAPI_EventsAfterUpload(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")
	uploadPeople(t, a, "alice", true)

	rr := a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/events?since=0", nil), "alice"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	events := decode[[]struct {
		ID        int64  `json:"id"`
		EventType string `json:"event_type"`
	}](t, rr)
	require.Len(t, events, 1)
	require.Equal(t, "file_uploaded", events[0].EventType)

	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/events?since=abc", nil), "alice"))
	requireError(t, rr, http.StatusBadRequest, statusBadRequest)
}

func TestSortSpec(t *testing.T) {
	require.Nil(t, sortSpec(nil, ascendingList{}))

	spec := sortSpec([]string{"a", "b"}, ascendingList{})
	require.Equal(t, []bool{true, true}, spec.Ascending)

	spec = sortSpec([]string{"a", "b"}, ascendingList{set: true, all: false})
	require.Equal(t, []bool{false, false}, spec.Ascending)

	spec = sortSpec([]string{"a", "b"}, ascendingList{set: true, values: []bool{true}})
	require.Equal(t, []bool{true}, spec.Ascending)
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "c", ""}))
	require.Nil(t, splitList(nil))
}

func TestAPI_OversizeJSONBody(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")
	uploadPeople(t, a, "alice", false)

	deep := strings.Repeat("(", testMaxBodyBytes) + "age > 1" + strings.Repeat(")", testMaxBodyBytes)

	rr := a.do(t, asUser(jsonRequest(t, http.MethodPost, "/api/v1/files/people.csv/view", ViewRequest{FilterQuery: deep}), "alice"))
	resp := requireError(t, rr, http.StatusBadRequest, statusBadRequest)
	require.Contains(t, resp.Reason, "invalid request body")

	padded := `{"from_private": false, "pad": "` + strings.Repeat("x", testMaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/files/people.csv", strings.NewReader(padded))
	rr = a.do(t, asUser(req, "alice"))
	requireError(t, rr, http.StatusBadRequest, statusBadRequest)

	// The file survives the rejected delete.
	rr = a.do(t, asUser(httptest.NewRequest(http.MethodGet, "/api/v1/files/people.csv/view", nil), "alice"))
	require.Len(t, viewData(t, rr).Index, 3)
}

func TestAPI_ViewFilterNestedTooDeeply(t *testing.T) {
	a := newTestAPI(t, 1<<20)
	a.register(t, "alice")
	uploadPeople(t, a, "alice", false)

	deep := strings.Repeat("(", 300) + "age > 1" + strings.Repeat(")", 300)
	rr := a.do(t, asUser(jsonRequest(t, http.MethodPost, "/api/v1/files/people.csv/view", ViewRequest{FilterQuery: deep}), "alice"))
	resp := requireError(t, rr, http.StatusBadRequest, statusBadRequest)
	require.Contains(t, resp.Reason, "nested too deeply")
}
