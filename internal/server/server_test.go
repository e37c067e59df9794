package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBM-i2/analyze-connect/internal/apperr"
	"github.com/IBM-i2/analyze-connect/internal/config"
	"github.com/IBM-i2/analyze-connect/internal/core"
	"github.com/IBM-i2/analyze-connect/internal/core/model"
	"github.com/IBM-i2/analyze-connect/internal/socrata"
)

const oneRow = `[{"incident_type":"Fire-1st Alarm","location":"10 Elm St","borough":"Brooklyn",
	"creation_date":"2019-03-04T05:06:07.000"}]`

type fakeFetcher struct {
	rows    string
	err     error
	queries []socrata.Query
}

func (f *fakeFetcher) Get(ctx context.Context, q socrata.Query, out interface{}) error {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.rows), out)
}

func newTestRouter(t *testing.T, f *fakeFetcher, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := NewServer(core.NewExternalDataService(f, nil), core.NewDemoDataService(nil, nil), cfg, nil)
	return s.SetupRouter()
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) model.ConnectorResponse {
	t.Helper()
	var resp model.ConnectorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAllRoute(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{rows: oneRow}, nil)

	w := do(r, http.MethodPost, "/all", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.Len(t, resp.Entities, 2)
	assert.Len(t, resp.Links, 1)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestEmptyResultUsesArrays(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{rows: "[]"}, nil)

	w := do(r, http.MethodPost, "/all", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"entities":[],"links":[]}`, w.Body.String())
}

func TestSearchRoute(t *testing.T) {
	f := &fakeFetcher{rows: oneRow}
	r := newTestRouter(t, f, nil)

	w := do(r, http.MethodPost, "/search",
		`{"payload":{"conditions":[{"id":"borough","logicalType":"SINGLE_LINE_STRING","value":"Brooklyn"},{"id":"location","value":null}]}}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, f.queries, 1)
	v, ok := f.queries[0].Lookup("borough_1")
	assert.True(t, ok)
	assert.Equal(t, "Brooklyn", v)
}

func TestExpandRoute(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{rows: oneRow}, nil)

	body := `{"payload":{"seeds":{"entities":[{
		"seedId":"seed-1","typeId":"ET2",
		"sourceIds":[{"key":["nyc","ET2","Brooklyn_10 Elm St"],"type":"OI.NYC"}],
		"properties":{"PT7":"Brooklyn","PT8":"10 Elm St"}}]}}}`
	w := do(r, http.MethodPost, "/expand", body)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	require.Len(t, resp.Links, 1)
	assert.Equal(t, "seed-1", resp.Links[0].ToEndID)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		path   string
		body   string
		status int
	}{
		{"bad json", nil, "/search", `{"payload":`, http.StatusBadRequest},
		{"malformed seed", nil, "/find-like-this", `{"payload":{"seeds":{"entities":[]}}}`, http.StatusBadRequest},
		{"invalid condition", nil, "/search", `{"payload":{"conditions":[{"id":"a b","value":"x"}]}}`, http.StatusBadRequest},
		{"auth", &apperr.AuthError{StatusCode: 403}, "/all", "", http.StatusBadGateway},
		{"upstream", &apperr.UpstreamError{StatusCode: 500, Body: "boom"}, "/all", "", http.StatusBadGateway},
		{"other", errors.New("unexpected"), "/all", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, &fakeFetcher{rows: "[]", err: tt.err}, nil)

			w := do(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["errorMessage"])
		})
	}
}

func TestUpstreamStatusInMessage(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{err: &apperr.UpstreamError{StatusCode: 429, Body: "slow down"}}, nil)

	w := do(r, http.MethodPost, "/all", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "429")
}

func TestTestDataRoute(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{}, nil)

	w := do(r, http.MethodPost, "/test-data", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Len(t, resp.Entities, 2)
}

func TestConfigRoute(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{}, nil)

	w := do(r, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	var cfg model.ConnectorConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))

	var urls []string
	for _, svc := range cfg.Services {
		urls = append(urls, svc.AcquireURL)
	}
	assert.ElementsMatch(t, []string{"/all", "/search", "/find-like-this", "/expand", "/test-data"}, urls)
	require.Len(t, cfg.ClientConfigs, 1)
	assert.Len(t, cfg.ClientConfigs[0].Config.Sections[0].Conditions, 3)
}

func TestSchemaRoute(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{}, nil)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/schema", "").Code)

	path := filepath.Join(t.TempDir(), "schema.xml")
	require.NoError(t, os.WriteFile(path, []byte("<Schema/>"), 0o600))
	cfg := config.Default()
	cfg.Server.SchemaPath = path

	w := do(newTestRouter(t, &fakeFetcher{}, cfg), http.MethodGet, "/schema", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<Schema/>", w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	r := newTestRouter(t, &fakeFetcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
