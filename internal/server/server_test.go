// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kinematics-engine/internal/logging"
	"github.com/pdiddy/kinematics-engine/internal/movinggroup"
	"github.com/pdiddy/kinematics-engine/internal/observability"
	"github.com/pdiddy/kinematics-engine/internal/resolve"
	"github.com/pdiddy/kinematics-engine/internal/session"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

type stubResolver struct {
	star types.ResolvedStar
	err  error
}

func (s stubResolver) Name() string { return "stub" }

func (s stubResolver) Resolve(_ context.Context, name string) (types.ResolvedStar, error) {
	if s.err != nil {
		return types.ResolvedStar{}, s.err
	}
	star := s.star
	star.Query = name
	return star, nil
}

type testServer struct {
	handler  http.Handler
	sessions *session.Store
	metrics  *observability.Collector
	cookie   *http.Cookie
}

func newTestServer(t *testing.T, resolver resolve.Resolver) *testServer {
	t.Helper()
	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	sessions := session.NewStore(time.Hour)
	engine := transform.NewEngine(types.EngineConfig{MaxSweepPoints: 1000},
		transform.WithObserver(metrics), transform.WithLogger(logging.Discard()))
	srv := New(types.ServerConfig{MaxUploadBytes: 1 << 16}, Deps{
		Engine:   engine,
		Sessions: sessions,
		Resolver: resolver,
		Metrics:  metrics,
		Logger:   logging.Discard(),
	})
	return &testServer{handler: srv.Handler(), sessions: sessions, metrics: metrics}
}

// do sends req, carrying the session cookie across calls.
func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			ts.cookie = c
		}
	}
	return rec
}

func (ts *testServer) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req)
}

func twHyaForm() url.Values {
	form := url.Values{}
	for k, v := range session.DefaultValues() {
		form.Set(k, v)
	}
	return form
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestQuery_NewSessionHasDefaults(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/query", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ts.cookie)
	assert.True(t, ts.cookie.HttpOnly)

	var body queryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, session.DefaultValues(), body.Values)
	assert.False(t, body.HasResult)
	assert.Equal(t, float64(1), testutil.ToFloat64(ts.metrics.Sessions))
}

func TestHome_RedirectsToQuery(t *testing.T) {
	ts := newTestServer(t, nil)
	for _, path := range []string{"/", "/index.html", "/query.html"} {
		rec := ts.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/query", rec.Header().Get("Location"), path)
	}
}

func TestCalculate_Single(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.postForm("/calculate", twHyaForm())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.InEpsilon(t, 7.461354080004231, rows[0]["x"], 1e-6)
	assert.InEpsilon(t, -18.348121604916745, rows[0]["v"], 1e-6)

	q := ts.do(httptest.NewRequest(http.MethodGet, "/query", nil))
	var body queryResponse
	require.NoError(t, json.Unmarshal(q.Body.Bytes(), &body))
	assert.True(t, body.HasResult)
}

func TestCalculate_EmptySubmissionUsesSessionValues(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.postForm("/calculate", url.Values{})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.InEpsilon(t, 7.461354080004231, rows[0]["x"], 1e-6)
}

func TestCalculate_JSONSweepAsCSV(t *testing.T) {
	ts := newTestServer(t, nil)

	fields := session.DefaultValues()
	delete(fields, "rv")
	raw := transform.RawRequest{
		Fields: fields,
		Sweeps: []transform.RawSweep{{Kind: "rv", Initial: "0", Final: "10", Step: "3"}},
	}
	payload, err := json.Marshal(raw)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/calculate?format=csv", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "RV,X,Y,Z,U,V,W", lines[0])
	assert.True(t, strings.HasPrefix(lines[5], "10,"))
}

func TestCalculate_FormSweep(t *testing.T) {
	ts := newTestServer(t, nil)

	form := twHyaForm()
	form.Del("dist")
	form.Set("dist_initial", "10")
	form.Set("dist_final", "30")
	form.Set("dist_step", "10")
	rec := ts.postForm("/calculate?format=txt", form)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Dist"))
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
		target string
		status int
		kind   string
		field  string
	}{
		{"missing field", func(f url.Values) { f.Del("pmra") }, "/calculate", http.StatusBadRequest, "missing_field", "pmra"},
		{"bad number", func(f url.Values) { f.Set("dec", "abc") }, "/calculate", http.StatusBadRequest, "parse_error", "dec"},
		{"zero distance", func(f url.Values) { f.Set("dist", "0") }, "/calculate", http.StatusUnprocessableEntity, "degenerate_input", ""},
		{"bad sweep", func(f url.Values) {
			f.Set("rv_initial", "10")
			f.Set("rv_final", "0")
			f.Set("rv_step", "1")
		}, "/calculate", http.StatusBadRequest, "invalid_sweep", ""},
		{"conflicting sweeps", func(f url.Values) {
			f.Set("rv_initial", "0")
			f.Set("rv_final", "1")
			f.Set("rv_step", "1")
			f.Set("dist_initial", "10")
			f.Set("dist_final", "20")
			f.Set("dist_step", "5")
		}, "/calculate", http.StatusBadRequest, "invalid_sweep", ""},
		{"bad format", func(url.Values) {}, "/calculate?format=pdf", http.StatusBadRequest, "bad_request", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			form := twHyaForm()
			tt.mutate(form)

			rec := ts.postForm(tt.target, form)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind, body.Error)
			assert.Equal(t, tt.field, body.Field)
		})
	}
}

func TestCalculate_KeepsSubmittedValuesOnError(t *testing.T) {
	ts := newTestServer(t, nil)
	form := twHyaForm()
	form.Set("dec", "abc")
	ts.postForm("/calculate", form)

	q := ts.do(httptest.NewRequest(http.MethodGet, "/query", nil))
	var body queryResponse
	require.NoError(t, json.Unmarshal(q.Body.Bytes(), &body))
	assert.Equal(t, "abc", body.Values["dec"])
	assert.False(t, body.HasResult)
}

const batchCSV = "Name,RA,Dec,pmRA,pmDec,RV,Dist\n" +
	"TW Hya,165.46627797,-34.70473119,-66.19,-13.90,13.40,53.7\n" +
	"Broken,165.46627797,-34.70473119,-66.19,-13.90,13.40,0\n"

func TestBatch_Multipart(t *testing.T) {
	ts := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "stars.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(batchCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/batch?format=csv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,X,Y,Z,U,V,W", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "TW Hya,"))
	assert.Contains(t, lines[2], "NaN")
	assert.Equal(t, float64(1), testutil.ToFloat64(ts.metrics.DegenerateRows.WithLabelValues("batch")))
}

func TestBatch_RawBodyErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
		field  string
	}{
		{"missing columns", "Name,RA,Dec\nA,1,2\n", http.StatusBadRequest, "schema_error", ""},
		{"bad cell", "Name,RA,Dec,pmRA,pmDec,RV,Dist\nA,1,x,1,1,1,1\n", http.StatusBadRequest, "row_error", "dec"},
		{"empty", "", http.StatusBadRequest, "schema_error", ""},
		{"too large", strings.Repeat("a,", 1<<16), http.StatusRequestEntityTooLarge, "too_large", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "text/csv")
			rec := ts.do(req)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind, body.Error)
			assert.Equal(t, tt.field, body.Field)
		})
	}
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ts.postForm("/calculate", twHyaForm())
	rec = ts.do(httptest.NewRequest(http.MethodGet, "/export?format=html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="kinematics.html"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `<table class="display">`)
}

func TestClear(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.postForm("/calculate", twHyaForm())

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/clear", nil))
	assert.Equal(t, http.StatusFound, rec.Code)

	q := ts.do(httptest.NewRequest(http.MethodGet, "/query", nil))
	var body queryResponse
	require.NoError(t, json.Unmarshal(q.Body.Bytes(), &body))
	assert.Equal(t, session.BlankValues(), body.Values)
	assert.False(t, body.HasResult)
	assert.Equal(t, 1, ts.sessions.Len())
}

func TestGroups(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/groups", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []types.MovingGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Len(t, groups, len(movinggroup.All()))

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/groups?plane=uv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var ellipses []movinggroup.Ellipse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ellipses))
	require.Len(t, ellipses, len(groups))
	assert.Equal(t, movinggroup.PlaneUV, ellipses[0].Plane)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/groups?plane=ab", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGroups_NameAndOutline(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/groups?name=tw+hya&plane=xy&outline=8", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out []groupOutline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "TWA", out[0].Group)
	assert.Len(t, out[0].Points, 8)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/groups?name=nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/groups?plane=uv&outline=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve(t *testing.T) {
	pm := -66.19
	ts := newTestServer(t, stubResolver{star: types.ResolvedStar{
		Name: "TW Hya", RA: 165.46627797, Dec: -34.70473119, PMRA: &pm, Source: "sesame:Simbad",
	}})

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/resolve/TW%20Hya", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var star types.ResolvedStar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &star))
	assert.Equal(t, "TW Hya", star.Query)

	q := ts.do(httptest.NewRequest(http.MethodGet, "/query", nil))
	var body queryResponse
	require.NoError(t, json.Unmarshal(q.Body.Bytes(), &body))
	assert.Equal(t, "TW Hya", body.Star)
	assert.Equal(t, "-66.19", body.Values["pmra"])
	assert.Equal(t, "", body.Values["rv"], "missing quantities are blanked")
	assert.Equal(t, float64(1), testutil.ToFloat64(ts.metrics.Lookups.WithLabelValues(observability.LookupFound)))
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		resolver resolve.Resolver
		status   int
		outcome  string
	}{
		{"not found", stubResolver{err: &resolve.LookupNotFoundError{Name: "nope"}}, http.StatusNotFound, observability.LookupNotFound},
		{"upstream", stubResolver{err: &resolve.UpstreamError{Service: "sesame", Status: 500}}, http.StatusBadGateway, observability.LookupError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.resolver)
			rec := ts.do(httptest.NewRequest(http.MethodGet, "/resolve/nope", nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, float64(1), testutil.ToFloat64(ts.metrics.Lookups.WithLabelValues(tt.outcome)))
		})
	}
}

func TestResolve_Unconfigured(t *testing.T) {
	ts := newTestServer(t, nil)
	rec := ts.do(httptest.NewRequest(http.MethodGet, "/resolve/x", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNotFoundAndMetrics(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error)

	ts.do(httptest.NewRequest(http.MethodGet, "/query", nil))
	rec = ts.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `kinematics_http_requests_total{code="200",method="GET",route="/query"} 1`)
}

func TestExpiredCookieStartsFreshSession(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.cookie = &http.Cookie{Name: session.CookieName, Value: "not-a-uuid"}

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/query", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, "not-a-uuid", ts.cookie.Value)
}
