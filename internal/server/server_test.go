package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/internal/statestore"
	"github.com/leapstack-labs/sqlfront/internal/testutil"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/stat"

	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/all"
)

func newTestServer(t *testing.T, store *statestore.SQLiteStore) (*Server, http.Handler) {
	t.Helper()
	s, err := NewServer(Config{
		Addr:   "127.0.0.1:0",
		Store:  store,
		Logger: testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	return s, s.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(Config{DefaultDialect: "cobol"})
	require.ErrorIs(t, err, dialect.ErrUnknownDialect)

	s, err := NewServer(Config{})
	require.NoError(t, err)
	assert.Equal(t, "ansi", s.defaultDialect)
	assert.Equal(t, DefaultFlushInterval, s.flushInterval)
}

func TestHealthz(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestParse(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/v1/parse", `{"sql":"SELECT a FROM t WHERE id = 1; -- done\nDELETE FROM t"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[parseResponse](t, rec)
	assert.Equal(t, "ansi", resp.Dialect)
	require.Len(t, resp.Statements, 2)
	assert.Equal(t, "SelectStmt", resp.Statements[0].Kind)
	assert.Equal(t, "SELECT a FROM t WHERE id = ?", resp.Statements[0].Fingerprint.SQL)
	assert.Equal(t, "DeleteStmt", resp.Statements[1].Kind)

	ast, ok := resp.Statements[0].AST.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "SelectStmt", ast["node"])

	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "line", resp.Comments[0].Kind)
	assert.Equal(t, 1, resp.Comments[0].Line)

	// parsed statements are recorded
	rec = do(t, h, http.MethodPost, "/v1/parse", `{"sql":"SELECT a FROM"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = do(t, h, http.MethodGet, "/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[statsResponse](t, rec)
	assert.Equal(t, stat.Summary{Fingerprints: 2, ParseFailures: 1}, stats.Summary)
}

func TestParse_Dialects(t *testing.T) {
	_, h := newTestServer(t, nil)
	sql := "SELECT id FROM emp START WITH mgr IS NULL CONNECT BY PRIOR id = mgr"

	rec := do(t, h, http.MethodPost, "/v1/parse", `{"sql":"`+sql+`","dialect":"oracle"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/v1/parse", `{"sql":"`+sql+`","dialect":"ansi"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		check  func(t *testing.T, resp errorResponse)
	}{
		{
			name:   "syntax error carries position",
			body:   `{"sql":"SELECT a FROM"}`,
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, resp errorResponse) {
				assert.Contains(t, resp.Error, "parse error")
				assert.Equal(t, 1, resp.Line)
				assert.Positive(t, resp.Column)
			},
		},
		{
			name:   "lexer error",
			body:   `{"sql":"SELECT 'open"}`,
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, resp errorResponse) {
				assert.Contains(t, resp.Error, "unterminated string literal")
				assert.Equal(t, 8, resp.Column)
			},
		},
		{
			name:   "unknown dialect",
			body:   `{"sql":"SELECT 1","dialect":"cobol"}`,
			status: http.StatusBadRequest,
			check: func(t *testing.T, resp errorResponse) {
				assert.Contains(t, resp.Error, "unknown dialect")
			},
		},
		{
			name:   "malformed body",
			body:   `{"sql":`,
			status: http.StatusBadRequest,
			check: func(t *testing.T, resp errorResponse) {
				assert.Contains(t, resp.Error, "invalid request body")
			},
		},
		{
			name:   "unknown field",
			body:   `{"query":"SELECT 1"}`,
			status: http.StatusBadRequest,
			check: func(t *testing.T, resp errorResponse) {
				assert.Contains(t, resp.Error, "unknown field")
			},
		},
	}

	_, h := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/parse", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			tt.check(t, decodeBody[errorResponse](t, rec))
		})
	}
}

func TestParse_BodyTooLarge(t *testing.T) {
	_, h := newTestServer(t, nil)
	body := `{"sql":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := do(t, h, http.MethodPost, "/v1/parse", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "compact",
			body: `{"sql":"select a from t; select 2","compact":true}`,
			want: "SELECT a FROM t;\nSELECT 2;\n",
		},
		{
			name: "lower keywords",
			body: `{"sql":"SELECT 1","compact":true,"keyword_case":"lower"}`,
			want: "select 1;\n",
		},
		{
			name: "pretty with comments",
			body: `{"sql":"-- head\nSELECT 1"}`,
			want: "-- head\nSELECT\n  1;\n",
		},
		{
			name: "indent",
			body: `{"sql":"SELECT 1","indent":4}`,
			want: "SELECT\n    1;\n",
		},
		{
			name: "mysql quoting",
			body: `{"sql":"SELECT ` + "`select`" + ` FROM t LIMIT 5, 10","dialect":"mysql","compact":true}`,
			want: "SELECT `select` FROM t LIMIT 10 OFFSET 5;\n",
		},
	}

	_, h := newTestServer(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/format", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			resp := decodeBody[map[string]string](t, rec)
			assert.Equal(t, tt.want, resp["sql"])
		})
	}
}

func TestFormat_BadKeywordCase(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/v1/format", `{"sql":"SELECT 1","keyword_case":"title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokens(t *testing.T) {
	_, h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/v1/tokens", `{"sql":"SELECT x"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Dialect string        `json:"dialect"`
		Tokens  []tokenResult `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.GreaterOrEqual(t, len(resp.Tokens), 2)
	assert.Equal(t, "SELECT", resp.Tokens[0].Raw)
	assert.Equal(t, "x", resp.Tokens[1].Raw)
	assert.Equal(t, 8, resp.Tokens[1].Column)
	assert.Equal(t, 7, resp.Tokens[1].Offset)
}

func TestDialects(t *testing.T) {
	_, h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/v1/dialects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	infos := decodeBody[[]dialect.Info](t, rec)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Subset(t, names, []string{"ansi", "mysql", "oracle", "postgres", "sqlserver"})

	rec = do(t, h, http.MethodGet, "/v1/dialects/oracle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[dialect.Info](t, rec)
	assert.Equal(t, `""`, info.Quote)
	assert.NotEmpty(t, info.Extensions)
	assert.NotEmpty(t, info.Clauses)

	rec = do(t, h, http.MethodGet, "/v1/dialects/cobol", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	_, h := newTestServer(t, nil)

	for _, body := range []string{
		`{"sql":"SELECT a FROM t WHERE id = 1","elapsed_ms":3}`,
		`{"sql":"SELECT a FROM t WHERE id = 2","elapsed_ms":5,"failed":true}`,
		`{"sql":"DELETE FROM t"}`,
	} {
		rec := do(t, h, http.MethodPost, "/v1/stats", body)
		require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	}
	rec := do(t, h, http.MethodPost, "/v1/stats", `{"sql":"SELECT a FROM"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[statsResponse](t, rec)
	assert.Equal(t, "ansi", resp.Dialect)
	assert.Equal(t, stat.Summary{Fingerprints: 2, ParseFailures: 1}, resp.Summary)
	require.Len(t, resp.Fingerprints, 2)
	top := resp.Fingerprints[0]
	assert.Equal(t, int64(2), top.Count)
	assert.Equal(t, int64(1), top.Errors)
	assert.Equal(t, 8*time.Millisecond, top.TotalTime)

	rec = do(t, h, http.MethodGet, "/v1/stats?top=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[statsResponse](t, rec).Fingerprints, 1)

	rec = do(t, h, http.MethodGet, "/v1/stats?top=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/stats/"+top.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, top.SQL, decodeBody[stat.Snapshot](t, rec).SQL)

	rec = do(t, h, http.MethodGet, "/v1/stats/ffffffffffffffff", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// other dialects are tracked separately
	rec = do(t, h, http.MethodGet, "/v1/stats?dialect=oracle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[statsResponse](t, rec).Fingerprints)

	rec = do(t, h, http.MethodDelete, "/v1/stats", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/v1/stats", "")
	assert.Equal(t, stat.Summary{}, decodeBody[statsResponse](t, rec).Summary)
}

func setupStore(t *testing.T) *statestore.SQLiteStore {
	t.Helper()
	store := statestore.NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(context.Background(), ":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestFlush(t *testing.T) {
	store := setupStore(t)
	s, h := newTestServer(t, store)
	ctx := context.Background()

	require.NoError(t, s.Flush(ctx))
	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs, "nothing recorded, nothing flushed")

	rec := do(t, h, http.MethodPost, "/v1/stats", `{"sql":"SELECT 1","dialect":"postgres"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.NoError(t, s.Flush(ctx))

	rec = do(t, h, http.MethodPost, "/v1/stats", `{"sql":"SELECT 2","dialect":"postgres"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.NoError(t, s.Flush(ctx))

	runs, err = store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "server", runs[0].Source)
	assert.Equal(t, "postgres", runs[0].Dialect)

	snaps, err := store.RunSnapshots(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, int64(2), snaps[0].Count)
}

func TestServe_ShutsDownAndFlushes(t *testing.T) {
	store := setupStore(t)
	s, h := newTestServer(t, store)

	rec := do(t, h, http.MethodPost, "/v1/stats", `{"sql":"SELECT 1"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	top, err := store.TopFingerprints(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "SELECT ?", top[0].SQL)
}
