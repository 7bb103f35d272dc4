package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/stat"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Handlers provides the HTTP handlers of the API.
type Handlers struct {
	server *Server
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(s *Server) *Handlers {
	return &Handlers{server: s}
}

type sourceRequest struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect"`
}

type statementResult struct {
	Kind        string   `json:"kind"`
	Fingerprint stat.Key `json:"fingerprint"`
	AST         any      `json:"ast"`
}

type commentResult struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type parseResponse struct {
	Dialect    string            `json:"dialect"`
	Statements []statementResult `json:"statements"`
	Comments   []commentResult   `json:"comments,omitempty"`
}

// Parse returns the syntax tree of every statement in the request. Each
// statement is recorded in the dialect's statistics with the parse time.
func (h *Handlers) Parse(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if !decode(w, r, &req) {
		return
	}
	reg, err := h.server.registry(req.Dialect)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	p := parser.NewParser(req.SQL, reg.Dialect())
	stmts, err := p.ParseStatements()
	elapsed := time.Since(start)
	if err != nil {
		reg.RecordParseFailure()
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	resp := parseResponse{Dialect: reg.Dialect().Name, Statements: make([]statementResult, 0, len(stmts))}
	for _, stmt := range stmts {
		resp.Statements = append(resp.Statements, statementResult{
			Kind:        core.Kind(stmt),
			Fingerprint: reg.RecordStmt(stmt, elapsed, nil),
			AST:         core.Dump(stmt),
		})
	}
	for _, c := range p.Comments() {
		kind := "line"
		if c.Kind == token.BlockComment {
			kind = "block"
		}
		resp.Comments = append(resp.Comments, commentResult{
			Kind:   kind,
			Text:   c.Text,
			Line:   c.Span.Start.Line,
			Column: c.Span.Start.Column,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type formatRequest struct {
	SQL         string `json:"sql"`
	Dialect     string `json:"dialect"`
	Compact     bool   `json:"compact"`
	KeywordCase string `json:"keyword_case"`
	Indent      *int   `json:"indent"`
}

// Format re-renders the request's statements in canonical layout.
func (h *Handlers) Format(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !decode(w, r, &req) {
		return
	}
	d, err := h.server.resolve(req.Dialect)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts, err := formatOptions(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p := parser.NewParser(req.SQL, d)
	stmts, err := p.ParseStatements()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	opts = append(opts, format.WithComments(p.Comments()))
	writeJSON(w, http.StatusOK, map[string]string{
		"dialect": d.Name,
		"sql":     format.Statements(stmts, d, opts...),
	})
}

var errKeywordCase = errors.New(`keyword_case must be "upper" or "lower"`)

func formatOptions(req formatRequest) ([]format.Option, error) {
	var opts []format.Option
	switch strings.ToLower(req.KeywordCase) {
	case "", "upper":
	case "lower":
		opts = append(opts, format.WithKeywordCase(format.Lower))
	default:
		return nil, errKeywordCase
	}
	if req.Indent != nil {
		opts = append(opts, format.WithIndent(*req.Indent))
	}
	if req.Compact {
		opts = append(opts, format.Compact())
	}
	return opts, nil
}

type tokenResult struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Literal string `json:"literal,omitempty"`
	Raw     string `json:"raw"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
}

// Tokens returns the lexer output for the request.
func (h *Handlers) Tokens(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if !decode(w, r, &req) {
		return
	}
	d, err := h.server.resolve(req.Dialect)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	toks, err := parser.Tokenize(req.SQL, d)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	out := make([]tokenResult, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tokenResult{
			Type:    tok.Type.String(),
			Kind:    tok.Kind().String(),
			Literal: tok.Literal,
			Raw:     tok.Raw,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
			Offset:  tok.Pos.Offset,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"dialect": d.Name, "tokens": out})
}

// Dialects lists every registered dialect.
func (h *Handlers) Dialects(w http.ResponseWriter, _ *http.Request) {
	names := dialect.List()
	out := make([]dialect.Info, 0, len(names))
	for _, name := range names {
		out = append(out, dialect.Describe(dialect.MustGet(name)))
	}
	writeJSON(w, http.StatusOK, out)
}

// Dialect describes one dialect.
func (h *Handlers) Dialect(w http.ResponseWriter, r *http.Request) {
	d, err := dialect.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, dialect.Describe(d))
}

type statsResponse struct {
	Dialect      string          `json:"dialect"`
	Summary      stat.Summary    `json:"summary"`
	Fingerprints []stat.Snapshot `json:"fingerprints"`
}

// Stats returns the statement statistics of one dialect.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	reg, err := h.server.registry(r.URL.Query().Get("dialect"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snaps := reg.Snapshot()
	if top := r.URL.Query().Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("top must be a non-negative integer"))
			return
		}
		if n < len(snaps) {
			snaps = snaps[:n]
		}
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Dialect:      reg.Dialect().Name,
		Summary:      reg.Summary(),
		Fingerprints: snaps,
	})
}

// StatDetail returns the statistics of one fingerprint.
func (h *Handlers) StatDetail(w http.ResponseWriter, r *http.Request) {
	reg, err := h.server.registry(r.URL.Query().Get("dialect"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id := chi.URLParam(r, "id")
	snap, ok := reg.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("fingerprint "+id+" not found"))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type recordRequest struct {
	SQL       string `json:"sql"`
	Dialect   string `json:"dialect"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Failed    bool   `json:"failed"`
}

var errExecFailed = errors.New("execution failed")

// Record adds one observation per statement of the request.
func (h *Handlers) Record(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if !decode(w, r, &req) {
		return
	}
	reg, err := h.server.registry(req.Dialect)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var execErr error
	if req.Failed {
		execErr = errExecFailed
	}
	keys, err := reg.Record(req.SQL, time.Duration(req.ElapsedMS)*time.Millisecond, execErr)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"dialect": reg.Dialect().Name, "fingerprints": keys})
}

// ResetStats clears the statistics of one dialect.
func (h *Handlers) ResetStats(w http.ResponseWriter, r *http.Request) {
	reg, err := h.server.registry(r.URL.Query().Get("dialect"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	reg.Reset()
	w.WriteHeader(http.StatusNoContent)
}
