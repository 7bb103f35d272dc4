package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error    string   `json:"error"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Offset   int      `json:"offset,omitempty"`
	Near     string   `json:"near,omitempty"`
	Expected []string `json:"expected,omitempty"`
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return false
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}

	var parseErr *parser.ParseError
	var lexErr *parser.LexError
	switch {
	case errors.As(err, &parseErr):
		resp.Line, resp.Column, resp.Offset = parseErr.Pos.Line, parseErr.Pos.Column, parseErr.Pos.Offset
		resp.Near = parseErr.Token.Raw
		resp.Expected = parseErr.Expected
	case errors.As(err, &lexErr):
		resp.Line, resp.Column, resp.Offset = lexErr.Pos.Line, lexErr.Pos.Column, lexErr.Pos.Offset
		resp.Near = lexErr.Text
	}
	writeJSON(w, status, resp)
}
