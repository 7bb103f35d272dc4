// Package statestore persists statement statistics in SQLite. Every save
// belongs to a run: one invocation of the CLI or one server flush.
package statestore

import (
	"errors"
	"time"
)

// Sentinel errors.
var (
	ErrNotOpen     = errors.New("database not opened")
	ErrRunNotFound = errors.New("run not found")
)

// Run is one recorded collection of statistics.
type Run struct {
	ID           string    `json:"id" yaml:"id"`
	Source       string    `json:"source" yaml:"source"` // file, directory or "server"
	Dialect      string    `json:"dialect" yaml:"dialect"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	Fingerprints int       `json:"fingerprints" yaml:"fingerprints"`
}

// FingerprintTotal aggregates one fingerprint over every saved run.
type FingerprintTotal struct {
	ID        string        `json:"id" yaml:"id"`
	Kind      string        `json:"kind" yaml:"kind"`
	SQL       string        `json:"sql" yaml:"sql"`
	Count     int64         `json:"count" yaml:"count"`
	Errors    int64         `json:"errors" yaml:"errors"`
	TotalTime time.Duration `json:"total_time" yaml:"total_time"`
	MaxTime   time.Duration `json:"max_time" yaml:"max_time"`
	Runs      int           `json:"runs" yaml:"runs"`
}
