package stat

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// DefaultCapacity is the number of fingerprints a Registry keeps by default.
const DefaultCapacity = 1000

// Buckets are the upper bounds of the elapsed-time histogram. The last bucket
// has no bound.
var Buckets = []time.Duration{
	time.Millisecond,
	10 * time.Millisecond,
	100 * time.Millisecond,
	time.Second,
	10 * time.Second,
	100 * time.Second,
}

// histogramSize is len(Buckets) plus the unbounded bucket.
const histogramSize = 7

// ErrNoDialect is returned by NewRegistry without a dialect.
var ErrNoDialect = errors.New("stat: dialect is required")

// entry holds the counters of one fingerprint. All fields are updated atomically.
type entry struct {
	key Key

	count      atomic.Int64
	errors     atomic.Int64
	totalNanos atomic.Int64
	maxNanos   atomic.Int64
	lastSeen   atomic.Int64 // unix nanos
	histogram  [histogramSize]atomic.Int64
}

func (e *entry) observe(elapsed time.Duration, failed bool, now time.Time) {
	e.count.Add(1)
	if failed {
		e.errors.Add(1)
	}
	nanos := elapsed.Nanoseconds()
	e.totalNanos.Add(nanos)
	for {
		cur := e.maxNanos.Load()
		if nanos <= cur || e.maxNanos.CompareAndSwap(cur, nanos) {
			break
		}
	}
	e.lastSeen.Store(now.UnixNano())
	e.histogram[bucket(elapsed)].Add(1)
}

func bucket(elapsed time.Duration) int {
	for i, bound := range Buckets {
		if elapsed < bound {
			return i
		}
	}
	return len(Buckets)
}

// Snapshot is a point-in-time copy of one fingerprint's counters.
type Snapshot struct {
	Key       `yaml:",inline"`
	Count     int64         `json:"count" yaml:"count"`
	Errors    int64         `json:"errors" yaml:"errors"`
	TotalTime time.Duration `json:"total_time" yaml:"total_time"`
	MaxTime   time.Duration `json:"max_time" yaml:"max_time"`
	LastSeen  time.Time     `json:"last_seen" yaml:"last_seen"`
	Histogram []int64       `json:"histogram" yaml:"histogram"`
}

// MeanTime returns the average elapsed time.
func (s Snapshot) MeanTime() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Count)
}

func (e *entry) snapshot() Snapshot {
	s := Snapshot{
		Key:       e.key,
		Count:     e.count.Load(),
		Errors:    e.errors.Load(),
		TotalTime: time.Duration(e.totalNanos.Load()),
		MaxTime:   time.Duration(e.maxNanos.Load()),
		Histogram: make([]int64, len(e.histogram)),
	}
	if ts := e.lastSeen.Load(); ts != 0 {
		s.LastSeen = time.Unix(0, ts).UTC()
	}
	for i := range e.histogram {
		s.Histogram[i] = e.histogram[i].Load()
	}
	return s
}

// Summary reports registry-wide counters.
type Summary struct {
	Fingerprints  int   `json:"fingerprints" yaml:"fingerprints"`
	ParseFailures int64 `json:"parse_failures" yaml:"parse_failures"`
	Evictions     int64 `json:"evictions" yaml:"evictions"`
}

// Registry records statement statistics for one dialect. The least recently
// seen fingerprints are evicted once capacity is reached. It is safe for
// concurrent use.
type Registry struct {
	dialect *dialect.Dialect
	cache   *lru.Cache[string, *entry]
	now     func() time.Time

	parseFailures atomic.Int64
	evictions     atomic.Int64
}

// NewRegistry returns a Registry holding at most capacity fingerprints. A
// capacity below one uses DefaultCapacity.
func NewRegistry(d *dialect.Dialect, capacity int) (*Registry, error) {
	if d == nil {
		return nil, ErrNoDialect
	}
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	r := &Registry{dialect: d, now: time.Now}
	cache, err := lru.NewWithEvict(capacity, func(string, *entry) {
		r.evictions.Add(1)
	})
	if err != nil {
		return nil, fmt.Errorf("create fingerprint cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Dialect returns the dialect statements are parsed with.
func (r *Registry) Dialect() *dialect.Dialect {
	return r.dialect
}

// Record parses sql and adds one observation per statement. execErr marks the
// observation as failed. Text that does not parse is counted as a parse
// failure and its error is returned.
func (r *Registry) Record(sql string, elapsed time.Duration, execErr error) ([]Key, error) {
	stmts, err := parser.Parse(sql, r.dialect)
	if err != nil {
		r.parseFailures.Add(1)
		return nil, err
	}
	keys := make([]Key, 0, len(stmts))
	for _, stmt := range stmts {
		keys = append(keys, r.RecordStmt(stmt, elapsed, execErr))
	}
	return keys, nil
}

// RecordStmt adds one observation for an already parsed statement.
func (r *Registry) RecordStmt(stmt core.Stmt, elapsed time.Duration, execErr error) Key {
	key := Fingerprint(stmt, r.dialect)
	r.entry(key).observe(elapsed, execErr != nil, r.now())
	return key
}

// RecordParseFailure counts text that did not parse.
func (r *Registry) RecordParseFailure() {
	r.parseFailures.Add(1)
}

func (r *Registry) entry(key Key) *entry {
	if e, ok := r.cache.Get(key.ID); ok {
		return e
	}
	e := &entry{key: key}
	if prev, ok, _ := r.cache.PeekOrAdd(key.ID, e); ok {
		return prev
	}
	return e
}

// Get returns the snapshot of one fingerprint.
func (r *Registry) Get(id string) (Snapshot, bool) {
	e, ok := r.cache.Peek(id)
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), true
}

// Snapshot returns every fingerprint, most frequent first.
func (r *Registry) Snapshot() []Snapshot {
	entries := r.cache.Values()
	out := make([]Snapshot, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Summary returns registry-wide counters.
func (r *Registry) Summary() Summary {
	return Summary{
		Fingerprints:  r.cache.Len(),
		ParseFailures: r.parseFailures.Load(),
		Evictions:     r.evictions.Load(),
	}
}

// Reset drops every fingerprint and zeroes all counters.
func (r *Registry) Reset() {
	r.cache.Purge()
	r.parseFailures.Store(0)
	r.evictions.Store(0)
}
