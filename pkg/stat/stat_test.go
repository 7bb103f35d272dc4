package stat

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/oracle"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

func TestFingerprint_StableAcrossConstants(t *testing.T) {
	a, err := parser.ParseOne("SELECT a FROM t WHERE id = 1 AND name = 'x' AND k IN (1, 2)", ansi.ANSI)
	require.NoError(t, err)
	b, err := parser.ParseOne("select a from t where id = 42 and name = 'y' and k in (9)", ansi.ANSI)
	require.NoError(t, err)

	ka := Fingerprint(a, ansi.ANSI)
	kb := Fingerprint(b, ansi.ANSI)
	assert.Equal(t, ka, kb)
	assert.Len(t, ka.ID, 16)
	assert.Equal(t, "SELECT a FROM t WHERE id = ? AND name = ? AND k IN (?)", ka.SQL)
	assert.Equal(t, "SelectStmt", ka.Kind)
}

func TestFingerprint_DiffersByShape(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"SELECT a FROM t WHERE id = 1", "SELECT a FROM t WHERE id > 1"},
		{"SELECT a FROM t", "SELECT b FROM t"},
		{"SELECT a FROM t WHERE x IS NULL", "SELECT a FROM t WHERE x IS NOT NULL"},
		{"DELETE FROM t", "DELETE FROM u"},
	}
	for _, tt := range tests {
		t.Run(tt.a, func(t *testing.T) {
			a, err := parser.ParseOne(tt.a, ansi.ANSI)
			require.NoError(t, err)
			b, err := parser.ParseOne(tt.b, ansi.ANSI)
			require.NoError(t, err)
			assert.NotEqual(t, Fingerprint(a, ansi.ANSI).ID, Fingerprint(b, ansi.ANSI).ID)
		})
	}
}

func TestNewRegistry(t *testing.T) {
	_, err := NewRegistry(nil, 10)
	require.ErrorIs(t, err, ErrNoDialect)

	r, err := NewRegistry(ansi.ANSI, 0)
	require.NoError(t, err)
	assert.Same(t, ansi.ANSI, r.Dialect())
	assert.Equal(t, Summary{}, r.Summary())
}

func TestRegistry_Record(t *testing.T) {
	r, err := NewRegistry(ansi.ANSI, 10)
	require.NoError(t, err)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	keys, err := r.Record("SELECT a FROM t WHERE id = 1", 2*time.Millisecond, nil)
	require.NoError(t, err)
	require.Len(t, keys, 1)

	_, err = r.Record("SELECT a FROM t WHERE id = 2", 20*time.Millisecond, errors.New("timeout"))
	require.NoError(t, err)
	_, err = r.Record("SELECT a FROM t WHERE id = 3", 500*time.Microsecond, nil)
	require.NoError(t, err)

	snap, ok := r.Get(keys[0].ID)
	require.True(t, ok)
	assert.Equal(t, int64(3), snap.Count)
	assert.Equal(t, int64(1), snap.Errors)
	assert.Equal(t, 20*time.Millisecond, snap.MaxTime)
	assert.Equal(t, 22500*time.Microsecond, snap.TotalTime)
	assert.Equal(t, 7500*time.Microsecond, snap.MeanTime())
	assert.Equal(t, fixed, snap.LastSeen)
	assert.Equal(t, []int64{1, 1, 1, 0, 0, 0, 0}, snap.Histogram)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_MultipleStatements(t *testing.T) {
	r, err := NewRegistry(ansi.ANSI, 10)
	require.NoError(t, err)

	keys, err := r.Record("SELECT 1; DELETE FROM t WHERE id = 5; SELECT 2", time.Millisecond, nil)
	require.NoError(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[2])
	assert.Equal(t, "DeleteStmt", keys[1].Kind)

	snaps := r.Snapshot()
	require.Len(t, snaps, 2)
	assert.Equal(t, int64(2), snaps[0].Count)
	assert.Equal(t, "SELECT ?", snaps[0].SQL)
	assert.Equal(t, int64(1), snaps[1].Count)
}

func TestRegistry_ParseFailure(t *testing.T) {
	r, err := NewRegistry(ansi.ANSI, 10)
	require.NoError(t, err)

	_, err = r.Record("SELECT FROM", time.Millisecond, nil)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)

	// hierarchical queries are Oracle only
	_, err = r.Record("SELECT a FROM t CONNECT BY PRIOR a = b", time.Millisecond, nil)
	require.Error(t, err)

	r.RecordParseFailure()
	assert.Equal(t, int64(3), r.Summary().ParseFailures)
	assert.Empty(t, r.Snapshot())
}

func TestRegistry_OracleDialect(t *testing.T) {
	r, err := NewRegistry(oracle.Oracle, 10)
	require.NoError(t, err)

	keys, err := r.Record("SELECT a FROM t WHERE x != 'FI' START WITH x = 'AD' CONNECT BY PRIOR a = b", time.Millisecond, nil)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "SELECT a FROM t WHERE x <> ? START WITH x = ? CONNECT BY PRIOR a = b", keys[0].SQL)
}

func TestRegistry_Eviction(t *testing.T) {
	r, err := NewRegistry(ansi.ANSI, 2)
	require.NoError(t, err)

	for _, col := range []string{"a", "b", "c"} {
		_, err := r.Record("SELECT "+col+" FROM t", time.Millisecond, nil)
		require.NoError(t, err)
	}

	sum := r.Summary()
	assert.Equal(t, 2, sum.Fingerprints)
	assert.Equal(t, int64(1), sum.Evictions)

	sqls := make([]string, 0, 2)
	for _, s := range r.Snapshot() {
		sqls = append(sqls, s.SQL)
	}
	assert.ElementsMatch(t, []string{"SELECT b FROM t", "SELECT c FROM t"}, sqls)
}

func TestRegistry_Reset(t *testing.T) {
	r, err := NewRegistry(ansi.ANSI, 10)
	require.NoError(t, err)

	_, err = r.Record("SELECT 1", time.Millisecond, nil)
	require.NoError(t, err)
	r.RecordParseFailure()

	r.Reset()
	assert.Equal(t, Summary{}, r.Summary())
	assert.Empty(t, r.Snapshot())
}

func TestRegistry_Concurrent(t *testing.T) {
	r, err := NewRegistry(ansi.ANSI, 100)
	require.NoError(t, err)

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := r.Record(fmt.Sprintf("SELECT a FROM t WHERE id = %d", w*perWorker+i), time.Duration(i)*time.Millisecond, nil)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	snaps := r.Snapshot()
	require.Len(t, snaps, 1)
	assert.Equal(t, int64(workers*perWorker), snaps[0].Count)
	assert.Equal(t, 49*time.Millisecond, snaps[0].MaxTime)

	var total int64
	for _, n := range snaps[0].Histogram {
		total += n
	}
	assert.Equal(t, snaps[0].Count, total)
}

func TestBucket(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{999 * time.Microsecond, 0},
		{time.Millisecond, 1},
		{50 * time.Millisecond, 2},
		{time.Second, 4},
		{99 * time.Second, 5},
		{time.Hour, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bucket(tt.elapsed), tt.elapsed.String())
	}
}
