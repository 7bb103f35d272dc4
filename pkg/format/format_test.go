package format

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/oracle"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/sqlserver"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, sql string, d *dialect.Dialect) core.Stmt {
	t.Helper()
	stmt, err := parser.ParseOne(sql, d)
	require.NoError(t, err, sql)
	return stmt
}

func TestFormat_BasicSelect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "simple select",
			input: "SELECT a, b FROM t",
			expected: `SELECT
  a,
  b
FROM t
`,
		},
		{
			name:  "select with where",
			input: "SELECT a FROM t WHERE x = 1",
			expected: `SELECT
  a
FROM t
WHERE
  x = 1
`,
		},
		{
			name:  "implicit alias gets AS",
			input: "SELECT a col1, b AS col2 FROM t",
			expected: `SELECT
  a AS col1,
  b AS col2
FROM t
`,
		},
		{
			name:  "distinct and table star",
			input: "select distinct t.* from t",
			expected: `SELECT DISTINCT
  t.*
FROM t
`,
		},
		{
			name:  "comma join stays inline",
			input: "SELECT a FROM x, y",
			expected: `SELECT
  a
FROM x, y
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input, ansi.ANSI)
			assert.Equal(t, tt.expected, Format(stmt, ansi.ANSI))
		})
	}
}

func TestFormat_Joins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "inner join",
			input: "SELECT a.x FROM a INNER JOIN b ON a.id = b.id",
			expected: `SELECT
  a.x
FROM a
JOIN b
  ON a.id = b.id
`,
		},
		{
			name:  "left outer join with alias",
			input: "SELECT o.id FROM orders o LEFT OUTER JOIN users u ON o.user_id = u.id",
			expected: `SELECT
  o.id
FROM orders o
LEFT JOIN users u
  ON o.user_id = u.id
`,
		},
		{
			name:  "using",
			input: "SELECT id FROM a FULL JOIN b USING (id)",
			expected: `SELECT
  id
FROM a
FULL JOIN b
  USING (id)
`,
		},
		{
			name:  "cross join",
			input: "SELECT 1 FROM a CROSS JOIN b",
			expected: `SELECT
  1
FROM a
CROSS JOIN b
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input, ansi.ANSI)
			assert.Equal(t, tt.expected, Format(stmt, ansi.ANSI))
		})
	}
}

func TestFormat_GroupByOrderBy(t *testing.T) {
	stmt := mustParse(t, "SELECT a, COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1 ORDER BY a DESC NULLS LAST", ansi.ANSI)
	expected := `SELECT
  a,
  COUNT(*)
FROM t
GROUP BY
  a
HAVING
  COUNT(*) > 1
ORDER BY
  a DESC NULLS LAST
`
	assert.Equal(t, expected, Format(stmt, ansi.ANSI))
}

func TestFormat_CTE(t *testing.T) {
	stmt := mustParse(t, "WITH x AS (SELECT 1) SELECT a FROM x", ansi.ANSI)
	expected := `WITH
  x AS (
    SELECT
      1
  )
SELECT
  a
FROM x
`
	assert.Equal(t, expected, Format(stmt, ansi.ANSI))
}

func TestFormat_Union(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t UNION ALL SELECT a FROM u", ansi.ANSI)
	expected := `SELECT
  a
FROM t
UNION ALL
SELECT
  a
FROM u
`
	assert.Equal(t, expected, Format(stmt, ansi.ANSI))
}

func TestFormat_Subquery(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM (SELECT a FROM t) s", ansi.ANSI)
	expected := `SELECT
  a
FROM (
  SELECT
    a
  FROM t
) s
`
	assert.Equal(t, expected, Format(stmt, ansi.ANSI))
}

func TestFormat_Indent(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t", ansi.ANSI)
	assert.Equal(t, "SELECT\n    a\nFROM t\n", Format(stmt, ansi.ANSI, WithIndent(4)))
}

func TestRender_Compact(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"SELECT a, b FROM t WHERE x = 1", "SELECT a, b FROM t WHERE x = 1"},
		{"WITH x AS (SELECT 1) SELECT a FROM x", "WITH x AS (SELECT 1) SELECT a FROM x"},
		{"with recursive r (n) as (select 1) select n from r", "WITH RECURSIVE r (n) AS (SELECT 1) SELECT n FROM r"},
		{"SELECT a FROM t1 JOIN t2 ON t1.id = t2.id WHERE t1.x > 0", "SELECT a FROM t1 JOIN t2 ON t1.id = t2.id WHERE t1.x > 0"},
		{"SELECT a FROM t ORDER BY a OFFSET 5 ROWS FETCH FIRST 10 ROWS ONLY", "SELECT a FROM t ORDER BY a OFFSET 5 ROWS FETCH FIRST 10 ROWS ONLY"},
		{"SELECT a FROM t FETCH NEXT 10 PERCENT ROWS WITH TIES", "SELECT a FROM t FETCH NEXT 10 PERCENT ROWS WITH TIES"},
		{"SELECT a FROM t WHERE a IN (SELECT b FROM u)", "SELECT a FROM t WHERE a IN (SELECT b FROM u)"},
		{"SELECT a FROM t EXCEPT SELECT a FROM u", "SELECT a FROM t EXCEPT SELECT a FROM u"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := mustParse(t, tt.input, ansi.ANSI)
			assert.Equal(t, tt.expected, Render(stmt, ansi.ANSI))
		})
	}
}

func TestRender_Expressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(a + b) * c", "(a + b) * c"},
		{"a + b * c", "a + b * c"},
		{"a - (b - c)", "a - (b - c)"},
		{"(a - b) - c", "a - b - c"},
		{"NOT (a AND b)", "NOT (a AND b)"},
		{"NOT a AND b", "NOT a AND b"},
		{"(a OR b) AND c", "(a OR b) AND c"},
		{"a OR b AND c", "a OR b AND c"},
		{"- -5", "- -5"},
		{"-(a + b)", "-(a + b)"},
		{"a != b", "a <> b"},
		{"a || b || c", "a || b || c"},
		{"x NOT IN (1, 2)", "x NOT IN (1, 2)"},
		{"x BETWEEN 1 AND 10", "x BETWEEN 1 AND 10"},
		{"x IS NOT NULL", "x IS NOT NULL"},
		{"x IS TRUE", "x IS TRUE"},
		{"name NOT LIKE 'a!%%' ESCAPE '!'", "name NOT LIKE 'a!%%' ESCAPE '!'"},
		{"'it''s'", "'it''s'"},
		{"CASE WHEN a = 1 THEN 'x' ELSE 'y' END", "CASE WHEN a = 1 THEN 'x' ELSE 'y' END"},
		{"CASE a WHEN 1 THEN 2 END", "CASE a WHEN 1 THEN 2 END"},
		{"CAST(a AS NUMERIC(10, 2))", "CAST(a AS NUMERIC(10, 2))"},
		{"COUNT(DISTINCT a)", "COUNT(DISTINCT a)"},
		{"sum(x) FILTER (WHERE x > 0)", "sum(x) FILTER (WHERE x > 0)"},
		{"ROW_NUMBER() OVER (PARTITION BY a ORDER BY b DESC)", "ROW_NUMBER() OVER (PARTITION BY a ORDER BY b DESC)"},
		{"SUM(x) OVER (ORDER BY y ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)", "SUM(x) OVER (ORDER BY y ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)"},
		{"SUM(x) OVER w", "SUM(x) OVER w"},
		{"NOT EXISTS (SELECT 1 FROM t)", "NOT EXISTS (SELECT 1 FROM t)"},
		{"(a, b)", "(a, b)"},
		{"x = ?", "x = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.input, ansi.ANSI)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Render(expr, ansi.ANSI))
		})
	}
}

func TestRender_Statements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"INSERT INTO emp (id, name) VALUES (1, 'a'), (2, 'b')",
			"INSERT INTO emp (id, name) VALUES (1, 'a'), (2, 'b')",
		},
		{
			"insert into emp select * from old_emp",
			"INSERT INTO emp SELECT * FROM old_emp",
		},
		{
			"UPDATE emp SET a = 1, (b, c) = (SELECT 1, 2) WHERE id = 3",
			"UPDATE emp SET a = 1, (b, c) = (SELECT 1, 2) WHERE id = 3",
		},
		{
			"DELETE FROM emp WHERE id = 3",
			"DELETE FROM emp WHERE id = 3",
		},
		{
			"CREATE TABLE IF NOT EXISTS emp (id INTEGER PRIMARY KEY, name VARCHAR(100) NOT NULL, CONSTRAINT u UNIQUE (name))",
			"CREATE TABLE IF NOT EXISTS emp (id INTEGER PRIMARY KEY, name VARCHAR(100) NOT NULL, CONSTRAINT u UNIQUE (name))",
		},
		{
			"CREATE TABLE t (a INTEGER DEFAULT 0 CHECK (a >= 0) REFERENCES p (id), CHECK (a < 10))",
			"CREATE TABLE t (a INTEGER DEFAULT 0 CHECK (a >= 0) REFERENCES p (id), CHECK (a < 10))",
		},
		{
			"CREATE TABLE t2 AS SELECT * FROM t1",
			"CREATE TABLE t2 AS SELECT * FROM t1",
		},
		{
			"DROP TABLE IF EXISTS a, s.b CASCADE",
			"DROP TABLE IF EXISTS a, s.b CASCADE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := mustParse(t, tt.input, ansi.ANSI)
			assert.Equal(t, tt.expected, Render(stmt, ansi.ANSI))
		})
	}
}

func TestFormat_CreateTable(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE emp (id INTEGER PRIMARY KEY, name VARCHAR(100) NOT NULL)", ansi.ANSI)
	expected := `CREATE TABLE emp (
  id INTEGER PRIMARY KEY,
  name VARCHAR(100) NOT NULL
)
`
	assert.Equal(t, expected, Format(stmt, ansi.ANSI))
}

func TestRender_Quoting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		from     *dialect.Dialect
		to       *dialect.Dialect
		expected string
	}{
		{"reserved ansi", `SELECT "select" FROM t`, ansi.ANSI, ansi.ANSI, `SELECT "select" FROM t`},
		{"spaces", `SELECT "Mixed Case" FROM t`, ansi.ANSI, ansi.ANSI, `SELECT "Mixed Case" FROM t`},
		{"plain names stay bare", `SELECT "abc" FROM "t"`, ansi.ANSI, ansi.ANSI, `SELECT abc FROM t`},
		{"sqlserver brackets", "SELECT [order] FROM [dbo].[emp]", sqlserver.SQLServer, sqlserver.SQLServer, "SELECT [order] FROM dbo.emp"},
		{"mysql backticks", "SELECT `select` FROM t", mysql.MySQL, mysql.MySQL, "SELECT `select` FROM t"},
		{"ansi to mysql", `SELECT "order" FROM t`, ansi.ANSI, mysql.MySQL, "SELECT `order` FROM t"},
		{"keyword table alias", `SELECT a FROM t "where"`, ansi.ANSI, ansi.ANSI, `SELECT a FROM t "where"`},
		{"embedded quote", `SELECT "a""b" FROM t`, ansi.ANSI, ansi.ANSI, `SELECT "a""b" FROM t`},
		{"mysql double-quoted string", `SELECT "it's" FROM t`, mysql.MySQL, mysql.MySQL, "SELECT 'it''s' FROM t"},
		{"sqlserver double-quoted identifier", `SELECT "order" FROM t`, sqlserver.SQLServer, sqlserver.SQLServer, "SELECT [order] FROM t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input, tt.from)
			assert.Equal(t, tt.expected, Render(stmt, tt.to))
		})
	}
}

func TestNeedsQuote(t *testing.T) {
	assert.False(t, NeedsQuote(ansi.ANSI, "emp_id"))
	assert.False(t, NeedsQuote(ansi.ANSI, "top"))
	assert.True(t, NeedsQuote(sqlserver.SQLServer, "top"))
	assert.True(t, NeedsQuote(ansi.ANSI, "1abc"))
	assert.True(t, NeedsQuote(ansi.ANSI, "a-b"))
	assert.True(t, NeedsQuote(ansi.ANSI, ""))
	assert.True(t, NeedsQuote(oracle.Oracle, "start"))
	assert.False(t, NeedsQuote(ansi.ANSI, "start"))
}

func TestRender_KeywordCase(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t WHERE x IS NULL AND y LIKE 'A%'", ansi.ANSI)
	assert.Equal(t, "select a from t where x is null and y like 'A%'", Render(stmt, ansi.ANSI, WithKeywordCase(Lower)))
}

func TestRender_Parameterize(t *testing.T) {
	a := mustParse(t, "SELECT a FROM t WHERE x = 1 AND y IN (1, 2, 3) AND z = 'q' AND w IS NULL", ansi.ANSI)
	b := mustParse(t, "SELECT a FROM t WHERE x = 42 AND y IN (7) AND z = 'other' AND w IS NULL", ansi.ANSI)

	expected := "SELECT a FROM t WHERE x = ? AND y IN (?) AND z = ? AND w IS NULL"
	assert.Equal(t, expected, Render(a, ansi.ANSI, WithParameterize()))
	assert.Equal(t, expected, Render(b, ansi.ANSI, WithParameterize()))

	// a list with a column in it is not collapsed
	c := mustParse(t, "SELECT a FROM t WHERE y IN (1, b)", ansi.ANSI)
	assert.Equal(t, "SELECT a FROM t WHERE y IN (?, b)", Render(c, ansi.ANSI, WithParameterize()))
}

func TestStatements(t *testing.T) {
	stmts, err := parser.Parse("SELECT 1; SELECT 2", ansi.ANSI)
	require.NoError(t, err)

	assert.Equal(t, "SELECT\n  1;\n\nSELECT\n  2;\n", Statements(stmts, ansi.ANSI))
	assert.Equal(t, "SELECT 1;\nSELECT 2;\n", Statements(stmts, ansi.ANSI, Compact()))
	assert.Empty(t, Statements(nil, ansi.ANSI))
}

func TestStatements_Comments(t *testing.T) {
	sql := "-- head\nSELECT 1; -- one\n/* two */ SELECT 2"
	p := parser.NewParser(sql, ansi.ANSI)
	stmts, err := p.ParseStatements()
	require.NoError(t, err)
	require.Len(t, p.Comments(), 3)

	got := Statements(stmts, ansi.ANSI, Compact(), WithComments(p.Comments()))
	assert.Equal(t, "-- head\nSELECT 1; -- one\n/* two */ SELECT 2;\n", got)

	got = Statements(stmts, ansi.ANSI, WithComments(p.Comments()))
	assert.Equal(t, "-- head\nSELECT\n  1; -- one\n\n/* two */\nSELECT\n  2;\n", got)
}

func TestStatements_CommentInsideStatementMovesInFront(t *testing.T) {
	sql := "SELECT a, /* inner */ b FROM t"
	p := parser.NewParser(sql, ansi.ANSI)
	stmts, err := p.ParseStatements()
	require.NoError(t, err)

	got := Statements(stmts, ansi.ANSI, Compact(), WithComments(p.Comments()))
	assert.Equal(t, "/* inner */ SELECT a, b FROM t;\n", got)
}

// hintNode stands in for a dialect extension node the printer has no
// visitor for.
type hintNode struct {
	core.NodeInfo
	items []core.Node
}

func (h *hintNode) Children() []core.Node { return h.items }

func TestRender_UnknownNode(t *testing.T) {
	n := &hintNode{items: []core.Node{
		&core.ColumnRef{Column: "a"},
		&core.Literal{Type: core.LiteralNumber, Value: "1"},
	}}
	assert.Equal(t, "/*hintNode*/(a, 1)", Render(n, ansi.ANSI))

	sc := &core.SelectCore{
		Columns:    []*core.SelectItem{{Expr: &core.ColumnRef{Column: "a"}}},
		Extensions: []core.Node{n},
	}
	assert.Equal(t, "SELECT a /*hintNode*/(a, 1)", Render(sc, ansi.ANSI))
}

func TestRender_Postgres(t *testing.T) {
	d := postgres.Postgres
	stmt := mustParse(t, "SELECT (a + 1)::INTEGER, b::TEXT FROM t WHERE c ILIKE 'x%' LIMIT 10 OFFSET 5", d)
	assert.Equal(t, "SELECT (a + 1)::INTEGER, b::TEXT FROM t WHERE c ILIKE 'x%' LIMIT 10 OFFSET 5", Render(stmt, d))

	// the shorthand cast is spelled out where it does not exist
	expr, err := parser.ParseExpr("b::TEXT", d)
	require.NoError(t, err)
	assert.Equal(t, "CAST(b AS TEXT)", Render(expr, ansi.ANSI))
}

func TestRender_MySQL(t *testing.T) {
	d := mysql.MySQL
	stmt := mustParse(t, "SELECT a FROM t LIMIT 5, 10", d)
	assert.Equal(t, "SELECT a FROM t LIMIT 10 OFFSET 5", Render(stmt, d))
}

func TestRender_SQLServer(t *testing.T) {
	d := sqlserver.SQLServer
	stmt := mustParse(t, "SELECT TOP (5) DISTINCT name FROM emp ORDER BY name OFFSET 0 ROWS", d)
	assert.Equal(t, "SELECT TOP 5 DISTINCT name FROM emp ORDER BY name OFFSET 0 ROWS", Render(stmt, d))
}

func TestRender_Oracle(t *testing.T) {
	d := oracle.Oracle
	tests := []struct {
		input    string
		expected string
	}{
		{
			"SELECT employee_id FROM emp START WITH manager_id IS NULL CONNECT BY NOCYCLE PRIOR employee_id = manager_id",
			"SELECT employee_id FROM emp START WITH manager_id IS NULL CONNECT BY NOCYCLE PRIOR employee_id = manager_id",
		},
		{
			"SELECT employee_id FROM emp CONNECT BY PRIOR employee_id = manager_id START WITH manager_id IS NULL",
			"SELECT employee_id FROM emp START WITH manager_id IS NULL CONNECT BY PRIOR employee_id = manager_id",
		},
		{
			"SELECT emp_seq.NEXTVAL, hr.emp_seq.currval FROM dual",
			"SELECT emp_seq.NEXTVAL, hr.emp_seq.CURRVAL FROM dual",
		},
		{
			`SELECT t."NEXTVAL" FROM t`,
			`SELECT t."NEXTVAL" FROM t`,
		},
		{
			"SELECT a FROM t MINUS SELECT a FROM u",
			"SELECT a FROM t MINUS SELECT a FROM u",
		},
		{
			"SELECT a FROM t ORDER BY a OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY",
			"SELECT a FROM t ORDER BY a OFFSET 5 ROWS FETCH NEXT 10 ROWS ONLY",
		},
		{
			"CREATE SEQUENCE hr.emp_seq INCREMENT BY 1 START WITH 100 MAXVALUE 999 NOCYCLE",
			"CREATE SEQUENCE hr.emp_seq START WITH 100 INCREMENT BY 1 MAXVALUE 999 NOCYCLE",
		},
		{
			`SELECT "START" FROM t`,
			`SELECT "START" FROM t`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := mustParse(t, tt.input, d)
			assert.Equal(t, tt.expected, Render(stmt, d))
		})
	}
}

func TestRender_OracleHierarchicalPretty(t *testing.T) {
	d := oracle.Oracle
	stmt := mustParse(t, "SELECT id FROM emp WHERE dept = 10 START WITH mgr IS NULL CONNECT BY PRIOR id = mgr ORDER BY id", d)
	expected := `SELECT
  id
FROM emp
WHERE
  dept = 10
START WITH mgr IS NULL
CONNECT BY PRIOR id = mgr
ORDER BY
  id
`
	assert.Equal(t, expected, Format(stmt, d))
}

// Rendering must be a fixed point: render, parse the output and render again.
func TestRoundTrip(t *testing.T) {
	cases := map[*dialect.Dialect][]string{
		ansi.ANSI: {
			"SELECT a, b AS c FROM t WHERE x = 1 AND (y = 2 OR z = 3)",
			"WITH RECURSIVE r (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM r WHERE n < 10) SELECT n FROM r",
			"SELECT d.name, COUNT(*) AS n FROM emp e LEFT JOIN dept d ON e.dept_id = d.id GROUP BY d.name HAVING COUNT(*) > 2 ORDER BY n DESC",
			"SELECT CASE WHEN a > 0 THEN 'pos' WHEN a < 0 THEN 'neg' ELSE 'zero' END FROM t",
			"SELECT a FROM t WHERE NOT EXISTS (SELECT 1 FROM u WHERE u.id = t.id) OFFSET 10 ROWS FETCH NEXT 5 ROWS ONLY",
			"SELECT SUM(x) OVER (PARTITION BY a ORDER BY b ROWS BETWEEN 2 PRECEDING AND 1 FOLLOWING) FROM t",
			"SELECT * FROM (SELECT a FROM t) s NATURAL JOIN u",
			"INSERT INTO t (a, b) VALUES (1, 'x')",
			"UPDATE t SET a = a + 1 WHERE b BETWEEN 1 AND 5",
			"DELETE FROM t WHERE a IS NOT NULL",
			"CREATE TABLE t (id INTEGER NOT NULL PRIMARY KEY, rate DOUBLE PRECISION, UNIQUE (rate))",
			`SELECT "select", "Mixed" FROM "from"`,
		},
		postgres.Postgres: {
			"SELECT a::INTEGER, b ILIKE 'x%' FROM t ORDER BY a LIMIT 10 OFFSET 20",
			"SELECT (a || b)::TEXT FROM t FETCH FIRST 3 ROWS ONLY",
		},
		mysql.MySQL: {
			"SELECT `order`, `a b` FROM `t` LIMIT 3, 4",
			"SELECT a FROM t ORDER BY a LIMIT 10",
		},
		sqlserver.SQLServer: {
			"SELECT TOP 10 [order] FROM [dbo].[t] ORDER BY [order] OFFSET 5 ROWS FETCH NEXT 5 ROWS ONLY",
		},
		oracle.Oracle: {
			"SELECT id, emp_seq.NEXTVAL FROM emp START WITH mgr IS NULL CONNECT BY NOCYCLE PRIOR id = mgr",
			"SELECT a FROM t MINUS SELECT a FROM u ORDER BY a",
			`SELECT t."CURRVAL", "START" FROM t`,
			"CREATE SEQUENCE s START WITH 1 INCREMENT BY 2 MINVALUE 1 CYCLE",
			"DROP SEQUENCE s",
		},
	}

	for d, inputs := range cases {
		for _, sql := range inputs {
			t.Run(d.Name+"/"+sql, func(t *testing.T) {
				first := Render(mustParse(t, sql, d), d)

				again, err := parser.ParseOne(first, d)
				require.NoError(t, err, first)
				assert.Equal(t, first, Render(again, d))

				pretty, err := parser.ParseOne(Format(mustParse(t, sql, d), d), d)
				require.NoError(t, err)
				assert.Equal(t, first, Render(pretty, d))
			})
		}
	}
}
