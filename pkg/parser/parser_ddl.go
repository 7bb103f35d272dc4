package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Schema statements. CREATE TABLE and DROP are built in; other CREATE forms
// come from dialect create handlers.
//
// Grammar:
//
//	create        → CREATE TABLE [IF NOT EXISTS] qualified_name (table_body | AS query)
//	              | CREATE dialect_object ...
//	table_body    → "(" table_element {"," table_element} ")"
//	table_element → column_def | table_constraint
//	column_def    → identifier data_type {column_constraint}
//	column_constraint → [CONSTRAINT identifier] (NOT NULL | NULL | DEFAULT expr | PRIMARY KEY | UNIQUE
//	                  | CHECK "(" expr ")" | REFERENCES qualified_name ["(" ident_list ")"])
//	table_constraint  → [CONSTRAINT identifier] (PRIMARY KEY "(" ident_list ")" | UNIQUE "(" ident_list ")"
//	                  | CHECK "(" expr ")")
//	drop          → DROP (TABLE | SEQUENCE) [IF EXISTS] qualified_name {"," qualified_name} [CASCADE | RESTRICT]

func (p *Parser) parseCreate() core.Stmt {
	defer p.enter("create")()
	start := p.tok.Pos
	p.expect(token.CREATE)

	if p.check(token.TABLE) {
		stmt := p.parseCreateTable()
		stmt.SetSpan(start, p.prevEnd)
		return stmt
	}

	handler := p.dialect.CreateHandler(p.tok.Type)
	if handler == nil {
		p.failExpected(token.TABLE)
	}
	p.advance()
	stmt, err := handler(p)
	p.must(err)
	if s, ok := stmt.(core.Spanned); ok {
		s.SetSpan(start, p.prevEnd)
	}
	return stmt
}

func (p *Parser) parseCreateTable() *core.CreateTableStmt {
	p.expect(token.TABLE)
	stmt := &core.CreateTableStmt{}
	if p.match(token.IF) {
		p.expect(token.NOT)
		p.expect(token.EXISTS)
		stmt.IfNotExists = true
	}
	stmt.Table = p.parseQualifiedName()

	if p.match(token.AS) {
		stmt.AsSelect = p.parseQuery()
		return stmt
	}

	p.expect(token.LPAREN)
	for {
		if p.check(token.CONSTRAINT) || p.check(token.PRIMARY) || p.check(token.UNIQUE) || p.check(token.CHECK) {
			stmt.Constraints = append(stmt.Constraints, p.parseTableConstraint())
		} else {
			stmt.Columns = append(stmt.Columns, p.parseColumnDef())
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return stmt
}

func (p *Parser) parseColumnDef() *core.ColumnDef {
	defer p.enter("column definition")()
	start := p.tok.Pos
	col := &core.ColumnDef{Name: p.parseIdent()}
	col.Type = p.parseDataType()

	for {
		if p.match(token.CONSTRAINT) {
			p.parseIdent()
		}
		switch {
		case p.match(token.NOT):
			p.expect(token.NULL)
			col.NotNull = true
		case p.match(token.NULL):
			col.Null = true
		case p.match(token.DEFAULT):
			col.Default = p.parseExpression()
		case p.match(token.PRIMARY):
			p.expect(token.KEY)
			col.PrimaryKey = true
		case p.match(token.UNIQUE):
			col.Unique = true
		case p.match(token.CHECK):
			p.expect(token.LPAREN)
			col.Check = p.parseExpression()
			p.expect(token.RPAREN)
		case p.match(token.REFERENCES):
			ref := &core.Reference{Table: p.parseQualifiedName()}
			if p.check(token.LPAREN) {
				ref.Columns = p.parseIdentList()
			}
			col.References = ref
		default:
			col.SetSpan(start, p.prevEnd)
			return col
		}
	}
}

func (p *Parser) parseTableConstraint() *core.TableConstraint {
	defer p.enter("table constraint")()
	start := p.tok.Pos
	c := &core.TableConstraint{}
	if p.match(token.CONSTRAINT) {
		c.Name = p.parseIdent()
	}
	switch {
	case p.match(token.PRIMARY):
		p.expect(token.KEY)
		c.Kind = core.ConstraintPrimaryKey
		c.Columns = p.parseIdentList()
	case p.match(token.UNIQUE):
		c.Kind = core.ConstraintUnique
		c.Columns = p.parseIdentList()
	case p.match(token.CHECK):
		c.Kind = core.ConstraintCheck
		p.expect(token.LPAREN)
		c.Check = p.parseExpression()
		p.expect(token.RPAREN)
	default:
		p.failExpected(token.PRIMARY, token.UNIQUE, token.CHECK)
	}
	c.SetSpan(start, p.prevEnd)
	return c
}

func (p *Parser) parseDrop() *core.DropStmt {
	defer p.enter("drop")()
	start := p.tok.Pos
	p.expect(token.DROP)

	stmt := &core.DropStmt{}
	switch {
	case p.match(token.TABLE):
		stmt.Kind = core.ObjectTable
	case p.checkWord("SEQUENCE"):
		p.advance()
		stmt.Kind = core.ObjectSequence
	default:
		p.failExpected(token.TABLE, "SEQUENCE")
	}

	if p.match(token.IF) {
		p.expect(token.EXISTS)
		stmt.IfExists = true
	}
	stmt.Names = []*core.TableName{p.parseQualifiedName()}
	for p.match(token.COMMA) {
		stmt.Names = append(stmt.Names, p.parseQualifiedName())
	}
	switch {
	case p.match(token.CASCADE):
		stmt.Cascade = true
	case p.match(token.RESTRICT):
		stmt.Restrict = true
	}

	stmt.SetSpan(start, p.prevEnd)
	return stmt
}
