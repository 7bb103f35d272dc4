package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Window specification parsing: OVER clauses, PARTITION BY, ORDER BY, frame specs.
//
// Grammar:
//
//	window_spec   → identifier | "(" [PARTITION BY expr_list] [ORDER BY order_list] [frame_spec] ")"
//	frame_spec    → (ROWS|RANGE|GROUPS) frame_extent
//	frame_extent  → BETWEEN frame_bound AND frame_bound | frame_bound
//	frame_bound   → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING | CURRENT ROW | expr PRECEDING | expr FOLLOWING

// parseWindowSpec parses a window specification.
func (p *Parser) parseWindowSpec() *core.WindowSpec {
	defer p.enter("window")()
	start := p.tok.Pos
	spec := &core.WindowSpec{}

	// Named window reference
	if !p.check(token.LPAREN) {
		spec.Name = p.parseIdent()
		spec.SetSpan(start, p.prevEnd)
		return spec
	}

	p.expect(token.LPAREN)

	if p.match(token.PARTITION) {
		p.expect(token.BY)
		spec.PartitionBy = p.parseExpressionList()
	}

	if p.match(token.ORDER) {
		p.expect(token.BY)
		spec.OrderBy = p.parseOrderByList()
	}

	if p.check(token.ROWS) || p.check(token.RANGE) || p.checkWord("GROUPS") {
		spec.Frame = p.parseFrameSpec()
	}

	p.expect(token.RPAREN)
	spec.SetSpan(start, p.prevEnd)
	return spec
}

// parseFrameSpec parses a window frame specification.
func (p *Parser) parseFrameSpec() *core.FrameSpec {
	start := p.tok.Pos
	frame := &core.FrameSpec{}

	switch {
	case p.match(token.ROWS):
		frame.Type = core.FrameRows
	case p.match(token.RANGE):
		frame.Type = core.FrameRange
	default:
		p.advance() // GROUPS
		frame.Type = core.FrameGroups
	}

	if p.match(token.BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(token.AND)
		frame.EndBound = p.parseFrameBound()
	} else {
		frame.Start = p.parseFrameBound()
	}

	frame.SetSpan(start, p.prevEnd)
	return frame
}

// parseFrameBound parses a frame bound.
func (p *Parser) parseFrameBound() *core.FrameBound {
	start := p.tok.Pos
	bound := &core.FrameBound{}

	switch {
	case p.match(token.UNBOUNDED):
		switch {
		case p.match(token.PRECEDING):
			bound.Type = core.FrameUnboundedPreceding
		case p.match(token.FOLLOWING):
			bound.Type = core.FrameUnboundedFollowing
		default:
			p.failExpected(token.PRECEDING, token.FOLLOWING)
		}

	case p.match(token.CURRENT):
		p.expect(token.ROW)
		bound.Type = core.FrameCurrentRow

	default:
		// Bounds bind tighter than AND so BETWEEN n PRECEDING AND ... works
		bound.Offset = p.parseExpressionAt(core.PrecedenceAddition)
		switch {
		case p.match(token.PRECEDING):
			bound.Type = core.FrameExprPreceding
		case p.match(token.FOLLOWING):
			bound.Type = core.FrameExprFollowing
		default:
			p.failExpected(token.PRECEDING, token.FOLLOWING)
		}
	}

	bound.SetSpan(start, p.prevEnd)
	return bound
}
