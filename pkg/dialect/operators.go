package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ANSIOperators contains standard SQL operators with their precedence.
// NOT appears at comparison level because it introduces NOT IN / NOT LIKE /
// NOT BETWEEN in infix position.
var ANSIOperators = []core.OperatorDef{
	{Token: token.OR, Precedence: core.PrecedenceOr},
	{Token: token.AND, Precedence: core.PrecedenceAnd},

	{Token: token.EQ, Precedence: core.PrecedenceComparison},
	{Token: token.NE, Precedence: core.PrecedenceComparison},
	{Token: token.LT, Precedence: core.PrecedenceComparison},
	{Token: token.GT, Precedence: core.PrecedenceComparison},
	{Token: token.LE, Precedence: core.PrecedenceComparison},
	{Token: token.GE, Precedence: core.PrecedenceComparison},
	{Token: token.LIKE, Precedence: core.PrecedenceComparison},
	{Token: token.IN, Precedence: core.PrecedenceComparison},
	{Token: token.BETWEEN, Precedence: core.PrecedenceComparison},
	{Token: token.IS, Precedence: core.PrecedenceComparison},
	{Token: token.NOT, Precedence: core.PrecedenceComparison},

	{Token: token.PLUS, Precedence: core.PrecedenceAddition},
	{Token: token.MINUS, Precedence: core.PrecedenceAddition},
	{Token: token.DPIPE, Precedence: core.PrecedenceAddition},

	{Token: token.STAR, Precedence: core.PrecedenceMultiply},
	{Token: token.SLASH, Precedence: core.PrecedenceMultiply},
	{Token: token.PERCENT, Precedence: core.PrecedenceMultiply},
}

// ANSISetOps contains the standard set operations.
var ANSISetOps = map[token.TokenType]core.SetOpType{
	token.UNION:     core.SetOpUnion,
	token.INTERSECT: core.SetOpIntersect,
	token.EXCEPT:    core.SetOpExcept,
}
