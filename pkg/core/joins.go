package core

import "github.com/leapstack-labs/sqlfront/pkg/token"

// Standard ANSI SQL join type values.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
)

// JoinTypeDef defines a dialect join type.
type JoinTypeDef struct {
	Token         token.TokenType // The trigger token for this join type
	Type          JoinType
	OptionalToken token.TokenType // Optional modifier token (OUTER) - 0 means none
	RequiresOn    bool            // true if ON or USING is required
}
