package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ANSIJoinTypes contains standard SQL join types.
var ANSIJoinTypes = []core.JoinTypeDef{
	{
		Token:      token.INNER,
		Type:       core.JoinInner,
		RequiresOn: true,
	},
	{
		Token:         token.LEFT,
		Type:          core.JoinLeft,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
	},
	{
		Token:         token.RIGHT,
		Type:          core.JoinRight,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
	},
	{
		Token:         token.FULL,
		Type:          core.JoinFull,
		OptionalToken: token.OUTER,
		RequiresOn:    true,
	},
	{
		Token: token.CROSS,
		Type:  core.JoinCross,
	},
}
