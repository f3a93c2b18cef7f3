package ipresolver

import (
	"faceclock.io/infrastructure/ipresolver/maxmind"
	"faceclock.io/infrastructure/ipresolver/types"
)

var IPResolverInstance types.IPResolver = &maxmind.MaxMindIPResolver{}
