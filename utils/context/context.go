package context

import (
	"context"

	"github.com/andikapratama/stockledger/constant"
)

// GetActorID returns the authenticated caller's ID placed in the context by the
// auth middleware. Movements recorded without an actor keep a null attribution.
func GetActorID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.ActorIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
