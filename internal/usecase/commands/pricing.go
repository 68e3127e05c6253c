package commands

import (
	"context"
	"log/slog"
	"time"

	"store-pickup/internal/domain/cart"
	"store-pickup/internal/domain/deal"
	"store-pickup/internal/domain/pricing"
	"store-pickup/internal/usecase/queries"
)

// applyDeals recomputes every discount of c from scratch for its current state.
// A cart without a store ends up with no discounts.
func applyDeals(ctx context.Context, resolver queries.DealResolver, c *cart.Cart, now time.Time) {
	seq := c.Seq()

	var active []deal.ActiveDeal
	if store := c.Store(); store != nil {
		active = resolver.ResolveActiveDeals(ctx, store.ID, now)
	}

	if err := c.ApplyAllocation(seq, pricing.Allocate(c.Lines(), active)); err != nil {
		slog.WarnContext(ctx, "discarding stale discount allocation",
			"user_id", c.UserID(),
			"seq", seq,
			"current_seq", c.Seq(),
			"error", err)
	}
}
