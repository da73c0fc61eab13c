package transfer

import (
	"context"

	"golang.org/x/time/rate"
)

// Sender is the transfer operation wrapped by RateLimited.
type Sender interface {
	Transfer(ctx context.Context, toAccount string, amount int64) error
}

// RateLimited bounds the rate of outbound transfer calls. Waiting respects
// the caller's context, so a cancelled operation fails instead of queueing.
type RateLimited struct {
	next    Sender
	limiter *rate.Limiter
}

func NewRateLimited(next Sender, perSecond float64, burst int) *RateLimited {
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (r *RateLimited) Transfer(ctx context.Context, toAccount string, amount int64) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}
	return r.next.Transfer(ctx, toAccount, amount)
}
