// Package simulation provides payment decision policies for wiring the
// gateway without a real processor: a probabilistic policy for demo traffic
// and static policies for tests and configuration.
package simulation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopflow/checkout/internal/checkout/domain"
	"github.com/shopflow/checkout/internal/checkout/ports"
)

var _ ports.PaymentPolicy = (*ProbabilisticPaymentPolicy)(nil)

// ProbabilisticPaymentPolicy approves a configurable fraction of payments.
type ProbabilisticPaymentPolicy struct {
	rate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// PolicyOption customizes the probabilistic policy.
type PolicyOption func(*ProbabilisticPaymentPolicy)

// WithRandSource overrides the random source for deterministic testing.
func WithRandSource(source rand.Source) PolicyOption {
	return func(p *ProbabilisticPaymentPolicy) {
		if source != nil {
			p.rng = rand.New(source)
		}
	}
}

// NewProbabilisticPaymentPolicy builds a policy approving rate of attempts.
// The rate is clamped to [0, 1].
func NewProbabilisticPaymentPolicy(rate float64, opts ...PolicyOption) *ProbabilisticPaymentPolicy {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	p := &ProbabilisticPaymentPolicy{
		rate: rate,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Authorize draws the payment outcome.
func (p *ProbabilisticPaymentPolicy) Authorize(_ context.Context, _ *domain.Order) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64() < p.rate, nil
}

// AlwaysApprove authorizes every payment.
var AlwaysApprove = ports.PaymentPolicyFunc(func(context.Context, *domain.Order) (bool, error) {
	return true, nil
})

// AlwaysDecline refuses every payment.
var AlwaysDecline = ports.PaymentPolicyFunc(func(context.Context, *domain.Order) (bool, error) {
	return false, nil
})
