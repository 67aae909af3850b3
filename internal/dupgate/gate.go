// Package dupgate decides whether a registration should be short-circuited
// because a customer with the same phone number already exists. It sits in
// front of the first step's forward transition only; the backend remains the
// source of truth for existence.
package dupgate

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"intake_gateway/internal/upstream"
	"intake_gateway/platform/logger"
	"intake_gateway/platform/phone"
)

// PhoneChecker is the slice of the tracker client the gate needs.
type PhoneChecker interface {
	CheckPhone(ctx context.Context, phone string) (*upstream.CheckExistsResponse, error)
}

// Verdict is the outcome of a duplicate check.
type Verdict struct {
	// Duplicate is true when an existing customer matched the phone.
	Duplicate bool
	// Name and DetailURL identify the existing customer when Duplicate.
	Name      string
	DetailURL string
}

// Gate performs phone-based duplicate lookups with per-number request
// coalescing, so a burst of identical checks costs one upstream call.
type Gate struct {
	checker PhoneChecker
	group   singleflight.Group
	log     *logger.Logger
}

// New creates a Gate backed by the given phone checker.
func New(checker PhoneChecker, log *logger.Logger) *Gate {
	return &Gate{checker: checker, log: log}
}

// Check normalizes the raw phone input and asks the backend whether a
// customer already owns it.
//
// An empty or whitespace-only phone skips the check entirely, and a lookup
// failure is treated as not-found: registration must never be blocked by a
// flaky existence lookup.
func (g *Gate) Check(ctx context.Context, rawPhone string) Verdict {
	if strings.TrimSpace(rawPhone) == "" {
		return Verdict{}
	}

	normalized := phone.NormalizeE164(rawPhone)

	result, err, _ := g.group.Do(normalized, func() (interface{}, error) {
		return g.checker.CheckPhone(ctx, normalized)
	})
	if err != nil {
		g.log.UpstreamError("check_phone", err)
		return Verdict{}
	}

	resp := result.(*upstream.CheckExistsResponse)
	if !resp.Exists || resp.Customer == nil {
		return Verdict{}
	}

	return Verdict{
		Duplicate: true,
		Name:      resp.Customer.Name,
		DetailURL: resp.Customer.DetailURL,
	}
}
