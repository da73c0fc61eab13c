package auth

import (
	"context"
	"strings"
)

// StaticAuthorizer authorizes project creation from a fixed allowlist of
// account ids. It backs deployments without a creators table and tests.
type StaticAuthorizer struct {
	allowed map[string]struct{}
}

// NewStaticAuthorizer parses a comma-separated allowlist.
func NewStaticAuthorizer(allowlist string) *StaticAuthorizer {
	allowed := make(map[string]struct{})
	for _, id := range strings.Split(allowlist, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			allowed[id] = struct{}{}
		}
	}
	return &StaticAuthorizer{allowed: allowed}
}

func (a *StaticAuthorizer) IsAuthorizedCreator(ctx context.Context, accountID string) (bool, error) {
	_, ok := a.allowed[accountID]
	return ok, nil
}
