// Package auth is the identity-provider boundary. The browser popup flow
// happens outside this program; what reaches us is a Google ID token, which
// is validated into the three-field profile the rest of the system uses.
package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

type Profile struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

type Verifier struct {
	clientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify validates the token signature and audience and extracts the
// profile. Failures are opaque to callers: one error, no detail leaked.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Profile, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("sign-in failed: %w", err)
	}
	p := &Profile{
		Email:       claimString(payload.Claims, "email"),
		DisplayName: claimString(payload.Claims, "name"),
		PhotoURL:    claimString(payload.Claims, "picture"),
	}
	if p.Email == "" {
		return nil, fmt.Errorf("sign-in failed: token carries no email")
	}
	return p, nil
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}
