package store

import (
	"fmt"
	"strings"
)

// EmailKey derives the document key for users/<key> from a login email.
// The store disallows '.' in keys, so every dot becomes a comma. The
// transform is one-way: the key is never parsed back into an email, the
// record itself carries the original address.
func EmailKey(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("empty email")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", fmt.Errorf("malformed email %q", email)
	}
	if strings.ContainsAny(email, " \t/,#[]") {
		return "", fmt.Errorf("malformed email %q", email)
	}
	return strings.ReplaceAll(email, ".", ","), nil
}
