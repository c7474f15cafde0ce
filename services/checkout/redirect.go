package checkout

import (
	"fmt"
	"slices"
	"strings"

	"invoicepay/utils"
)

// Return paths on the payment portal. The provider substitutes the session
// placeholder when it redirects the buyer back.
const (
	successPath = "/payment-success?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/payment-cancelled"
)

// RedirectPolicy decides which origin the hosted page sends the buyer back to.
type RedirectPolicy struct {
	// AllowedOrigins, when non-empty, is the complete list of accepted origins.
	AllowedOrigins []string
	// FallbackOrigin is used when the request carries no Origin header.
	FallbackOrigin string
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}

func (p RedirectPolicy) resolve(origin string) (string, error) {
	origin = normalizeOrigin(origin)
	if origin == "" {
		origin = normalizeOrigin(p.FallbackOrigin)
	}
	if origin == "" {
		return "", utils.InvalidArgument("Request origin is required")
	}
	if len(p.AllowedOrigins) > 0 && !slices.Contains(p.AllowedOrigins, origin) {
		return "", utils.InvalidArgument(fmt.Sprintf("Origin %s is not allowed", origin))
	}
	return origin, nil
}

func successURL(origin string) string { return origin + successPath }

func cancelURL(origin string) string { return origin + cancelPath }
