package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// EmailDomainChecker resolves the domain part of an address and accepts it
// when an MX or address record exists.
type EmailDomainChecker struct {
	Resolver *net.Resolver
	Timeout  time.Duration
}

func NewEmailDomainChecker() *EmailDomainChecker {
	return &EmailDomainChecker{Resolver: net.DefaultResolver, Timeout: 3 * time.Second}
}

func (c *EmailDomainChecker) Valid(ctx context.Context, email string) bool {
	domain, ok := EmailDomain(email)
	if !ok {
		return false
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if mx, err := c.Resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := c.Resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}

// EmailDomain returns the lowercased part after the last "@".
func EmailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return strings.ToLower(email[at+1:]), true
}
