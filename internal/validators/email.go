package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address's domain resolves, either
// through MX records or a plain host lookup. DNS being flaky means a
// false negative is possible; callers treat a failure as a 400.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
