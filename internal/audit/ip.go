package audit

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// clientIP resolves the caller address from proxy headers, then the framework
// remote address. Returns a normalized IPv4 string, or nil when the address
// only exists as IPv6.
func clientIP(c *fiber.Ctx) *string {
	candidates := []string{}

	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			candidates = append(candidates, first)
		} else {
			candidates = append(candidates, fwd)
		}
	}
	if real := c.Get("X-Real-IP"); real != "" {
		candidates = append(candidates, real)
	}
	if cf := c.Get("CF-Connecting-IP"); cf != "" {
		candidates = append(candidates, cf)
	}
	candidates = append(candidates, c.IP())

	for _, candidate := range candidates {
		if ip := normalizeIP(candidate); ip != nil {
			return ip
		}
	}
	return nil
}

// normalizeIP reduces an address to dotted IPv4. The IPv6 loopback and
// IPv4-mapped IPv6 addresses collapse to their IPv4 forms; any other IPv6
// address yields nil.
func normalizeIP(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// Strip a port when present, including the bracketed IPv6 form.
	if host, _, err := net.SplitHostPort(s); err == nil {
		s = host
	}
	s = strings.Trim(s, "[]")

	if s == "::1" {
		v4 := "127.0.0.1"
		return &v4
	}
	s = strings.TrimPrefix(s, "::ffff:")

	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	if v4 := ip.To4(); v4 != nil {
		out := v4.String()
		return &out
	}
	return nil
}
