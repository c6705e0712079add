package audit

import (
	"net"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIP(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		nil_ bool
	}{
		{"plain ipv4", "203.0.113.5", "203.0.113.5", false},
		{"ipv4 with port", "203.0.113.5:8080", "203.0.113.5", false},
		{"ipv6 loopback", "::1", "127.0.0.1", false},
		{"ipv6 loopback with port", "[::1]:8080", "127.0.0.1", false},
		{"ipv4-mapped ipv6", "::ffff:203.0.113.5", "203.0.113.5", false},
		{"bracketed ipv4-mapped", "[::ffff:10.0.0.1]:443", "10.0.0.1", false},
		{"pure ipv6", "2001:db8::1", "", true},
		{"garbage", "not-an-ip", "", true},
		{"empty", "", "", true},
		{"whitespace", "  198.51.100.7  ", "198.51.100.7", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeIP(tc.in)
			if tc.nil_ {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestRedactBody(t *testing.T) {
	body := redactBody([]byte(`{"email":"a@b.c","password":"hunter2","currentPassword":"x","newPassword":"y","token":"abc","note":"keep"}`))
	require.NotNil(t, body)
	assert.Equal(t, "a@b.c", body["email"])
	assert.Equal(t, "[REDACTED]", body["password"])
	assert.Equal(t, "[REDACTED]", body["currentPassword"])
	assert.Equal(t, "[REDACTED]", body["newPassword"])
	assert.Equal(t, "[REDACTED]", body["token"])
	assert.Equal(t, "keep", body["note"])
}

func TestRedactBodyNonObject(t *testing.T) {
	assert.Nil(t, redactBody(nil))
	assert.Nil(t, redactBody([]byte(`"just a string"`)))
	assert.Nil(t, redactBody([]byte(`{broken`)))
}

func resolveClientIP(t *testing.T, headers map[string]string) *string {
	t.Helper()
	app := fiber.New()
	var got *string
	app.Get("/", func(c *fiber.Ctx) error {
		got = clientIP(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestClientIPPrecedence(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			"forwarded-for takes its first entry",
			map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1, 172.16.0.1"},
			"203.0.113.9",
		},
		{
			"forwarded-for beats real-ip",
			map[string]string{"X-Forwarded-For": "203.0.113.9", "X-Real-IP": "198.51.100.4"},
			"203.0.113.9",
		},
		{
			"ipv6 forwarded-for falls through to real-ip",
			map[string]string{"X-Forwarded-For": "2001:db8::1", "X-Real-IP": "198.51.100.4"},
			"198.51.100.4",
		},
		{
			"real-ip beats cf-connecting-ip",
			map[string]string{"X-Real-IP": "198.51.100.4", "CF-Connecting-IP": "203.0.113.20"},
			"198.51.100.4",
		},
		{
			"ipv6 proxies fall through to cf-connecting-ip",
			map[string]string{
				"X-Forwarded-For":  "2001:db8::1",
				"X-Real-IP":        "2001:db8::2",
				"CF-Connecting-IP": "203.0.113.20",
			},
			"203.0.113.20",
		},
		{
			"mapped ipv6 forwarded-for normalizes",
			map[string]string{"X-Forwarded-For": "::ffff:203.0.113.7"},
			"203.0.113.7",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveClientIP(t, tc.headers)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestClientIPFallsBackToRemoteAddress(t *testing.T) {
	got := resolveClientIP(t, nil)
	require.NotNil(t, got)
	ip := net.ParseIP(*got)
	require.NotNil(t, ip)
	assert.NotNil(t, ip.To4())
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, "POST /api/listings/:id/interest", actionFor("POST", "/api/listings/17/interest"))
	assert.Equal(t, "PUT /api/admin/users/:id/verify", actionFor("PUT", "/api/admin/users/4/verify"))
	assert.Equal(t, "POST /api/auth/login", actionFor("POST", "/api/auth/login"))
}
