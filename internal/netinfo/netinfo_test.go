package netinfo

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain ipv4 passes through",
			raw:  "203.0.113.7",
			want: "203.0.113.7",
		},
		{
			name: "port is stripped",
			raw:  "203.0.113.7:51123",
			want: "203.0.113.7",
		},
		{
			name: "ipv4-mapped ipv6 prefix is stripped",
			raw:  "::ffff:203.0.113.7",
			want: "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveClientIP(tt.raw))
		})
	}
}

func TestResolveClientIPLoopback(t *testing.T) {
	server := ServerInfo().IP

	// Local testing reads as client = server.
	assert.Equal(t, server, ResolveClientIP("127.0.0.1"))
	assert.Equal(t, server, ResolveClientIP("::1"))
	assert.Equal(t, server, ResolveClientIP("[::1]:8080"))
}

func TestResolveClientIPEmpty(t *testing.T) {
	assert.Equal(t, FallbackIP, ResolveClientIP(""))
}

func TestServerInfoShape(t *testing.T) {
	info := ServerInfo()

	assert.NotEmpty(t, info.IP)
	assert.NotEmpty(t, info.MAC)

	// Either a real IPv4 address or the documented sentinel.
	parsed := net.ParseIP(info.IP)
	assert.NotNil(t, parsed)
	assert.NotNil(t, parsed.To4())
}
