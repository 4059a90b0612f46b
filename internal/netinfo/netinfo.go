package netinfo

import (
	"net"
	"strings"
)

// Sentinel values reported when no outward-facing interface exists.
const (
	FallbackIP  = "0.0.0.0"
	FallbackMAC = "00:00:00:00:00:00"
)

// Info is the serving host's network identity.
type Info struct {
	IP  string `json:"ip"`
	MAC string `json:"mac"`
}

// ServerInfo returns the address and hardware address of the first
// non-loopback interface carrying an IPv4 address. Hosts without one
// get the sentinel fallback rather than an error.
func ServerInfo() Info {
	interfaces, err := net.Interfaces()
	if err != nil {
		return fallback()
	}

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addresses, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addresses {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			default:
				continue
			}

			if ip.To4() == nil || ip.IsLoopback() {
				continue
			}

			mac := iface.HardwareAddr.String()
			if mac == "" {
				mac = FallbackMAC
			}
			return Info{IP: ip.String(), MAC: mac}
		}
	}

	return fallback()
}

// ResolveClientIP normalizes an inbound remote address: strips a
// port and the IPv4-mapped-IPv6 prefix, and substitutes the server's
// own address for loopback so local testing reads as client=server.
func ResolveClientIP(raw string) string {
	ip := raw
	if ip == "" {
		return FallbackIP
	}

	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	ip = strings.TrimPrefix(ip, "::ffff:")

	if ip == "::1" || ip == "127.0.0.1" {
		return ServerInfo().IP
	}
	if parsed := net.ParseIP(ip); parsed != nil && parsed.IsLoopback() {
		return ServerInfo().IP
	}

	return ip
}

func fallback() Info {
	return Info{IP: FallbackIP, MAC: FallbackMAC}
}
