package designinsight

import (
	"errors"
	"fmt"
	"net/netip"
	"syscall"
)

var errBlockedAddress = errors.New("connection to private or reserved network address refused")

// dialControl runs after DNS resolution and before connect, so it sees the
// address actually dialed.
type dialControl func(network, address string, c syscall.RawConn) error

// nonPublicRanges are special-purpose blocks that netip.Addr predicates miss.
var nonPublicRanges = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),   // shared address space
	netip.MustParsePrefix("192.0.0.0/24"),    // protocol assignments
	netip.MustParsePrefix("192.0.2.0/24"),    // documentation
	netip.MustParsePrefix("198.18.0.0/15"),   // benchmarking
	netip.MustParsePrefix("198.51.100.0/24"), // documentation
	netip.MustParsePrefix("203.0.113.0/24"),  // documentation
	netip.MustParsePrefix("240.0.0.0/4"),     // reserved
	netip.MustParsePrefix("2001:db8::/32"),   // documentation
}

// publicOnly refuses every destination that is not a routable public address.
func publicOnly(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %w", errBlockedAddress, err)
	}
	if !isPublicAddr(ap.Addr()) {
		return fmt.Errorf("%w: %s", errBlockedAddress, ap.Addr())
	}
	return nil
}

func isPublicAddr(addr netip.Addr) bool {
	// IPv4-mapped IPv6 is judged by its IPv4 form.
	addr = addr.Unmap()
	if addr.IsPrivate() || !addr.IsGlobalUnicast() {
		return false
	}
	for _, p := range nonPublicRanges {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}
