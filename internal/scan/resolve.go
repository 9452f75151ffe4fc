package scan

import (
	"context"
	"errors"
	"net"
)

// resolveAddr turns a hostname or IP literal into a dialable address string.
// Resolution happens once per session, before any probing starts; IPv4 is
// preferred when the host has both families.
func resolveAddr(ctx context.Context, target string) (string, error) {
	if ip := net.ParseIP(target); ip != nil {
		return ip.String(), nil
	}

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, target)
	if err != nil {
		return "", &ResolutionError{Host: target, Err: err}
	}
	if len(addrs) == 0 {
		return "", &ResolutionError{Host: target, Err: errors.New("no addresses found")}
	}
	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return addrs[0].IP.String(), nil
}
