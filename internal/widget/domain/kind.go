// Package domain defines the types shared by the home layout engine:
// service kinds, their metric catalogs, widget sizes, metric selections,
// widgets, and layouts.
package domain

import (
	"fmt"

	"nathanbeddoewebdev/homegrid/internal/util"
)

// ServiceKind identifies the category of backend a service integration
// targets. It is fixed when the service is created.
type ServiceKind string

const (
	KindHypervisor    ServiceKind = "hypervisor"
	KindMediaServer   ServiceKind = "media-server"
	KindTorrentClient ServiceKind = "torrent-client"
	KindDNSFilter     ServiceKind = "dns-filter"
)

// Kinds lists every ServiceKind in declaration order.
var Kinds = []ServiceKind{
	KindHypervisor,
	KindMediaServer,
	KindTorrentClient,
	KindDNSFilter,
}

// Valid reports whether k is one of the known kinds.
func (k ServiceKind) Valid() bool {
	switch k {
	case KindHypervisor, KindMediaServer, KindTorrentClient, KindDNSFilter:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the kind.
func (k ServiceKind) DisplayName() string {
	switch k {
	case KindHypervisor:
		return "Hypervisor"
	case KindMediaServer:
		return "Media Server"
	case KindTorrentClient:
		return "Torrent Client"
	case KindDNSFilter:
		return "DNS Filter"
	}
	return string(k)
}

// ParseKind normalizes s and returns the matching ServiceKind.
func ParseKind(s string) (ServiceKind, error) {
	k := ServiceKind(util.NormalizeKey(s))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}
