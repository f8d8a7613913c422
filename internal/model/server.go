package model

import (
	"context"
	"net"
)

// SecurityLayer produces the listener a server accepts connections on,
// either plain TCP or TLS depending on configuration.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a serving process with a lifecycle.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
