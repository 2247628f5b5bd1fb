// Package probe provides read-only adapters for the host state a posture
// audit consumes.
//
// The probe package follows the same shape for every adapter:
//   - Host interface so checks can run against a fixed fake in tests
//   - System implementation backed by the filesystem and host tools
//   - Errors carry PROBE-00x codes; callers degrade them to warnings
//
// Example usage:
//
//	host := probe.NewSystem()
//	mode, err := host.FileMode("/home/claw/.openclaw/.env")
//	listeners, err := host.Listeners(ctx, 18789)
//	state, err := host.ServiceState(ctx, "fail2ban")
package probe

import (
	"context"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds every probe that executes an external command.
const DefaultTimeout = 5 * time.Second

// Host is the set of host-state questions a check may ask.
type Host interface {
	// FileMode returns the permission bits of path. A missing path returns
	// an error satisfying errors.Is(err, fs.ErrNotExist).
	FileMode(path string) (fs.FileMode, error)

	// ReadFile returns the raw contents of path.
	ReadFile(path string) ([]byte, error)

	// ReadDir lists the direct children of a directory in name order.
	ReadDir(path string) ([]Entry, error)

	// Listeners returns the TCP sockets listening on port.
	Listeners(ctx context.Context, port int) ([]Listener, error)

	// ServiceState asks the service manager whether a unit is active.
	ServiceState(ctx context.Context, name string) (ServiceState, error)
}

// Entry is a directory child.
type Entry struct {
	Name    string
	Regular bool
}

// Listener is one listening socket from the local socket table.
type Listener struct {
	Host string
	Port int
}

// String renders the listener as host:port.
func (l Listener) String() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

// Loopback reports whether the socket only accepts local connections.
func (l Listener) Loopback() bool {
	if strings.EqualFold(l.Host, "localhost") {
		return true
	}
	ip := net.ParseIP(l.Host)
	return ip != nil && ip.IsLoopback()
}

// Wildcard reports whether the socket is bound to every interface.
func (l Listener) Wildcard() bool {
	switch l.Host {
	case "", "*", "0.0.0.0", "::":
		return true
	}
	return false
}

// ServiceState is the answer of the service manager for one unit.
type ServiceState string

const (
	// ServiceActive means the unit is running.
	ServiceActive ServiceState = "active"

	// ServiceInactive means the unit exists but is stopped or failed,
	// or is not installed at all.
	ServiceInactive ServiceState = "inactive"

	// ServiceUnknown means the service manager gave no usable answer.
	ServiceUnknown ServiceState = "unknown"
)

// String returns the string representation of the state.
func (s ServiceState) String() string {
	return string(s)
}
