// Package probetest provides a fixed, in-memory probe.Host for tests.
package probetest

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/clawaudit/clawaudit/internal/probe"
)

// Host answers every probe from maps. Paths are compared after path.Clean.
// Anything not registered behaves as missing: file probes return
// fs.ErrNotExist, Listeners returns none, ServiceState returns inactive.
type Host struct {
	Modes    map[string]fs.FileMode
	Files    map[string][]byte
	Dirs     map[string]bool
	Sockets  []probe.Listener
	Services map[string]probe.ServiceState

	// Errors injected per path or per probe ("listeners", "service:<name>").
	Errors map[string]error
}

// New returns an empty fake host.
func New() *Host {
	return &Host{
		Modes:    map[string]fs.FileMode{},
		Files:    map[string][]byte{},
		Dirs:     map[string]bool{},
		Services: map[string]probe.ServiceState{},
		Errors:   map[string]error{},
	}
}

// WithFile registers a regular file with contents and mode.
func (h *Host) WithFile(p string, mode fs.FileMode, contents string) *Host {
	p = path.Clean(p)
	h.Modes[p] = mode
	h.Files[p] = []byte(contents)
	return h
}

// WithDir registers a directory with mode.
func (h *Host) WithDir(p string, mode fs.FileMode) *Host {
	p = path.Clean(p)
	h.Modes[p] = mode
	h.Dirs[p] = true
	return h
}

// WithListener registers a listening socket.
func (h *Host) WithListener(host string, port int) *Host {
	h.Sockets = append(h.Sockets, probe.Listener{Host: host, Port: port})
	return h
}

// WithService registers a service state.
func (h *Host) WithService(name string, state probe.ServiceState) *Host {
	h.Services[name] = state
	return h
}

// WithError makes the probe identified by key fail with err.
func (h *Host) WithError(key string, err error) *Host {
	h.Errors[key] = err
	return h
}

// FileMode implements probe.Host.
func (h *Host) FileMode(p string) (fs.FileMode, error) {
	p = path.Clean(p)
	if err := h.Errors[p]; err != nil {
		return 0, err
	}
	mode, ok := h.Modes[p]
	if !ok {
		return 0, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return mode, nil
}

// ReadFile implements probe.Host.
func (h *Host) ReadFile(p string) ([]byte, error) {
	p = path.Clean(p)
	if err := h.Errors[p]; err != nil {
		return nil, err
	}
	data, ok := h.Files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// ReadDir implements probe.Host.
func (h *Host) ReadDir(p string) ([]probe.Entry, error) {
	p = path.Clean(p)
	if err := h.Errors[p]; err != nil {
		return nil, err
	}
	if !h.Dirs[p] {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}

	seen := map[string]probe.Entry{}
	prefix := p + "/"
	for child := range h.Modes {
		if !strings.HasPrefix(child, prefix) {
			continue
		}
		rest := strings.TrimPrefix(child, prefix)
		if strings.Contains(rest, "/") {
			continue
		}
		_, isFile := h.Files[child]
		seen[rest] = probe.Entry{Name: rest, Regular: isFile && !h.Dirs[child]}
	}

	entries := make([]probe.Entry, 0, len(seen))
	for _, e := range seen {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Listeners implements probe.Host.
func (h *Host) Listeners(_ context.Context, port int) ([]probe.Listener, error) {
	if err := h.Errors["listeners"]; err != nil {
		return nil, err
	}
	var out []probe.Listener
	for _, l := range h.Sockets {
		if l.Port == port {
			out = append(out, l)
		}
	}
	return out, nil
}

// ServiceState implements probe.Host.
func (h *Host) ServiceState(_ context.Context, name string) (probe.ServiceState, error) {
	if err := h.Errors[fmt.Sprintf("service:%s", name)]; err != nil {
		return probe.ServiceUnknown, err
	}
	state, ok := h.Services[name]
	if !ok {
		return probe.ServiceInactive, nil
	}
	return state, nil
}

var _ probe.Host = (*Host)(nil)
