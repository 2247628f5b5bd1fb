package probe

import (
	"bufio"
	"bytes"
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/clawaudit/clawaudit/internal/errors"
)

// System answers probes from the local filesystem, the socket table and
// systemd.
type System struct {
	// Timeout bounds each external command. Zero means DefaultTimeout.
	Timeout time.Duration

	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewSystem creates a probe backed by the running host.
func NewSystem() *System {
	return &System{
		Timeout:  DefaultTimeout,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// FileMode returns the permission bits of path.
func (s *System) FileMode(path string) (fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Mode().Perm(), nil
}

// ReadFile returns the raw contents of path.
func (s *System) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadDir lists path in name order. A symlink is regular when its target is
// a regular file.
func (s *System) ReadDir(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		regular := d.Type().IsRegular()
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(path, d.Name()))
			regular = err == nil && info.Mode().IsRegular()
		}
		entries = append(entries, Entry{Name: d.Name(), Regular: regular})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Listeners reads the TCP listen table with ss, falling back to netstat.
func (s *System) Listeners(ctx context.Context, port int) ([]Listener, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	if ssPath, err := s.lookPath("ss"); err == nil {
		out, err := s.run(ctx, ssPath, "-ltnH")
		if err == nil {
			return filterPort(parseSS(out), port), nil
		}
		if ctx.Err() != nil {
			return nil, errors.NewProbeFailedError("socket table", ctx.Err())
		}
	}

	netstatPath, err := s.lookPath("netstat")
	if err != nil {
		return nil, errors.NewProbeUnavailableError("ss or netstat", err)
	}
	out, err := s.run(ctx, netstatPath, "-ltn")
	if err != nil {
		return nil, errors.NewProbeFailedError("socket table", err)
	}
	return filterPort(parseNetstat(out), port), nil
}

// ServiceState runs `systemctl is-active`. A non-zero exit with a
// recognised state word is an answer, not an error.
func (s *System) ServiceState(ctx context.Context, name string) (ServiceState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	systemctl, err := s.lookPath("systemctl")
	if err != nil {
		return ServiceUnknown, errors.NewProbeUnavailableError("systemctl", err)
	}

	out, err := s.run(ctx, systemctl, "is-active", name)
	state := parseServiceState(out)
	if state != ServiceUnknown {
		return state, nil
	}
	if err == nil {
		err = stderrors.New("unexpected output: " + strings.TrimSpace(string(out)))
	}
	return ServiceUnknown, errors.NewProbeFailedError("service "+name, err)
}

func (s *System) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

func parseServiceState(out []byte) ServiceState {
	word := strings.TrimSpace(string(bytes.SplitN(out, []byte("\n"), 2)[0]))
	switch word {
	case "active", "reloading", "refreshing":
		return ServiceActive
	case "inactive", "failed", "deactivating", "activating", "maintenance":
		return ServiceInactive
	}
	return ServiceUnknown
}

// parseSS parses `ss -ltnH` output:
//
//	LISTEN 0 4096 127.0.0.1:18789 0.0.0.0:*
func parseSS(output []byte) []Listener {
	var listeners []Listener
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		if l, ok := parseAddr(fields[3]); ok {
			listeners = append(listeners, l)
		}
	}
	return listeners
}

// parseNetstat parses `netstat -ltn` output:
//
//	tcp6 0 0 :::18789 :::* LISTEN
func parseNetstat(output []byte) []Listener {
	var listeners []Listener
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "LISTEN") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.HasPrefix(fields[0], "tcp") {
			continue
		}
		if l, ok := parseAddr(fields[3]); ok {
			listeners = append(listeners, l)
		}
	}
	return listeners
}

// parseAddr splits a socket-table address such as "[::1]:18789",
// "127.0.0.1%lo:53", "*:80" or ":::22".
func parseAddr(addr string) (Listener, bool) {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return Listener{}, false
	}
	port, err := strconv.Atoi(addr[i+1:])
	if err != nil {
		return Listener{}, false
	}

	host := strings.TrimSuffix(strings.TrimPrefix(addr[:i], "["), "]")
	if z := strings.Index(host, "%"); z >= 0 {
		host = host[:z]
	}
	return Listener{Host: host, Port: port}, true
}

func filterPort(listeners []Listener, port int) []Listener {
	out := listeners[:0]
	for _, l := range listeners {
		if l.Port == port {
			out = append(out, l)
		}
	}
	return out
}
