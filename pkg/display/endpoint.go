package display

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// WaylandAddr says how to reach a compositor: a pre-connected inherited
// file descriptor, or a unix socket path to dial.
type WaylandAddr struct {
	// FD is the socket inherited via WAYLAND_SOCKET, or -1.
	FD int
	// Path is the socket path to dial when FD < 0.
	Path string
}

// FindWayland inspects the environment for an advertised Wayland endpoint.
// Order: WAYLAND_SOCKET (inherited fd), then WAYLAND_DISPLAY resolved
// against XDG_RUNTIME_DIR, then a scan of XDG_RUNTIME_DIR for wayland-N
// sockets preferring wayland-0. Finding an endpoint does not guarantee the
// connect will succeed.
func FindWayland() (WaylandAddr, bool) {
	if v := os.Getenv("WAYLAND_SOCKET"); v != "" {
		if fd, err := strconv.Atoi(v); err == nil && fd >= 0 {
			return WaylandAddr{FD: fd}, true
		}
	}

	run := os.Getenv("XDG_RUNTIME_DIR")
	if name := os.Getenv("WAYLAND_DISPLAY"); name != "" {
		if filepath.IsAbs(name) {
			return WaylandAddr{FD: -1, Path: name}, true
		}
		if run == "" {
			return WaylandAddr{}, false
		}
		return WaylandAddr{FD: -1, Path: filepath.Join(run, name)}, true
	}

	if run == "" {
		return WaylandAddr{}, false
	}
	if name, ok := scanRuntimeDir(run); ok {
		return WaylandAddr{FD: -1, Path: filepath.Join(run, name)}, true
	}
	return WaylandAddr{}, false
}

// scanRuntimeDir looks for compositor sockets named wayland-<n>.
func scanRuntimeDir(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var found []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "wayland-") {
			continue
		}
		// Skip lock files and anything else with a suffix.
		if _, err := strconv.Atoi(strings.TrimPrefix(name, "wayland-")); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Mode()&os.ModeSocket == 0 {
			continue
		}
		found = append(found, name)
	}
	if len(found) == 0 {
		return "", false
	}
	sort.Strings(found)
	for _, name := range found {
		if name == "wayland-0" {
			return name, true
		}
	}
	return found[0], true
}

// X11Present reports whether the environment advertises an X server.
func X11Present() bool {
	return os.Getenv("DISPLAY") != ""
}
