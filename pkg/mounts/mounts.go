// Package mounts lists mounted volumes for the file dialog sidebar. It
// reads /proc/self/mounts and keeps only mounts under the conventional
// user-volume roots, so pseudo filesystems and system partitions never
// clutter the sidebar.
package mounts

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/odvcencio/placard/pkg/logging"
)

const mountTable = "/proc/self/mounts"

// Roots under which a mount counts as a user volume.
var volumeRoots = []string{"/media/", "/run/media/", "/mnt/"}

// Point is one mounted volume.
type Point struct {
	Device string
	Path   string
	Label  string
}

// List returns the user-visible volumes, in mount-table order.
func List() []Point {
	f, err := os.Open(mountTable)
	if err != nil {
		logging.Debugf("mounts: %v", err)
		return nil
	}
	defer f.Close()

	points := parseTable(f)
	for i := range points {
		points[i].Label = volumeLabel(points[i])
	}
	return points
}

// parseTable parses mount-table lines: device, target, fstype, options...
// Targets use octal escapes for whitespace.
func parseTable(r io.Reader) []Point {
	var points []Point
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		target := unescapePath(fields[1])
		if !underVolumeRoot(target) {
			continue
		}
		points = append(points, Point{
			Device: unescapePath(fields[0]),
			Path:   target,
		})
	}
	return points
}

func underVolumeRoot(target string) bool {
	for _, root := range volumeRoots {
		if strings.HasPrefix(target, root) && target != root {
			return true
		}
	}
	return false
}

// unescapePath decodes the \ooo octal escapes the kernel writes for
// whitespace and backslashes in mount paths.
func unescapePath(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

// volumeLabel asks lsblk for the filesystem label, falling back to the
// final path element.
func volumeLabel(p Point) string {
	out, err := exec.Command("lsblk", "-o", "LABEL", "-n", p.Device).Output()
	if err == nil {
		if label := strings.TrimSpace(string(out)); label != "" {
			return label
		}
	}
	return filepath.Base(p.Path)
}
