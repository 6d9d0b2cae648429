package visualizer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

const clockLayout = "%Y/%m/%d %H:%M:%S"

// Clock renders the wall-clock line shown while a track plays.
type Clock struct {
	loc   *time.Location
	label string
	text  string
}

// NewClock builds a clock for an IANA zone name, printed with label.
func NewClock(zone, label string) (*Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("clock zone %q: %w", zone, err)
	}
	return &Clock{loc: loc, label: label}, nil
}

// Format renders t as "YYYY/MM/DD HH:MM:SS <label>".
func (c *Clock) Format(t time.Time) string {
	s := strftime.Format(clockLayout, t.In(c.loc))
	if c.label == "" {
		return s
	}
	return s + " " + c.label
}

func (c *Clock) Update(now time.Time) { c.text = c.Format(now) }

func (c *Clock) Clear() { c.text = "" }

// Text is the current display value; empty when stopped.
func (c *Clock) Text() string { return c.text }

// DisplayName derives a track title from its file path: the base name up to
// its first dot.
func DisplayName(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	name, _, _ := strings.Cut(base, ".")
	if name == "" {
		return base
	}
	return name
}
