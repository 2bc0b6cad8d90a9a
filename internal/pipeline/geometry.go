package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
)

// ErrMissingGeometry is returned when the PostScript output declares no
// page size.
var ErrMissingGeometry = errors.New("no %%DocumentMedia directive in PostScript output")

// maxLineSize caps a single PostScript line. Embedded font and image data
// can produce very long lines.
const maxLineSize = 16 << 20

var (
	mediaPattern = regexp.MustCompile(`^%%DocumentMedia: [^ ]* ([0-9]+\.?[0-9]*|\.[0-9]+) ([0-9]+\.?[0-9]*|\.[0-9]+)`)
	pagesPattern = regexp.MustCompile(`^%%Pages: ([0-9]+)`)
)

// Geometry is the page size in PostScript points, plus the declared page
// count (0 when the document does not declare one).
type Geometry struct {
	Width  float64
	Height float64
	Pages  int
}

// WidthArg formats the width for a tool argument without losing precision.
func (g Geometry) WidthArg() string { return formatPoints(g.Width) }

// HeightArg formats the height for a tool argument without losing precision.
func (g Geometry) HeightArg() string { return formatPoints(g.Height) }

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExtractGeometry reads the page geometry from a PostScript file.
func ExtractGeometry(path string) (Geometry, error) {
	f, err := os.Open(path) // #nosec G304 -- path is a workspace artifact
	if err != nil {
		return Geometry{}, fmt.Errorf("reading PostScript: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseGeometry(f)
}

// ParseGeometry scans DSC comments. The first %%DocumentMedia line gives
// the size; the first numeric %%Pages line gives the page count.
func ParseGeometry(r io.Reader) (Geometry, error) {
	var g Geometry
	found := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) < 2 || line[0] != '%' || line[1] != '%' {
			continue
		}
		if !found {
			if m := mediaPattern.FindSubmatch(line); m != nil {
				w, errW := strconv.ParseFloat(string(m[1]), 64)
				h, errH := strconv.ParseFloat(string(m[2]), 64)
				if errW == nil && errH == nil {
					g.Width, g.Height = w, h
					found = true
				}
			}
		}
		if g.Pages == 0 {
			if m := pagesPattern.FindSubmatch(line); m != nil {
				if n, err := strconv.Atoi(string(m[1])); err == nil {
					g.Pages = n
				}
			}
		}
		if found && g.Pages > 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return Geometry{}, fmt.Errorf("scanning PostScript: %w", err)
	}
	if !found {
		return Geometry{}, ErrMissingGeometry
	}
	return g, nil
}
