package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-lyrender/internal/fileutil"
	"github.com/alnah/go-lyrender/internal/process"
)

// DefaultMaxPages caps page discovery when the document does not declare
// its page count.
const DefaultMaxPages = 500

// ErrPageLimit is returned when more pages exist than discovery allows.
var ErrPageLimit = errors.New("page limit exceeded")

// DiscoverPages probes file-page1.png, file-page2.png, ... and stops at the
// first missing index. A declared count stops probing after that page;
// otherwise limit applies and an existing page limit+1 is an error.
func DiscoverPages(ws *Workspace, declared, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultMaxPages
	}
	bound := limit
	if declared > 0 {
		if declared > limit {
			return nil, fmt.Errorf("%w: document declares %d pages, limit is %d", ErrPageLimit, declared, limit)
		}
		bound = declared
	}

	pages := make([]string, 0, min(bound, 16))
	for i := 1; i <= bound; i++ {
		path := ws.PagePath(i)
		if !fileutil.FileExists(path) {
			return pages, nil
		}
		pages = append(pages, path)
	}
	if declared == 0 && fileutil.FileExists(ws.PagePath(bound+1)) {
		return nil, fmt.Errorf("%w: more than %d pages", ErrPageLimit, limit)
	}
	return pages, nil
}

// Trimmer crops surrounding whitespace from page images with convert.
type Trimmer struct {
	Runner  process.Runner
	Binary  string
	Workers int // concurrent convert processes; values below 1 mean 1
	Log     zerolog.Logger
}

// TrimArgs returns the trimmer arguments for one page.
func TrimArgs(in, out string) []string {
	return []string{"-trim", "-colorspace", "RGB", in, out}
}

// Trim trims every page in place. The returned paths keep the input order.
// The first failure cancels the remaining pages.
func (t *Trimmer) Trim(ctx context.Context, ws *Workspace, pages []string) ([]string, error) {
	trimmed := make([]string, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(t.Workers, 1))
	for i, page := range pages {
		g.Go(func() error {
			if err := t.trimPage(gctx, ws, page); err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			trimmed[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trimmed, nil
}

func (t *Trimmer) trimPage(ctx context.Context, ws *Workspace, page string) error {
	tmp := strings.TrimSuffix(page, ".png") + ".trim.png"
	cmd := process.Command{
		Name: t.Binary,
		Args: TrimArgs(page, tmp),
		Dir:  ws.Dir(),
	}
	t.Log.Debug().Str("cmd", cmd.String()).Msg("trimming")
	if _, err := t.Runner.Run(ctx, cmd); err != nil {
		_ = fileutil.RemoveIfExists(tmp)
		return err
	}
	return fileutil.ReplaceFile(tmp, page)
}
