package pipeline

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/alnah/go-lyrender/internal/process"
)

// DefaultResolution is the rasterization resolution in dots per inch.
const DefaultResolution = 101

// Rasterizer renders every PostScript page to a numbered PNG with gs.
type Rasterizer struct {
	Runner     process.Runner
	Binary     string
	Resolution int // zero uses DefaultResolution
	Log        zerolog.Logger
}

// RasterArgs returns the rasterizer arguments. Page images are written as
// file-page1.png, file-page2.png, ... in the working directory.
func RasterArgs(postScript string, g Geometry, resolution int) []string {
	return []string{
		"-q",
		"-dGraphicsAlphaBits=4",
		"-dTextAlphaBits=4",
		"-dDEVICEWIDTHPOINTS=" + g.WidthArg(),
		"-dDEVICEHEIGHTPOINTS=" + g.HeightArg(),
		"-dNOPAUSE",
		"-dSAFER",
		"-sDEVICE=png16m",
		"-sOutputFile=" + PagePattern,
		"-r" + strconv.Itoa(resolution),
		postScript,
		"-c", "quit",
	}
}

// Rasterize renders postScript at the given page geometry.
func (r *Rasterizer) Rasterize(ctx context.Context, ws *Workspace, postScript string, g Geometry) error {
	res := r.Resolution
	if res <= 0 {
		res = DefaultResolution
	}
	cmd := process.Command{
		Name: r.Binary,
		Args: RasterArgs(postScript, g, res),
		Dir:  ws.Dir(),
	}
	r.Log.Debug().Str("cmd", cmd.String()).Msg("rasterizing")
	_, err := r.Runner.Run(ctx, cmd)
	return err
}
