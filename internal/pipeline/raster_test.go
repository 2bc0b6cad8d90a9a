package pipeline

import (
	"context"
	"slices"
	"testing"

	"github.com/alnah/go-lyrender/internal/process"
	"github.com/rs/zerolog"
)

func TestRasterArgs(t *testing.T) {
	t.Parallel()

	g := Geometry{Width: 595.276, Height: 841.89}
	got := RasterArgs("/work/file.ps", g, 101)
	want := []string{
		"-q",
		"-dGraphicsAlphaBits=4",
		"-dTextAlphaBits=4",
		"-dDEVICEWIDTHPOINTS=595.276",
		"-dDEVICEHEIGHTPOINTS=841.89",
		"-dNOPAUSE",
		"-dSAFER",
		"-sDEVICE=png16m",
		"-sOutputFile=file-page%d.png",
		"-r101",
		"/work/file.ps",
		"-c", "quit",
	}
	if !slices.Equal(got, want) {
		t.Errorf("RasterArgs() =\n%v\nwant\n%v", got, want)
	}
}

func TestRasterizer_Rasterize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resolution int
		wantRes    string
	}{
		{name: "default resolution", resolution: 0, wantRes: "-r101"},
		{name: "custom resolution", resolution: 300, wantRes: "-r300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ws := newTestWorkspace(t)
			runner := &mockRunner{}
			r := &Rasterizer{Runner: runner, Binary: "gs", Resolution: tt.resolution, Log: zerolog.Nop()}

			err := r.Rasterize(context.Background(), ws, ws.Path(PostScriptName), Geometry{Width: 612, Height: 792})
			if err != nil {
				t.Fatalf("Rasterize() error = %v", err)
			}
			calls := runner.Calls()
			if len(calls) != 1 {
				t.Fatalf("runner called %d times, want 1", len(calls))
			}
			if calls[0].Dir != ws.Dir() {
				t.Errorf("Dir = %q, want %q", calls[0].Dir, ws.Dir())
			}
			if !slices.Contains(calls[0].Args, tt.wantRes) {
				t.Errorf("args %v missing %s", calls[0].Args, tt.wantRes)
			}
			if !slices.Contains(calls[0].Args, "-dDEVICEWIDTHPOINTS=612") {
				t.Errorf("args %v missing width", calls[0].Args)
			}
		})
	}
}

func TestRasterizer_Failure(t *testing.T) {
	t.Parallel()

	ws := newTestWorkspace(t)
	runner := &mockRunner{fn: func(process.Command) (process.Output, error) {
		return process.Output{}, &process.Failure{Tool: "gs", ExitCode: 1, Stderr: "Unrecoverable error"}
	}}
	r := &Rasterizer{Runner: runner, Binary: "gs", Log: zerolog.Nop()}

	err := r.Rasterize(context.Background(), ws, "file.ps", Geometry{Width: 1, Height: 1})
	if err == nil || err.Error() != "gs: Unrecoverable error" {
		t.Errorf("Rasterize() error = %v, want gs stderr", err)
	}
}
