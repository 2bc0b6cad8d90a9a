// Package lyrender renders LilyPond notation to trimmed PNG pages and WAV
// audio by driving external tools.
//
// # Quick Start
//
//	r := lyrender.NewRenderer()
//
//	result, err := r.Render(ctx, lyrender.Input{
//	    Source: "{ c' d' e' f' }",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Images, result.Audio)
//
// Input.Path renders an existing .ly file (or imports a .mid/.midi file).
// Input.Source wraps a bare music expression in a score scaffold with
// layout and MIDI blocks. Exactly one of the two must be set.
//
// # Rendering Pipeline
//
//  1. Source preparation (scaffold or MIDI import)
//  2. Typesetting with lilypond (PostScript and MIDI)
//  3. Page geometry from the %%DocumentMedia comment
//  4. Rasterization with gs, one PNG per page
//  5. Trimming with ImageMagick convert, in parallel
//  6. Audio synthesis with fluidsynth
//
// Each run works in its own directory. The directory is removed when a run
// fails or is cancelled; on success it is kept and reported in
// Result.WorkDir so the caller can read the artifacts.
//
// # Configuration
//
//	r := lyrender.NewRenderer(
//	    lyrender.WithTimeout(2 * time.Minute),
//	    lyrender.WithResolution(150),
//	    lyrender.WithSampleBank("/usr/share/sounds/sf2/FluidR3_GM.sf2"),
//	    lyrender.WithWorkers(4),
//	)
//
// # Tool Requirements
//
// lilypond, gs, convert and fluidsynth must be on PATH, or configured with
// WithTools. midi2ly (shipped with lilypond) is only needed for MIDI input.
// Tool failures are returned as *ToolError carrying the tool's stderr.
package lyrender
