// Package pipeline implements the rendering stages.
//
// Every stage runs one external tool inside a Workspace and returns a typed
// handle naming the artifacts it produced:
//
//  1. Preparer     source text or path -> Source (file.ly)
//  2. Typesetter   Source -> TypesetOutput (file.ps, file.midi)
//  3. ExtractGeometry  file.ps -> Geometry (%%DocumentMedia, %%Pages)
//  4. Rasterizer   file.ps + Geometry -> file-page1.png ... file-pageN.png
//  5. DiscoverPages + Trimmer  numbered pages -> trimmed pages, ascending
//  6. Synthesizer  file.midi + sample bank -> file.wav
//
// Stages never retry. Tool failures are returned as *process.Failure whose
// message is the tool's standard error.
package pipeline
