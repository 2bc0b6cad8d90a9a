package lyrender

import (
	"errors"

	"github.com/alnah/go-lyrender/internal/pipeline"
	"github.com/alnah/go-lyrender/internal/process"
)

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrNoInput        = errors.New("no input: provide a source file or notation text")
	ErrAmbiguousInput = errors.New("ambiguous input: provide a source file or notation text, not both")
	ErrSourceNotFound = errors.New("source file not found")

	// External tool errors. A *ToolError matches ErrToolFailed, and also
	// ErrToolNotFound when the binary is missing.
	ErrToolFailed   = process.ErrFailed
	ErrToolNotFound = process.ErrNotFound

	// Stage errors.
	ErrMissingGeometry   = pipeline.ErrMissingGeometry
	ErrPageLimit         = pipeline.ErrPageLimit
	ErrMissingMIDI       = pipeline.ErrMissingMIDI
	ErrSampleBankMissing = pipeline.ErrSampleBankMissing
	ErrAudioTruncate     = pipeline.ErrAudioTruncate
	ErrWorkspace         = pipeline.ErrWorkspace
)

// ToolError reports an external tool that failed. Error() returns the
// tool name followed by its standard error output.
type ToolError = process.Failure
