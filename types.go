package lyrender

// Input is what to render. Set exactly one of Path or Source.
type Input struct {
	Path    string // existing .ly file, or .mid/.midi to import
	Source  string // bare music expression, wrapped in the score scaffold
	WorkDir string // optional; default is a fresh temporary directory
}

// Result names the rendered artifacts.
type Result struct {
	Images  []string `json:"images"` // trimmed pages, ascending, never nil
	Audio   string   `json:"audio"`
	WorkDir string   `json:"-"`
}
