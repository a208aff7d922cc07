package resolve

// Candidate is one plausible on-disk name for a symbolic track.
type Candidate struct {
	// Original is the human-readable name reported alongside a hit.
	Original string
	// Hashed is the hashed file name, empty when the asset is known not to be hashed.
	Hashed string
	// AltDir replaces the symbolic directory when probing the per-track folder.
	AltDir string
}

// FileName returns the name probed on disk.
func (c Candidate) FileName() string {
	if c.Hashed != "" {
		return c.Hashed
	}
	return c.Original
}
