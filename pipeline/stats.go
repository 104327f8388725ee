package pipeline

// Stats counts what a run did. Each processing call returns its own Stats and
// the runner merges them with Add.
type Stats struct {
	Processed int
	Copied    int
	Errors    int

	// Byte totals of fully processed raster sources and their re-encoded
	// originals (derivatives are not counted).
	OriginalBytes  int64
	OptimizedBytes int64
}

func (s Stats) Add(other Stats) Stats {
	return Stats{
		Processed:      s.Processed + other.Processed,
		Copied:         s.Copied + other.Copied,
		Errors:         s.Errors + other.Errors,
		OriginalBytes:  s.OriginalBytes + other.OriginalBytes,
		OptimizedBytes: s.OptimizedBytes + other.OptimizedBytes,
	}
}
