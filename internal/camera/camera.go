package camera

// Record is one row of the camera list, field-trimmed by the loader.
type Record struct {
	Username string
	Password string
	IP       string
	RawName  string
}

// Resolved is a Record carrying its sanitized, batch-unique identifier.
// SafeName always matches ^[A-Za-z0-9_]+$.
type Resolved struct {
	Record
	SafeName string
	Renamed  bool
}

// Probed is a Resolved camera with its reachability verdict. Produced once
// by the prober and never mutated afterward.
type Probed struct {
	Resolved
	Reachable bool
}

// RowWarning records an input row that was dropped instead of failing the run.
type RowWarning struct {
	Row    int // CSV row number; the header is row 1
	Reason string
}

// Rename records a display name that sanitization or deduplication changed.
type Rename struct {
	From string
	To   string
}

// Summary aggregates what a single run did. It is built up and returned by
// the pipeline; nothing in it feeds back into the written output.
type Summary struct {
	Loaded      int
	Dropped     []RowWarning
	Reachable   int
	Unreachable int
	Renames     []Rename
	MainStreams int
	SubStreams  int
}
