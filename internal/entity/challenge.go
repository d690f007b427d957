package entity

// Challenge describes one problem, as read from its metadata file.
type Challenge struct {
	Name     string
	Author   string
	Category string
	Tags     []string
}

// TestedStatus is the content of the tested sidecar file.
type TestedStatus struct {
	Tested    bool
	Tester    string
	Solver    string // Parsed and validated, not rendered.
	TestedURL string
}

// Record is one report row: a challenge paired with its tested status.
type Record struct {
	SourcePath string // Folder both files were read from
	Challenge  Challenge
	Tested     TestedStatus
}
