package deps

// Status reports whether an external program chartsmith launches is usable.
// Command holds the resolved path when Available is set.
type Status struct {
	Name      string
	Command   string
	Available bool
	Detail    string
}
