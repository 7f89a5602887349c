package shader

// State is a step of the pipeline lifecycle.
type State int

const (
	Uninitialized State = iota
	SourcesLoading
	SourcesReady
	Compiling
	Linking
	Activated
	Binding
	Registered
	Aborted
)

var stateNames = [...]string{
	Uninitialized:  "uninitialized",
	SourcesLoading: "sources-loading",
	SourcesReady:   "sources-ready",
	Compiling:      "compiling",
	Linking:        "linking",
	Activated:      "activated",
	Binding:        "binding",
	Registered:     "registered",
	Aborted:        "aborted",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

