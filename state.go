package menumap

// State describes what the client knows about the cached catalog.
type State int

const (
	// StateEmpty means no catalog has been served yet, or it was cleared.
	StateEmpty State = iota
	// StateFetching means a remote fetch is in flight.
	StateFetching
	// StatePopulated means the store holds a catalog.
	StatePopulated
	// StateFetchFailed means the last fill failed; the next call retries.
	StateFetchFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFetching:
		return "fetching"
	case StatePopulated:
		return "populated"
	case StateFetchFailed:
		return "fetch_failed"
	default:
		return "unknown"
	}
}
