// Package store defines the lifecycle states shared by the in-memory
// snapshot repositories.
package store

// State tracks a repository through its load lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateFailed        State = "failed"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}
