package files

import (
	"os"

	"github.com/filedeck/backend/internal/logging"
	"github.com/filedeck/backend/internal/shared/types"
)

// Kind discriminates directory entries
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Entry represents one item in a directory listing.
//
// Display fields stay empty when the entry could not be stat'd; the entry
// is still emitted with name and path so the caller can show it.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Kind        Kind   `json:"kind,omitempty"`
	Size        string `json:"size,omitempty"`
	Modified    string `json:"modified,omitempty"`
	Permissions string `json:"permissions,omitempty"`
}

// Favourite is a named well-known location for the sidebar.
type Favourite struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// EngineOps provides common state for the engine operation groups
type EngineOps struct {
	Log *logging.Logger

	// Home resolves the home directory; os.UserHomeDir in production,
	// swappable in tests.
	Home func() (string, error)
}

// NewEngineOps creates the shared operation state
func NewEngineOps(log *logging.Logger) *EngineOps {
	return &EngineOps{
		Log:  log,
		Home: os.UserHomeDir,
	}
}

// Success helper
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure helper
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
