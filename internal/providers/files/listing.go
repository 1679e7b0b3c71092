package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/filedeck/backend/internal/shared/types"
	"go.uber.org/zap"
)

// ListOps handles directory listing and favourite locations
type ListOps struct {
	*EngineOps
}

// GetTools returns listing tool definitions
func (l *ListOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.dir.list",
			Name:        "List Directory",
			Description: "List one level of a directory with display metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Absolute directory path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "files.favourites",
			Name:        "Favourite Locations",
			Description: "Well-known locations derived from the home directory",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
	}
}

// List lists one directory level
func (l *ListOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	entries, err := listDirectory(path)
	if err != nil {
		l.Log.Debug("directory not accessible", zap.String("path", path), zap.Error(err))
		return Failure(fmt.Sprintf("list failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":    path,
		"entries": entries,
		"count":   len(entries),
	})
}

// Favourites returns the four home-relative locations
func (l *ListOps) Favourites(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	home, err := l.Home()
	if err != nil {
		return Failure(fmt.Sprintf("home directory unavailable: %v", err))
	}

	return Success(map[string]interface{}{
		"favourites": favouriteLocations(home),
		"count":      len(favouriteLocations(home)),
	})
}

// listDirectory enumerates one level of path in native directory order.
// A child that cannot be stat'd is still emitted with only name and path.
func listDirectory(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// File.ReadDir preserves enumeration order; the package-level
	// os.ReadDir would sort.
	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		entry := Entry{
			Name: d.Name(),
			Path: filepath.Join(path, d.Name()),
		}

		if info, err := os.Stat(entry.Path); err == nil {
			if info.IsDir() {
				entry.Kind = KindDirectory
			} else {
				entry.Kind = KindFile
				entry.Size = FormatSize(info.Size())
			}
			entry.Modified = FormatTimestamp(info.ModTime())
			entry.Permissions = FormatPermissions(info.Mode())
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// favouriteLocations joins the well-known subfolders onto home. No
// existence check: a favourite may point at a directory that is not there.
func favouriteLocations(home string) []Favourite {
	return []Favourite{
		{Name: "Home", Path: home},
		{Name: "Desktop", Path: filepath.Join(home, "Desktop")},
		{Name: "Documents", Path: filepath.Join(home, "Documents")},
		{Name: "Downloads", Path: filepath.Join(home, "Downloads")},
	}
}
