package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/filedeck/backend/internal/shared/types"
	"go.uber.org/zap"
)

// MutateOps handles creation, renaming, and deletion of entries
type MutateOps struct {
	*EngineOps
}

// GetTools returns mutation tool definitions
func (m *MutateOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.dir.create",
			Name:        "Create Directory",
			Description: "Create a single directory under an existing parent",
			Parameters: []types.Parameter{
				{Name: "parent", Type: "string", Description: "Existing parent directory", Required: true},
				{Name: "name", Type: "string", Description: "New directory name", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.create",
			Name:        "Create File",
			Description: "Create an empty file, failing if it already exists",
			Parameters: []types.Parameter{
				{Name: "parent", Type: "string", Description: "Existing parent directory", Required: true},
				{Name: "name", Type: "string", Description: "New file name", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.rename",
			Name:        "Rename Entry",
			Description: "Rename an entry within its parent directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Entry to rename", Required: true},
				{Name: "name", Type: "string", Description: "New name", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.delete",
			Name:        "Delete Entry",
			Description: "Delete a file, or a directory and everything below it",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Entry to delete", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// CreateDirectory creates one directory level. The parent must exist;
// no intermediate directories are created.
func (m *MutateOps) CreateDirectory(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	parent, name, errMsg := parentAndName(params)
	if errMsg != "" {
		return Failure(errMsg)
	}

	target := filepath.Join(parent, name)
	if err := os.Mkdir(target, 0o755); err != nil {
		m.Log.Debug("mkdir failed", zap.String("path", target), zap.Error(err))
		return Failure(fmt.Sprintf("create directory failed: %v", err))
	}

	return Success(map[string]interface{}{"path": target, "created": true})
}

// CreateFile creates an empty file exclusively: a second create of the
// same name fails rather than truncating.
func (m *MutateOps) CreateFile(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	parent, name, errMsg := parentAndName(params)
	if errMsg != "" {
		return Failure(errMsg)
	}

	target := filepath.Join(parent, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		m.Log.Debug("create failed", zap.String("path", target), zap.Error(err))
		return Failure(fmt.Sprintf("create file failed: %v", err))
	}
	if err := f.Close(); err != nil {
		return Failure(fmt.Sprintf("create file failed: %v", err))
	}

	return Success(map[string]interface{}{"path": target, "created": true})
}

// Rename renames an entry in place. The new name is joined onto the
// entry's own parent, so renames never move across directories.
func (m *MutateOps) Rename(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return Failure("name parameter required")
	}

	target := filepath.Join(filepath.Dir(path), name)
	if err := os.Rename(path, target); err != nil {
		m.Log.Debug("rename failed", zap.String("from", path), zap.String("to", target), zap.Error(err))
		return Failure(fmt.Sprintf("rename failed: %v", err))
	}

	return Success(map[string]interface{}{"path": target, "renamed": true})
}

// Delete removes an entry. Directories are removed depth-first; the walk
// stops at the first child that cannot be removed, which can leave a
// partially deleted tree behind.
func (m *MutateOps) Delete(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	if err := deleteTree(path); err != nil {
		m.Log.Debug("delete failed", zap.String("path", path), zap.Error(err))
		return Failure(fmt.Sprintf("delete failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "deleted": true})
}

// deleteTree removes path and everything below it, children before
// parents. Lstat keeps symlinked directories from being followed: the
// link itself is removed, never its target's contents.
func deleteTree(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		children, err := f.ReadDir(-1)
		f.Close()
		if err != nil {
			return err
		}
		for _, c := range children {
			if err := deleteTree(filepath.Join(path, c.Name())); err != nil {
				return err
			}
		}
	}

	return os.Remove(path)
}

func parentAndName(params map[string]interface{}) (parent, name, errMsg string) {
	parent, ok := params["parent"].(string)
	if !ok || parent == "" {
		return "", "", "parent parameter required"
	}
	name, ok = params["name"].(string)
	if !ok || name == "" {
		return "", "", "name parameter required"
	}
	return parent, name, ""
}
