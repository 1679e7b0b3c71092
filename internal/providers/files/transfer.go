package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/filedeck/backend/internal/shared/types"
	"go.uber.org/zap"
)

// copyChunkSize is the buffer used by the file copy loop.
const copyChunkSize = 8192

// TransferOps handles copying and moving of subtrees
type TransferOps struct {
	*EngineOps
}

// GetTools returns transfer tool definitions
func (t *TransferOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.copy",
			Name:        "Copy Entry",
			Description: "Copy a file or directory subtree into a destination directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "File or directory to copy", Required: true},
				{Name: "dest", Type: "string", Description: "Existing destination directory", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.move",
			Name:        "Move Entry",
			Description: "Move a file or directory into a destination directory",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "File or directory to move", Required: true},
				{Name: "dest", Type: "string", Description: "Existing destination directory", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Copy copies source into dest, recursing through directories. The result
// reports whether every piece copied; a partial tree may remain on failure.
func (t *TransferOps) Copy(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, dest, errMsg := sourceAndDest(params)
	if errMsg != "" {
		return Failure(errMsg)
	}

	target := filepath.Join(dest, filepath.Base(source))
	if !copyTree(source, target) {
		t.Log.Debug("copy incomplete", zap.String("source", source), zap.String("dest", target))
		return Failure(fmt.Sprintf("copy failed: %s", source))
	}

	return Success(map[string]interface{}{"source": source, "dest": target, "copied": true})
}

// Move renames source into dest. This is a plain rename: moving across
// filesystems fails rather than falling back to copy-and-delete.
func (t *TransferOps) Move(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, dest, errMsg := sourceAndDest(params)
	if errMsg != "" {
		return Failure(errMsg)
	}

	target := filepath.Join(dest, filepath.Base(source))
	if err := os.Rename(source, target); err != nil {
		t.Log.Debug("move failed", zap.String("source", source), zap.String("dest", target), zap.Error(err))
		return Failure(fmt.Sprintf("move failed: %v", err))
	}

	return Success(map[string]interface{}{"source": source, "dest": target, "moved": true})
}

// copyTree copies source to target. Directories recurse with the overall
// result being the AND of every child; a failed child does not stop the
// remaining children from being attempted.
func copyTree(source, target string) bool {
	info, err := os.Stat(source)
	if err != nil {
		return false
	}

	if !info.IsDir() {
		return copyFileContents(source, target)
	}

	// The mkdir error is deliberately not checked: when the target
	// directory already exists the children are still copied into it.
	os.Mkdir(target, info.Mode().Perm())

	f, err := os.Open(source)
	if err != nil {
		return false
	}
	children, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		return false
	}

	ok := true
	for _, c := range children {
		if !copyTree(filepath.Join(source, c.Name()), filepath.Join(target, c.Name())) {
			ok = false
		}
	}
	return ok
}

// copyFileContents copies one regular file in fixed-size chunks. Success
// means the source was read to EOF and every chunk was written in full.
func copyFileContents(source, target string) bool {
	in, err := os.Open(source)
	if err != nil {
		return false
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return false
	}
	defer out.Close()

	buf := make([]byte, copyChunkSize)
	for {
		n, rerr := in.Read(buf)
		if n > 0 {
			w, werr := out.Write(buf[:n])
			if werr != nil || w != n {
				return false
			}
		}
		if rerr == io.EOF {
			return true
		}
		if rerr != nil {
			return false
		}
	}
}

func sourceAndDest(params map[string]interface{}) (source, dest, errMsg string) {
	source, ok := params["source"].(string)
	if !ok || source == "" {
		return "", "", "source parameter required"
	}
	dest, ok = params["dest"].(string)
	if !ok || dest == "" {
		return "", "", "dest parameter required"
	}
	return source, dest, ""
}
