package files

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/filedeck/backend/internal/shared/types"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// MetadataOps handles per-entry stats and recursive directory sizing
type MetadataOps struct {
	*EngineOps
}

// GetTools returns metadata tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.stat",
			Name:        "Stat Entry",
			Description: "Full metadata for a single entry, including MIME type for files",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Entry to inspect", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.dir.size",
			Name:        "Directory Size",
			Description: "Total byte size of everything below a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory to measure", Required: true},
			},
			Returns: "object",
		},
	}
}

// Stat returns display metadata plus raw byte size for one entry. Regular
// files also get a sniffed MIME type.
func (m *MetadataOps) Stat(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	info, err := os.Stat(path)
	if err != nil {
		m.Log.Debug("stat failed", zap.String("path", path), zap.Error(err))
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}

	kind := KindFile
	if info.IsDir() {
		kind = KindDirectory
	}

	data := map[string]interface{}{
		"name":        info.Name(),
		"path":        path,
		"kind":        kind,
		"size_bytes":  info.Size(),
		"size":        FormatSize(info.Size()),
		"modified":    FormatTimestamp(info.ModTime()),
		"permissions": FormatPermissions(info.Mode()),
	}

	if kind == KindFile {
		if mt, err := mimetype.DetectFile(path); err == nil {
			data["mime"] = mt.String()
		}
	}

	return Success(data)
}

// DirSize walks the subtree below path and sums regular file sizes. The
// walk is parallel and skips children it cannot read rather than failing
// the whole measurement.
func (m *MetadataOps) DirSize(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	info, err := os.Stat(path)
	if err != nil {
		return Failure(fmt.Sprintf("stat failed: %v", err))
	}
	if !info.IsDir() {
		return Failure(fmt.Sprintf("not a directory: %s", path))
	}

	var total, count int64
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if fi, err := d.Info(); err == nil {
				atomic.AddInt64(&total, fi.Size())
				atomic.AddInt64(&count, 1)
			}
		}
		return nil
	})
	if err != nil {
		m.Log.Debug("size walk failed", zap.String("path", path), zap.Error(err))
		return Failure(fmt.Sprintf("size failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":       path,
		"size_bytes": total,
		"size":       FormatSize(total),
		"file_count": count,
	})
}
