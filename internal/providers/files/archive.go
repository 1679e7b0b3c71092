package files

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/filedeck/backend/internal/shared/types"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// ArchiveOps handles zip and tar creation and zip inspection
type ArchiveOps struct {
	*EngineOps
}

// GetTools returns archive tool definitions
func (a *ArchiveOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.zip.create",
			Name:        "Create Zip",
			Description: "Archive a file or directory subtree into a portable zip",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "File or directory to archive", Required: true},
				{Name: "dest", Type: "string", Description: "Path of the zip file to create", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "files.zip.list",
			Name:        "List Zip",
			Description: "List the entries of an existing zip archive",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Zip file to inspect", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "files.tar.create",
			Name:        "Create Tar",
			Description: "Archive a directory subtree into a compressed tarball",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Directory to archive", Required: true},
				{Name: "dest", Type: "string", Description: "Path of the tarball to create", Required: true},
				{Name: "compression", Type: "string", Description: "gzip (default) or zstd", Required: false},
			},
			Returns: "boolean",
		},
	}
}

// CreateZip archives source into a zip at dest. Directory sources are
// rooted at the directory's base name, with explicit "dir/" entries so
// empty directories survive extraction anywhere.
func (a *ArchiveOps) CreateZip(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, dest, errMsg := sourceAndDest(params)
	if errMsg != "" {
		return Failure(errMsg)
	}

	if err := zipTree(source, dest); err != nil {
		a.Log.Debug("zip failed", zap.String("source", source), zap.String("dest", dest), zap.Error(err))
		os.Remove(dest)
		return Failure(fmt.Sprintf("zip failed: %v", err))
	}

	return Success(map[string]interface{}{"source": source, "dest": dest, "archived": true})
}

// ListZip lists the entries of a zip archive without extracting it.
func (a *ArchiveOps) ListZip(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return Failure(fmt.Sprintf("open zip failed: %v", err))
	}
	defer r.Close()

	entries := make([]map[string]interface{}, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, map[string]interface{}{
			"name":       f.Name,
			"size":       f.UncompressedSize64,
			"compressed": f.CompressedSize64,
			"directory":  strings.HasSuffix(f.Name, "/"),
			"modified":   FormatTimestamp(f.Modified),
		})
	}

	return Success(map[string]interface{}{
		"path":    path,
		"entries": entries,
		"count":   len(entries),
	})
}

// CreateTar archives the source directory into a gzip or zstd compressed
// tarball at dest.
func (a *ArchiveOps) CreateTar(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, dest, errMsg := sourceAndDest(params)
	if errMsg != "" {
		return Failure(errMsg)
	}

	compression := "gzip"
	if c, ok := params["compression"].(string); ok && c != "" {
		compression = c
	}

	if err := tarTree(source, dest, compression); err != nil {
		a.Log.Debug("tar failed", zap.String("source", source), zap.String("dest", dest), zap.Error(err))
		os.Remove(dest)
		return Failure(fmt.Sprintf("tar failed: %v", err))
	}

	return Success(map[string]interface{}{"source": source, "dest": dest, "archived": true})
}

// zipTree writes source into a zip at dest. A directory source appears as
// "base/" with every nested directory getting its own trailing-slash entry
// before its children; a file source becomes a single root entry.
func zipTree(source, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	base := filepath.Base(source)
	if !info.IsDir() {
		if err := addFileToZip(zw, source, base); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	}

	if _, err := zw.Create(base + "/"); err != nil {
		zw.Close()
		return err
	}
	if err := addTreeToZip(zw, source, base+"/"); err != nil {
		zw.Close()
		return err
	}

	// Close finalizes the central directory; its error fails the archive.
	return zw.Close()
}

// addTreeToZip adds the children of dir under prefix, recursing into
// subdirectories after writing their own "prefix/name/" entries.
func addTreeToZip(zw *zip.Writer, dir, prefix string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	children, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		return err
	}

	for _, c := range children {
		childPath := filepath.Join(dir, c.Name())
		zipPath := prefix + c.Name()

		if c.IsDir() {
			if _, err := zw.Create(zipPath + "/"); err != nil {
				return err
			}
			if err := addTreeToZip(zw, childPath, zipPath+"/"); err != nil {
				return err
			}
			continue
		}

		if err := addFileToZip(zw, childPath, zipPath); err != nil {
			return err
		}
	}
	return nil
}

// addFileToZip streams one file into the archive.
func addFileToZip(zw *zip.Writer, path, zipPath string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(zipPath)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}

// tarTree writes source into a compressed tarball at dest.
func tarTree(source, dest, compression string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", source)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	var cw io.WriteCloser
	switch compression {
	case "gzip":
		cw = gzip.NewWriter(out)
	case "zstd":
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return err
		}
		cw = zw
	default:
		return fmt.Errorf("unsupported compression: %s", compression)
	}

	tw := tar.NewWriter(cw)
	base := filepath.Base(source)

	if err := addTreeToTar(tw, source, base); err != nil {
		tw.Close()
		cw.Close()
		return err
	}

	if err := tw.Close(); err != nil {
		cw.Close()
		return err
	}
	return cw.Close()
}

// addTreeToTar adds path as name, recursing through directories.
func addTreeToTar(tw *tar.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	if !info.IsDir() {
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, in)
		in.Close()
		return err
	}

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
		if err := addTreeToTar(tw, filepath.Join(path, c.Name()), name+"/"+c.Name()); err != nil {
			return err
		}
	}
	return nil
}
