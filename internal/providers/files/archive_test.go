package files

import (
	"archive/tar"
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeArchiveFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "x")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "f1"), []byte("first file"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "f2"), []byte("second file"), 0o644))
	return root
}

func TestCreateZip(t *testing.T) {
	root := makeArchiveFixture(t)
	dest := filepath.Join(t.TempDir(), "out.zip")

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateZip(context.Background(), map[string]interface{}{
		"source": root, "dest": dest,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	names := make(map[string]bool, len(r.File))
	contents := make(map[string]string)
	for _, f := range r.File {
		names[f.Name] = true
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		contents[f.Name] = string(data)
	}

	// Directory entries carry trailing slashes so the tree extracts anywhere.
	assert.True(t, names["x/"])
	assert.True(t, names["x/f1"])
	assert.True(t, names["x/sub/"])
	assert.True(t, names["x/sub/f2"])
	assert.Len(t, r.File, 4)

	assert.Equal(t, "first file", contents["x/f1"])
	assert.Equal(t, "second file", contents["x/sub/f2"])
}

func TestCreateZipEmptyDirectorySurvives(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "hollow")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	dest := filepath.Join(t.TempDir(), "out.zip")

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateZip(context.Background(), map[string]interface{}{
		"source": root, "dest": dest,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	names := []string{}
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"hollow/", "hollow/empty/"}, names)
}

func TestCreateZipSingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("just me"), 0o644))
	dest := filepath.Join(dir, "out.zip")

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateZip(context.Background(), map[string]interface{}{
		"source": file, "dest": dest,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 1)
	assert.Equal(t, "plain.txt", r.File[0].Name)
}

func TestCreateZipMissingSource(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.zip")

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateZip(context.Background(), map[string]interface{}{
		"source": filepath.Join(dir, "ghost"), "dest": dest,
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)

	// No partial archive is left behind.
	_, err = os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestListZip(t *testing.T) {
	root := makeArchiveFixture(t)
	dest := filepath.Join(t.TempDir(), "out.zip")

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateZip(context.Background(), map[string]interface{}{
		"source": root, "dest": dest,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	result, err = ops.ListZip(context.Background(), map[string]interface{}{"path": dest}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	entries := result.Data["entries"].([]map[string]interface{})
	assert.Equal(t, 4, result.Data["count"])

	dirs := 0
	for _, e := range entries {
		if e["directory"].(bool) {
			dirs++
		}
	}
	assert.Equal(t, 2, dirs)
}

func TestListZipNotAnArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bogus.zip")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0o644))

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.ListZip(context.Background(), map[string]interface{}{"path": path}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestCreateTarGzip(t *testing.T) {
	root := makeArchiveFixture(t)
	dest := filepath.Join(t.TempDir(), "out.tar.gz")

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateTar(context.Background(), map[string]interface{}{
		"source": root, "dest": dest,
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	assertTarFixture(t, tar.NewReader(gz))
}

func TestCreateTarZstd(t *testing.T) {
	root := makeArchiveFixture(t)
	dest := filepath.Join(t.TempDir(), "out.tar.zst")

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateTar(context.Background(), map[string]interface{}{
		"source": root, "dest": dest, "compression": "zstd",
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	zr, err := zstd.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()

	assertTarFixture(t, tar.NewReader(zr))
}

func TestCreateTarUnknownCompression(t *testing.T) {
	root := makeArchiveFixture(t)

	ops := &ArchiveOps{EngineOps: newTestOps()}
	result, err := ops.CreateTar(context.Background(), map[string]interface{}{
		"source": root, "dest": filepath.Join(t.TempDir(), "out.tar.xz"), "compression": "xz",
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func assertTarFixture(t *testing.T, tr *tar.Reader) {
	t.Helper()

	contents := make(map[string]string)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if hdr.Typeflag == tar.TypeDir {
			contents[hdr.Name] = ""
			continue
		}
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		contents[hdr.Name] = string(data)
	}

	assert.Contains(t, contents, "x/")
	assert.Contains(t, contents, "x/sub/")
	assert.Equal(t, "first file", contents["x/f1"])
	assert.Equal(t, "second file", contents["x/sub/f2"])
}
