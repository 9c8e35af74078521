package overlay

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilazz/gpck/pkg/archive"
	"github.com/kilazz/gpck/pkg/codec"
	"github.com/kilazz/gpck/pkg/packer"
)

// buildTestPackage packs a single-entry-per-path package at dest using
// pkg/packer, mirroring how a real caller would produce the fixtures
// an Overlay mounts.
func buildTestPackage(t *testing.T, dest string, files map[string]string) {
	t.Helper()
	require.NoError(t, packer.Pack(context.Background(), dest, packer.Options{
		Files:  files,
		Method: codec.Store,
	}))
}

func TestOverlay_LastWriterWins(t *testing.T) {
	dir := t.TempDir()

	baseFile := filepath.Join(dir, "base-hello.txt")
	require.NoError(t, os.WriteFile(baseFile, []byte("base content"), 0o644))
	basePkg := filepath.Join(dir, "base.gpck")
	buildTestPackage(t, basePkg, map[string]string{"ui/hello.txt": baseFile})

	patchFile := filepath.Join(dir, "patch-hello.txt")
	require.NoError(t, os.WriteFile(patchFile, []byte("patch content"), 0o644))
	patchPkg := filepath.Join(dir, "patch.gpck")
	buildTestPackage(t, patchPkg, map[string]string{"ui/hello.txt": patchFile})

	baseReader, err := archive.Open(basePkg)
	require.NoError(t, err)
	patchReader, err := archive.Open(patchPkg)
	require.NoError(t, err)

	ov := New(nil)
	require.NoError(t, ov.Mount(baseReader, "base.gpck"))
	require.NoError(t, ov.Mount(patchReader, "patch.gpck"))
	defer ov.Close()

	require.True(t, ov.Exists("ui/hello.txt"))

	s, err := ov.Open("ui/hello.txt")
	require.NoError(t, err)
	got, err := io.ReadAll(s)
	require.NoError(t, err)
	require.Equal(t, "patch content", string(got))

	source, ok := ov.SourceOf("ui/hello.txt")
	require.True(t, ok)
	require.Equal(t, "patch.gpck", source)
}

func TestOverlay_NonOverlappingPathsFromBothMounts(t *testing.T) {
	dir := t.TempDir()

	onlyBaseFile := filepath.Join(dir, "only-base.txt")
	require.NoError(t, os.WriteFile(onlyBaseFile, []byte("only in base"), 0o644))
	basePkg := filepath.Join(dir, "base.gpck")
	buildTestPackage(t, basePkg, map[string]string{"only-base.txt": onlyBaseFile})

	onlyPatchFile := filepath.Join(dir, "only-patch.txt")
	require.NoError(t, os.WriteFile(onlyPatchFile, []byte("only in patch"), 0o644))
	patchPkg := filepath.Join(dir, "patch.gpck")
	buildTestPackage(t, patchPkg, map[string]string{"only-patch.txt": onlyPatchFile})

	baseReader, err := archive.Open(basePkg)
	require.NoError(t, err)
	patchReader, err := archive.Open(patchPkg)
	require.NoError(t, err)

	ov := New(nil)
	require.NoError(t, ov.Mount(baseReader, "base.gpck"))
	require.NoError(t, ov.Mount(patchReader, "patch.gpck"))
	defer ov.Close()

	src, ok := ov.SourceOf("only-base.txt")
	require.True(t, ok)
	require.Equal(t, "base.gpck", src)

	src, ok = ov.SourceOf("only-patch.txt")
	require.True(t, ok)
	require.Equal(t, "patch.gpck", src)
}

func TestOverlay_NotFound(t *testing.T) {
	ov := New(nil)
	require.False(t, ov.Exists("nope.txt"))
	_, err := ov.Open("nope.txt")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOverlay_DuplicateMountName(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(f, []byte("a"), 0o644))
	pkgPath := filepath.Join(dir, "a.gpck")
	buildTestPackage(t, pkgPath, map[string]string{"a.txt": f})

	r1, err := archive.Open(pkgPath)
	require.NoError(t, err)
	r2, err := archive.Open(pkgPath)
	require.NoError(t, err)

	ov := New(nil)
	require.NoError(t, ov.Mount(r1, "a"))
	err = ov.Mount(r2, "a")
	require.ErrorIs(t, err, ErrAlreadyMounted)
	require.NoError(t, r2.Close())
	require.NoError(t, ov.Close())
}
