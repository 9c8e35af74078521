package packer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/kilazz/gpck/pkg/gpck"
)

// writePackage serializes header, file table, name table, dependency
// table, and padded data region to a temp file beside destPath, then
// atomically renames it into place. On any error the temp file is
// removed and destPath is left untouched.
func writePackage(destPath string, placed []placedFile, deps []gpck.DependencyEntry, dataStart int64, includeNames bool, logger hclog.Logger) (err error) {
	dir := filepath.Dir(destPath)
	tmp, err := os.CreateTemp(dir, ".gpck-build-*")
	if err != nil {
		return fmt.Errorf("packer: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	fileEntries := buildFileTable(placed)

	var nameTableBytes []byte
	if includeNames {
		nameTableBytes = gpck.PackNameTable(buildNameTable(placed))
	}

	fileTableOffset := uint64(gpck.HeaderSize)
	nameTableOffset := fileTableOffset + uint64(len(fileEntries))*gpck.FileEntrySize
	depTableOffset := nameTableOffset + uint64(len(nameTableBytes))

	header := gpck.Header{
		Version:               gpck.Version,
		FileCount:             uint32(len(fileEntries)),
		DependencyCount:       uint32(len(deps)),
		FileTableOffset:       fileTableOffset,
		NameTableOffset:       nameTableOffset,
		DependencyTableOffset: depTableOffset,
		HasNames:              includeNames,
	}

	if _, err = tmp.Write(header.Pack()); err != nil {
		return fmt.Errorf("packer: writing header: %w", err)
	}
	for _, e := range fileEntries {
		if _, err = tmp.Write(e.Pack()); err != nil {
			return fmt.Errorf("packer: writing file table: %w", err)
		}
	}
	if includeNames {
		if _, err = tmp.Write(nameTableBytes); err != nil {
			return fmt.Errorf("packer: writing name table: %w", err)
		}
	}
	for _, d := range deps {
		if _, err = tmp.Write(d.Pack()); err != nil {
			return fmt.Errorf("packer: writing dependency table: %w", err)
		}
	}

	// cursor starts at the actual end of the dependency table — the
	// real current file position — not dataStart itself, so the first
	// padTo call below writes the alignment gap up to the 4096-aligned
	// data region instead of silently skipping it.
	cursor := int64(depTableOffset) + int64(len(deps))*int64(gpck.DependencyEntrySize)
	for _, p := range placed {
		if p.alias || len(p.file.Data) == 0 {
			continue
		}
		if err = padTo(tmp, &cursor, p.offset); err != nil {
			return err
		}
		var n int
		n, err = tmp.Write(p.file.Data)
		if err != nil {
			return fmt.Errorf("packer: writing data for %s: %w", p.file.RelativePath, err)
		}
		cursor += int64(n)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("packer: syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("packer: closing temp file: %w", err)
	}

	if err = os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("packer: renaming into place: %w", err)
	}

	logger.Info("📦 package written", "path", destPath, "files", len(fileEntries), "dependencies", len(deps))
	return nil
}

// padTo writes zero bytes to w until *cursor reaches target.
func padTo(w io.Writer, cursor *int64, target int64) error {
	if target < *cursor {
		return fmt.Errorf("packer: internal error: layout cursor %d already past target offset %d", *cursor, target)
	}
	gap := target - *cursor
	if gap == 0 {
		return nil
	}
	zeros := make([]byte, gap)
	if _, err := w.Write(zeros); err != nil {
		return fmt.Errorf("packer: writing alignment padding: %w", err)
	}
	*cursor = target
	return nil
}
