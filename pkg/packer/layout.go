package packer

import (
	"sort"

	"github.com/kilazz/gpck/pkg/gpck"
	"github.com/kilazz/gpck/pkg/hashing"
)

// dataRegionAlignment is the fixed alignment of the data region's start
// offset, independent of any individual file's own alignment (spec.md
// §6, §4.8 step 3).
const dataRegionAlignment = 4096

// computeDataStart returns the absolute offset where the data region
// begins: the first dataRegionAlignment-aligned offset after the
// header, file table, name table, and dependency table. Both the
// layout planner and the writer derive this from the same inputs so
// they never disagree.
func computeDataStart(fileCount int, nameTableSize int, depCount int) int64 {
	fileTableOffset := int64(gpck.HeaderSize)
	nameTableOffset := fileTableOffset + int64(fileCount)*gpck.FileEntrySize
	depTableOffset := nameTableOffset + int64(nameTableSize)
	tocEnd := depTableOffset + int64(depCount)*gpck.DependencyEntrySize
	return gpck.AlignUp(tocEnd, dataRegionAlignment)
}

// placedFile is one ProcessedFile assigned a final DataOffset, or
// marked as a dedup alias of an earlier placement.
type placedFile struct {
	file   ProcessedFile
	offset int64
	alias  bool
}

// planLayout sorts files by AssetID (the file table's required order,
// spec.md §6), then walks them assigning each a DataOffset at its
// required alignment above the running cursor. When dedup is enabled,
// a file whose Fingerprint and Alignment match an already-placed file
// reuses that file's offset instead of occupying new space; iteration
// proceeds in sorted order so the choice of which copy is canonical is
// itself deterministic.
func planLayout(files []ProcessedFile, dataStart int64, dedup bool) ([]placedFile, int64) {
	sorted := make([]ProcessedFile, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AssetID.Less(sorted[j].AssetID)
	})

	type dedupKey struct {
		fp        uint64
		alignment int
	}
	seen := make(map[dedupKey]int64) // -> offset

	cursor := dataStart
	placed := make([]placedFile, len(sorted))
	for i, f := range sorted {
		if dedup && len(f.Data) > 0 {
			key := dedupKey{fp: f.Fingerprint, alignment: f.Alignment}
			if offset, ok := seen[key]; ok {
				placed[i] = placedFile{file: f, offset: offset, alias: true}
				continue
			}
		}

		offset := gpck.AlignUp(cursor, f.Alignment)
		placed[i] = placedFile{file: f, offset: offset}
		cursor = offset + int64(len(f.Data))

		if dedup && len(f.Data) > 0 {
			key := dedupKey{fp: f.Fingerprint, alignment: f.Alignment}
			seen[key] = offset
		}
	}

	return placed, cursor
}

// buildFileTable converts placed entries into sorted gpck.FileEntry
// records.
func buildFileTable(placed []placedFile) []gpck.FileEntry {
	entries := make([]gpck.FileEntry, len(placed))
	for i, p := range placed {
		entries[i] = gpck.FileEntry{
			AssetID:        p.file.AssetID,
			DataOffset:     uint64(p.offset),
			CompressedSize: uint32(len(p.file.Data)),
			OriginalSize:   p.file.OriginalSize,
			Flags:          p.file.Flags,
			Meta1:          p.file.Meta1,
			Meta2:          p.file.Meta2,
		}
	}
	return entries
}

// buildNameTable produces name records in file-table order, per
// spec.md's requirement that the name table's order mirrors the file
// table's.
func buildNameTable(placed []placedFile) []gpck.NameEntry {
	entries := make([]gpck.NameEntry, len(placed))
	for i, p := range placed {
		entries[i] = gpck.NameEntry{AssetID: p.file.AssetID, Path: p.file.RelativePath}
	}
	return entries
}

// resolveDependencies converts caller-supplied path-based dependency
// edges into AssetID-keyed records.
func resolveDependencies(deps []Dependency) []gpck.DependencyEntry {
	entries := make([]gpck.DependencyEntry, 0, len(deps))
	for _, d := range deps {
		entries = append(entries, gpck.DependencyEntry{
			SourceID: hashing.AssetIDFromPath(d.Source),
			TargetID: hashing.AssetIDFromPath(d.Target),
			Type:     d.Type,
		})
	}
	return entries
}
