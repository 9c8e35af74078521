package inspector

import (
	"fmt"

	"github.com/kilazz/gpck/pkg/archive"
	"github.com/kilazz/gpck/pkg/gpck"
	"github.com/kilazz/gpck/pkg/hashing"
)

// EntryInfo summarizes one file table record for display.
type EntryInfo struct {
	AssetID        hashing.AssetID
	Path           string // empty when the package carries no name table
	Method         string
	AssetType      string
	CompressedSize uint32
	OriginalSize   uint32
	Encrypted      bool
	Streaming      bool
	Metadata       string // non-empty for texture entries: "WxH Mips:N"
}

// Report summarizes an entire opened package.
type Report struct {
	FileCount       int
	TotalSize       int64 // sum of every entry's OriginalSize
	HasNames        bool
	DependencyCount int
	Entries         []EntryInfo
}

// Inspect walks every entry of r and builds a Report.
func Inspect(r *archive.Reader) (Report, error) {
	report := Report{
		FileCount:       r.Count(),
		DependencyCount: len(r.Dependencies()),
		Entries:         make([]EntryInfo, 0, r.Count()),
	}

	for i := 0; i < r.Count(); i++ {
		entry, err := r.Entry(i)
		if err != nil {
			return Report{}, fmt.Errorf("inspector: reading entry %d: %w", i, err)
		}

		path, ok := r.PathFor(entry.AssetID)
		if ok {
			report.HasNames = true
		}

		info := EntryInfo{
			AssetID:        entry.AssetID,
			Path:           path,
			Method:         entry.Flags.Method().String(),
			AssetType:      entry.Flags.AssetType().String(),
			CompressedSize: entry.CompressedSize,
			OriginalSize:   entry.OriginalSize,
			Encrypted:      entry.Flags.Encrypted(),
			Streaming:      entry.Flags.Streaming(),
		}

		if entry.Flags.AssetType() == gpck.Texture {
			width, height := gpck.TextureWidthHeight(entry.Meta1)
			mipCount, _ := gpck.TextureMipsAndTailSize(entry.Meta2)
			info.Metadata = fmt.Sprintf("%dx%d Mips:%d", width, height, mipCount)
		}

		report.TotalSize += int64(entry.OriginalSize)
		report.Entries = append(report.Entries, info)
	}

	return report, nil
}
