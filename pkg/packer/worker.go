package packer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilazz/gpck/pkg/aead"
	"github.com/kilazz/gpck/pkg/codec"
	"github.com/kilazz/gpck/pkg/dds"
	"github.com/kilazz/gpck/pkg/gpck"
	"github.com/kilazz/gpck/pkg/hashing"
)

// ProcessedFile is one file's output from the parallel per-file stage:
// everything the layout planner and writer need, except its final
// DataOffset.
type ProcessedFile struct {
	AssetID      hashing.AssetID
	RelativePath string
	OriginalSize uint32
	Data         []byte
	Flags        gpck.Flags
	Alignment    int
	Meta1, Meta2 uint32
	Fingerprint  uint64
}

// processFile reads, optionally splits, compresses, and optionally
// encrypts one source file, producing its ProcessedFile.
func processFile(ctx context.Context, relativePath, sourcePath string, opts *Options) (ProcessedFile, error) {
	if relativePath == "" {
		return ProcessedFile{}, ErrEmptyRelPath
	}
	if err := ctx.Err(); err != nil {
		return ProcessedFile{}, err
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("packer: stat %s: %w", sourcePath, err)
	}

	assetID := hashing.AssetIDFromPath(relativePath)

	if info.Size() >= opts.streamingThreshold() {
		return processStreamingFile(ctx, assetID, relativePath, sourcePath, info.Size(), opts)
	}
	return processWholeFile(assetID, relativePath, sourcePath, opts)
}

func processWholeFile(assetID hashing.AssetID, relativePath, sourcePath string, opts *Options) (ProcessedFile, error) {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("packer: reading %s: %w", sourcePath, err)
	}

	if len(raw) == 0 {
		return ProcessedFile{
			AssetID:      assetID,
			RelativePath: relativePath,
			OriginalSize: 0,
			Flags:        gpck.NewFlags(false, false, false, codec.Store, gpck.Generic, opts.alignment()),
			Alignment:    opts.alignment(),
		}, nil
	}

	content := raw
	assetType := gpck.Generic
	var meta1, meta2 uint32

	if opts.MipSplit && strings.EqualFold(filepath.Ext(relativePath), ".dds") {
		split, err := dds.SplitTexture(raw, opts.maxTailDim(), dds.ParseOptions{})
		if err != nil {
			return ProcessedFile{}, fmt.Errorf("packer: splitting texture %s: %w", relativePath, err)
		}
		content = split.Combined
		assetType = gpck.Texture
		meta1, meta2 = gpck.TextureMeta(split.Header.Width, split.Header.Height, split.Header.MipCount, split.TailSize)
	}

	method := selectMethod(relativePath, opts)
	c, err := codec.Get(method)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("%w: %v", codec.ErrUnsupportedMethod, err)
	}

	compressed, stored, err := compressOrStore(c, content, opts.Level)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("packer: compressing %s: %w", relativePath, err)
	}
	compressedBit := !stored
	if stored {
		// The selected codec didn't help (or reported the block
		// incompressible); fall back to Store per spec.md §4.2's
		// "MAY revert to Store" policy.
		method = codec.Store
	}

	onDisk := compressed
	encrypted := false
	if len(opts.Key) > 0 {
		env, err := aead.Seal(opts.Key, nil, compressed)
		if err != nil {
			return ProcessedFile{}, fmt.Errorf("packer: encrypting %s: %w", relativePath, err)
		}
		onDisk = env
		encrypted = true
	}

	alignment := opts.alignment()
	if method == codec.GDeflate {
		alignment = opts.gpuAlignment()
	}

	return ProcessedFile{
		AssetID:      assetID,
		RelativePath: relativePath,
		OriginalSize: uint32(len(content)),
		Data:         onDisk,
		Flags:        gpck.NewFlags(compressedBit, encrypted, false, method, assetType, alignment),
		Alignment:    alignment,
		Meta1:        meta1,
		Meta2:        meta2,
		Fingerprint:  hashing.Fingerprint(onDisk),
	}, nil
}

func selectMethod(relativePath string, opts *Options) codec.Method {
	if opts.Auto {
		return codec.Auto(relativePath)
	}
	return opts.Method
}

// compressOrStore runs c over content and reports whether the result is
// worth keeping. A codec MAY legitimately return fewer bytes than it
// was given yet still not beat the source (some block codecs, notably
// pierrec/lz4's CompressBlock, report an incompressible block by
// returning a zero-length result instead of an error) — either case is
// treated as "store raw" rather than written out as a bogus near-empty
// compressed payload.
func compressOrStore(c codec.Codec, content []byte, level int) (data []byte, stored bool, err error) {
	compressed, err := c.Compress(content, level)
	if err != nil {
		return nil, false, err
	}
	if len(compressed) == 0 || len(compressed) >= len(content) {
		return content, true, nil
	}
	return compressed, false, nil
}
