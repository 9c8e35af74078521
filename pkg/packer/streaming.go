package packer

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/kilazz/gpck/pkg/aead"
	"github.com/kilazz/gpck/pkg/codec"
	"github.com/kilazz/gpck/pkg/gpck"
	"github.com/kilazz/gpck/pkg/hashing"
)

// streamingChunkSize is the nominal chunk size for the mandatory
// large-file streaming layout (spec.md §4.8).
const streamingChunkSize = 64 * 1024

// processStreamingFile reads sourcePath in streamingChunkSize pieces
// from a sequential scanner, compressing (and optionally encrypting)
// each chunk independently, and assembles the
// `[u32 table_length][table_section][chunk bodies]` blob pkg/stream
// knows how to decode.
func processStreamingFile(ctx context.Context, assetID hashing.AssetID, relativePath, sourcePath string, size int64, opts *Options) (ProcessedFile, error) {
	f, err := os.Open(sourcePath)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("packer: opening %s: %w", sourcePath, err)
	}
	defer f.Close()

	method := selectMethod(relativePath, opts)
	c, err := codec.Get(method)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("%w: %v", codec.ErrUnsupportedMethod, err)
	}

	var bodies []byte
	var table gpck.ChunkTable
	var totalOriginal int64

	buf := make([]byte, streamingChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return ProcessedFile{}, err
		}

		n, readErr := io.ReadFull(f, buf)
		if n > 0 {
			chunk := buf[:n]
			compressed, stored, err := compressOrStore(c, chunk, opts.Level)
			if err != nil {
				return ProcessedFile{}, fmt.Errorf("packer: compressing chunk of %s: %w", relativePath, err)
			}

			onDisk := compressed
			if len(opts.Key) > 0 {
				env, err := aead.Seal(opts.Key, nil, compressed)
				if err != nil {
					return ProcessedFile{}, fmt.Errorf("packer: encrypting chunk of %s: %w", relativePath, err)
				}
				onDisk = env
			}

			bodies = append(bodies, onDisk...)
			table = append(table, gpck.ChunkEntry{Compressed: uint32(len(onDisk)), Original: uint32(n), Stored: stored})
			totalOriginal += int64(n)
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return ProcessedFile{}, fmt.Errorf("packer: reading %s: %w", sourcePath, readErr)
		}
	}

	tableBytes := table.Pack()
	tableSection := tableBytes
	encrypted := false
	if len(opts.Key) > 0 {
		env, err := aead.Seal(opts.Key, nil, tableBytes)
		if err != nil {
			return ProcessedFile{}, fmt.Errorf("packer: encrypting chunk table of %s: %w", relativePath, err)
		}
		tableSection = env
		encrypted = true
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(tableSection)))

	blob := make([]byte, 0, 4+len(tableSection)+len(bodies))
	blob = append(blob, lenBuf[:]...)
	blob = append(blob, tableSection...)
	blob = append(blob, bodies...)

	alignment := opts.alignment()
	if method == codec.GDeflate {
		alignment = opts.gpuAlignment()
	}

	return ProcessedFile{
		AssetID:      assetID,
		RelativePath: relativePath,
		OriginalSize: uint32(totalOriginal),
		Data:         blob,
		Flags:        gpck.NewFlags(true, encrypted, true, method, gpck.Generic, alignment),
		Alignment:    alignment,
		Fingerprint:  hashing.Fingerprint(blob),
	}, nil
}
