package packer

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Pack builds a GPCK package at destPath from opts.Files. Per-file
// reading, compression, and encryption run in parallel; layout and the
// final write are single-threaded and deterministic. If ctx is
// cancelled or any file fails, no package is written at destPath — the
// temp file used during the write phase is removed.
func Pack(ctx context.Context, destPath string, opts Options) error {
	if len(opts.Files) == 0 {
		return ErrNoFiles
	}

	relPaths := make([]string, 0, len(opts.Files))
	for rel := range opts.Files {
		if rel == "" {
			return ErrEmptyRelPath
		}
		relPaths = append(relPaths, rel)
	}
	// Deterministic processing order; final placement order is decided
	// independently by layout.go's AssetID sort.
	sort.Strings(relPaths)

	g, gctx := errgroup.WithContext(ctx)
	results := make([]ProcessedFile, len(relPaths))
	for i, rel := range relPaths {
		i, rel := i, rel
		source := opts.Files[rel]
		g.Go(func() error {
			pf, err := processFile(gctx, rel, source, &opts)
			if err != nil {
				return fmt.Errorf("packer: %s: %w", rel, err)
			}
			results[i] = pf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	deps := resolveDependencies(opts.Dependencies)

	var nameTableSize int
	if opts.includeNames() {
		nameTableSize = nameTableByteSize(results)
	}
	dataStart := computeDataStart(len(results), nameTableSize, len(deps))

	placed, _ := planLayout(results, dataStart, opts.Dedup)

	logger := opts.logger()
	if err := writePackage(destPath, placed, deps, dataStart, opts.includeNames(), logger); err != nil {
		return err
	}

	logger.Debug("📦 pack complete", "destination", destPath, "files", len(results))
	return nil
}

// nameTableByteSize computes the exact packed size of the name table
// without building it twice: one asset id (16 bytes) plus a varint
// length prefix plus the path bytes, per file.
func nameTableByteSize(files []ProcessedFile) int {
	total := 0
	for _, f := range files {
		total += 16 + uvarintSize(uint64(len(f.RelativePath))) + len(f.RelativePath)
	}
	return total
}

func uvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
