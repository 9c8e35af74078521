package archive

import (
	"fmt"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
	"github.com/hashicorp/go-hclog"

	"github.com/kilazz/gpck/pkg/gpck"
	"github.com/kilazz/gpck/pkg/hashing"
	"github.com/kilazz/gpck/pkg/stream"
)

// Reader exposes read-only access to one opened GPCK package: entry
// lookup by asset id, dependency queries, and streams over individual
// entries' payload bytes.
//
// A Reader's memory-mapped table-of-contents view lives as long as the
// Reader; it is acquired in Open and released in Close. The payload
// file handle is safe for concurrent positioned reads from many
// streams (spec.md §5).
type Reader struct {
	toc     mmap.MMap
	tocFile *os.File
	payload *os.File

	header gpck.Header

	fileTableOff uint64
	nameTableOff uint64
	depTableOff  uint64

	logger hclog.Logger
	key    []byte

	namesOnce sync.Once
	names     map[hashing.AssetID]string

	depsOnce sync.Once
	deps     map[hashing.AssetID][]gpck.DependencyEntry
}

// Open memory-maps path's table of contents and opens a second handle
// for positioned payload reads.
func Open(path string, opts ...Option) (*Reader, error) {
	o := newOptions(opts)

	tocFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: opening %s: %w", path, err)
	}

	info, err := tocFile.Stat()
	if err != nil {
		tocFile.Close()
		return nil, fmt.Errorf("archive: stat %s: %w", path, err)
	}
	fileSize := info.Size()

	toc, err := mmap.Map(tocFile, mmap.RDONLY, 0)
	if err != nil {
		tocFile.Close()
		return nil, fmt.Errorf("archive: mmap %s: %w", path, err)
	}

	header, err := gpck.UnpackHeader(toc)
	if err != nil {
		toc.Unmap()
		tocFile.Close()
		return nil, err
	}

	fileTableEnd := header.FileTableOffset + uint64(header.FileCount)*gpck.FileEntrySize
	depTableEnd := header.DependencyTableOffset + uint64(header.DependencyCount)*gpck.DependencyEntrySize
	if header.FileTableOffset < gpck.HeaderSize || int64(fileTableEnd) > fileSize ||
		header.NameTableOffset > uint64(fileSize) ||
		header.DependencyTableOffset < gpck.HeaderSize || int64(depTableEnd) > fileSize {
		toc.Unmap()
		tocFile.Close()
		return nil, fmt.Errorf("%w: table offsets out of bounds", gpck.ErrCorruptTable)
	}

	payload, err := os.Open(path)
	if err != nil {
		toc.Unmap()
		tocFile.Close()
		return nil, fmt.Errorf("archive: opening payload handle for %s: %w", path, err)
	}

	r := &Reader{
		toc:          toc,
		tocFile:      tocFile,
		payload:      payload,
		header:       header,
		fileTableOff: header.FileTableOffset,
		nameTableOff: header.NameTableOffset,
		depTableOff:  header.DependencyTableOffset,
		logger:       o.logger,
		key:          o.key,
	}
	r.logger.Debug("opened package", "path", path, "files", header.FileCount, "deps", header.DependencyCount)
	return r, nil
}

// Close unmaps the table of contents and closes both file handles.
func (r *Reader) Close() error {
	err := r.toc.Unmap()
	if cerr := r.tocFile.Close(); err == nil {
		err = cerr
	}
	if cerr := r.payload.Close(); err == nil {
		err = cerr
	}
	return err
}

// Count returns the number of entries in the file table.
func (r *Reader) Count() int {
	return int(r.header.FileCount)
}

// Entry decodes the i'th file table record, in sorted-by-AssetID order.
func (r *Reader) Entry(i int) (gpck.FileEntry, error) {
	if i < 0 || i >= r.Count() {
		return gpck.FileEntry{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return r.entryAt(i)
}

func (r *Reader) entryAt(i int) (gpck.FileEntry, error) {
	off := r.fileTableOff + uint64(i)*gpck.FileEntrySize
	return gpck.UnpackFileEntry(r.toc[off:])
}

// TryGet binary-searches the sorted file table for id.
func (r *Reader) TryGet(id hashing.AssetID) (gpck.FileEntry, bool) {
	n := r.Count()
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		e, err := r.entryAt(mid)
		if err != nil {
			return gpck.FileEntry{}, false
		}
		switch id.Compare(e.AssetID) {
		case 0:
			return e, true
		case -1:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return gpck.FileEntry{}, false
}

// PathFor returns the debug path recorded for id in the name table, if
// the package carries one.
func (r *Reader) PathFor(id hashing.AssetID) (string, bool) {
	r.loadNames()
	p, ok := r.names[id]
	return p, ok
}

func (r *Reader) loadNames() {
	r.namesOnce.Do(func() {
		r.names = make(map[hashing.AssetID]string, r.Count())
		if !r.header.HasNames || r.Count() == 0 {
			return
		}
		entries, err := gpck.UnpackNameTable(r.toc[r.nameTableOff:], r.Count())
		if err != nil {
			r.logger.Warn("failed to parse name table", "error", err)
			return
		}
		for _, e := range entries {
			r.names[e.AssetID] = e.Path
		}
	})
}

// Dependencies returns every dependency edge in the package.
func (r *Reader) Dependencies() []gpck.DependencyEntry {
	deps := make([]gpck.DependencyEntry, 0, r.header.DependencyCount)
	for i := uint32(0); i < r.header.DependencyCount; i++ {
		off := r.depTableOff + uint64(i)*gpck.DependencyEntrySize
		d, err := gpck.UnpackDependencyEntry(r.toc[off:])
		if err != nil {
			r.logger.Warn("failed to parse dependency entry", "index", i, "error", err)
			continue
		}
		deps = append(deps, d)
	}
	return deps
}

// DependenciesOf returns the dependency edges whose source is id,
// built into a memoized multimap on first call.
func (r *Reader) DependenciesOf(id hashing.AssetID) []gpck.DependencyEntry {
	r.depsOnce.Do(func() {
		all := r.Dependencies()
		r.deps = make(map[hashing.AssetID][]gpck.DependencyEntry, len(all))
		for _, d := range all {
			r.deps[d.SourceID] = append(r.deps[d.SourceID], d)
		}
	})
	return r.deps[id]
}

// OpenEntry returns a seekable decoding stream over entry's payload
// bytes.
func (r *Reader) OpenEntry(entry gpck.FileEntry) (*stream.Stream, error) {
	return stream.New(entry, r.payload, r.key, r.logger)
}
