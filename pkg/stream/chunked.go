package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/kilazz/gpck/pkg/aead"
	"github.com/kilazz/gpck/pkg/codec"
	"github.com/kilazz/gpck/pkg/gpck"
)

// parseChunked reads the `u32 table_length ‖ table_section ‖ chunk
// bodies` preamble of a streaming-layout entry. table_section is the
// packed chunk table when the entry is unencrypted, or a single AEAD
// envelope wrapping it when encrypted — this wrapper length prefix is
// this module's resolution of how a reader locates the chunk-body
// region without decrypting first.
func (s *Stream) parseChunked() error {
	if s.chunkParsed {
		return nil
	}

	var lenBuf [4]byte
	if _, err := s.payload.ReadAt(lenBuf[:], int64(s.entry.DataOffset)); err != nil {
		return fmt.Errorf("stream: reading chunk table length: %w", err)
	}
	tableLen := binary.LittleEndian.Uint32(lenBuf[:])

	tableSection := make([]byte, tableLen)
	if tableLen > 0 {
		if _, err := s.payload.ReadAt(tableSection, int64(s.entry.DataOffset)+4); err != nil {
			return fmt.Errorf("stream: reading chunk table: %w", err)
		}
	}

	tableBytes := tableSection
	if s.entry.Flags.Encrypted() {
		if len(s.key) == 0 {
			return ErrKeyMissing
		}
		plain, err := aead.Open(s.key, nil, tableSection)
		if err != nil {
			return &AuthError{ChunkIndex: -1}
		}
		tableBytes = plain
	}

	ct, _, err := gpck.UnpackChunkTable(tableBytes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	s.chunkTable = ct
	s.chunkBodyOffset = int64(s.entry.DataOffset) + 4 + int64(tableLen)

	starts := make([]int64, len(ct)+1)
	originalSums := make([]int64, len(ct)+1)
	for i, c := range ct {
		starts[i+1] = starts[i] + int64(c.Compressed)
		originalSums[i+1] = originalSums[i] + int64(c.Original)
	}
	s.chunkBodyStarts = starts
	s.chunkOriginalSums = originalSums
	s.chunkParsed = true
	return nil
}

// chunkIndexFor returns the chunk covering position pos and the
// within-chunk offset, via binary search over the prefix sums.
func (s *Stream) chunkIndexFor(pos int64) (index int, offsetInChunk int64) {
	// sort.Search finds the first sum strictly greater than pos; the
	// chunk before it is the one containing pos.
	i := sort.Search(len(s.chunkOriginalSums), func(i int) bool {
		return s.chunkOriginalSums[i] > pos
	})
	idx := i - 1
	if idx < 0 {
		idx = 0
	}
	return idx, pos - s.chunkOriginalSums[idx]
}

func (s *Stream) loadChunk(index int) error {
	if s.curChunkValid && s.curChunkIndex == index {
		return nil
	}

	c := s.chunkTable[index]
	bodyStart := s.chunkBodyOffset + s.chunkBodyStarts[index]

	raw := make([]byte, c.Compressed)
	if c.Compressed > 0 {
		if _, err := s.payload.ReadAt(raw, bodyStart); err != nil && err != io.EOF {
			return fmt.Errorf("stream: reading chunk %d: %w", index, err)
		}
	}

	compressed, err := s.maybeDecrypt(raw, index)
	if err != nil {
		return err
	}

	var plain []byte
	if c.Stored {
		// The packer recorded this chunk as incompressible and wrote
		// it raw, independent of the entry's codec method.
		plain = compressed
	} else {
		codecImpl, err := codec.Get(s.entry.Flags.Method())
		if err != nil {
			return &DecodeError{ChunkIndex: index, Err: err}
		}
		plain, err = codecImpl.Decompress(compressed, int(c.Original))
		if err != nil {
			return &DecodeError{ChunkIndex: index, Err: err}
		}
	}

	s.curChunkBuf = plain
	s.curChunkIndex = index
	s.curChunkValid = true
	return nil
}

// readChunked serves streaming entries: it translates the current
// position into a chunk index, fetches and decodes that chunk on a
// cache miss, and copies across as many chunks as needed to fill p.
func (s *Stream) readChunked(p []byte) (int, error) {
	if err := s.parseChunked(); err != nil {
		return 0, err
	}

	total := 0
	for total < len(p) && s.pos < s.length {
		idx, offInChunk := s.chunkIndexFor(s.pos)
		if err := s.loadChunk(idx); err != nil {
			return total, err
		}

		avail := int64(len(s.curChunkBuf)) - offInChunk
		n := copy(p[total:], s.curChunkBuf[offInChunk:offInChunk+avail])
		total += n
		s.pos += int64(n)
	}
	return total, nil
}
