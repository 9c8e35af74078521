package stream

import (
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/kilazz/gpck/pkg/aead"
	"github.com/kilazz/gpck/pkg/codec"
	"github.com/kilazz/gpck/pkg/gpck"
)

const nominalChunkSize = 64 * 1024

// Stream is a seekable, forward-biased byte stream over one archive
// entry's decoded payload. A single Stream is NOT safe for concurrent
// use; independent streams over the same archive reader are.
type Stream struct {
	entry   gpck.FileEntry
	payload io.ReaderAt
	key     []byte
	logger  hclog.Logger

	pos    int64
	length int64

	// non-streaming lazily-materialized plaintext
	cached []byte
	loaded bool

	// streaming layout state, populated by parseChunked on first use
	chunked           bool
	chunkParsed       bool
	chunkTable        gpck.ChunkTable
	chunkBodyOffset   int64 // absolute file offset of the first chunk body
	chunkBodyStarts   []int64
	chunkOriginalSums []int64 // prefix sums of Original sizes; chunkOriginalSums[i] is the start position of chunk i

	curChunkIndex int
	curChunkBuf   []byte
	curChunkValid bool
}

// New constructs a Stream over entry's payload, read via positioned
// reads against payload. key is the AEAD key, or nil if the archive
// carries none; it is only consulted for entries with the encrypted
// flag set.
func New(entry gpck.FileEntry, payload io.ReaderAt, key []byte, logger hclog.Logger) (*Stream, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Stream{
		entry:         entry,
		payload:       payload,
		key:           key,
		logger:        logger,
		length:        int64(entry.OriginalSize),
		chunked:       entry.Flags.Streaming(),
		curChunkIndex: -1,
	}
	return s, nil
}

// Len returns the entry's decoded length.
func (s *Stream) Len() int64 { return s.length }

// Seek implements io.Seeker. Seeking is clamped to [0, Len()].
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = s.pos + offset
	case io.SeekEnd:
		target = s.length + offset
	default:
		return 0, io.ErrUnexpectedEOF
	}
	if target < 0 {
		target = 0
	}
	if target > s.length {
		target = s.length
	}
	s.pos = target
	return s.pos, nil
}

// Read implements io.Reader over the decoded plaintext.
func (s *Stream) Read(p []byte) (int, error) {
	if s.pos >= s.length {
		return 0, io.EOF
	}
	if s.chunked {
		return s.readChunked(p)
	}
	return s.readWhole(p)
}

// readWhole serves non-streaming entries: the full plaintext is
// materialized once into s.cached, then served by straight copy.
func (s *Stream) readWhole(p []byte) (int, error) {
	if !s.loaded {
		data, err := s.materialize()
		if err != nil {
			return 0, err
		}
		s.cached = data
		s.loaded = true
	}
	n := copy(p, s.cached[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *Stream) materialize() ([]byte, error) {
	if s.entry.OriginalSize == 0 {
		return nil, nil
	}
	raw := make([]byte, s.entry.CompressedSize)
	if _, err := s.payload.ReadAt(raw, int64(s.entry.DataOffset)); err != nil && err != io.EOF {
		return nil, err
	}

	compressed, err := s.maybeDecrypt(raw, -1)
	if err != nil {
		return nil, err
	}

	c, err := codec.Get(s.entry.Flags.Method())
	if err != nil {
		return nil, &DecodeError{ChunkIndex: -1, Err: err}
	}
	plain, err := c.Decompress(compressed, int(s.entry.OriginalSize))
	if err != nil {
		return nil, &DecodeError{ChunkIndex: -1, Err: err}
	}
	return plain, nil
}

// ReadToNative runs the same decode pipeline and copies the result into
// dst. It is the entry point for GPU-bound consumers that want the
// decoded bytes in a mapped destination buffer. For a non-streaming
// entry it decodes the whole entry into a temporary buffer, bypassing
// the stream's cached plaintext, and copies it to the start of dst; the
// stream position is neither used nor advanced, and dst must be at
// least Len() bytes to receive the whole entry. For a streaming entry
// it reads from the current position through the per-chunk buffer,
// advancing the position, until dst is full or the entry ends. The
// codecs decode into their own buffers, never into dst itself.
func (s *Stream) ReadToNative(dst []byte) (int, error) {
	if !s.chunked {
		data, err := s.materialize()
		if err != nil {
			return 0, err
		}
		return copy(dst, data), nil
	}

	total := 0
	for total < len(dst) && s.pos < s.length {
		n, err := s.readChunked(dst[total:])
		total += n
		if err != nil && err != io.EOF {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func (s *Stream) maybeDecrypt(raw []byte, chunkIndex int) ([]byte, error) {
	if !s.entry.Flags.Encrypted() {
		return raw, nil
	}
	if len(s.key) == 0 {
		return nil, ErrKeyMissing
	}
	plain, err := aead.Open(s.key, nil, raw)
	if err != nil {
		return nil, &AuthError{ChunkIndex: chunkIndex}
	}
	return plain, nil
}
