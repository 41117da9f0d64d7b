package adx

import "io"

// Source is the random-access byte-addressable I/O abstraction the decoder
// reads against: read, seek-absolute, tell, close. It deliberately mirrors
// pkg/music.ByteSource method-for-method so any caller-supplied ByteSource
// satisfies this interface structurally, with no adapter type required.
type Source interface {
	Read(p []byte) (int, error)
	SeekAbsolute(offset int64) (int64, error)
	Tell() (int64, error)
	Close() error
}

// readSeekerSource adapts a plain io.ReadSeeker (optionally an io.Closer) to
// Source, for callers that only have a stdlib file or buffer handle.
type readSeekerSource struct {
	rs io.ReadSeeker
}

// NewSource wraps rs as a Source. If rs also implements io.Closer, Close
// forwards to it; otherwise Close is a no-op.
func NewSource(rs io.ReadSeeker) Source {
	return &readSeekerSource{rs: rs}
}

func (s *readSeekerSource) Read(p []byte) (int, error) {
	return s.rs.Read(p)
}

func (s *readSeekerSource) SeekAbsolute(offset int64) (int64, error) {
	return s.rs.Seek(offset, io.SeekStart)
}

func (s *readSeekerSource) Tell() (int64, error) {
	return s.rs.Seek(0, io.SeekCurrent)
}

func (s *readSeekerSource) Close() error {
	if c, ok := s.rs.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// readExact reads exactly len(buf) bytes from src, looping over short reads.
// It reports an error if EOF is reached before buf is filled.
func readExact(src Source, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := src.Read(buf[total:])
		total += n
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrUnexpectedEOF
		}
	}
	return nil
}

// readUpTo reads until buf is full, src returns an error, or src stalls
// (returns 0, nil). It never errors on a short read by itself — the caller
// decides whether fewer than len(buf) bytes means end-of-stream.
func readUpTo(src Source, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := src.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}
