package adx

import (
	"bytes"
	"fmt"
)

const (
	headerSize    = 0x2C
	headerSigByte = 0x80
	criMarkerSize = 6

	addrStart = 0x02
	addrChunk = 0x05
	addrChan  = 0x07
	addrRate  = 0x08
	addrSamp  = 0x0C
	addrType  = 0x12
	addrLoop  = 0x18

	// loopFieldsSize is the byte span of the five loop-metadata fields
	// (enabled flag, sample start/end, byte start/end) at their base address.
	loopFieldsSize = 0x14
	// type4Shift is the uniform +0x0C offset applied to every loop field
	// address when loop_type is 4 instead of 3.
	type4Shift = 0x0C
)

var criMarker = []byte("(c)CRI")

// Loop holds the intra-stream loop metadata declared by a type-3 or type-4
// ADX header. It is the zero value when the header carries no loop metadata.
// Enabled is false unless the raw enabled flag was exactly 1; when it is
// false the sample and byte fields still hold the header's values, and only
// Samples stays zero.
type Loop struct {
	Enabled     bool
	SampleStart uint32
	SampleEnd   uint32
	ByteStart   int64
	ByteEnd     int64
	Samples     uint32
}

// Format holds the immutable parameters parsed from an ADX header (§3).
type Format struct {
	SampleOffset int64
	ChunkSize    int
	Channels     int
	SampleRate   uint32
	TotalSamples uint32
	LoopType     int
	Loop         Loop
}

// ParseHeader validates and decodes an ADX header from src, leaving src
// positioned at the first coded byte (SampleOffset + 6) on success. Every
// failure mode — bad signature, a short header read, or a missing "(c)CRI"
// trailer — is reported as ErrInvalidHeader; the caller cannot and need not
// distinguish which (§4.2).
func ParseHeader(src Source) (Format, error) {
	if _, err := src.SeekAbsolute(0); err != nil {
		return Format{}, fmt.Errorf("%w: seek to start: %v", ErrInvalidHeader, err)
	}
	header := make([]byte, headerSize)
	if err := readExact(src, header); err != nil {
		return Format{}, fmt.Errorf("%w: read header: %v", ErrInvalidHeader, err)
	}
	if header[0] != headerSigByte {
		return Format{}, fmt.Errorf("%w: signature 0x%02x, want 0x%02x", ErrInvalidHeader, header[0], headerSigByte)
	}

	var f Format
	f.SampleOffset = int64(be16(header[addrStart:])) - 2
	f.ChunkSize = int(header[addrChunk])
	f.Channels = int(header[addrChan])
	f.SampleRate = be32(header[addrRate:])
	f.TotalSamples = be32(header[addrSamp:])
	f.LoopType = int(header[addrType])

	if f.LoopType == 3 || f.LoopType == 4 {
		base := int64(addrLoop)
		if f.LoopType == 4 {
			base += type4Shift
		}
		// Type 4's shifted fields can run past the fixed 0x2C-byte header
		// buffer, so these are read fresh from their own file offset rather
		// than sliced out of header.
		loopFields := make([]byte, loopFieldsSize)
		if _, err := src.SeekAbsolute(base); err != nil {
			return Format{}, fmt.Errorf("%w: seek to loop fields: %v", ErrInvalidHeader, err)
		}
		if err := readExact(src, loopFields); err != nil {
			return Format{}, fmt.Errorf("%w: read loop fields: %v", ErrInvalidHeader, err)
		}
		f.Loop = parseLoop(loopFields)
	}

	if f.ChunkSize < 3 {
		return Format{}, fmt.Errorf("%w: chunk size %d below minimum of 3", ErrInvalidHeader, f.ChunkSize)
	}
	if f.Channels != 1 && f.Channels != 2 {
		return Format{}, fmt.Errorf("%w: unsupported channel count %d", ErrInvalidHeader, f.Channels)
	}
	if f.SampleRate == 0 {
		return Format{}, fmt.Errorf("%w: zero sample rate", ErrInvalidHeader)
	}

	if _, err := src.SeekAbsolute(f.SampleOffset); err != nil {
		return Format{}, fmt.Errorf("%w: seek to (c)CRI marker: %v", ErrInvalidHeader, err)
	}
	marker := make([]byte, criMarkerSize)
	if err := readExact(src, marker); err != nil {
		return Format{}, fmt.Errorf("%w: read (c)CRI marker: %v", ErrInvalidHeader, err)
	}
	if !bytes.Equal(marker, criMarker) {
		return Format{}, fmt.Errorf("%w: missing (c)CRI marker", ErrInvalidHeader)
	}

	return f, nil
}

// parseLoop decodes the five loop fields starting at the base address for
// the header's loop_type, coercing a malformed enabled flag to false (§3).
func parseLoop(fields []byte) Loop {
	var l Loop
	rawEnabled := int32(be32(fields[0:4]))
	l.SampleStart = be32(fields[4:8])
	l.ByteStart = int64(be32(fields[8:12]))
	l.SampleEnd = be32(fields[12:16])
	l.ByteEnd = int64(be32(fields[16:20]))
	l.Enabled = rawEnabled == 1
	if l.Enabled {
		l.Samples = l.SampleEnd - l.SampleStart
	}
	return l
}
