package adx

import "io"

// memSource is a minimal in-memory Source for exercising the decoder without
// touching a real file.
type memSource struct {
	data   []byte
	pos    int64
	closed bool
}

func newMemSource(data []byte) *memSource {
	return &memSource{data: data}
}

func (m *memSource) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memSource) SeekAbsolute(offset int64) (int64, error) {
	if offset < 0 {
		return 0, io.ErrUnexpectedEOF
	}
	m.pos = offset
	return offset, nil
}

func (m *memSource) Tell() (int64, error) {
	return m.pos, nil
}

func (m *memSource) Close() error {
	m.closed = true
	return nil
}

// buildADXHeader assembles a minimal valid mono or stereo ADX header (type 0,
// no loop) with totalSamples samples at the given chunkSize/sampleRate,
// followed by the "(c)CRI" trailer. sampleOffset is fixed at headerSize
// (0x2C), so the marker sits right after the fixed header span.
func buildADXHeader(channels, chunkSize int, sampleRate, totalSamples uint32) []byte {
	// sample_offset must land at or past the fixed 0x2C-byte header span:
	// ParseHeader reads that span unconditionally before it even looks at
	// sample_offset, mirroring the original parser.
	const sampleOffset = headerSize
	h := make([]byte, sampleOffset+6)
	h[0] = headerSigByte
	h[1] = 0x00
	putBE16(h[addrStart:], uint16(sampleOffset+2))
	h[4] = 0x04 // bit depth, unused by the decoder
	h[addrChunk] = byte(chunkSize)
	h[addrChan] = byte(channels)
	putBE32(h[addrRate:], sampleRate)
	putBE32(h[addrSamp:], totalSamples)
	h[addrType] = 0 // no loop metadata
	copy(h[sampleOffset:], criMarker)
	return h
}

// buildADXHeaderWithLoop is buildADXHeader plus type-3/4 loop metadata,
// placed at its real field address and with sample_offset pushed out far
// enough to hold it (so the marker never overlaps the loop fields).
func buildADXHeaderWithLoop(channels, chunkSize int, sampleRate, totalSamples uint32, loopType int, enabled uint32, sampStart, byteStart, sampEnd, byteEnd uint32) []byte {
	base := addrLoop
	if loopType == 4 {
		base += type4Shift
	}
	sampleOffset := base + loopFieldsSize
	if sampleOffset < headerSize {
		sampleOffset = headerSize
	}

	h := make([]byte, sampleOffset+6)
	h[0] = headerSigByte
	putBE16(h[addrStart:], uint16(sampleOffset+2))
	h[addrChunk] = byte(chunkSize)
	h[addrChan] = byte(channels)
	putBE32(h[addrRate:], sampleRate)
	putBE32(h[addrSamp:], totalSamples)
	h[addrType] = byte(loopType)

	putBE32(h[base:base+4], enabled)
	putBE32(h[base+4:base+8], sampStart)
	putBE32(h[base+8:base+12], byteStart)
	putBE32(h[base+12:base+16], sampEnd)
	putBE32(h[base+16:base+20], byteEnd)

	copy(h[sampleOffset:], criMarker)
	return h
}

func putBE16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// encodeSilentFrame produces a chunkSize-byte ADX frame of all-zero nibbles
// and a zero scale. From a zeroed predictor it decodes to exact silence; from
// a nonzero one it decodes the predictor's damped response, which need not
// settle at zero (from (1000,500) it settles at -72).
func encodeSilentFrame(chunkSize int) []byte {
	frame := make([]byte, chunkSize)
	putBE16(frame[0:2], 0)
	return frame
}
