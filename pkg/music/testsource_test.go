package music

import "io"

// memByteSource is a minimal in-memory ByteSource for exercising registered
// formats without touching a real file.
type memByteSource struct {
	data   []byte
	pos    int64
	closed bool
}

func newMemByteSource(data []byte) *memByteSource {
	return &memByteSource{data: data}
}

func (m *memByteSource) Read(p []byte) (int, error) {
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

func (m *memByteSource) SeekAbsolute(offset int64) (int64, error) {
	m.pos = offset
	return offset, nil
}

func (m *memByteSource) Tell() (int64, error) { return m.pos, nil }

func (m *memByteSource) Close() error {
	m.closed = true
	return nil
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

// ADX header field addresses and sizes, mirroring internal/adx's unexported
// layout constants (duplicated here since they're deliberately unexported
// implementation detail, not part of that package's API).
const (
	adxHeaderSigByte = 0x80
	adxHeaderSize    = 0x2C
	adxAddrStart     = 0x02
	adxAddrChunk     = 0x05
	adxAddrChan      = 0x07
	adxAddrRate      = 0x08
	adxAddrSamp      = 0x0C
	adxAddrType      = 0x12
	adxCRIMarkerSize = 6
)

var adxCRIMarker = []byte("(c)CRI")

// buildADXBytes assembles a minimal, loop-less, valid ADX byte stream:
// header plus frames silent frames (all-zero nibbles).
func buildADXBytes(channels, chunkSize int, sampleRate uint32, frames int) []byte {
	const sampleOffset = adxHeaderSize
	samplesPerFrame := 2 * (chunkSize - 2)
	total := uint32(samplesPerFrame * frames)

	h := make([]byte, sampleOffset+adxCRIMarkerSize)
	h[0] = adxHeaderSigByte
	putBE16(h[adxAddrStart:], uint16(sampleOffset+2))
	h[adxAddrChunk] = byte(chunkSize)
	h[adxAddrChan] = byte(channels)
	putBE32(h[adxAddrRate:], sampleRate)
	putBE32(h[adxAddrSamp:], total)
	h[adxAddrType] = 0
	copy(h[sampleOffset:], adxCRIMarker)

	raw := append([]byte{}, h...)
	frame := make([]byte, chunkSize*channels) // all-zero nibbles, silent
	for i := 0; i < frames; i++ {
		raw = append(raw, frame...)
	}
	return raw
}

// buildAUBytes assembles a minimal mono mu-law AU file.
func buildAUBytes(sampleRate uint32, ulawSamples []byte) []byte {
	buf := make([]byte, 24+len(ulawSamples))
	putBE32(buf[0:4], auMagic)
	putBE32(buf[4:8], 24)
	putBE32(buf[8:12], uint32(len(ulawSamples)))
	putBE32(buf[12:16], auEncodingULaw)
	putBE32(buf[16:20], sampleRate)
	putBE32(buf[20:24], 1)
	copy(buf[24:], ulawSamples)
	return buf
}
