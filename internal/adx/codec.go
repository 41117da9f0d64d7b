package adx

// Fixed-point predictor coefficients from the CRI ADX format. These are
// canon, not tunable — altering them breaks bit-exact compatibility with
// every existing ADX stream (§4.3).
const (
	baseVolume     = 0x4000
	coeffS1        = 0x7298
	coeffS2        = 0x3350
	predictorShift = 14
)

// MaxChunkSize is the largest legal chunk_size (a one-byte header field).
const MaxChunkSize = 255

// MaxSamplesPerFrame is the most PCM samples a single-channel ADX frame can
// decode to, at the largest legal chunk_size.
const MaxSamplesPerFrame = 2 * (MaxChunkSize - 2)

// Predictor holds one channel's 2-tap IIR predictor state.
type Predictor struct {
	s1, s2 int32
}

// Reset zeroes the predictor, as required at stream open, after a seek, and
// on a plain-EOF loop wrap (§3, §4.5).
func (p *Predictor) Reset() {
	p.s1, p.s2 = 0, 0
}

// DecodeMono decodes one chunk_size-byte ADX frame for a single channel.
// len(out) must equal 2*(len(frame)-2); frame must be at least 3 bytes.
func DecodeMono(out []int16, frame []byte, p *Predictor) {
	scale := int32(int16(be16(frame[0:2])))
	s1, s2 := p.s1, p.s2
	i := 0
	for _, b := range frame[2:] {
		for _, nibble := range [2]byte{b >> 4, b & 0x0F} {
			d := int32(nibble)
			if d&8 != 0 {
				d -= 16
			}
			s0 := (baseVolume*d*scale + coeffS1*s1 - coeffS2*s2) >> predictorShift
			switch {
			case s0 > 32767:
				s0 = 32767
			case s0 < -32768:
				s0 = -32768
			}
			out[i] = int16(s0)
			i++
			s2, s1 = s1, s0
		}
	}
	p.s1, p.s2 = s1, s2
}

// DecodeFrameGroup decodes one frame group — chunkSize*channels raw ADX
// bytes, one chunkSize-byte frame per channel — into dst as interleaved
// S16LE PCM, emitting only the first w decoded PCM frames (§4.5 partial-final-
// frame policy). Each channel's predictor still advances through the whole
// decoded frame regardless of w, so the trajectory is correct on the next
// call. dst must have capacity for w*2*channels bytes; raw must have
// chunkSize*channels bytes.
func DecodeFrameGroup(dst []byte, raw []byte, chunkSize, channels int, preds *[2]Predictor, w int) {
	samplesPerFrame := 2 * (chunkSize - 2)
	var scratch [2][MaxSamplesPerFrame]int16
	for ch := 0; ch < channels; ch++ {
		frame := raw[ch*chunkSize : (ch+1)*chunkSize]
		DecodeMono(scratch[ch][:samplesPerFrame], frame, &preds[ch])
	}
	if channels == 1 {
		for i := 0; i < w; i++ {
			putS16LE(dst[i*2:], scratch[0][i])
		}
		return
	}
	for i := 0; i < w; i++ {
		putS16LE(dst[i*4:], scratch[0][i])
		putS16LE(dst[i*4+2:], scratch[1][i])
	}
}

func putS16LE(b []byte, v int16) {
	b[0] = byte(v)
	b[1] = byte(uint16(v) >> 8)
}
