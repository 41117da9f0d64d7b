package adx

import (
	"fmt"
	"log/slog"

	"github.com/drgolem/ringbuffer"
)

// stagingCapacity bounds the staging ring buffer at roughly twice the PCM
// bytes a single stereo frame group can produce at the largest legal
// chunk_size, matching the "at most one frame group between calls" shape
// described in §3 and §9 Open Question 1, without per-call allocation.
const stagingCapacity = 2 * MaxSamplesPerFrame * 2 /* channels */ * 2 /* bytes/sample */

// Decoder is a streaming ADX decoder instance: one parsed Format, one byte
// source, per-channel predictor state, and the small staging buffer that
// bridges caller-pull GetAudio calls with fixed-size compressed frame
// groups (§3, §4.5).
type Decoder struct {
	src        Source
	ownsSource bool
	format     Format

	playing   bool
	paused    bool
	loopOnEOF bool
	remaining uint32

	preds   [2]Predictor
	staging *ringbuffer.RingBuffer

	frameBuf [2 * MaxChunkSize]byte
	pcmBuf   [2 * MaxSamplesPerFrame * 2]byte

	log *slog.Logger
}

// NewDecoder parses the ADX header from src and returns a Decoder positioned
// at the first coded byte, ready for Play. On any parse failure src is
// closed (if ownsSource) and the error is ErrInvalidHeader.
func NewDecoder(src Source, ownsSource bool) (*Decoder, error) {
	format, err := ParseHeader(src)
	if err != nil {
		if ownsSource {
			_ = src.Close()
		}
		return nil, err
	}
	return &Decoder{
		src:        src,
		ownsSource: ownsSource,
		format:     format,
		staging:    ringbuffer.New(stagingCapacity),
		log:        slog.Default(),
	}, nil
}

// SetLogger overrides the logger used for loop-wrap and I/O-degradation
// diagnostics (default slog.Default()).
func (d *Decoder) SetLogger(l *slog.Logger) {
	if l != nil {
		d.log = l
	}
}

// Format returns the parsed, immutable stream parameters.
func (d *Decoder) Format() Format { return d.format }

func (d *Decoder) SampleRate() int { return int(d.format.SampleRate) }
func (d *Decoder) Channels() int   { return d.format.Channels }

// Play starts (or restarts) playback. count == -1 requests indefinite
// looping at end-of-stream; any other value plays the stream once. Neither
// predictor state nor source position is touched — the caller is expected
// to have just created the decoder, which leaves the source at the first
// coded byte (§4.7).
func (d *Decoder) Play(count int) {
	d.loopOnEOF = count == -1
	d.remaining = d.format.TotalSamples
	d.playing = true
	d.paused = false
}

// Stop halts playback; the next GetAudio call returns silence.
func (d *Decoder) Stop() {
	d.playing = false
	d.paused = false
}

// Pause suspends playback without resetting any decode state.
func (d *Decoder) Pause() { d.paused = true }

// Resume continues playback from exactly where Pause left off.
func (d *Decoder) Resume() { d.paused = false }

// IsPlaying reports the playing flag irrespective of Paused (§4.7).
func (d *Decoder) IsPlaying() bool { return d.playing }

// GetAudio fills dst with up to len(dst) bytes of interleaved S16LE PCM and
// returns the number of bytes actually written. It never blocks and never
// returns an error: I/O failures and end-of-stream both degrade to silence
// (§4.5, §7, §9 Open Question 2).
func (d *Decoder) GetAudio(dst []byte) int {
	if !d.playing || d.paused {
		zero(dst)
		return 0
	}

	frameGroupBytes := d.format.ChunkSize * d.format.Channels
	samplesPerFrame := 2 * (d.format.ChunkSize - 2)

	filled := 0
	for filled < len(dst) {
		if d.staging.AvailableRead() == 0 {
			if !d.refill(frameGroupBytes, samplesPerFrame) {
				zero(dst[filled:])
				return filled
			}
		}
		n, _ := d.staging.Read(dst[filled:])
		if n == 0 {
			// Staging reported data available but yielded none; avoid
			// spinning forever on an inconsistent buffer state.
			zero(dst[filled:])
			return filled
		}
		filled += n
	}
	return filled
}

// refill decodes one more frame group into the staging buffer, performing
// the EOF/loop-wrap transition of §4.5 first if the current segment is
// exhausted, either because remaining reached zero or because a short read
// showed the data ran out first. It returns false only once playback has
// actually stopped — a terminal (non-looping) end-of-stream, a source error
// during a loop-wrap seek, a zero-length loop segment, a short read right
// after a wrap, or a staging write failure — never merely because a wrap
// just occurred.
func (d *Decoder) refill(frameGroupBytes, samplesPerFrame int) bool {
	buf := d.frameBuf[:frameGroupBytes]
	var n int
	var err error
	if d.remaining > 0 {
		n, err = readUpTo(d.src, buf)
	}
	if d.remaining == 0 || err != nil || n < frameGroupBytes {
		// End of segment; a short read counts as end-of-stream (§4.5, §7).
		if !d.onEndOfSegment() {
			return false
		}
		if d.remaining == 0 {
			// Wrapped into a zero-length loop segment (loop_samp_end ==
			// loop_samp_start): stop instead of wrapping forever without
			// ever producing a sample.
			d.log.Warn("adx: loop segment has zero samples, stopping")
			d.playing = false
			return false
		}
		n, err = readUpTo(d.src, buf)
	}
	if err != nil || n < frameGroupBytes {
		// A short read right after a wrap means the source can't deliver
		// the segment it was just wrapped to; treat it as a hard stop
		// rather than recursing back into onEndOfSegment, which could
		// otherwise wrap forever against a source that never yields a
		// full frame group.
		d.log.Warn("adx: short read decoding frame group", "want", frameGroupBytes, "got", n)
		d.playing = false
		return false
	}

	w := samplesPerFrame
	if int(d.remaining) < w {
		w = int(d.remaining)
	}
	pcmBytes := w * 2 * d.format.Channels
	pcmOut := d.pcmBuf[:pcmBytes]
	DecodeFrameGroup(pcmOut, buf, d.format.ChunkSize, d.format.Channels, &d.preds, w)
	if _, err := d.staging.Write(pcmOut); err != nil {
		d.log.Warn("adx: staging buffer write failed", "err", err)
		d.playing = false
		return false
	}
	d.remaining -= uint32(w)
	return true
}

// onEndOfSegment runs the EOF/loop-wrap transition of §4.5 and reports
// whether the caller should keep pulling (true) or has just hit a terminal
// condition (false, with d.playing already cleared).
func (d *Decoder) onEndOfSegment() bool {
	if !d.loopOnEOF {
		d.playing = false
		return false
	}

	if d.format.Loop.Enabled {
		if _, err := d.src.SeekAbsolute(d.format.Loop.ByteStart); err != nil {
			d.log.Warn("adx: intra-stream loop seek failed", "err", err)
			d.playing = false
			return false
		}
		d.remaining = d.format.Loop.Samples
		d.log.Debug("adx: intra-stream loop wrap", "samples", d.remaining)
		// Predictor state is intentionally NOT reset: samples must flow
		// continuously across the loop seam (§4.5, §9 Open Question 4).
		return true
	}

	if _, err := d.src.SeekAbsolute(d.format.SampleOffset + criMarkerSize); err != nil {
		d.log.Warn("adx: plain loop seek failed", "err", err)
		d.playing = false
		return false
	}
	d.remaining = d.format.TotalSamples
	for i := range d.preds {
		d.preds[i].Reset()
	}
	d.log.Debug("adx: plain end-of-stream loop wrap")
	return true
}

// Seek positions playback at position seconds from the start, computed as a
// PCM-equivalent byte offset rather than an ADX-frame-aligned one: since
// frame groups are chunk_size*channels bytes long, most seek targets land
// mid-frame and produce garbled audio until the next frame boundary. This
// is a documented limitation, not a bug (§4.6, §9 Open Question 3).
//
// Predictor state is reset and the staging buffer drained unconditionally,
// even if the underlying seek then fails, per the recommended policy in §7.
func (d *Decoder) Seek(positionSeconds float64) error {
	for i := range d.preds {
		d.preds[i].Reset()
	}
	d.staging.Reset()

	bytesPerSecond := float64(d.format.SampleRate) * float64(d.format.Channels) * 2
	target := int64(positionSeconds*bytesPerSecond) + d.format.SampleOffset + criMarkerSize
	if _, err := d.src.SeekAbsolute(target); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceIO, err)
	}
	return nil
}

// Tell returns the current playback position in seconds, or -1 if the
// source's position cannot be determined (§4.6).
func (d *Decoder) Tell() float64 {
	pos, err := d.src.Tell()
	if err != nil {
		return -1
	}
	bytesPerSecond := float64(d.format.SampleRate) * float64(d.format.Channels) * 2
	position := float64(pos-d.format.SampleOffset-criMarkerSize) / bytesPerSecond
	if position < 0 {
		return 0
	}
	return position
}

// Duration returns the stream's total length in seconds (§4.6).
func (d *Decoder) Duration() float64 {
	return float64(d.format.TotalSamples) / float64(d.format.SampleRate)
}

// Close releases the decoder, closing its byte source iff it was created
// with ownsSource (§5).
func (d *Decoder) Close() error {
	if d.ownsSource {
		return d.src.Close()
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
