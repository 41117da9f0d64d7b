package music

import (
	"github.com/GPF/adxmix/internal/adx"
)

func init() {
	Register(Interface{
		Name:       "CRI ADX",
		Extensions: []string{"adx"},
		CreateFromSource: func(src ByteSource) (Source, error) {
			// ByteSource and adx.Source share a method set by construction
			// (see internal/adx/source.go), so src already satisfies
			// adx.Source with no adapter.
			dec, err := adx.NewDecoder(src.(adx.Source), true)
			if err != nil {
				return nil, err
			}
			return &adxSource{dec: dec}, nil
		},
	})
}

// MaxVolume is the ceiling of the 0-128 linear volume range used across the
// package, matching the original engine's music-command volume scale.
const MaxVolume = 128

// adxSource adapts internal/adx.Decoder to Source.
type adxSource struct {
	dec *adx.Decoder
}

func (a *adxSource) Play(count int)       { a.dec.Play(count) }
func (a *adxSource) Stop()                { a.dec.Stop() }
func (a *adxSource) Pause()               { a.dec.Pause() }
func (a *adxSource) Resume()              { a.dec.Resume() }
func (a *adxSource) IsPlaying() bool      { return a.dec.IsPlaying() }
func (a *adxSource) Seek(s float64) error { return a.dec.Seek(s) }
func (a *adxSource) Tell() float64        { return a.dec.Tell() }
func (a *adxSource) Duration() float64    { return a.dec.Duration() }
func (a *adxSource) SampleRate() int      { return a.dec.SampleRate() }
func (a *adxSource) Channels() int        { return a.dec.Channels() }
func (a *adxSource) Close() error         { return a.dec.Close() }
func (a *adxSource) GetAudio(dst []byte) int { return a.dec.GetAudio(dst) }

// SetVolume is a no-op: this decoder has no hardware stream attached to
// forward gain to, and volume belongs at the output mix bus, not inside the
// decoder. A host with a real hardware/player volume control (e.g.
// ebiten/v2/audio.Player.SetVolume) applies gain there instead.
func (a *adxSource) SetVolume(volume int) {}
