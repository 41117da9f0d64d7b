// Package music is a pluggable registry of streaming music decoders,
// modeled on SDL2_mixer's Mix_MusicInterface vtable: each supported format
// registers an Interface describing its name and file extensions, plus a
// factory that wraps a caller-supplied byte source in a Source. Per-instance
// playback operations that were function-pointer slots in the original
// become Source methods instead.
package music

// ByteSource is the random-access byte-addressable I/O contract every
// registered format decodes against. It is structurally identical to
// internal/adx.Source on purpose: any type implementing one implements the
// other, so the ADX plugin passes its ByteSource straight through with no
// adapter.
type ByteSource interface {
	Read(p []byte) (int, error)
	SeekAbsolute(offset int64) (int64, error)
	Tell() (int64, error)
	Close() error
}

// Source is a playable instance of a registered format, opened against one
// ByteSource. Its method set replaces the per-format function pointers
// (Play/Stop/Pause/Resume/GetAudio/Seek/...) of the original vtable.
type Source interface {
	// Play starts (or restarts) playback. count == -1 loops indefinitely at
	// end of stream; any other value plays once.
	Play(count int)
	Stop()
	Pause()
	Resume()
	IsPlaying() bool

	// GetAudio fills dst with up to len(dst) bytes of interleaved S16LE PCM
	// and returns the number of bytes written. It never blocks or errors:
	// both I/O failure and end of stream degrade to silence.
	GetAudio(dst []byte) int

	Seek(positionSeconds float64) error
	Tell() float64
	Duration() float64

	SampleRate() int
	Channels() int

	Close() error
}

// HardwareVolumeSetter is implemented by formats that forward volume to a
// hardware-stream volume control, matching the original engine's music
// commands which take a 0-128 linear volume and scale it onto the device's
// 0-255 range. With no hardware stream attached, implementations are a
// no-op: volume belongs at the output mix bus, not inside the decoder.
type HardwareVolumeSetter interface {
	SetVolume(volume int)
}

// Interface describes one registered music format: its name, the file
// extensions it claims, and the factory that opens a Source against a
// caller-supplied ByteSource.
type Interface struct {
	Name             string
	Extensions       []string
	CreateFromSource func(src ByteSource) (Source, error)
}
