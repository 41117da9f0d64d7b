// Command playadx plays a CRI ADX (or AU, MP3, OGG Vorbis) music file
// through an Ebitengine audio context, mirroring the original SDL2_mixer
// demo: load a file, start playback (looping with --loop), and wait for
// Enter to stop.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/spf13/pflag"

	"github.com/GPF/adxmix/internal/adx"
	"github.com/GPF/adxmix/pkg/music"
)

// demoSampleRate is the rate MP3 and Vorbis are resampled to on decode. The
// Ebitengine audio context is created at the opened source's own rate, so
// ADX and AU play at their native rate.
const demoSampleRate = 44100

func main() {
	var (
		loop       = pflag.BoolP("loop", "l", false, "loop playback indefinitely")
		seek       = pflag.Float64P("seek", "s", 0, "start playback this many seconds in")
		volume     = pflag.IntP("volume", "v", 128, "playback volume, 0-128")
		configPath = pflag.StringP("config", "c", "", "playback config YAML file")
	)
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "playadx - play a CRI ADX (or AU/MP3/OGG) music file\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] FILE\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}
	path := pflag.Arg(0)

	cfg := music.DefaultPlaybackConfig()
	if *configPath != "" {
		loaded, err := music.LoadPlaybackConfig(*configPath)
		if err != nil {
			slog.Error("loading playback config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	registerDemoOnlyFormats()

	if err := run(path, *loop, *seek, *volume, cfg); err != nil {
		slog.Error("playback failed", "file", path, "err", err)
		os.Exit(1)
	}
}

func run(path string, loop bool, seekSeconds float64, volume int, cfg *music.PlaybackConfig) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	ext := cfg.ResolveExtension(strings.TrimPrefix(filepath.Ext(path), "."))
	src, err := music.Open("file."+ext, adx.NewSource(file))
	if err != nil {
		file.Close()
		return err
	}
	defer src.Close()

	ctx := audio.NewContext(src.SampleRate())
	player, err := ctx.NewPlayer(&sourceReader{src: src})
	if err != nil {
		return fmt.Errorf("create ebiten player: %w", err)
	}
	// Volume is applied at the output mix bus (the hardware-stream volume
	// control), not inside the decoder: forward the 0-128 linear volume to
	// the player that actually owns playback, scaled to its 0.0-1.0 range.
	player.SetVolume(float64(volume) / float64(music.MaxVolume))

	loopCount := 1
	if loop {
		loopCount = -1
	}
	src.Play(loopCount)
	if seekSeconds > 0 {
		if err := src.Seek(seekSeconds); err != nil {
			slog.Warn("seek failed, starting from the beginning", "err", err)
		}
	}
	player.Play()

	fmt.Printf("Playing %s (%d Hz, %d ch)... Press Enter to stop.\n", path, src.SampleRate(), src.Channels())
	fmt.Scanln()

	player.Pause()
	src.Stop()
	return nil
}

// sourceReader adapts a music.Source to io.Reader, the shape Ebitengine's
// audio.Context.NewPlayer expects.
type sourceReader struct {
	src music.Source
}

func (r *sourceReader) Read(p []byte) (int, error) {
	n := r.src.GetAudio(p)
	if n == 0 && !r.src.IsPlaying() {
		return 0, io.EOF
	}
	if n == 0 {
		// Paused: report silence without advancing rather than spinning
		// the player on a zero-byte, nil-error read.
		zeroFill(p)
		return len(p), nil
	}
	return n, nil
}

func zeroFill(p []byte) {
	for i := range p {
		p[i] = 0
	}
}

// registerDemoOnlyFormats wires Ebitengine's MP3 and Vorbis decoders into
// the registry for this demo binary only. Both resample to demoSampleRate
// on decode, a constraint neither ADX nor AU has, so this stays in the demo
// rather than pkg/music's format-agnostic registry.
func registerDemoOnlyFormats() {
	music.Register(music.Interface{
		Name:       "MP3",
		Extensions: []string{"mp3"},
		CreateFromSource: func(src music.ByteSource) (music.Source, error) {
			stream, err := mp3.DecodeWithSampleRate(demoSampleRate, &byteSourceReader{src: src})
			if err != nil {
				return nil, fmt.Errorf("decode mp3: %w", err)
			}
			return music.NewStreamSource(stream, stream.Length(), demoSampleRate, 2), nil
		},
	})
	music.Register(music.Interface{
		Name:       "OGG Vorbis",
		Extensions: []string{"ogg"},
		CreateFromSource: func(src music.ByteSource) (music.Source, error) {
			stream, err := vorbis.DecodeWithSampleRate(demoSampleRate, &byteSourceReader{src: src})
			if err != nil {
				return nil, fmt.Errorf("decode ogg: %w", err)
			}
			return music.NewStreamSource(stream, stream.Length(), demoSampleRate, 2), nil
		},
	})
}

// byteSourceReader adapts a music.ByteSource to io.Reader, for decoders
// that only need sequential reads over the whole file.
type byteSourceReader struct {
	src music.ByteSource
}

func (r *byteSourceReader) Read(p []byte) (int, error) {
	return r.src.Read(p)
}
