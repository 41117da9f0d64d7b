package music

import (
	"io"
	"sync"
)

// NewStreamSource adapts any io.ReadSeeker that already produces
// interleaved S16LE PCM — as ebitengine's MP3 and Vorbis decoders do — into
// a Source. Unlike memoryPCMSource it reads incrementally rather than
// decoding the whole file up front, for formats whose decode cost makes
// that worthwhile. lengthBytes is the total decoded PCM size, used only by
// Duration: Tell reads the stream's own position, and end of stream is
// taken from the underlying Read's error.
func NewStreamSource(stream io.ReadSeeker, lengthBytes int64, sampleRate, channels int) Source {
	return &pcmStreamSource{
		stream:      stream,
		lengthBytes: lengthBytes,
		sampleRate:  sampleRate,
		channels:    channels,
	}
}

type pcmStreamSource struct {
	mu          sync.Mutex
	stream      io.ReadSeeker
	lengthBytes int64
	sampleRate  int
	channels    int

	playing bool
	paused  bool
	loop    bool
}

func (s *pcmStreamSource) Play(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = count == -1
	_, _ = s.stream.Seek(0, io.SeekStart)
	s.playing = true
	s.paused = false
}

func (s *pcmStreamSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.paused = false
}

func (s *pcmStreamSource) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = true
}

func (s *pcmStreamSource) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = false
}

func (s *pcmStreamSource) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *pcmStreamSource) GetAudio(dst []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.playing || s.paused {
		zero(dst)
		return 0
	}

	filled := 0
	for filled < len(dst) {
		n, err := s.stream.Read(dst[filled:])
		filled += n
		if err != nil {
			if !s.loop {
				s.playing = false
				break
			}
			if _, serr := s.stream.Seek(0, io.SeekStart); serr != nil {
				s.playing = false
				break
			}
		}
	}
	if filled < len(dst) {
		zero(dst[filled:])
	}
	return filled
}

func (s *pcmStreamSource) Seek(positionSeconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bytesPerSecond := float64(s.sampleRate) * float64(s.channels) * 2
	_, err := s.stream.Seek(int64(positionSeconds*bytesPerSecond), io.SeekStart)
	return err
}

func (s *pcmStreamSource) Tell() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, err := s.stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	bytesPerSecond := float64(s.sampleRate) * float64(s.channels) * 2
	return float64(pos) / bytesPerSecond
}

func (s *pcmStreamSource) Duration() float64 {
	bytesPerSecond := float64(s.sampleRate) * float64(s.channels) * 2
	return float64(s.lengthBytes) / bytesPerSecond
}

func (s *pcmStreamSource) SampleRate() int { return s.sampleRate }
func (s *pcmStreamSource) Channels() int   { return s.channels }

func (s *pcmStreamSource) Close() error {
	if c, ok := s.stream.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
