package music

import "sync"

// memoryPCMSource is a Source over a fully-decoded, whole-file PCM buffer:
// any format that decodes its entire input up front rather than streaming
// frame groups (the AU decoder, for one) shares this state machine instead
// of reimplementing play/pause/loop/seek bookkeeping per format.
type memoryPCMSource struct {
	mu         sync.Mutex
	pcm        []byte
	sampleRate int
	channels   int

	playing   bool
	paused    bool
	loop      bool
	pos       int
}

func newMemoryPCMSource(pcm []byte, sampleRate, channels int) *memoryPCMSource {
	return &memoryPCMSource{pcm: pcm, sampleRate: sampleRate, channels: channels}
}

func (m *memoryPCMSource) Play(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loop = count == -1
	m.pos = 0
	m.playing = true
	m.paused = false
}

func (m *memoryPCMSource) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.paused = false
}

func (m *memoryPCMSource) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

func (m *memoryPCMSource) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

func (m *memoryPCMSource) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *memoryPCMSource) GetAudio(dst []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.playing || m.paused {
		zero(dst)
		return 0
	}

	filled := 0
	for filled < len(dst) {
		remaining := len(m.pcm) - m.pos
		if remaining <= 0 {
			if !m.loop {
				m.playing = false
				break
			}
			m.pos = 0
			remaining = len(m.pcm)
			if remaining == 0 {
				m.playing = false
				break
			}
		}
		n := copy(dst[filled:], m.pcm[m.pos:])
		m.pos += n
		filled += n
	}
	if filled < len(dst) {
		zero(dst[filled:])
	}
	return filled
}

func (m *memoryPCMSource) Seek(positionSeconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bytesPerSecond := float64(m.sampleRate) * float64(m.channels) * 2
	target := int(positionSeconds * bytesPerSecond)
	if target < 0 {
		target = 0
	}
	if target > len(m.pcm) {
		target = len(m.pcm)
	}
	m.pos = target
	return nil
}

func (m *memoryPCMSource) Tell() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	bytesPerSecond := float64(m.sampleRate) * float64(m.channels) * 2
	return float64(m.pos) / bytesPerSecond
}

func (m *memoryPCMSource) Duration() float64 {
	bytesPerSecond := float64(m.sampleRate) * float64(m.channels) * 2
	return float64(len(m.pcm)) / bytesPerSecond
}

func (m *memoryPCMSource) SampleRate() int { return m.sampleRate }
func (m *memoryPCMSource) Channels() int   { return m.channels }

func (m *memoryPCMSource) Close() error { return nil }

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
