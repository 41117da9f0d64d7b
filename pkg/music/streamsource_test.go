package music

import (
	"bytes"
	"testing"
)

func TestStreamSource_PlaysThenStopsAtEnd(t *testing.T) {
	stream := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6})
	src := NewStreamSource(stream, 6, 8000, 1)
	src.Play(1)

	dst := make([]byte, 10)
	n := src.GetAudio(dst)
	if n != 6 {
		t.Fatalf("GetAudio returned %d, want 6", n)
	}
	if src.IsPlaying() {
		t.Error("IsPlaying() = true after exhausting a non-looping stream")
	}
}

func TestStreamSource_Loops(t *testing.T) {
	stream := bytes.NewReader([]byte{1, 2, 3, 4})
	src := NewStreamSource(stream, 4, 8000, 1)
	src.Play(-1)

	dst := make([]byte, 10)
	n := src.GetAudio(dst)
	if n != 10 {
		t.Fatalf("GetAudio returned %d, want 10 across a loop wrap", n)
	}
}

func TestStreamSource_Duration(t *testing.T) {
	stream := bytes.NewReader(make([]byte, 16000))
	src := NewStreamSource(stream, 16000, 8000, 1)
	if got := src.Duration(); got != 1.0 {
		t.Errorf("Duration() = %v, want 1.0", got)
	}
}
