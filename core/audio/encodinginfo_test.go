package audio

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestDurationLinear16(t *testing.T) {
	info := EncodingInfo{SampleRate: 24000, Format: EncodingLinear16}

	if got := info.Duration(48000); got != time.Second {
		t.Fatalf("expected one second of audio, got %v", got)
	}
}

func TestDurationMulawUsesSingleByteSamples(t *testing.T) {
	info := EncodingInfo{SampleRate: 8000, Format: EncodingMulaw}

	if got := info.Duration(4000); got != 500*time.Millisecond {
		t.Fatalf("expected half a second of audio, got %v", got)
	}
}

func TestDurationUnknownFormatIsZero(t *testing.T) {
	info := EncodingInfo{SampleRate: 24000, Format: encodingFormat("opus")}

	if got := info.Duration(48000); got != 0 {
		t.Fatalf("expected zero duration for unknown format, got %v", got)
	}
}

func TestWrapWAVHeader(t *testing.T) {
	info := EncodingInfo{SampleRate: 24000, Format: EncodingLinear16}
	data := make([]byte, 100)

	wav, err := WrapWAV(info, data)
	if err != nil {
		t.Fatalf("expected no error wrapping linear16, got %v", err)
	}

	if len(wav) != 44+len(data) {
		t.Fatalf("expected 44 byte header plus data, got %d bytes", len(wav))
	}
	if string(wav[:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("expected RIFF/WAVE magic, got %q and %q", wav[:4], wav[8:12])
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 24000 {
		t.Fatalf("expected sample rate 24000 in header, got %d", rate)
	}
	if size := binary.LittleEndian.Uint32(wav[40:44]); size != uint32(len(data)) {
		t.Fatalf("expected data length %d in header, got %d", len(data), size)
	}
}

func TestWrapWAVRejectsUnknownEncoding(t *testing.T) {
	info := EncodingInfo{SampleRate: 24000, Format: encodingFormat("opus")}

	if _, err := WrapWAV(info, []byte{0}); err == nil {
		t.Fatalf("expected error for unsupported encoding")
	}
}
