package audio

import (
	"encoding/binary"
	"fmt"
)

// WrapWAV prepends a RIFF/WAVE header to raw audio so the result is
// playable by a browser audio element. Only linear16, mulaw and alaw
// mono audio is supported.
func WrapWAV(encodingInfo EncodingInfo, data []byte) ([]byte, error) {
	var audioFormat uint16
	switch encodingInfo.Format {
	case EncodingLinear16:
		audioFormat = 1
	case EncodingALaw:
		audioFormat = 6
	case EncodingMulaw:
		audioFormat = 7
	default:
		return nil, fmt.Errorf("unsupported encoding for wav container: %s", encodingInfo.Format.Name())
	}

	const channels = 1
	byteSize := encodingInfo.Format.ByteSize()
	byteRate := encodingInfo.SampleRate * channels * byteSize
	blockAlign := channels * byteSize

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, uint32(36+len(data)))
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)
	header = binary.LittleEndian.AppendUint16(header, audioFormat)
	header = binary.LittleEndian.AppendUint16(header, channels)
	header = binary.LittleEndian.AppendUint32(header, uint32(encodingInfo.SampleRate))
	header = binary.LittleEndian.AppendUint32(header, uint32(byteRate))
	header = binary.LittleEndian.AppendUint16(header, uint16(blockAlign))
	header = binary.LittleEndian.AppendUint16(header, uint16(byteSize*8))
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(data)))

	return append(header, data...), nil
}
