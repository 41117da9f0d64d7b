package music

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

func init() {
	Register(Interface{
		Name:       "Sun/NeXT audio",
		Extensions: []string{"au", "snd"},
		CreateFromSource: func(src ByteSource) (Source, error) {
			pcm, sampleRate, channels, err := decodeAU(src)
			if err != nil {
				return nil, err
			}
			return newMemoryPCMSource(pcm, sampleRate, channels), nil
		},
	})
}

// auHeader is the 24-byte Sun/NeXT audio file header, big-endian.
type auHeader struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic        = 0x2e736e64 // ".snd"
	auEncodingULaw = 1          // 8-bit mu-law, the only encoding decoded here
)

// mulawTable converts an 8-bit mu-law sample to 16-bit linear PCM.
var mulawTable = [256]int16{
	-32124, -31100, -30076, -29052, -28028, -27004, -25980, -24956,
	-23932, -22908, -21884, -20860, -19836, -18812, -17788, -16764,
	-15996, -15484, -14972, -14460, -13948, -13436, -12924, -12412,
	-11900, -11388, -10876, -10364, -9852, -9340, -8828, -8316,
	-7932, -7676, -7420, -7164, -6908, -6652, -6396, -6140,
	-5884, -5628, -5372, -5116, -4860, -4604, -4348, -4092,
	-3900, -3772, -3644, -3516, -3388, -3260, -3132, -3004,
	-2876, -2748, -2620, -2492, -2364, -2236, -2108, -1980,
	-1884, -1820, -1756, -1692, -1628, -1564, -1500, -1436,
	-1372, -1308, -1244, -1180, -1116, -1052, -988, -924,
	-876, -844, -812, -780, -748, -716, -684, -652,
	-620, -588, -556, -524, -492, -460, -428, -396,
	-372, -356, -340, -324, -308, -292, -276, -260,
	-244, -228, -212, -196, -180, -164, -148, -132,
	-120, -112, -104, -96, -88, -80, -72, -64,
	-56, -48, -40, -32, -24, -16, -8, 0,
	32124, 31100, 30076, 29052, 28028, 27004, 25980, 24956,
	23932, 22908, 21884, 20860, 19836, 18812, 17788, 16764,
	15996, 15484, 14972, 14460, 13948, 13436, 12924, 12412,
	11900, 11388, 10876, 10364, 9852, 9340, 8828, 8316,
	7932, 7676, 7420, 7164, 6908, 6652, 6396, 6140,
	5884, 5628, 5372, 5116, 4860, 4604, 4348, 4092,
	3900, 3772, 3644, 3516, 3388, 3260, 3132, 3004,
	2876, 2748, 2620, 2492, 2364, 2236, 2108, 1980,
	1884, 1820, 1756, 1692, 1628, 1564, 1500, 1436,
	1372, 1308, 1244, 1180, 1116, 1052, 988, 924,
	876, 844, 812, 780, 748, 716, 684, 652,
	620, 588, 556, 524, 492, 460, 428, 396,
	372, 356, 340, 324, 308, 292, 276, 260,
	244, 228, 212, 196, 180, 164, 148, 132,
	120, 112, 104, 96, 88, 80, 72, 64,
	56, 48, 40, 32, 24, 16, 8, 0,
}

// decodeAU reads all of src and decodes it as a mu-law Sun/NeXT audio file
// into 16-bit signed little-endian PCM, returning the sample rate and
// channel count from the header.
func decodeAU(src ByteSource) ([]byte, int, int, error) {
	data, err := io.ReadAll(readerFrom(src))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("music: read AU file: %w", err)
	}
	if len(data) < 24 {
		return nil, 0, 0, fmt.Errorf("music: AU file too short: %d bytes", len(data))
	}

	var header auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, 0, 0, fmt.Errorf("music: read AU header: %w", err)
	}
	if header.Magic != auMagic {
		return nil, 0, 0, fmt.Errorf("music: invalid AU magic 0x%08x", header.Magic)
	}
	if header.Encoding != auEncodingULaw {
		return nil, 0, 0, fmt.Errorf("music: unsupported AU encoding %d (only mu-law is supported)", header.Encoding)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, 0, 0, fmt.Errorf("music: unsupported AU channel count %d", header.Channels)
	}

	dataOffset := int(header.DataOffset)
	if dataOffset < 24 || dataOffset >= len(data) {
		return nil, 0, 0, fmt.Errorf("music: invalid AU data offset %d (file size %d)", dataOffset, len(data))
	}

	ulaw := data[dataOffset:]
	pcm := make([]byte, len(ulaw)*2)
	for i, b := range ulaw {
		s := mulawTable[b]
		pcm[i*2] = byte(s)
		pcm[i*2+1] = byte(uint16(s) >> 8)
	}
	return pcm, int(header.SampleRate), int(header.Channels), nil
}

// readerFrom adapts a ByteSource (already positioned wherever the caller
// left it) to io.Reader for io.ReadAll, without assuming it also seeks.
func readerFrom(src ByteSource) io.Reader {
	return byteSourceReader{src}
}

type byteSourceReader struct {
	src ByteSource
}

func (r byteSourceReader) Read(p []byte) (int, error) {
	return r.src.Read(p)
}
