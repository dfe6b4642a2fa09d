package audio

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// mp3Streamer adapts go-mp3 to beep.StreamSeekCloser.
type mp3Streamer struct {
	decoder *mp3.Decoder
	closer  io.Closer
	format  beep.Format
	err     error
	readBuf []byte
}

// decodeMP3 decodes an mp3 stream from rc. rc must support seeking for
// position queries and seeks to work; the progressive buffer does.
func decodeMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2, // go-mp3 always outputs stereo
		Precision:   2, // 16-bit
	}

	return &mp3Streamer{
		decoder: decoder,
		closer:  rc,
		format:  format,
		readBuf: make([]byte, 8192),
	}, format, nil
}

func (s *mp3Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	// 4 bytes per sample (stereo 16-bit)
	bytesNeeded := len(samples) * 4
	if len(s.readBuf) < bytesNeeded {
		s.readBuf = make([]byte, bytesNeeded)
	}

	bytesRead, err := io.ReadFull(s.decoder, s.readBuf[:bytesNeeded])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	samplesRead := bytesRead / 4
	if samplesRead == 0 {
		return 0, false
	}

	for i := 0; i < samplesRead && i < len(samples); i++ {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(s.readBuf[offset:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(s.readBuf[offset+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
		n++
	}

	return n, true
}

func (s *mp3Streamer) Err() error {
	return s.err
}

// Len returns the total number of samples, or 0 while unknown.
func (s *mp3Streamer) Len() int {
	count := s.decoder.SampleCount()
	if count < 0 {
		return 0
	}
	return int(count)
}

func (s *mp3Streamer) Position() int {
	return int(s.decoder.SamplePosition())
}

func (s *mp3Streamer) Seek(p int) error {
	if p < 0 {
		p = 0
	}
	if length := s.Len(); length > 0 && p > length {
		p = length
	}
	if err := s.decoder.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Streamer) Close() error {
	return s.closer.Close()
}
