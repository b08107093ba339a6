package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/bits"
	"os"
	"strings"

	"github.com/abema/go-mp4"
)

// ErrNoDuration is returned for files whose container carries no usable duration.
var ErrNoDuration = errors.New("media: duration not available")

var errBadContainer = errors.New("media: malformed container")

func baseType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
}

// ProbeDuration returns the length in seconds of the video at filePath, reading the
// container header named by contentType. Every accepted video type is probeable.
func ProbeDuration(filePath, contentType string) (float64, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var seconds float64
	switch baseType(contentType) {
	case "video/mp4":
		seconds, err = probeMP4(f)
	case "video/x-msvideo":
		seconds, err = probeAVI(f)
	case "video/x-matroska":
		seconds, err = probeMatroska(f)
	default:
		return 0, ErrNoDuration
	}
	if err != nil {
		return 0, err
	}
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, ErrNoDuration
	}
	return seconds, nil
}

func probeMP4(r io.ReadSeeker) (float64, error) {
	info, err := mp4.Probe(r)
	if err != nil {
		return 0, err
	}
	if info.Timescale == 0 {
		return 0, ErrNoDuration
	}
	return float64(info.Duration) / float64(info.Timescale), nil
}

// AVI: RIFF "AVI " > LIST "hdrl" > "avih", whose main header carries
// dwMicroSecPerFrame at offset 0 and dwTotalFrames at offset 16.

func readChunkHeader(r io.Reader) (id string, size int64, err error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return "", 0, err
	}
	return string(hdr[:4]), int64(binary.LittleEndian.Uint32(hdr[4:])), nil
}

// padded chunks start on even offsets
func padded(size int64) int64 {
	return size + size&1
}

func probeAVI(r io.Reader) (float64, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return 0, errBadContainer
	}
	if !bytes.Equal(riff[:4], []byte("RIFF")) || !bytes.Equal(riff[8:], []byte("AVI ")) {
		return 0, errBadContainer
	}

	for {
		id, size, err := readChunkHeader(r)
		if err != nil {
			return 0, ErrNoDuration
		}
		if id == "LIST" && size >= 4 {
			var kind [4]byte
			if _, err := io.ReadFull(r, kind[:]); err != nil {
				return 0, ErrNoDuration
			}
			if string(kind[:]) == "hdrl" {
				return readAVIMainHeader(io.LimitReader(r, size-4))
			}
			size -= 4
		}
		if _, err := io.CopyN(io.Discard, r, padded(size)); err != nil {
			return 0, ErrNoDuration
		}
	}
}

func readAVIMainHeader(r io.Reader) (float64, error) {
	for {
		id, size, err := readChunkHeader(r)
		if err != nil {
			return 0, ErrNoDuration
		}
		if id != "avih" {
			if _, err := io.CopyN(io.Discard, r, padded(size)); err != nil {
				return 0, ErrNoDuration
			}
			continue
		}
		if size < 20 {
			return 0, errBadContainer
		}
		var hdr [20]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return 0, errBadContainer
		}
		microsPerFrame := binary.LittleEndian.Uint32(hdr[0:4])
		frames := binary.LittleEndian.Uint32(hdr[16:20])
		if microsPerFrame == 0 || frames == 0 {
			return 0, ErrNoDuration
		}
		return float64(frames) * float64(microsPerFrame) / 1e6, nil
	}
}

// Matroska: EBML header, then Segment > Info holding TimecodeScale (ns per tick,
// default 1ms) and Duration (float ticks).

const (
	ebmlHeaderID    = 0x1A45DFA3
	segmentID       = 0x18538067
	infoID          = 0x1549A966
	clusterID       = 0x1F43B675
	timecodeScaleID = 0x2AD7B1
	durationID      = 0x4489

	defaultTimecodeScale = 1_000_000
	unknownSize          = -1
)

// readVint reads an EBML variable-length integer. IDs keep their length marker,
// sizes drop it; a size with every value bit set is unknown.
func readVint(r io.Reader, isID bool) (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:1]); err != nil {
		return 0, err
	}
	n := bits.LeadingZeros8(b[0]) + 1
	if n > 8 || (isID && n > 4) {
		return 0, errBadContainer
	}
	if n > 1 {
		if _, err := io.ReadFull(r, b[1:n]); err != nil {
			return 0, errBadContainer
		}
	}
	v := uint64(b[0])
	if !isID {
		v &= 0xFF >> n
	}
	for i := 1; i < n; i++ {
		v = v<<8 | uint64(b[i])
	}
	if !isID && v == 1<<(7*n)-1 {
		return unknownSize, nil
	}
	return int64(v), nil
}

func readElementHeader(r io.Reader) (id, size int64, err error) {
	if id, err = readVint(r, true); err != nil {
		return 0, 0, err
	}
	if size, err = readVint(r, false); err != nil {
		return 0, 0, err
	}
	return id, size, nil
}

func probeMatroska(r io.Reader) (float64, error) {
	id, size, err := readElementHeader(r)
	if err != nil || id != ebmlHeaderID || size == unknownSize {
		return 0, errBadContainer
	}
	if _, err := io.CopyN(io.Discard, r, size); err != nil {
		return 0, errBadContainer
	}
	if id, _, err = readElementHeader(r); err != nil || id != segmentID {
		return 0, errBadContainer
	}

	for {
		id, size, err := readElementHeader(r)
		if err != nil {
			return 0, ErrNoDuration
		}
		switch {
		case id == infoID && size != unknownSize:
			return readMatroskaInfo(io.LimitReader(r, size))
		case id == clusterID || size == unknownSize:
			// Info always precedes the first cluster
			return 0, ErrNoDuration
		}
		if _, err := io.CopyN(io.Discard, r, size); err != nil {
			return 0, ErrNoDuration
		}
	}
}

func readMatroskaInfo(r io.Reader) (float64, error) {
	scale := uint64(defaultTimecodeScale)
	duration := -1.0
	for {
		id, size, err := readElementHeader(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil || size == unknownSize {
			return 0, errBadContainer
		}
		if (id != timecodeScaleID && id != durationID) || size > 8 {
			if _, err := io.CopyN(io.Discard, r, size); err != nil {
				return 0, errBadContainer
			}
			continue
		}

		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return 0, errBadContainer
		}
		switch id {
		case timecodeScaleID:
			var v uint64
			for _, b := range payload {
				v = v<<8 | uint64(b)
			}
			if v > 0 {
				scale = v
			}
		case durationID:
			switch size {
			case 4:
				duration = float64(math.Float32frombits(binary.BigEndian.Uint32(payload)))
			case 8:
				duration = math.Float64frombits(binary.BigEndian.Uint64(payload))
			default:
				return 0, errBadContainer
			}
		}
	}
	if duration < 0 {
		return 0, ErrNoDuration
	}
	return duration * float64(scale) / 1e9, nil
}
