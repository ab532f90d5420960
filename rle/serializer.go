package rle

import (
	"encoding/binary"
	"math"

	"github.com/golang/snappy"
	"github.com/gravitational/trace"
	"github.com/klauspost/compress/zstd"
)

// Codec selects the block compression applied to a serialized encoding.
type Codec uint8

const (
	CodecNone   Codec = 0
	CodecSnappy Codec = 1
	CodecZstd   Codec = 2
)

const serialVersion = 1

// Marshal serializes runs into a self-describing byte blob. The layout
// is a two-byte header (version, codec) followed by the codec-compressed
// payload: a varint run count, then per run a varint length and the
// little-endian IEEE bits of the value.
func Marshal(runs []Run, codec Codec) ([]byte, error) {
	payload := make([]byte, 0, 10+len(runs)*12)
	payload = binary.AppendUvarint(payload, uint64(len(runs)))
	for i, r := range runs {
		if r.Length < 1 {
			return nil, trace.BadParameter("run %d has non-positive length %d", i, r.Length)
		}
		payload = binary.AppendUvarint(payload, uint64(r.Length))
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(r.Value))
	}

	switch codec {
	case CodecNone:
	case CodecSnappy:
		payload = snappy.Encode(nil, payload)
	case CodecZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		payload = enc.EncodeAll(payload, nil)
		enc.Close()
	default:
		return nil, trace.BadParameter("unknown codec %d", codec)
	}

	out := make([]byte, 0, len(payload)+2)
	out = append(out, serialVersion, byte(codec))
	return append(out, payload...), nil
}

// Unmarshal reverses Marshal, detecting the codec from the header.
func Unmarshal(data []byte) ([]Run, error) {
	if len(data) < 2 {
		return nil, trace.BadParameter("encoding blob truncated: %d bytes", len(data))
	}
	if data[0] != serialVersion {
		return nil, trace.BadParameter("unsupported encoding version %d", data[0])
	}

	payload := data[2:]
	var err error
	switch Codec(data[1]) {
	case CodecNone:
	case CodecSnappy:
		payload, err = snappy.Decode(nil, payload)
		if err != nil {
			return nil, trace.Wrap(err)
		}
	case CodecZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		payload, err = dec.DecodeAll(payload, nil)
		dec.Close()
		if err != nil {
			return nil, trace.Wrap(err)
		}
	default:
		return nil, trace.BadParameter("unknown codec %d", data[1])
	}

	count, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, trace.BadParameter("encoding payload truncated reading run count")
	}
	payload = payload[n:]

	// A run occupies at least 9 payload bytes (varint length plus the
	// 8 value bytes), which bounds any honest count. The count is
	// untrusted input and must not drive allocation before this check.
	if count > uint64(len(payload))/9 {
		return nil, trace.BadParameter(
			"run count %d exceeds payload capacity of %d bytes", count, len(payload))
	}

	runs := make([]Run, 0, count)
	for i := uint64(0); i < count; i++ {
		length, n := binary.Uvarint(payload)
		if n <= 0 || len(payload[n:]) < 8 {
			return nil, trace.BadParameter("encoding payload truncated at run %d", i)
		}
		if length < 1 || length > math.MaxInt {
			return nil, trace.BadParameter("run %d has invalid length %d", i, length)
		}
		payload = payload[n:]
		bits := binary.LittleEndian.Uint64(payload)
		payload = payload[8:]
		runs = append(runs, Run{Value: math.Float64frombits(bits), Length: int(length)})
	}
	return runs, nil
}
