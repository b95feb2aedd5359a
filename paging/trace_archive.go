package paging

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"slices"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionType represents the compression algorithm used for archives
type CompressionType uint8

const (
	CompressionNone   CompressionType = 0
	CompressionLZ4    CompressionType = 1
	CompressionSnappy CompressionType = 2
)

// String returns the configuration name of the compression type
func (ct CompressionType) String() string {
	switch ct {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(ct))
	}
}

// ParseCompressionType maps a configuration name to a compression type
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, ErrInvalidConfig("ParseCompressionType", "unsupported compression %q (must be none, lz4, or snappy)", name)
	}
}

// Encoded trace layout (little endian):
// [0-1]: Magic number (0x7EAC)
// [2]: Format version
// [3]: Policy kind
// [4-7]: Frame size
// [8-11]: Fault count
// [12-15]: Step count
// [16+]: Steps
//
// Step layout:
// [0-3]: Page
// [4]: Flags (bit 0 fault, bit 1 evicted)
// [5-8]: Slot
// [9-12]: Evicted page
// [13-16]: Resident frame count, followed by that many pages
const (
	TraceMagic      = 0x7EAC
	TraceVersion    = 1
	traceHeaderSize = 16
	traceStepHeader = 17
	stepFlagFault   = 1 << 0
	stepFlagEvicted = 1 << 1
)

// Archive header layout:
// [0-1]: Magic number (0xA7C4)
// [2]: Compression type
// [3]: Reserved
// [4-7]: Uncompressed size
// [8-11]: Compressed size
// [12-15]: Checksum of the uncompressed trace (CRC32)
// [16+]: Compressed data
const (
	ArchiveMagic      = 0xA7C4
	ArchiveHeaderSize = 16
)

// MaxTraceSize is the largest trace EncodeTrace can produce for a run of
// maxReferences references over maxFrames frames
func MaxTraceSize(maxReferences, maxFrames int) int {
	return traceHeaderSize + maxReferences*(traceStepHeader+4*maxFrames)
}

// EncodeTrace serializes a simulation result
func EncodeTrace(result *SimulationResult) []byte {
	size := traceHeaderSize
	for _, s := range result.Steps {
		size += traceStepHeader + 4*len(s.Frames)
	}

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint16(buf, TraceMagic)
	buf = append(buf, TraceVersion, uint8(result.Policy))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(result.FrameSize))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(result.Faults))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(result.Steps)))

	for _, s := range result.Steps {
		var flags uint8
		if s.Fault {
			flags |= stepFlagFault
		}
		if s.HasEvicted {
			flags |= stepFlagEvicted
		}

		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Page))
		buf = append(buf, flags)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Slot))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Evicted))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.Frames)))
		for _, p := range s.Frames {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(p))
		}
	}

	return buf
}

// DecodeTrace deserializes a simulation result written by EncodeTrace
func DecodeTrace(data []byte) (*SimulationResult, error) {
	if len(data) < traceHeaderSize {
		return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("data too short for trace header: %d bytes", len(data)), nil)
	}

	magic := binary.LittleEndian.Uint16(data[0:2])
	if magic != TraceMagic {
		return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("invalid magic number: got %04x, expected %04x", magic, TraceMagic), nil)
	}
	if data[2] != TraceVersion {
		return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("unsupported trace version %d", data[2]), nil)
	}

	kind := PolicyKind(data[3])
	if !slices.Contains(AllPolicies, kind) {
		return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("unknown policy kind %d", data[3]), nil)
	}

	result := &SimulationResult{
		Policy:    kind,
		FrameSize: int(binary.LittleEndian.Uint32(data[4:8])),
		Faults:    int(binary.LittleEndian.Uint32(data[8:12])),
	}
	stepCount := int(binary.LittleEndian.Uint32(data[12:16]))

	// Each step needs at least its fixed header
	if stepCount > (len(data)-traceHeaderSize)/traceStepHeader {
		return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("step count %d exceeds data length", stepCount), nil)
	}
	result.Steps = make([]StepRecord, 0, stepCount)

	off := traceHeaderSize
	for i := 0; i < stepCount; i++ {
		if off+traceStepHeader > len(data) {
			return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("truncated step %d", i), nil)
		}

		flags := data[off+4]
		step := StepRecord{
			Index:      i,
			Page:       PageID(binary.LittleEndian.Uint32(data[off : off+4])),
			Fault:      flags&stepFlagFault != 0,
			HasEvicted: flags&stepFlagEvicted != 0,
			Slot:       int(int32(binary.LittleEndian.Uint32(data[off+5 : off+9]))),
			Evicted:    PageID(binary.LittleEndian.Uint32(data[off+9 : off+13])),
		}
		frameCount := int(binary.LittleEndian.Uint32(data[off+13 : off+17]))
		off += traceStepHeader

		if frameCount > (len(data)-off)/4 {
			return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("truncated frames in step %d", i), nil)
		}
		step.Frames = make([]PageID, frameCount)
		for j := range step.Frames {
			step.Frames[j] = PageID(binary.LittleEndian.Uint32(data[off : off+4]))
			off += 4
		}

		result.Steps = append(result.Steps, step)
	}

	if off != len(data) {
		return nil, ErrArchiveCorrupted("DecodeTrace", fmt.Sprintf("%d trailing bytes", len(data)-off), nil)
	}

	return result, nil
}

// CompressTrace wraps an encoded trace in an archive header, compressing it
// with the requested algorithm. Data that does not shrink is stored as is.
func CompressTrace(data []byte, compressionType CompressionType) ([]byte, error) {
	checksum := crc32.ChecksumIEEE(data)

	var compressed []byte

	switch compressionType {
	case CompressionNone:
		compressed = data

	case CompressionLZ4:
		compressed = make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		// n == 0 means the block is incompressible
		compressed = compressed[:n]

	case CompressionSnappy:
		compressed = snappy.Encode(nil, data)

	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compressionType)
	}

	if compressionType != CompressionNone && (len(compressed) == 0 || len(compressed) >= len(data)) {
		compressionType = CompressionNone
		compressed = data
	}

	buf := make([]byte, ArchiveHeaderSize, ArchiveHeaderSize+len(compressed))
	binary.LittleEndian.PutUint16(buf[0:2], ArchiveMagic)
	buf[2] = uint8(compressionType)
	buf[3] = 0
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(data)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(compressed)))
	binary.LittleEndian.PutUint32(buf[12:16], checksum)

	return append(buf, compressed...), nil
}

// DecompressTrace unwraps an archive produced by CompressTrace. Archives
// claiming more than maxSize uncompressed bytes are rejected before any
// buffer is allocated; maxSize <= 0 means the bound for the default limits.
func DecompressTrace(archive []byte, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxTraceSize(DefaultMaxReferences, DefaultMaxFrames)
	}

	if len(archive) < ArchiveHeaderSize {
		return nil, ErrArchiveCorrupted("DecompressTrace", fmt.Sprintf("data too short for archive header: %d bytes", len(archive)), nil)
	}

	magic := binary.LittleEndian.Uint16(archive[0:2])
	if magic != ArchiveMagic {
		return nil, ErrArchiveCorrupted("DecompressTrace", fmt.Sprintf("invalid magic number: got %04x, expected %04x", magic, ArchiveMagic), nil)
	}

	compressionType := CompressionType(archive[2])
	uncompressedSize := int(binary.LittleEndian.Uint32(archive[4:8]))
	compressedSize := int(binary.LittleEndian.Uint32(archive[8:12]))
	checksum := binary.LittleEndian.Uint32(archive[12:16])

	if uncompressedSize > maxSize {
		return nil, ErrArchiveCorrupted("DecompressTrace",
			fmt.Sprintf("uncompressed size %d exceeds limit %d", uncompressedSize, maxSize), nil)
	}
	if ArchiveHeaderSize+compressedSize != len(archive) {
		return nil, ErrArchiveCorrupted("DecompressTrace",
			fmt.Sprintf("payload size mismatch: header says %d bytes, have %d", compressedSize, len(archive)-ArchiveHeaderSize), nil)
	}
	payload := archive[ArchiveHeaderSize:]

	var decompressed []byte

	switch compressionType {
	case CompressionNone:
		if len(payload) != uncompressedSize {
			return nil, ErrArchiveCorrupted("DecompressTrace", fmt.Sprintf("stored size mismatch: got %d, expected %d", len(payload), uncompressedSize), nil)
		}
		decompressed = payload

	case CompressionLZ4:
		decompressed = make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, decompressed)
		if err != nil {
			return nil, ErrArchiveCorrupted("DecompressTrace", "LZ4 decompression failed", err)
		}
		if n != uncompressedSize {
			return nil, ErrArchiveCorrupted("DecompressTrace", fmt.Sprintf("LZ4 decompression size mismatch: got %d, expected %d", n, uncompressedSize), nil)
		}

	case CompressionSnappy:
		n, err := snappy.DecodedLen(payload)
		if err != nil {
			return nil, ErrArchiveCorrupted("DecompressTrace", "snappy decompression failed", err)
		}
		if n != uncompressedSize {
			return nil, ErrArchiveCorrupted("DecompressTrace", fmt.Sprintf("snappy decompression size mismatch: got %d, expected %d", n, uncompressedSize), nil)
		}
		decompressed, err = snappy.Decode(make([]byte, n), payload)
		if err != nil {
			return nil, ErrArchiveCorrupted("DecompressTrace", "snappy decompression failed", err)
		}

	default:
		return nil, ErrArchiveCorrupted("DecompressTrace", fmt.Sprintf("unsupported compression type: %d", compressionType), nil)
	}

	if got := crc32.ChecksumIEEE(decompressed); got != checksum {
		return nil, ErrArchiveCorrupted("DecompressTrace", fmt.Sprintf("checksum mismatch: got %08x, expected %08x", got, checksum), nil)
	}

	return decompressed, nil
}

// ArchiveResult encodes and compresses a result in one step
func ArchiveResult(result *SimulationResult, compressionType CompressionType) ([]byte, error) {
	return CompressTrace(EncodeTrace(result), compressionType)
}

// OpenArchive reverses ArchiveResult. maxSize bounds the decoded trace as
// in DecompressTrace.
func OpenArchive(archive []byte, maxSize int) (*SimulationResult, error) {
	data, err := DecompressTrace(archive, maxSize)
	if err != nil {
		return nil, err
	}
	return DecodeTrace(data)
}

// WriteArchiveFile stores an archived result at path and returns its size
func WriteArchiveFile(path string, result *SimulationResult, compressionType CompressionType) (int, error) {
	archive, err := ArchiveResult(result, compressionType)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, archive, 0644); err != nil {
		return 0, fmt.Errorf("failed to write archive: %w", err)
	}

	return len(archive), nil
}

// ReadArchiveFile loads a result stored by WriteArchiveFile
func ReadArchiveFile(path string, maxSize int) (*SimulationResult, error) {
	archive, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return OpenArchive(archive, maxSize)
}
