package anvil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/astei/anvilnbt/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

const maxOffsets = 1024
const sectorSize = 4096

// SectorSize is the alignment unit of a region file.
const SectorSize = sectorSize

// ChunksPerRegion is the number of slots in a region's directory.
const ChunksPerRegion = maxOffsets

var ErrNoChunk = errors.New("anvil: chunk not found")
var ErrInvalidChunkLength = errors.New("anvil: invalid chunk length")

// CompressionType is the one-byte codec id in a chunk payload header.
type CompressionType byte

const (
	CompressionGzip         CompressionType = 1
	CompressionZlib         CompressionType = 2
	CompressionUncompressed CompressionType = 3
	CompressionLZ4          CompressionType = 4
	CompressionCustom       CompressionType = 127
)

// UnsupportedCompressionError reports a codec id this library cannot
// decode (LZ4, custom, or anything unrecognized).
type UnsupportedCompressionError struct {
	ID CompressionType
}

func (e UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("anvil: unsupported compression %d", byte(e.ID))
}

// Reader reads an Anvil region file and extracts its chunks. The reader
// is not safe for concurrent access; usage should be protected by a
// mutex if concurrent access is desired.
type Reader struct {
	source         io.ReadSeeker
	sectorTable    []int32
	timestampTable []int32
	Name           string
}

// NewReader creates a Reader and parses the two header sectors. The
// ownership of the source is transferred to this reader.
func NewReader(source io.ReadSeeker) (reader *Reader, err error) {
	reader = &Reader{
		source:         source,
		sectorTable:    make([]int32, maxOffsets),
		timestampTable: make([]int32, maxOffsets),
	}

	if file, ok := source.(*os.File); ok {
		reader.Name = file.Name()
	}
	err = reader.readHeader()
	return
}

// OpenReader opens the region file at path.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return reader, nil
}

func (r *Reader) readHeader() (err error) {
	_, err = r.source.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}

	rawHeader := make([]byte, 2*sectorSize)
	_, err = io.ReadFull(r.source, rawHeader)
	if err != nil {
		return err
	}

	headerIn := bytes.NewReader(rawHeader)
	if err = binary.Read(headerIn, binary.BigEndian, r.sectorTable); err != nil {
		return err
	}
	err = binary.Read(headerIn, binary.BigEndian, r.timestampTable)
	return
}

// ChunkExists reports whether the location table has an entry for the
// local chunk.
func (r *Reader) ChunkExists(x, z int) bool {
	return r.sectorTable[ChunkIndex(x, z)] != 0
}

// Location returns the sector offset and sector count of a local chunk.
// An offset of zero means the chunk is absent.
func (r *Reader) Location(x, z int) (offset uint32, sectors uint8) {
	entry := uint32(r.sectorTable[ChunkIndex(x, z)])
	return entry >> 8, uint8(entry)
}

// Timestamp returns the modification time table entry of a local chunk
// as a Unix timestamp.
func (r *Reader) Timestamp(x, z int) int32 {
	return r.timestampTable[ChunkIndex(x, z)]
}

// ReadChunkData reads and decompresses the payload of an Anvil chunk at
// the specified X and Z coordinates. Note that these coordinates are
// relative to the region file and are not world chunk coordinates.
func (r *Reader) ReadChunkData(x, z int) (data []byte, compression CompressionType, err error) {
	offset, _ := r.Location(x, z)
	if offset == 0 {
		err = ErrNoChunk
		return
	}

	if _, err = r.source.Seek(int64(offset)*sectorSize, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("anvil: failed to seek: %w", err)
	}

	// Payload header: 4-byte length, then the compression id. The
	// length counts the id byte.

	payloadHeader := make([]byte, 5)
	if _, err = io.ReadFull(r.source, payloadHeader); err != nil {
		return nil, 0, fmt.Errorf("anvil: could not read payload header: %w", err)
	}

	length := int32(binary.BigEndian.Uint32(payloadHeader))
	compression = CompressionType(payloadHeader[4])
	if length < 1 {
		return nil, compression, ErrInvalidChunkLength
	}

	compressed := make([]byte, length-1)
	if _, err = io.ReadFull(r.source, compressed); err != nil {
		return nil, compression, fmt.Errorf("anvil: could not read payload data: %w", err)
	}

	data, err = Decompress(compressed, compression)
	return
}

// ReadChunk reads, decompresses and parses the chunk at local (x, z).
func (r *Reader) ReadChunk(x, z int) (*nbt.Node, error) {
	data, _, err := r.ReadChunkData(x, z)
	if err != nil {
		return nil, err
	}
	node, err := nbt.Read(data)
	if err != nil {
		return nil, fmt.Errorf("anvil: chunk %d,%d: %w", x, z, err)
	}
	return node, nil
}

func (r *Reader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Decompress inflates a chunk payload per its declared codec. The
// output buffer grows as needed; decompressed chunks of several hundred
// KiB are normal.
func Decompress(data []byte, compression CompressionType) ([]byte, error) {
	switch compression {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("anvil: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("anvil: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CompressionUncompressed:
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	default:
		return nil, UnsupportedCompressionError{ID: compression}
	}
}
