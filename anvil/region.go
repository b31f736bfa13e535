package anvil

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/astei/anvilnbt/nbt"
	"github.com/sirupsen/logrus"
)

// ChunkEntry is one slot of a region's directory, plus the parsed tree
// once the chunk has been loaded. A failed chunk keeps its directory
// metadata with a nil Data.
type ChunkEntry struct {
	Offset      uint32 // sector offset; zero means absent
	SectorCount uint8
	Timestamp   int32
	Compression CompressionType
	Data        *nbt.Node
}

// Exists reports whether the directory has a payload for this slot.
func (e *ChunkEntry) Exists() bool {
	return e.Offset != 0
}

// Region is the dense in-memory view of one .mca file: 1024 chunk
// slots indexed by ChunkIndex, plus the region coordinates recovered
// from the filename.
type Region struct {
	X, Z   int
	Chunks [ChunksPerRegion]ChunkEntry
}

// Chunk returns the entry at local (x, z).
func (r *Region) Chunk(x, z int) *ChunkEntry {
	return &r.Chunks[ChunkIndex(x, z)]
}

// CountChunks counts the directory entries with a payload on disk.
func (r *Region) CountChunks() int {
	n := 0
	for i := range r.Chunks {
		if r.Chunks[i].Exists() {
			n++
		}
	}
	return n
}

// CountLoaded counts the chunks whose tree parsed successfully.
func (r *Region) CountLoaded() int {
	n := 0
	for i := range r.Chunks {
		if r.Chunks[i].Data != nil {
			n++
		}
	}
	return n
}

// LoadRegionHeader parses the two header sectors of a region file and
// returns the directory without touching any chunk payload.
func LoadRegionHeader(path string) (*Region, error) {
	reader, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return regionFromReader(path, reader), nil
}

// LoadRegion parses the header and eagerly loads every present chunk.
// Per-chunk failures are recoverable: the slot keeps its directory
// metadata, the error is logged, and loading continues.
func LoadRegion(path string) (*Region, error) {
	reader, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	region := regionFromReader(path, reader)
	for z := 0; z < RegionDimension; z++ {
		for x := 0; x < RegionDimension; x++ {
			entry := region.Chunk(x, z)
			if !entry.Exists() {
				continue
			}
			data, compression, err := reader.ReadChunkData(x, z)
			entry.Compression = compression
			if err != nil {
				logrus.WithError(err).Warnf("anvil: skipping chunk %d,%d in %s", x, z, path)
				continue
			}
			node, err := nbt.Read(data)
			if err != nil {
				logrus.WithError(err).Warnf("anvil: skipping chunk %d,%d in %s", x, z, path)
				continue
			}
			entry.Data = node
		}
	}
	return region, nil
}

func regionFromReader(path string, reader *Reader) *Region {
	region := &Region{}
	if x, z, err := ParseRegionFilename(path); err == nil {
		region.X, region.Z = x, z
	}
	for z := 0; z < RegionDimension; z++ {
		for x := 0; x < RegionDimension; x++ {
			entry := region.Chunk(x, z)
			entry.Offset, entry.SectorCount = reader.Location(x, z)
			entry.Timestamp = reader.Timestamp(x, z)
		}
	}
	return region
}

// LoadChunk reads a single chunk from a region file without parsing the
// whole directory: one seek for the location entry, one for the
// payload. Returns ErrNoChunk when the slot is empty.
func LoadChunk(path string, localX, localZ int) (*nbt.Node, error) {
	if localX < 0 || localX >= RegionDimension || localZ < 0 || localZ >= RegionDimension {
		return nil, fmt.Errorf("anvil: local chunk %d,%d out of range", localX, localZ)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if _, err = file.Seek(int64(ChunkIndex(localX, localZ))*4, io.SeekStart); err != nil {
		return nil, fmt.Errorf("anvil: failed to seek: %w", err)
	}
	var entry [4]byte
	if _, err = io.ReadFull(file, entry[:]); err != nil {
		return nil, fmt.Errorf("anvil: could not read location entry: %w", err)
	}
	offset := binary.BigEndian.Uint32(entry[:]) >> 8
	if offset == 0 {
		return nil, ErrNoChunk
	}

	if _, err = file.Seek(int64(offset)*sectorSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("anvil: failed to seek: %w", err)
	}
	payloadHeader := make([]byte, 5)
	if _, err = io.ReadFull(file, payloadHeader); err != nil {
		return nil, fmt.Errorf("anvil: could not read payload header: %w", err)
	}
	length := int32(binary.BigEndian.Uint32(payloadHeader))
	if length < 1 {
		return nil, ErrInvalidChunkLength
	}
	compressed := make([]byte, length-1)
	if _, err = io.ReadFull(file, compressed); err != nil {
		return nil, fmt.Errorf("anvil: could not read payload data: %w", err)
	}

	data, err := Decompress(compressed, CompressionType(payloadHeader[4]))
	if err != nil {
		return nil, err
	}
	return nbt.Read(data)
}

// LoadChunkFromWorld composes the coordinate algebra with the region
// folder layout to load the chunk at world chunk coordinates (cx, cz).
func LoadChunkFromWorld(regionFolder string, chunkX, chunkZ int) (*nbt.Node, error) {
	regionX, regionZ := ChunkToRegion(chunkX, chunkZ)
	localX, localZ := ChunkToLocal(chunkX, chunkZ)
	path := filepath.Join(regionFolder, RegionFilename(regionX, regionZ))
	return LoadChunk(path, localX, localZ)
}
