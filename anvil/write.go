package anvil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/astei/anvilnbt/nbt"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// WriteRegion rewrites a region file from scratch. Every chunk with a
// parsed tree is serialized, compressed per its entry's codec (zlib
// when unset), padded to whole sectors and allocated starting at
// sector 2. Location and timestamp tables are rebuilt; the entries'
// Offset and SectorCount fields are updated to match what was written.
// Chunks whose tree never loaded are dropped from the output.
func WriteRegion(path string, region *Region) error {
	header := make([]byte, 2*sectorSize)
	var body bytes.Buffer

	sector := uint32(2)
	for i := range region.Chunks {
		entry := &region.Chunks[i]
		if entry.Data == nil {
			entry.Offset = 0
			entry.SectorCount = 0
			continue
		}

		compression := entry.Compression
		if compression == 0 {
			compression = CompressionZlib
		}
		raw, err := nbt.Write(entry.Data)
		if err != nil {
			return fmt.Errorf("anvil: chunk %d: %w", i, err)
		}
		compressed, err := Compress(raw, compression)
		if err != nil {
			return fmt.Errorf("anvil: chunk %d: %w", i, err)
		}

		blockLen := 4 + 1 + len(compressed)
		sectors := (blockLen + sectorSize - 1) / sectorSize
		if sectors > 0xFF {
			return fmt.Errorf("anvil: chunk %d: payload spans %d sectors", i, sectors)
		}

		var payloadHeader [5]byte
		binary.BigEndian.PutUint32(payloadHeader[:4], uint32(len(compressed)+1))
		payloadHeader[4] = byte(compression)
		body.Write(payloadHeader[:])
		body.Write(compressed)
		if pad := sectors*sectorSize - blockLen; pad > 0 {
			body.Write(make([]byte, pad))
		}

		entry.Offset = sector
		entry.SectorCount = uint8(sectors)
		entry.Compression = compression
		binary.BigEndian.PutUint32(header[i*4:], sector<<8|uint32(sectors))
		binary.BigEndian.PutUint32(header[sectorSize+i*4:], uint32(entry.Timestamp))
		sector += uint32(sectors)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = file.Write(header); err != nil {
		file.Close()
		return err
	}
	if _, err = body.WriteTo(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Compress deflates a chunk payload per the given codec.
func Compress(data []byte, compression CompressionType) ([]byte, error) {
	var out bytes.Buffer
	switch compression {
	case CompressionGzip:
		zw := gzip.NewWriter(&out)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
	case CompressionZlib:
		zw := zlib.NewWriter(&out)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
	case CompressionUncompressed:
		out.Write(data)
	default:
		return nil, UnsupportedCompressionError{ID: compression}
	}
	return out.Bytes(), nil
}
