package anvil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/astei/anvilnbt/nbt"
	"github.com/sirupsen/logrus"
)

// ChunkCoord addresses a chunk in world chunk coordinates.
type ChunkCoord struct {
	X int
	Z int
}

// World is every chunk tree of a region folder, keyed by world chunk
// coordinates.
type World struct {
	chunks map[ChunkCoord]*nbt.Node
}

// OpenWorld scans root for .mca files and loads them all, one goroutine
// per region file. Regions that fail to load are logged and skipped;
// within a region the usual per-chunk recovery applies.
func OpenWorld(root string) (world *World, err error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".mca") {
			paths = append(paths, filepath.Join(root, entry.Name()))
		}
	}

	var wg sync.WaitGroup
	wg.Add(len(paths))
	resultChan := make(chan *Region, len(paths))
	for _, path := range paths {
		go func(path string) {
			defer wg.Done()
			region, err := LoadRegion(path)
			if err != nil {
				logrus.WithError(err).Warnf("anvil: unable to read region %s", path)
				return
			}
			resultChan <- region
		}(path)
	}

	wg.Wait()
	close(resultChan)

	allChunks := make(map[ChunkCoord]*nbt.Node)
	for region := range resultChan {
		for z := 0; z < RegionDimension; z++ {
			for x := 0; x < RegionDimension; x++ {
				entry := region.Chunk(x, z)
				if entry.Data == nil {
					continue
				}
				coord := ChunkCoord{
					X: region.X*RegionDimension + x,
					Z: region.Z*RegionDimension + z,
				}
				allChunks[coord] = entry.Data
			}
		}
	}
	return &World{chunks: allChunks}, nil
}

// Chunk returns the tree at world chunk coordinates, or nil.
func (w *World) Chunk(cx, cz int) *nbt.Node {
	return w.chunks[ChunkCoord{X: cx, Z: cz}]
}

// Len is the number of loaded chunks.
func (w *World) Len() int {
	return len(w.chunks)
}

// Coords lists the loaded chunk coordinates in no particular order.
func (w *World) Coords() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(w.chunks))
	for coord := range w.chunks {
		coords = append(coords, coord)
	}
	return coords
}
