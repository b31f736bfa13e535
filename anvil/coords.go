package anvil

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// RegionDimension is the width of a region in chunks on each axis.
const RegionDimension = 32

// ChunkToRegion maps world chunk coordinates to the region file that
// holds them. Division is floored so negative coordinates round toward
// minus infinity; truncation would misplace every chunk in the negative
// quadrants.
func ChunkToRegion(cx, cz int) (int, int) {
	return floorDiv(cx, RegionDimension), floorDiv(cz, RegionDimension)
}

// ChunkToLocal maps world chunk coordinates to the chunk's slot within
// its region, each axis in [0, 31].
func ChunkToLocal(cx, cz int) (int, int) {
	return floorMod(cx, RegionDimension), floorMod(cz, RegionDimension)
}

// ChunkIndex returns the location-table index of a local chunk slot.
// It is a bijection from [0,31]² onto [0, 1023].
func ChunkIndex(localX, localZ int) int {
	return localZ*RegionDimension + localX
}

// RegionFilename names the region file for the given region
// coordinates, r.<x>.<z>.mca.
func RegionFilename(regionX, regionZ int) string {
	return fmt.Sprintf("r.%d.%d.mca", regionX, regionZ)
}

// ParseRegionFilename recovers the region coordinates from a path ending
// in r.<x>.<z>.mca.
func ParseRegionFilename(path string) (int, int, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".mca")
	parts := strings.Split(base, ".")
	if len(parts) != 3 || parts[0] != "r" {
		return 0, 0, fmt.Errorf("anvil: %q is not a region filename", filepath.Base(path))
	}
	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("anvil: %q is not a region filename", filepath.Base(path))
	}
	z, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, fmt.Errorf("anvil: %q is not a region filename", filepath.Base(path))
	}
	return x, z, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}
