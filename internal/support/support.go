// Package support implements the structural-support solver: flood-fill
// from terrain anchors through 6-connectivity to find voxel cells that lost
// their path to the ground after a destructive edit (spec.md §4.2). The
// worker runs on its own goroutine with one command channel and one result
// channel, grounded on the jobCh/resCh worker-pool pattern used for
// particle emission and the pendingSectors background-write idiom used by
// the streaming world loader.
package support

import "github.com/hungaromakker/battlearena/internal/voxel"

// SupportRegionExpandVox expands the changed-coords AABB on every axis when
// building a region snapshot (spec.md §6).
const SupportRegionExpandVox int32 = 2

// SupportRegionCellCap is the cell-count threshold past which a job also
// carries a full-world fallback snapshot (spec.md §6).
const SupportRegionCellCap = 8192

// Reason names why a support recheck was requested.
type Reason uint8

const (
	ReasonRemove Reason = iota
	ReasonDamage
	ReasonManual
)

// RegionCell is one occupied cell inside a job's region snapshot.
type RegionCell struct {
	Coord voxel.Coord
	Flags voxel.CellFlags
}

// Job is the unit of work handed to the worker: a revision-stamped region
// snapshot plus boundary-supported markers (spec.md §4.2 step 4).
type Job struct {
	Revision          uint64
	Reason            Reason
	ChangedCoords     []voxel.Coord
	RegionMin         voxel.Coord
	RegionMax         voxel.Coord
	OccupiedRegion    []RegionCell
	BoundarySupported map[voxel.Coord]struct{}
	FullWorldFallback []RegionCell // non-nil only if region exceeded SupportRegionCellCap
}

// Result is what the worker (or the inline fallback) produces: the set of
// cells found unsupported, stamped with the job's revision so stale results
// can be detected and dropped.
type Result struct {
	Revision    uint64
	Reason      Reason
	Unsupported []voxel.Coord
}

// Solve runs the flood-fill algorithm against a job's region snapshot. It
// is pure and cannot fail (spec.md §4.2 step 5, §7 E-kind-2/4): anchored =
// cells flagged TERRAIN_ANCHORED, or at y<=0, or marked boundary-supported;
// flood 6-connectivity from anchored over the occupied region; unsupported
// is whatever occupied cells the flood never reached.
func Solve(job Job) Result {
	cells := job.OccupiedRegion
	useBoundary := true
	if job.FullWorldFallback != nil {
		cells = job.FullWorldFallback
		useBoundary = false
	}

	occupied := make(map[voxel.Coord]voxel.CellFlags, len(cells))
	for _, rc := range cells {
		occupied[rc.Coord] = rc.Flags
	}

	reached := make(map[voxel.Coord]struct{})
	queue := make([]voxel.Coord, 0, len(occupied))

	for c, flags := range occupied {
		anchored := flags&voxel.FlagTerrainAnchored != 0 || c.Y <= 0
		if !anchored && useBoundary {
			if _, ok := job.BoundarySupported[c]; ok {
				anchored = true
			}
		}
		if anchored {
			if _, seen := reached[c]; !seen {
				reached[c] = struct{}{}
				queue = append(queue, c)
			}
		}
	}

	for len(queue) > 0 {
		c := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, n := range c.Neighbours6() {
			if _, isOccupied := occupied[n]; !isOccupied {
				continue
			}
			if _, seen := reached[n]; seen {
				continue
			}
			reached[n] = struct{}{}
			queue = append(queue, n)
		}
	}

	var unsupported []voxel.Coord
	for c := range occupied {
		if _, ok := reached[c]; !ok {
			unsupported = append(unsupported, c)
		}
	}

	return Result{Revision: job.Revision, Reason: job.Reason, Unsupported: unsupported}
}

// BuildJob assembles a region snapshot around changedCoords from tree,
// expanding the AABB by SupportRegionExpandVox and marking boundary-supported
// cells (region cells with an occupied 6-neighbour outside the region).
func BuildJob(tree *voxel.Tree, revision uint64, reason Reason, changedCoords []voxel.Coord) Job {
	if len(changedCoords) == 0 {
		return Job{Revision: revision, Reason: reason}
	}

	min, max := changedCoords[0], changedCoords[0]
	for _, c := range changedCoords[1:] {
		min = minCoord(min, c)
		max = maxCoord(max, c)
	}
	min = voxel.C(min.X-SupportRegionExpandVox, min.Y-SupportRegionExpandVox, min.Z-SupportRegionExpandVox)
	max = voxel.C(max.X+SupportRegionExpandVox, max.Y+SupportRegionExpandVox, max.Z+SupportRegionExpandVox)

	var region []RegionCell
	boundary := make(map[voxel.Coord]struct{})

	forEachCoordIn(min, max, func(c voxel.Coord) {
		cell, ok := tree.Get(c)
		if !ok {
			return
		}
		region = append(region, RegionCell{Coord: c, Flags: cell.Flags})
		for _, n := range c.Neighbours6() {
			if insideBox(n, min, max) {
				continue
			}
			if tree.Contains(n) {
				boundary[c] = struct{}{}
			}
		}
	})

	job := Job{
		Revision:          revision,
		Reason:            reason,
		ChangedCoords:     append([]voxel.Coord(nil), changedCoords...),
		RegionMin:         min,
		RegionMax:         max,
		OccupiedRegion:    region,
		BoundarySupported: boundary,
	}

	if len(region) > SupportRegionCellCap {
		job.FullWorldFallback = fullWorldSnapshot(tree)
	}
	return job
}

func fullWorldSnapshot(tree *voxel.Tree) []RegionCell {
	var out []RegionCell
	for _, chunk := range tree.ChunkCoords() {
		brick := tree.BrickAt(chunk)
		if brick == nil {
			continue
		}
		brick.Each(func(local [3]int, cell voxel.Cell) {
			out = append(out, RegionCell{Coord: chunk.Coord(local), Flags: cell.Flags})
		})
	}
	return out
}

func forEachCoordIn(min, max voxel.Coord, fn func(voxel.Coord)) {
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				fn(voxel.C(x, y, z))
			}
		}
	}
}

func insideBox(c, min, max voxel.Coord) bool {
	return c.X >= min.X && c.X <= max.X && c.Y >= min.Y && c.Y <= max.Y && c.Z >= min.Z && c.Z <= max.Z
}

func minCoord(a, b voxel.Coord) voxel.Coord {
	return voxel.C(minI(a.X, b.X), minI(a.Y, b.Y), minI(a.Z, b.Z))
}

func maxCoord(a, b voxel.Coord) voxel.Coord {
	return voxel.C(maxI(a.X, b.X), maxI(a.Y, b.Y), maxI(a.Z, b.Z))
}

func minI(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxI(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
