package support

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungaromakker/battlearena/internal/voxel"
)

func buildColumn(t *testing.T, height int) *voxel.Tree {
	t.Helper()
	tree := voxel.NewTree()
	tree.Place(voxel.C(0, 0, 0), voxel.NewCell(1, voxel.FlagTerrainAnchored))
	for y := 1; y < height; y++ {
		tree.Place(voxel.C(0, int32(y), 0), voxel.NewCell(1, 0))
	}
	return tree
}

func TestSolveColumnFullySupported(t *testing.T) {
	tree := buildColumn(t, 3)
	job := BuildJob(tree, tree.Revision(), ReasonManual, []voxel.Coord{voxel.C(0, 0, 0)})
	res := Solve(job)
	assert.Empty(t, res.Unsupported)
}

// TestSolveColumnUnsupportedAfterBaseRemoval builds a column short enough
// that every cell falls within the region-expansion window around the
// removed base cell (SupportRegionExpandVox), matching scenario S3.
func TestSolveColumnUnsupportedAfterBaseRemoval(t *testing.T) {
	height := int(SupportRegionExpandVox) + 1
	tree := buildColumn(t, height)
	removed, ok := tree.Remove(voxel.C(0, 0, 0))
	require.True(t, ok)
	_ = removed

	job := BuildJob(tree, tree.Revision(), ReasonRemove, []voxel.Coord{voxel.C(0, 0, 0)})
	res := Solve(job)

	want := map[voxel.Coord]bool{}
	for y := 1; y < height; y++ {
		want[voxel.C(0, int32(y), 0)] = true
	}
	assert.Len(t, res.Unsupported, len(want))
	for _, c := range res.Unsupported {
		assert.True(t, want[c], "unexpected unsupported coord %v", c)
	}
}

func TestSolveGroundLevelAlwaysAnchored(t *testing.T) {
	tree := voxel.NewTree()
	tree.Place(voxel.C(5, 0, 5), voxel.NewCell(1, 0)) // y<=0, no explicit flag
	job := BuildJob(tree, tree.Revision(), ReasonManual, []voxel.Coord{voxel.C(5, 0, 5)})
	res := Solve(job)
	assert.Empty(t, res.Unsupported)
}

func TestWorkerRoundTrip(t *testing.T) {
	w := NewWorker(4)
	defer w.Stop()

	height := int(SupportRegionExpandVox) + 1
	tree := buildColumn(t, height)
	tree.Remove(voxel.C(0, 0, 0))
	job := BuildJob(tree, tree.Revision(), ReasonRemove, []voxel.Coord{voxel.C(0, 0, 0)})

	require.True(t, w.Submit(job))

	select {
	case res := <-w.Results():
		assert.Equal(t, job.Revision, res.Revision)
		assert.Len(t, res.Unsupported, height-1)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not produce a result in time")
	}
}
