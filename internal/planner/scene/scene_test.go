package scene

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhatje/Spur-AMP/internal/planner/geometry"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
)

func sampleBuilding(t *testing.T) *layout.Building {
	t.Helper()
	b := layout.New()
	require.NoError(t, b.FillPerimeter(0))
	require.NoError(t, b.FillFloor(0))
	b.AddStory()
	require.NoError(t, b.AddPanel(2, 3, layout.StructuralPanel, layout.Rot90))
	require.NoError(t, b.AddPanel(4, 4, layout.CornerPanel, layout.Rot270))
	return b
}

func TestBuildCounts(t *testing.T) {
	sc := Build(sampleBuilding(t), DefaultConfig())

	require.Len(t, sc.Plates, 2)
	assert.Equal(t, PlateGround, sc.Plates[0].Style)
	assert.Equal(t, PlateActive, sc.Plates[1].Style)
	assert.True(t, sc.Plates[1].Dashed)
	assert.InDelta(t, PreviewStoryHeight, sc.Plates[1].Elevation, 1e-12)

	// 36 perimeter + 100 floor + 2 upper
	assert.Len(t, sc.Solids, 138)
	assert.Equal(t, 10, sc.Width)
	assert.Equal(t, 10, sc.Height)
}

func TestBuildDeterministic(t *testing.T) {
	b := sampleBuilding(t)
	first := Build(b, DefaultConfig())
	second := Build(b.Clone(), DefaultConfig())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("scene differs between equal snapshots (-first +second):\n%s", diff)
	}
}

func TestBuildDoesNotMutate(t *testing.T) {
	b := sampleBuilding(t)
	before := b.Clone()
	Build(b, DefaultConfig())
	for i, s := range b.Stories() {
		assert.Equal(t, before.Stories()[i].Cells(), s.Cells())
	}
}

func TestSortOrder(t *testing.T) {
	sc := Build(sampleBuilding(t), DefaultConfig())
	for i := 1; i < len(sc.Solids); i++ {
		prev, cur := sc.Solids[i-1].SortKey, sc.Solids[i].SortKey
		if prev.Story == cur.Story {
			assert.GreaterOrEqual(t, prev.Depth, cur.Depth)
		} else {
			assert.Greater(t, prev.Story, cur.Story)
		}
	}
}

func TestStructuralEdges(t *testing.T) {
	cases := map[layout.Orientation]geometry.Box{
		layout.Rot0:   {X: 2, Y: 3, Width: 1, Depth: PanelThickness},
		layout.Rot90:  {X: 2, Y: 3, Width: PanelThickness, Depth: 1},
		layout.Rot180: {X: 2, Y: 4 - PanelThickness, Width: 1, Depth: PanelThickness},
		layout.Rot270: {X: 3 - PanelThickness, Y: 3, Width: PanelThickness, Depth: 1},
	}
	for rot, want := range cases {
		b := layout.New()
		require.NoError(t, b.AddPanel(2, 3, layout.StructuralPanel, rot))
		sc := Build(b, DefaultConfig())
		require.Len(t, sc.Solids, 1)

		got := sc.Solids[0].Boxes
		require.Len(t, got, 1)
		want.Z = FloorThickness
		want.Height = PreviewStoryHeight - FloorThickness
		assert.InDelta(t, want.X, got[0].X, 1e-12, "rotation %d", rot)
		assert.InDelta(t, want.Y, got[0].Y, 1e-12, "rotation %d", rot)
		assert.InDelta(t, want.Width, got[0].Width, 1e-12, "rotation %d", rot)
		assert.InDelta(t, want.Depth, got[0].Depth, 1e-12, "rotation %d", rot)
		assert.InDelta(t, want.Z, got[0].Z, 1e-12)
		assert.InDelta(t, want.Height, got[0].Height, 1e-12)
		assert.Len(t, sc.Solids[0].Faces, 3)
	}
}

func TestCornerDecompositionMatchesExtrusion(t *testing.T) {
	for _, rot := range []layout.Orientation{layout.Rot0, layout.Rot90, layout.Rot180, layout.Rot270} {
		b := layout.New()
		require.NoError(t, b.AddPanel(1, 1, layout.CornerPanel, rot))
		s := Build(b, DefaultConfig()).Solids[0]

		require.Len(t, s.Footprint, 6)
		require.Len(t, s.Boxes, 2)
		assert.Len(t, s.Faces, 6)

		var boxArea float64
		for _, box := range s.Boxes {
			boxArea += box.Width * box.Depth
			assert.InDelta(t, s.Base, box.Z, 1e-12)
			assert.InDelta(t, s.Top, box.Z+box.Height, 1e-12)
		}
		assert.InDelta(t, geometry.Area(s.Footprint), boxArea, 1e-9, "rotation %d", rot)
	}
}

func TestFloorSlabAndLegacySkip(t *testing.T) {
	b := layout.New()
	require.NoError(t, b.ActiveStory().Restore(layout.PanelInstance{Type: layout.LegacyWindowPanel, X: 0, Y: 0}))
	require.NoError(t, b.AddPanel(0, 0, layout.FloorPanel, layout.Rot0))

	sc := Build(b, Config{})
	require.Len(t, sc.Solids, 1)
	s := sc.Solids[0]
	assert.Equal(t, layout.FloorPanel, s.Kind)
	assert.Equal(t, "#8FBC8F", s.Color)
	assert.InDelta(t, 0, s.Base, 1e-12)
	assert.InDelta(t, FloorThickness, s.Top, 1e-12)
}

func TestExtrude(t *testing.T) {
	b := layout.New()
	require.NoError(t, b.AddPanel(0, 0, layout.CornerPanel, layout.Rot0))
	require.NoError(t, b.AddPanel(1, 0, layout.FloorPanel, layout.Rot0))
	sc := Build(b, DefaultConfig())

	for _, s := range sc.Solids {
		m, err := Extrude(s)
		require.NoError(t, err)
		n := len(s.Footprint)
		wantTris := 2*(n-2) + 2*n
		assert.Len(t, m.Indices, 3*wantTris, "%s", s.Kind)
		assert.Len(t, m.Normals, len(m.Positions))
		for _, nv := range m.Normals {
			assert.InDelta(t, 1, math.Sqrt(nv.X*nv.X+nv.Y*nv.Y+nv.Z*nv.Z), 1e-9)
		}
	}
}

func TestExportGLB(t *testing.T) {
	sc := Build(sampleBuilding(t), DefaultConfig())

	doc, err := Document(sc)
	require.NoError(t, err)
	assert.Len(t, doc.Meshes, len(sc.Solids))
	assert.Len(t, doc.Materials, 3)
	assert.Len(t, doc.Scenes[0].Nodes, len(sc.Solids))

	var buf bytes.Buffer
	require.NoError(t, ExportGLB(sc, &buf))
	data := buf.Bytes()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "glTF", string(data[:4]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[4:8]))
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[8:12]))
}

func TestToGLTFFrame(t *testing.T) {
	got := toGLTF(vec(geometry.Point{X: 1, Y: 2}, 3))
	assert.Equal(t, [3]float32{1, 3, -2}, got)
}
