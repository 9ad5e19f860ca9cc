package scene

import (
	"errors"
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kuhatje/Spur-AMP/internal/planner/geometry"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
)

// ErrExportFailure reports that the binary model could not be produced. The
// building is never affected.
var ErrExportFailure = errors.New("3d export failed")

// ============================================================
// GLB export
// ============================================================

// ExportGLB writes the scene as a binary glTF 2.0 file.
func ExportGLB(sc *Scene, w io.Writer) error {
	doc, err := Document(sc)
	if err != nil {
		return err
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	return nil
}

// Document builds the glTF document of a scene: one node and mesh per solid,
// one solid-color material per panel type. Model (x, y, z) maps to glTF
// (x, z, -y) so the elevation axis becomes Y up.
func Document(sc *Scene) (*gltf.Document, error) {
	if sc == nil {
		return nil, fmt.Errorf("%w: scene is nil", ErrExportFailure)
	}
	doc := gltf.NewDocument()
	materials := make(map[layout.PanelType]int)

	for _, s := range sc.Solids {
		mesh, err := Extrude(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailure, err)
		}

		mat, ok := materials[s.Kind]
		if !ok {
			mat = len(doc.Materials)
			doc.Materials = append(doc.Materials, material(string(s.Kind), s.Color))
			materials[s.Kind] = mat
		}

		positions := make([][3]float32, len(mesh.Positions))
		normals := make([][3]float32, len(mesh.Normals))
		for i := range mesh.Positions {
			positions[i] = toGLTF(mesh.Positions[i])
			normals[i] = toGLTF(mesh.Normals[i])
		}

		prim := &gltf.Primitive{
			Indices: gltf.Index(modeler.WriteIndices(doc, mesh.Indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
			Material: gltf.Index(mat),
		}
		name := fmt.Sprintf("%s_S%d_%d_%d", s.Kind, s.Story+1, s.X, s.Y)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc, nil
}

func toGLTF(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Z), float32(-v.Y)}
}

func material(name, hex string) *gltf.Material {
	r, g, b, ok := geometry.RGB(hex)
	if !ok {
		r, g, b = 0xA0, 0xA0, 0xA0
	}
	return &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1},
			MetallicFactor:  gltf.Float(0.1),
			RoughnessFactor: gltf.Float(0.7),
		},
	}
}
