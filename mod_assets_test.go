package tweakview

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/tweakview/render/core"
)

// fakeLoader serves meshes from memory. Paths listed in block wait for ctx.
type fakeLoader struct {
	mu     sync.Mutex
	meshes map[string]*core.Mesh
	errs   map[string]error
	block  map[string]bool
	calls  []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		meshes: map[string]*core.Mesh{},
		errs:   map[string]error{},
		block:  map[string]bool{},
	}
}

func (l *fakeLoader) Load(ctx context.Context, path string) (*core.Mesh, error) {
	l.mu.Lock()
	l.calls = append(l.calls, path)
	mesh, err, block := l.meshes[path], l.errs[path], l.block[path]
	l.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if mesh == nil {
		return nil, nil
	}
	// hand out a copy so normals computed by the server do not leak between tests
	cp := *mesh
	return &cp, nil
}

func triangleMesh() *core.Mesh {
	return &core.Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}},
		Indices:   []uint32{0, 1, 2},
	}
}

// pollUntilSettled polls until no load is pending, failing after a second.
func pollUntilSettled(t *testing.T, server *AssetServer) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		server.Poll(NewNopLogger())
		if server.Pending() == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("%d loads still pending", server.Pending())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestAssetServer_LoadReady(t *testing.T) {
	loader := newFakeLoader()
	loader.meshes[filepath.Join("root", "tri.glb")] = triangleMesh()
	server := NewAssetServer("root", loader, 0)

	id := server.LoadMesh("tri.glb")
	assert.Equal(t, LoadPending, server.State(id))
	assert.Equal(t, 1, server.Pending())
	assert.Empty(t, loader.calls, "loads start on the first poll")

	pollUntilSettled(t, server)
	asset, ok := server.Mesh(id)
	require.True(t, ok)
	assert.Equal(t, LoadReady, asset.State)
	assert.NoError(t, asset.Err)
	assert.Len(t, asset.Mesh.Normals, 3, "normals are filled in")
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, asset.Bounds.Max)
}

func TestAssetServer_LoadFailed(t *testing.T) {
	loader := newFakeLoader()
	boom := errors.New("boom")
	loader.errs["bad.glb"] = boom
	server := NewAssetServer("", loader, 0)

	bad := server.LoadMesh("bad.glb")
	empty := server.LoadMesh("empty.glb")
	pollUntilSettled(t, server)

	asset, _ := server.Mesh(bad)
	assert.Equal(t, LoadFailed, asset.State)
	assert.ErrorIs(t, asset.Err, boom)
	assert.Nil(t, asset.Mesh)

	asset, _ = server.Mesh(empty)
	assert.Equal(t, LoadFailed, asset.State)
	assert.ErrorIs(t, asset.Err, ErrNoMeshes)

	assert.Equal(t, LoadFailed, server.State(AssetId("unknown")))
}

func TestAssetServer_Timeout(t *testing.T) {
	loader := newFakeLoader()
	loader.block["slow.glb"] = true
	server := NewAssetServer("", loader, 20*time.Millisecond)

	id := server.LoadMesh("slow.glb")
	pollUntilSettled(t, server)

	asset, _ := server.Mesh(id)
	assert.Equal(t, LoadFailed, asset.State)
	assert.ErrorIs(t, asset.Err, context.DeadlineExceeded)
}

func TestAssetServer_CancelledWithAppContext(t *testing.T) {
	loader := newFakeLoader()
	loader.block["slow.glb"] = true
	server := NewAssetServer("", loader, 0)
	ctx, cancel := context.WithCancel(context.Background())
	server.context = func() context.Context { return ctx }

	id := server.LoadMesh("slow.glb")
	server.Poll(NewNopLogger())
	cancel()
	pollUntilSettled(t, server)
	assert.ErrorIs(t, server.meshes[id].Err, context.Canceled)
}

func TestAssetServer_CreateMeshIsReady(t *testing.T) {
	server := NewAssetServer("", newFakeLoader(), 0)
	id := server.CreateCubeMesh()
	assert.Equal(t, LoadReady, server.State(id))
	assert.Zero(t, server.Pending())

	asset, _ := server.Mesh(id)
	assert.Len(t, asset.Mesh.Positions, 24)
	assert.Len(t, asset.Mesh.Indices, 36)
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, asset.Bounds.Min)
}

func TestGLBLoader_InvalidPath(t *testing.T) {
	_, err := GLBLoader{}.Load(context.Background(), filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}

func TestGLBLoader_RoundTrip(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "root", Children: []int{1}, Translation: [3]float64{0, 0, 5}},
		{Name: "tri", Mesh: gltf.Index(0), Scale: [3]float64{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = []int{0}

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	mesh, err := GLBLoader{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, mesh.Positions, 3)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)

	b := mesh.Bounds()
	assert.InDelta(t, 2, b.Max.X(), 1e-5, "child scale is baked in")
	assert.InDelta(t, 4, b.Max.Y(), 1e-5)
	assert.InDelta(t, 5, b.Min.Z(), 1e-5, "parent translation is baked in")
}

func TestGLBLoader_NoTriangles(t *testing.T) {
	doc := gltf.NewDocument()
	path := filepath.Join(t.TempDir(), "empty.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))

	_, err := GLBLoader{}.Load(context.Background(), path)
	assert.ErrorIs(t, err, ErrNoMeshes)
}
