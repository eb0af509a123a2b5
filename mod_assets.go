package tweakview

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gekko3d/tweakview/render/core"
)

type AssetId string

type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	}
	return fmt.Sprintf("LoadState(%d)", int(s))
}

// MeshLoader decodes a mesh file. Implementations must honour ctx cancellation
// where they can; the server also gives up on its own when the timeout expires.
type MeshLoader interface {
	Load(ctx context.Context, path string) (*core.Mesh, error)
}

type MeshAsset struct {
	Path   string
	State  LoadState
	Err    error
	Mesh   *core.Mesh
	Bounds core.AABB
}

type loadRequest struct {
	id   AssetId
	path string
}

type loadResult struct {
	id   AssetId
	mesh *core.Mesh
	err  error
}

// AssetServer owns every mesh in the viewer. File-backed meshes go through
// Pending -> Ready | Failed; the transition is applied by Poll on the frame thread.
type AssetServer struct {
	meshes  map[AssetId]*MeshAsset
	loader  MeshLoader
	root    string
	timeout time.Duration
	context func() context.Context

	queued  []loadRequest
	results chan loadResult
	running int
}

type AssetServerModule struct {
	Root    string
	Loader  MeshLoader
	Timeout time.Duration
}

func NewAssetServer(root string, loader MeshLoader, timeout time.Duration) *AssetServer {
	if loader == nil {
		loader = GLBLoader{}
	}
	return &AssetServer{
		meshes:  make(map[AssetId]*MeshAsset),
		loader:  loader,
		root:    root,
		timeout: timeout,
		context: context.Background,
		results: make(chan loadResult, 8),
	}
}

func (m AssetServerModule) Install(app *App, cmd *Commands) {
	server := NewAssetServer(m.Root, m.Loader, m.Timeout)
	server.context = app.Context
	cmd.AddResources(server)
	app.UseSystem(
		System(assetPollSystem).
			InStage(PreUpdate),
	)
}

// CreateMesh registers an in-memory mesh, ready immediately.
func (server *AssetServer) CreateMesh(mesh *core.Mesh) AssetId {
	id := makeAssetId()
	server.meshes[id] = &MeshAsset{
		State:  LoadReady,
		Mesh:   mesh,
		Bounds: mesh.Bounds(),
	}
	return id
}

// LoadMesh registers a file-backed mesh in the Pending state. The decode starts
// on the next Poll, relative to the server root unless path is absolute.
func (server *AssetServer) LoadMesh(path string) AssetId {
	if !filepath.IsAbs(path) && server.root != "" {
		path = filepath.Join(server.root, path)
	}
	id := makeAssetId()
	server.meshes[id] = &MeshAsset{Path: path, State: LoadPending}
	server.queued = append(server.queued, loadRequest{id: id, path: path})
	return id
}

func (server *AssetServer) Mesh(id AssetId) (*MeshAsset, bool) {
	asset, ok := server.meshes[id]
	return asset, ok
}

// State reports LoadFailed for unknown ids.
func (server *AssetServer) State(id AssetId) LoadState {
	if asset, ok := server.meshes[id]; ok {
		return asset.State
	}
	return LoadFailed
}

// Pending is the number of loads not yet resolved.
func (server *AssetServer) Pending() int {
	return len(server.queued) + server.running
}

// Poll starts queued loads and applies finished ones without blocking. It
// returns the number of assets that changed state.
func (server *AssetServer) Poll(logger Logger) int {
	for _, req := range server.queued {
		server.start(req)
	}
	server.queued = server.queued[:0]

	changed := 0
	for {
		select {
		case res := <-server.results:
			server.running--
			server.apply(res, logger)
			changed++
		default:
			return changed
		}
	}
}

func (server *AssetServer) start(req loadRequest) {
	ctx := server.context()
	var cancel context.CancelFunc
	if server.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, server.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	server.running++

	go func() {
		defer cancel()
		done := make(chan loadResult, 1)
		go func() {
			mesh, err := server.loader.Load(ctx, req.path)
			done <- loadResult{id: req.id, mesh: mesh, err: err}
		}()

		var res loadResult
		select {
		case res = <-done:
		case <-ctx.Done():
			res = loadResult{id: req.id, err: ctx.Err()}
		}
		server.results <- res
	}()
}

func (server *AssetServer) apply(res loadResult, logger Logger) {
	asset, ok := server.meshes[res.id]
	if !ok || asset.State != LoadPending {
		return
	}
	if res.err == nil && res.mesh == nil {
		res.err = ErrNoMeshes
	}
	if res.err != nil {
		asset.State = LoadFailed
		asset.Err = fmt.Errorf("load %s: %w", asset.Path, res.err)
		logger.Errorf("%v", asset.Err)
		return
	}

	res.mesh.ComputeNormals()
	asset.Mesh = res.mesh
	asset.Bounds = res.mesh.Bounds()
	asset.State = LoadReady
	logger.Infof("Loaded %s: %d vertices, %d triangles", asset.Path, len(res.mesh.Positions), len(res.mesh.Indices)/3)
}

func assetPollSystem(cmd *Commands, server *AssetServer) {
	server.Poll(cmd.Logger())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
