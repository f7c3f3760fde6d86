package scene

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/game_object"
	"github.com/Carmen-Shannon/oxy-gl/engine/loader"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/google/uuid"
)

// Scene manages an ordered collection of GameObjects loaded from one asset file, the model
// that owns their textures, and the transform and shadow flags they are drawn with.
// The scene owns its objects and releases them with itself.
// Scenes can be toggled via the Active flag to hide them without unloading.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently drawn.
	Active() bool

	// SetActive sets whether this scene is drawn.
	SetActive(active bool)

	// Objects returns the objects in load order.
	//
	// Returns:
	//   - []game_object.GameObject: the objects; callers must not modify the slice
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	Count() int

	// Get looks up an object by ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil if the scene has no such object
	Get(id uuid.UUID) game_object.GameObject

	// Add appends an object the scene takes ownership of.
	//
	// Parameters:
	//   - obj: the object to add
	Add(obj game_object.GameObject)

	// AddTexture appends a texture descriptor to every object. The scene does not take
	// ownership of the texture.
	//
	// Parameters:
	//   - tex: the shared texture
	//   - name: the sampler uniform name
	AddTexture(tex material.Texture, name string)

	// Transform returns the transform the scene is placed with.
	Transform() Transform

	// SetTransform replaces the scene's transform.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t Transform)

	// CastsShadows returns whether the scene is drawn into the shadow map.
	CastsShadows() bool

	// ReceivesShadows returns whether the scene's objects sample the shadow map.
	ReceivesShadows() bool

	// Batch returns the scene as a renderer batch at the given elapsed time.
	//
	// Parameters:
	//   - elapsed: seconds since the engine started
	//
	// Returns:
	//   - renderer.Batch: the model matrix, objects and shadow flag
	Batch(elapsed float32) renderer.Batch

	// Release deletes every object's mesh, then the textures the scene's model loaded.
	// Calling Release more than once is a no-op.
	Release()
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	active atomic.Bool

	objects []game_object.GameObject
	byID    map[uuid.UUID]int

	// textures owns every texture referenced by objects loaded from the model file.
	textures *material.TextureCache

	transform       Transform
	castsShadows    bool
	receivesShadows bool
}

var _ Scene = &scene{}

// NewScene creates an empty scene.
//
// Parameters:
//   - name: the scene identifier used in logs
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene, active by default
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:        &sync.RWMutex{},
		name:      name,
		byID:      make(map[uuid.UUID]int),
		transform: Identity,
	}
	s.active.Store(true)
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Load loads an asset file and builds one GameObject per mesh, in file order. Each object
// gets its material's texture descriptors; textures shared between meshes are uploaded once
// and owned by the scene.
//
// Parameters:
//   - l: the loader used to read and upload the file
//   - b: the backend objects draw through
//   - dir: the directory holding the asset and its textures
//   - file: the asset file name
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the loaded scene
//   - error: a *common.AssetLoadError if the file cannot be loaded
func Load(l loader.Loader, b backend.Backend, dir, file string, options ...SceneBuilderOption) (Scene, error) {
	mdl, err := l.Load(dir, file)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", file, err)
	}
	s := NewScene(mdl.Name(), options...).(*scene)
	s.adopt(b, mdl)

	common.Logger().Info("scene loaded", "scene", s.name, "objects", len(s.objects),
		"casts_shadows", s.castsShadows, "receives_shadows", s.receivesShadows)
	return s, nil
}

func (s *scene) adopt(b backend.Backend, mdl model.Model) {
	s.textures = mdl.Textures()
	for _, part := range mdl.DetachParts() {
		var descs []material.Descriptor
		if part.Material != nil {
			descs = part.Material.Descriptors()
		}
		s.Add(game_object.NewGameObject(b, part.Mesh, game_object.WithTextures(descs...)))
	}
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	return s.active.Load()
}

func (s *scene) SetActive(active bool) {
	s.active.Store(active)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Get(id uuid.UUID) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.byID[id]; ok {
		return s.objects[i]
	}
	return nil
}

func (s *scene) Add(obj game_object.GameObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[obj.ID()] = len(s.objects)
	s.objects = append(s.objects, obj)
}

func (s *scene) AddTexture(tex material.Texture, name string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		obj.AddTexture(tex, name)
	}
}

func (s *scene) Transform() Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transform
}

func (s *scene) SetTransform(t Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transform = t
}

func (s *scene) CastsShadows() bool {
	return s.castsShadows
}

func (s *scene) ReceivesShadows() bool {
	return s.receivesShadows
}

func (s *scene) Batch(elapsed float32) renderer.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return renderer.Batch{
		Model:        s.transform.Matrix(elapsed),
		Objects:      s.objects,
		CastsShadows: s.castsShadows,
	}
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range s.objects {
		obj.Release()
	}
	s.objects = nil
	s.byID = make(map[uuid.UUID]int)
	if s.textures != nil {
		s.textures.Release()
		s.textures = nil
	}
}

