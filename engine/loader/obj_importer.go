package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// objMaxLineBytes bounds a single OBJ/MTL line.
const objMaxLineBytes = 1 << 20

// objLoaderBackend is the loaderBackend for Wavefront .obj files and their .mtl libraries.
// Polygons are fan-triangulated, identical position/texcoord/normal triples share a vertex,
// and a new mesh starts at every object, group or material change.
type objLoaderBackend struct{}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackend{}
}

func (b *objLoaderBackend) Load(path string) (*common.ImportedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return parseOBJ(f, filepath.Dir(path), name)
}

// objKey identifies a face corner by its 0-based position, texcoord and normal indices (-1 = absent).
type objKey [3]int

type objMeshBuilder struct {
	name          string
	materialIndex int
	vertices      []common.Vertex
	indices       []uint32
	lookup        map[objKey]uint32
	hasNormal     []bool
	missingNormal int
}

func newOBJMeshBuilder(name string, materialIndex int) *objMeshBuilder {
	return &objMeshBuilder{
		name:          name,
		materialIndex: materialIndex,
		lookup:        make(map[objKey]uint32),
	}
}

type objParser struct {
	dir       string
	positions []mgl32.Vec3
	texcoords []mgl32.Vec2
	normals   []mgl32.Vec3

	materials     []common.ImportedMaterial
	materialIndex map[string]int

	group   string
	current *objMeshBuilder
	meshes  []common.ImportedMesh
}

// parseOBJ reads OBJ text from r. mtllib paths resolve against dir.
func parseOBJ(r io.Reader, dir, name string) (*common.ImportedModel, error) {
	p := &objParser{
		dir:           dir,
		materialIndex: make(map[string]int),
	}
	p.current = newOBJMeshBuilder("default", -1)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), objMaxLineBytes)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	p.flush()

	if len(p.meshes) == 0 {
		return nil, fmt.Errorf("no faces found")
	}
	return &common.ImportedModel{
		Name:      name,
		Meshes:    p.meshes,
		Materials: p.materials,
	}, nil
}

func (p *objParser) parseLine(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		p.positions = append(p.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 2)
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		p.texcoords = append(p.texcoords, mgl32.Vec2{v[0], v[1]})
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		p.normals = append(p.normals, mgl32.Vec3{v[0], v[1], v[2]})
	case "f":
		return p.parseFace(fields[1:])
	case "o", "g":
		p.group = strings.Join(fields[1:], " ")
		p.startMesh(p.current.materialIndex)
	case "usemtl":
		idx, ok := p.materialIndex[strings.Join(fields[1:], " ")]
		if !ok {
			idx = -1
		}
		p.startMesh(idx)
	case "mtllib":
		for _, lib := range fields[1:] {
			if err := p.loadMTL(filepath.Join(p.dir, normalizePath(lib))); err != nil {
				return fmt.Errorf("mtllib %s: %w", lib, err)
			}
		}
	}
	return nil
}

func (p *objParser) startMesh(materialIndex int) {
	p.flush()
	name := p.group
	if name == "" {
		name = "default"
	}
	if materialIndex >= 0 {
		name = name + "/" + p.materials[materialIndex].Name
	}
	p.current = newOBJMeshBuilder(name, materialIndex)
}

func (p *objParser) flush() {
	m := p.current
	if m == nil || len(m.indices) == 0 {
		return
	}
	if m.missingNormal > 0 {
		common.Logger().Warn("generating normals for vertices without vn",
			"mesh", m.name, "vertices", m.missingNormal, "total", len(m.vertices))
		generateNormals(m.vertices, m.indices, m.hasNormal)
	}
	p.meshes = append(p.meshes, common.ImportedMesh{
		Name:          m.name,
		Vertices:      m.vertices,
		Indices:       m.indices,
		MaterialIndex: m.materialIndex,
	})
	p.current = nil
}

func (p *objParser) parseFace(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("f: need at least 3 vertices, got %d", len(corners))
	}
	idx := make([]uint32, len(corners))
	for i, c := range corners {
		key, err := p.resolveCorner(c)
		if err != nil {
			return fmt.Errorf("f: %w", err)
		}
		idx[i] = p.vertex(key)
	}
	m := p.current
	for i := 1; i+1 < len(idx); i++ {
		m.indices = append(m.indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// resolveCorner parses "v", "v/vt", "v//vn" or "v/vt/vn", resolving negative indices
// relative to the current end of each list.
func (p *objParser) resolveCorner(corner string) (objKey, error) {
	key := objKey{-1, -1, -1}
	parts := strings.Split(corner, "/")
	if len(parts) > 3 {
		return key, fmt.Errorf("malformed vertex %q", corner)
	}
	counts := [3]int{len(p.positions), len(p.texcoords), len(p.normals)}
	for i, s := range parts {
		if s == "" {
			if i == 0 {
				return key, fmt.Errorf("malformed vertex %q", corner)
			}
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return key, fmt.Errorf("malformed vertex %q", corner)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += counts[i]
		default:
			return key, fmt.Errorf("zero index in %q", corner)
		}
		if n < 0 || n >= counts[i] {
			return key, fmt.Errorf("index out of range in %q", corner)
		}
		key[i] = n
	}
	return key, nil
}

func (p *objParser) vertex(key objKey) uint32 {
	m := p.current
	if idx, ok := m.lookup[key]; ok {
		return idx
	}
	v := common.Vertex{Position: p.positions[key[0]]}
	if key[1] >= 0 {
		v.TexCoord = p.texcoords[key[1]]
	}
	if key[2] >= 0 {
		v.Normal = p.normals[key[2]]
	} else {
		m.missingNormal++
	}
	idx := uint32(len(m.vertices))
	m.vertices = append(m.vertices, v)
	m.hasNormal = append(m.hasNormal, key[2] >= 0)
	m.lookup[key] = idx
	return idx
}

// loadMTL appends the materials of one library. Only diffuse and normal maps are read.
func (p *objParser) loadMTL(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dir := filepath.Dir(path)
	cur := -1
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), objMaxLineBytes)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "newmtl":
			name := strings.Join(fields[1:], " ")
			p.materials = append(p.materials, common.ImportedMaterial{Name: name})
			cur = len(p.materials) - 1
			p.materialIndex[name] = cur
		case "map_kd":
			if cur >= 0 && len(fields) > 1 {
				p.materials[cur].DiffuseTexture = objTexture(dir, fields[len(fields)-1], "diffuse")
			}
		case "map_bump", "bump", "norm":
			if cur >= 0 && len(fields) > 1 {
				p.materials[cur].NormalTexture = objTexture(dir, fields[len(fields)-1], "normal")
			}
		}
	}
	return sc.Err()
}

func objTexture(dir, file, role string) *common.ImportedTexture {
	path := filepath.Join(dir, normalizePath(file))
	return &common.ImportedTexture{
		Name:  role + ":" + filepath.Base(path),
		Path:  path,
		FlipV: true,
	}
}

// normalizePath converts Windows separators found in exported OBJ/MTL files.
func normalizePath(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
