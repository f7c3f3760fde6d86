package material

// Sampler uniform names. A descriptor's name selects the sampler it is bound to.
const (
	SamplerDiffuse   = "texture_diffuse"
	SamplerNormal    = "texture_normal"
	SamplerShadowMap = "shadow_map"
)

// Descriptor pairs a texture with the sampler uniform it binds to. Descriptors never own
// their texture; the shadow map in particular is shared by every receiving object.
type Descriptor struct {
	Texture Texture
	Name    string
}

// HasSampler reports whether any descriptor binds to the named sampler.
func HasSampler(descriptors []Descriptor, name string) bool {
	for _, d := range descriptors {
		if d.Name == name {
			return true
		}
	}
	return false
}
