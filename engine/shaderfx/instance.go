package shaderfx

import "github.com/Yinigma/Pibald/engine/expr"

// ExternalShaderValueKind tags which external source a ShaderValueLink
// binds to.
type ExternalShaderValueKind int

const (
	// LinkToColor binds a shader property to a palette color by index.
	LinkToColor ExternalShaderValueKind = iota
	// LinkToAnimationTrack binds a shader property to a named animation
	// control track.
	LinkToAnimationTrack
)

// ShaderValueLink is a toggleable external binding from a shader property
// to a palette color or animation control track.
type ShaderValueLink struct {
	Active       bool
	PropertyName string
	Kind         ExternalShaderValueKind
	ColorIndex   int    // meaningful when Kind == LinkToColor
	TrackName    string // meaningful when Kind == LinkToAnimationTrack
}

// ShaderInstance is one live binding of a Shader: its own property values
// (seeded from the shader's defaults), its external value links, and its
// own expression cache.
type ShaderInstance struct {
	shader     Shader
	Properties *expr.PropertyGroup
	Links      []ShaderValueLink
	Cache      *expr.EvalTable
}

// NewShaderInstance builds a ShaderInstance bound to shader, seeding its
// properties and expression cache from the shader's defaults.
//
// Parameters:
//   - shader: the shader description this instance binds to
//   - links: the instance's external value links
//
// Returns:
//   - *ShaderInstance: the constructed instance
func NewShaderInstance(shader Shader, links []ShaderValueLink) *ShaderInstance {
	return &ShaderInstance{
		shader:     shader,
		Properties: shader.CreatePropertiesInstance(),
		Links:      links,
		Cache:      shader.CreateValueTableInstance(),
	}
}

// SetProperty type-checks and assigns val to the named property.
//
// Parameters:
//   - name: the property name
//   - val: the new value
//
// Returns:
//   - error: a type-mismatch error if name already holds a different kind
func (s *ShaderInstance) SetProperty(name string, val expr.Value) error {
	return s.Properties.Set(name, val)
}

// SetLinkToggle enables or disables the link at index id, a no-op if id is
// out of range.
//
// Parameters:
//   - id: the link's index within Links
//   - active: the new active state
func (s *ShaderInstance) SetLinkToggle(id int, active bool) {
	if id < 0 || id >= len(s.Links) {
		return
	}
	s.Links[id].Active = active
}

// EvalExpressions re-evaluates every expression reachable from the bound
// shader against this instance's current properties, refreshing Cache.
func (s *ShaderInstance) EvalExpressions() {
	s.shader.Eval(s.Properties, s.Cache)
}
