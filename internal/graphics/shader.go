package graphics

import (
	"errors"
	"fmt"

	"mini-engine/internal/logging"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrCompile        = errors.New("shader compile failed")
	ErrLink           = errors.New("shader link failed")
	ErrAttributeSlots = errors.New("attribute slots are not contiguous")
)

// Attribute binds a vertex attribute name to a fixed slot.
type Attribute struct {
	Slot uint32
	Name string
}

// ShaderLayout describes one shader variant: its sources, the attribute
// slot table and the uniforms it needs resolved.
type ShaderLayout interface {
	Name() string
	Sources() (vertex, fragment string)
	Attributes() []Attribute
	Uniforms() []string
}

// ShaderProgram is a linked program with its uniform locations resolved.
type ShaderProgram struct {
	api       ShaderAPI
	id        ProgramID
	name      string
	locations map[string]int32
	deleted   bool
}

// NewShaderProgram compiles, binds attributes, links and resolves the
// uniforms of a layout. Missing uniforms are logged, not fatal.
func NewShaderProgram(api ShaderAPI, layout ShaderLayout, log logging.Logger) (*ShaderProgram, error) {
	attrs := layout.Attributes()
	if err := checkSlots(attrs); err != nil {
		return nil, fmt.Errorf("%s: %w", layout.Name(), err)
	}

	vs, fs := layout.Sources()
	id, err := api.LoadProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", layout.Name(), err)
	}

	for _, a := range attrs {
		api.BindAttributeLocation(id, a.Slot, a.Name)
	}

	if err := api.LinkProgram(id); err != nil {
		api.DeleteProgram(id)
		return nil, fmt.Errorf("%s: %w", layout.Name(), err)
	}

	p := &ShaderProgram{
		api:       api,
		id:        id,
		name:      layout.Name(),
		locations: make(map[string]int32, len(layout.Uniforms())),
	}
	for _, u := range layout.Uniforms() {
		loc := api.GetUniformLocation(id, u)
		if loc < 0 {
			log.Warnf("%s: uniform %q not found", layout.Name(), u)
		}
		p.locations[u] = loc
	}
	return p, nil
}

func checkSlots(attrs []Attribute) error {
	for i, a := range attrs {
		if a.Slot != uint32(i) {
			return fmt.Errorf("%w: %q has slot %d, expected %d", ErrAttributeSlots, a.Name, a.Slot, i)
		}
	}
	return nil
}

// ID returns the backend program id.
func (p *ShaderProgram) ID() ProgramID { return p.id }

// Location returns the resolved location of a uniform, -1 if unknown.
func (p *ShaderProgram) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return -1
}

func (p *ShaderProgram) Start() { p.api.Start(p.id) }
func (p *ShaderProgram) Stop()  { p.api.Stop() }

// Uniform setters skip unresolved locations.

func (p *ShaderProgram) SetInt(name string, v int32) {
	if loc := p.Location(name); loc >= 0 {
		p.api.LoadInt(loc, v)
	}
}

func (p *ShaderProgram) SetFloat(name string, v float32) {
	if loc := p.Location(name); loc >= 0 {
		p.api.LoadFloat(loc, v)
	}
}

func (p *ShaderProgram) SetVector(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc >= 0 {
		p.api.LoadVector(loc, v)
	}
}

func (p *ShaderProgram) SetColorRGB(name string, v mgl32.Vec3) {
	if loc := p.Location(name); loc >= 0 {
		p.api.LoadColorRGB(loc, v)
	}
}

func (p *ShaderProgram) SetColorRGBA(name string, v mgl32.Vec4) {
	if loc := p.Location(name); loc >= 0 {
		p.api.LoadColorRGBA(loc, v)
	}
}

func (p *ShaderProgram) SetBool(name string, v bool) {
	if loc := p.Location(name); loc >= 0 {
		p.api.LoadBoolean(loc, v)
	}
}

func (p *ShaderProgram) SetMatrix(name string, v mgl32.Mat4) {
	if loc := p.Location(name); loc >= 0 {
		p.api.LoadMatrix(loc, v)
	}
}

// Delete releases the program. Safe to call more than once.
func (p *ShaderProgram) Delete() {
	if p == nil || p.deleted {
		return
	}
	p.deleted = true
	p.api.DeleteProgram(p.id)
}
