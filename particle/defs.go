package particle

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defs_schema.json
var defsSchemaJSON string

//go:embed particles.yaml
var defaultDefsYAML []byte

// defsSchema validates decoded definition documents before any type is
// registered, so a malformed file is rejected as a whole instead of
// half-applied.
var defsSchema = jsonschema.MustCompileString("defs_schema.json", defsSchemaJSON)

// typeDef is the wire form of a particle definition. Durations are
// milliseconds, matching the burning/burns field names in the format.
type typeDef struct {
	Density       *uint32     `yaml:"density,omitempty"`
	MaxVelocity   *uint8      `yaml:"max_velocity,omitempty"`
	Momentum      *bool       `yaml:"momentum,omitempty"`
	Wall          *bool       `yaml:"wall,omitempty"`
	Solid         *bool       `yaml:"solid,omitempty"`
	MovableSolid  *bool       `yaml:"movable_solid,omitempty"`
	Liquid        *int        `yaml:"liquid,omitempty"`
	Gas           *int        `yaml:"gas,omitempty"`
	Colors        []Color     `yaml:"colors,omitempty"`
	ChangesColors *float64    `yaml:"changes_colors,omitempty"`
	Fire          *fireDef    `yaml:"fire,omitempty"`
	Burning       *burningDef `yaml:"burning,omitempty"`
	Burns         *burnsDef   `yaml:"burns,omitempty"`
}

type fireDef struct {
	BurnRadius         float64 `yaml:"burn_radius"`
	ChanceToSpread     float64 `yaml:"chance_to_spread"`
	DestroysOnIgnition bool    `yaml:"destroys_on_ignition,omitempty"`
}

type burningDef struct {
	Duration uint64 `yaml:"duration"`
	TickRate uint64 `yaml:"tick_rate"`
}

type burnsDef struct {
	Duration             uint64       `yaml:"duration"`
	TickRate             uint64       `yaml:"tick_rate"`
	ChanceDestroyPerTick float64      `yaml:"chance_destroy_per_tick,omitempty"`
	Reaction             *reactionDef `yaml:"reaction,omitempty"`
	Colors               []Color      `yaml:"colors,omitempty"`
	Spreads              *fireDef     `yaml:"spreads,omitempty"`
}

type reactionDef struct {
	Produces        string  `yaml:"produces"`
	ChanceToProduce float64 `yaml:"chance_to_produce"`
}

// LoadDefs parses a YAML definition document and registers every type it
// declares, in document order. The document is schema-validated first; a
// malformed document registers nothing.
func LoadDefs(reg *Registry, data []byte) error {
	if err := validateDefs(data); err != nil {
		return err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parsing particle definitions: %w", err)
	}
	if len(root.Content) == 0 {
		return nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing particle definitions: document is not a mapping")
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		var def typeDef
		if err := doc.Content[i+1].Decode(&def); err != nil {
			return fmt.Errorf("particle %q: %w", name, err)
		}
		t, err := def.build(name)
		if err != nil {
			return fmt.Errorf("particle %q: %w", name, err)
		}
		reg.Register(t)
	}
	return nil
}

// LoadDefaultDefs registers the embedded default particle set.
func LoadDefaultDefs(reg *Registry) error {
	return LoadDefs(reg, defaultDefsYAML)
}

// validateDefs checks the document against the embedded schema. The YAML
// document is round-tripped through encoding/json so the validator sees
// plain JSON types.
func validateDefs(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing particle definitions: %w", err)
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalizing particle definitions: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return fmt.Errorf("normalizing particle definitions: %w", err)
	}
	if err := defsSchema.Validate(doc); err != nil {
		return fmt.Errorf("validating particle definitions: %w", err)
	}
	return nil
}

// build resolves a wire definition into an immutable Type.
func (d *typeDef) build(name string) (*Type, error) {
	t := &Type{Name: name}

	if d.Density != nil {
		t.Density = *d.Density
	}
	if d.MaxVelocity != nil {
		t.MaxVelocity = clampVelocity(*d.MaxVelocity)
	}
	if d.Momentum != nil {
		t.Momentum = *d.Momentum
	}

	mat, err := d.material()
	if err != nil {
		return nil, err
	}
	t.Material = mat

	t.Colors = append([]Color(nil), d.Colors...)
	if d.ChangesColors != nil {
		p := *d.ChangesColors
		t.ChangesColors = &p
	}
	if d.Fire != nil {
		t.Fire = d.Fire.build()
	}
	if d.Burning != nil {
		t.Burning = &BurnSchedule{
			Duration: time.Duration(d.Burning.Duration) * time.Millisecond,
			TickRate: time.Duration(d.Burning.TickRate) * time.Millisecond,
		}
	}
	if d.Burns != nil {
		b := &Burns{
			Duration:             time.Duration(d.Burns.Duration) * time.Millisecond,
			TickRate:             time.Duration(d.Burns.TickRate) * time.Millisecond,
			ChanceDestroyPerTick: d.Burns.ChanceDestroyPerTick,
			Colors:               append([]Color(nil), d.Burns.Colors...),
		}
		if d.Burns.Reaction != nil {
			b.Reaction = &Reaction{
				Produces:        d.Burns.Reaction.Produces,
				ChanceToProduce: d.Burns.Reaction.ChanceToProduce,
			}
		}
		if d.Burns.Spreads != nil {
			b.Spreads = d.Burns.Spreads.build()
		}
		t.Burns = b
	}
	return t, nil
}

func (d *fireDef) build() *Fire {
	return &Fire{
		BurnRadius:         d.BurnRadius,
		ChanceToSpread:     d.ChanceToSpread,
		DestroysOnIgnition: d.DestroysOnIgnition,
	}
}

// material resolves the mutually exclusive material keys.
func (d *typeDef) material() (*Material, error) {
	var mats []Material
	if d.Wall != nil && *d.Wall {
		mats = append(mats, Material{Kind: Wall})
	}
	if d.Solid != nil && *d.Solid {
		mats = append(mats, Material{Kind: Solid})
	}
	if d.MovableSolid != nil && *d.MovableSolid {
		mats = append(mats, Material{Kind: MovableSolid})
	}
	if d.Liquid != nil {
		mats = append(mats, NewLiquid(*d.Liquid))
	}
	if d.Gas != nil {
		mats = append(mats, NewGas(*d.Gas))
	}
	switch len(mats) {
	case 0:
		return nil, nil
	case 1:
		m := mats[0]
		return &m, nil
	default:
		return nil, fmt.Errorf("conflicting material declarations (%d given)", len(mats))
	}
}

// MarshalDefs serializes the registry back into the definition format, in
// registration order. Loading the result reproduces an equivalent registry.
func MarshalDefs(reg *Registry) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	var marshalErr error
	reg.Each(func(t *Type) {
		if marshalErr != nil {
			return
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: t.Name}
		val := &yaml.Node{}
		if err := val.Encode(defFromType(t)); err != nil {
			marshalErr = fmt.Errorf("particle %q: %w", t.Name, err)
			return
		}
		doc.Content = append(doc.Content, key, val)
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling particle definitions: %w", err)
	}
	return out, nil
}

func defFromType(t *Type) *typeDef {
	d := &typeDef{}
	if t.Density != 0 || t.Movable() {
		density := t.Density
		d.Density = &density
	}
	if t.MaxVelocity != 0 {
		v := t.MaxVelocity
		d.MaxVelocity = &v
	}
	if t.Momentum {
		yes := true
		d.Momentum = &yes
	}
	if t.Material != nil {
		yes := true
		switch t.Material.Kind {
		case Wall:
			d.Wall = &yes
		case Solid:
			d.Solid = &yes
		case MovableSolid:
			d.MovableSolid = &yes
		case Liquid:
			f := t.Material.Fluidity
			d.Liquid = &f
		case Gas:
			f := t.Material.Fluidity
			d.Gas = &f
		}
	}
	d.Colors = append([]Color(nil), t.Colors...)
	if t.ChangesColors != nil {
		p := *t.ChangesColors
		d.ChangesColors = &p
	}
	if t.Fire != nil {
		d.Fire = defFromFire(t.Fire)
	}
	if t.Burning != nil {
		d.Burning = &burningDef{
			Duration: uint64(t.Burning.Duration / time.Millisecond),
			TickRate: uint64(t.Burning.TickRate / time.Millisecond),
		}
	}
	if t.Burns != nil {
		d.Burns = &burnsDef{
			Duration:             uint64(t.Burns.Duration / time.Millisecond),
			TickRate:             uint64(t.Burns.TickRate / time.Millisecond),
			ChanceDestroyPerTick: t.Burns.ChanceDestroyPerTick,
			Colors:               append([]Color(nil), t.Burns.Colors...),
		}
		if t.Burns.Reaction != nil {
			d.Burns.Reaction = &reactionDef{
				Produces:        t.Burns.Reaction.Produces,
				ChanceToProduce: t.Burns.Reaction.ChanceToProduce,
			}
		}
		if t.Burns.Spreads != nil {
			d.Burns.Spreads = defFromFire(t.Burns.Spreads)
		}
	}
	return d
}

func defFromFire(f *Fire) *fireDef {
	return &fireDef{
		BurnRadius:         f.BurnRadius,
		ChanceToSpread:     f.ChanceToSpread,
		DestroysOnIgnition: f.DestroysOnIgnition,
	}
}
