// Package entities builds the ship's objects from recipes: a name, a glyph and
// a list of component strings such as "openable state:false,open:▔,closed:█".
package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mlange-42/ark/ecs"
	"github.com/samber/oops"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// Recipe describes one kind of item. Name may contain a %d, replaced with the
// builder's spawn count.
type Recipe struct {
	Name       string
	Desc       string
	Glyph      string
	Fg         world.Color
	Components []string
}

// Recipes lists every item the builder knows by name
var Recipes = map[string]Recipe{
	"door": {
		Name: "_door_%d", Desc: "A regular Door.", Glyph: "█", Fg: world.Yellow,
		Components: []string{"actionset", "obstructs", "opaque state:true", "openable state:false,open:▔,closed:█"},
	},
	"snack": {
		Name: "_snack_%d", Desc: "A tasty Snack.", Glyph: "%", Fg: world.LightRed,
		Components: []string{"actionset", "portable"},
	},
	"planq": {
		Name: "PLANQ", Desc: "It's your PLANQ.", Glyph: "¶", Fg: world.LightCyan,
		Components: []string{"actionset", "portable", "planq", "device state:false,voltage:100,rate:0"},
	},
	"key": {
		Name: "_key_%d", Desc: "A small metal key.", Glyph: "⚷", Fg: world.LightYellow,
		Components: []string{"actionset", "portable", "key id:1"},
	},
	"terminal": {
		Name: "terminal", Desc: "A wall-mounted maintenance terminal.", Glyph: "▣", Fg: world.LightGreen,
		Components: []string{"actionset", "obstructs", "accessport", "networkable", "device state:true,voltage:100,rate:0"},
	},
	"table": {
		Name: "table", Desc: "A sturdy metal table, bolted to the deck.", Glyph: "╤", Fg: world.Gray,
		Components: []string{"actionset", "obstructs"},
	},
	"chair": {
		Name: "chair", Desc: "A bucket seat on a swivel.", Glyph: "╥", Fg: world.Gray,
		Components: []string{"actionset", "portable"},
	},
}

// Builder spawns recipe items into a store and numbers them
type Builder struct {
	Store *entity.Store
	Count int
}

// NewBuilder creates a builder for store
func NewBuilder(store *entity.Store) *Builder {
	return &Builder{Store: store}
}

// Spawn creates the named recipe at p. Pass world.Invalid to spawn it nowhere,
// ready to be handed to a carrier with GiveTo.
func (b *Builder) Spawn(name string, p world.Position) (ecs.Entity, error) {
	recipe, ok := Recipes[name]
	if !ok {
		return entity.Placeholder, oops.In("entities").With("recipe", name).Errorf("unknown item recipe %q", name)
	}
	return b.SpawnRecipe(recipe, p)
}

// SpawnRecipe creates an entity from recipe at p
func (b *Builder) SpawnRecipe(recipe Recipe, p world.Position) (ecs.Entity, error) {
	b.Count++
	e := b.Store.Spawn()
	name := recipe.Name
	if strings.Contains(name, "%d") {
		name = fmt.Sprintf(name, b.Count)
	}
	b.Store.Descriptions.Set(e, entity.Description{Name: name, Desc: recipe.Desc})
	b.Store.Bodies.Set(e, entity.NewBody(p, world.NewScreenCell(recipe.Glyph, recipe.Fg)))
	for _, spec := range recipe.Components {
		if err := b.Apply(e, spec); err != nil {
			b.Store.Despawn(e)
			return entity.Placeholder, oops.In("entities").With("recipe", name).Wrap(err)
		}
	}
	if p.IsValid() {
		b.Store.Positions.Set(e, p)
	}
	return e, nil
}

// GiveTo puts item straight into holder's inventory
func (b *Builder) GiveTo(item, holder ecs.Entity) {
	b.Store.Positions.Remove(item)
	b.Store.Portables.Set(item, entity.Portable{Carrier: holder})
	b.Store.IsCarrieds.Set(item, entity.IsCarried{})
}

// Apply parses one component string and attaches the component to e. Unknown
// keys inside a component are logged and skipped; an unknown component or a
// malformed value is an error.
func (b *Builder) Apply(e ecs.Entity, spec string) error {
	kind, rest, _ := strings.Cut(strings.TrimSpace(spec), " ")
	fields, err := parseFields(rest)
	if err != nil {
		return oops.In("entities").With("component", kind).Wrap(err)
	}
	s := b.Store
	switch kind {
	case "accessport":
		s.AccessPorts.Set(e, entity.AccessPort{})
	case "actionset":
		s.ActionSets.Set(e, entity.NewActionSet())
	case "container":
		s.Containers.Set(e, entity.Container{})
	case "description":
		desc := entity.Description{}
		if old := s.Descriptions.Get(e); old != nil {
			desc = *old
		}
		for k, v := range fields {
			switch k {
			case "name":
				desc.Name = v
			case "desc":
				desc.Desc = v
			default:
				unknownKey(kind, k)
			}
		}
		s.Descriptions.Set(e, desc)
	case "device":
		dev := entity.Device{}
		for k, v := range fields {
			var err error
			switch k {
			case "state":
				dev.PwSwitch, err = strconv.ParseBool(v)
			case "voltage":
				dev.BattVoltage, err = strconv.Atoi(v)
			case "rate":
				dev.BattDischarge, err = strconv.Atoi(v)
			default:
				unknownKey(kind, k)
			}
			if err != nil {
				return badValue(kind, k, v, err)
			}
		}
		s.Devices.Set(e, dev)
	case "key":
		key := entity.Key{}
		for k, v := range fields {
			if k != "id" {
				unknownKey(kind, k)
				continue
			}
			id, err := strconv.Atoi(v)
			if err != nil {
				return badValue(kind, k, v, err)
			}
			key.KeyID = id
		}
		s.Keys.Set(e, key)
	case "lockable":
		lock := entity.Lockable{}
		for k, v := range fields {
			var err error
			switch k {
			case "state":
				lock.IsLocked, err = strconv.ParseBool(v)
			case "key_id":
				lock.KeyID, err = strconv.Atoi(v)
			default:
				unknownKey(kind, k)
			}
			if err != nil {
				return badValue(kind, k, v, err)
			}
		}
		s.Lockables.Set(e, lock)
	case "mobile":
		s.Mobiles.Set(e, entity.Mobile{})
	case "networkable":
		s.Networkables.Set(e, entity.Networkable{})
	case "obstructs":
		s.Obstructives.Set(e, entity.Obstructive{})
	case "opaque":
		opaque := entity.Opaque{Opaque: true}
		if v, ok := fields["state"]; ok {
			state, err := strconv.ParseBool(v)
			if err != nil {
				return badValue(kind, "state", v, err)
			}
			opaque.Opaque = state
		}
		s.Opaques.Set(e, opaque)
	case "openable":
		open := entity.Openable{}
		for k, v := range fields {
			var err error
			switch k {
			case "state":
				open.IsOpen, err = strconv.ParseBool(v)
			case "stuck":
				open.IsStuck, err = strconv.ParseBool(v)
			case "open":
				open.OpenGlyph = v
			case "closed":
				open.ClosedGlyph = v
			default:
				unknownKey(kind, k)
			}
			if err != nil {
				return badValue(kind, k, v, err)
			}
		}
		s.Openables.Set(e, open)
		if body := s.Bodies.Get(e); body != nil {
			if open.IsOpen {
				body.SetGlyph(open.OpenGlyph)
			} else if open.ClosedGlyph != "" {
				body.SetGlyph(open.ClosedGlyph)
			}
		}
		if open.IsOpen {
			s.Obstructives.Remove(e)
			if opaque := s.Opaques.Get(e); opaque != nil {
				opaque.Opaque = false
			}
		}
	case "portable":
		s.Portables.Set(e, entity.Portable{Carrier: entity.Placeholder})
	case "planq":
		s.Planqs.Set(e, entity.Planq{})
	default:
		return oops.In("entities").With("component", kind).Errorf("unknown component %q", kind)
	}
	s.InvalidateActions(e)
	return nil
}

// parseFields splits "a:1,b:2" into a map
func parseFields(rest string) (map[string]string, error) {
	out := map[string]string{}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return out, nil
	}
	for _, pair := range strings.Split(rest, ",") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, oops.Errorf("could not split key:value in %q", pair)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

func unknownKey(kind, key string) {
	logger.For("entities").WithField("component", kind).Warnf("component key %q was not recognized", key)
}

func badValue(kind, key, value string, err error) error {
	return oops.In("entities").With("component", kind).With("key", key).Wrapf(err, "bad value %q", value)
}
