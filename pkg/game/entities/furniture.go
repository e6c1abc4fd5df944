package entities

import (
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// FurnitureTemplate defines a furniture type that can be placed in rooms
type FurnitureTemplate struct {
	Name        string
	Description string
	Icon        string
}

// RoomFurniture contains furniture templates by room type
var RoomFurniture = map[string][]FurnitureTemplate{
	"Bridge": {
		{"Captain's Chair", "A worn command chair faces the main viewscreen.", "Ω"},
		{"Navigation Console", "Star charts flicker on a dusty display.", "≡"},
	},
	"Engineering": {
		{"Tool Rack", "Wrenches and plasma cutters, some missing.", "╦"},
		{"Schematic Display", "Ship blueprints, several sections highlighted red.", "▤"},
	},
	"Mess Hall": {
		{"Food Dispenser", "Vending machine, selections limited.", "▥"},
		{"Coffee Machine", "The pot is cold and empty.", "○"},
	},
	"Crew Quarters": {
		{"Bunk Bed", "Personal effects scattered on unmade sheets.", "╦"},
		{"Footlocker", "Lock broken, contents rifled through.", "▣"},
	},
	"Cargo Bay": {
		{"Shipping Container", "Dented metal crate, manifest unreadable.", "▣"},
		{"Loading Dolly", "Wheeled cart, one wheel broken.", "□"},
	},
	"Escape Pod": {
		{"Launch Control", "A single red lever behind a plastic cover.", "◈"},
	},
}

// GetAllFurnitureForRoom returns all furniture templates for a room type
func GetAllFurnitureForRoom(roomName string) []FurnitureTemplate {
	for baseRoom, templates := range RoomFurniture {
		if strings.Contains(roomName, baseRoom) {
			return templates
		}
	}
	return nil
}

// Recipe turns the template into an obstructive fixture
func (t FurnitureTemplate) Recipe() Recipe {
	return Recipe{
		Name:       t.Name,
		Desc:       t.Description,
		Glyph:      t.Icon,
		Fg:         world.Yellow,
		Components: []string{"actionset", "obstructs"},
	}
}

// Furnish places one random piece of the room's furniture at p, if the room has any
func (b *Builder) Furnish(roomName string, p world.Position, rng *rand.Rand) (ecs.Entity, bool, error) {
	templates := GetAllFurnitureForRoom(roomName)
	if len(templates) == 0 {
		return ecs.Entity{}, false, nil
	}
	tpl := templates[rng.Intn(len(templates))]
	e, err := b.SpawnRecipe(tpl.Recipe(), p)
	return e, err == nil, err
}
