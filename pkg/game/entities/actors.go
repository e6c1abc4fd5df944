package entities

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// SpawnPlayer creates the player character at p
func (b *Builder) SpawnPlayer(p world.Position, viewRange int) ecs.Entity {
	s := b.Store
	e := s.Spawn()
	s.Players.Set(e, entity.Player{})
	s.Descriptions.Set(e, entity.Description{Name: "Pleyeur", Desc: "It's you."})
	s.Bodies.Set(e, entity.NewBody(p, world.ScreenCell{Glyph: "@", Fg: world.LightGreen, Bg: world.Black, Mods: world.ModBold}))
	s.Positions.Set(e, p)
	s.Mobiles.Set(e, entity.Mobile{})
	s.Containers.Set(e, entity.Container{})
	s.Viewsheds.Set(e, entity.NewViewshed(viewRange))
	s.Memories.Set(e, entity.NewMemory())
	s.ActionSets.Set(e, entity.NewActionSet())
	return e
}

// SpawnLMR creates the Light Maintenance Robot at p
func (b *Builder) SpawnLMR(p world.Position, viewRange int) ecs.Entity {
	s := b.Store
	e := s.Spawn()
	s.LMRs.Set(e, entity.LMR{})
	s.Descriptions.Set(e, entity.Description{Name: "LMR", Desc: "The Light Maintenance Robot is awaiting instructions."})
	s.Bodies.Set(e, entity.NewBody(p, world.NewScreenCell("l", world.LightBlue)))
	s.Positions.Set(e, p)
	s.Mobiles.Set(e, entity.Mobile{})
	s.Containers.Set(e, entity.Container{})
	s.Viewsheds.Set(e, entity.NewViewshed(viewRange))
	s.ActionSets.Set(e, entity.NewActionSet())
	s.Networkables.Set(e, entity.Networkable{})
	return e
}
