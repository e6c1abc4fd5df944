package entities

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

func TestSpawnDoor(t *testing.T) {
	store := entity.NewStore()
	b := NewBuilder(store)
	p := world.NewPosition(3, 4, 0)

	door, err := b.Spawn("door", p)
	require.NoError(t, err)

	assert.Equal(t, "_door_1", store.Name(door))
	assert.Equal(t, "A regular Door.", store.Descriptions.Get(door).Desc)
	assert.True(t, store.Obstructives.Has(door))
	assert.True(t, store.Opaques.Get(door).Opaque)
	open := store.Openables.Get(door)
	require.NotNil(t, open)
	assert.False(t, open.IsOpen)
	assert.Equal(t, "▔", open.OpenGlyph)
	cell, ok := store.CellOf(door, p)
	require.True(t, ok)
	assert.Equal(t, "█", cell.Glyph)
	assert.Equal(t, p, *store.Positions.Get(door))
}

func TestSpawnCountNumbersNames(t *testing.T) {
	b := NewBuilder(entity.NewStore())
	first, err := b.Spawn("snack", world.NewPosition(1, 1, 0))
	require.NoError(t, err)
	second, err := b.Spawn("snack", world.NewPosition(2, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "_snack_1", b.Store.Name(first))
	assert.Equal(t, "_snack_2", b.Store.Name(second))
}

func TestSpawnPlanqIntoInventory(t *testing.T) {
	store := entity.NewStore()
	b := NewBuilder(store)
	player := b.SpawnPlayer(world.NewPosition(5, 5, 0), 8)

	handheld, err := b.Spawn("planq", world.Invalid)
	require.NoError(t, err)
	b.GiveTo(handheld, player)

	assert.False(t, store.Positions.Has(handheld))
	assert.True(t, store.IsHolding(player, handheld))
	assert.True(t, store.IsCarrieds.Has(handheld))
	got, ok := store.Planq()
	require.True(t, ok)
	assert.Equal(t, handheld, got)
	assert.False(t, store.Devices.Get(handheld).PwSwitch)
}

func TestApplyComponentStrings(t *testing.T) {
	store := entity.NewStore()
	b := NewBuilder(store)
	e := store.Spawn()

	require.NoError(t, b.Apply(e, "lockable state:true,key_id:7"))
	require.NoError(t, b.Apply(e, "device state:true,voltage:40,rate:2"))
	require.NoError(t, b.Apply(e, "description name:hatch,desc:A round hatch."))
	require.NoError(t, b.Apply(e, "opaque state:false"))

	assert.Equal(t, entity.Lockable{IsLocked: true, KeyID: 7}, *store.Lockables.Get(e))
	dev := store.Devices.Get(e)
	assert.True(t, dev.PwSwitch)
	assert.Equal(t, 40, dev.BattVoltage)
	assert.Equal(t, 2, dev.BattDischarge)
	assert.Equal(t, "hatch", store.Name(e))
	assert.False(t, store.Opaques.Get(e).Opaque)
}

func TestApplyRefreshesActions(t *testing.T) {
	store := entity.NewStore()
	b := NewBuilder(store)
	snack, err := b.Spawn("snack", world.NewPosition(1, 1, 0))
	require.NoError(t, err)
	require.False(t, store.Supports(snack, event.UseItem))

	require.NoError(t, b.Apply(snack, "device state:false,voltage:5,rate:0"))
	assert.True(t, store.Supports(snack, event.UseItem))
}

func TestApplyRejectsBadInput(t *testing.T) {
	b := NewBuilder(entity.NewStore())
	e := b.Store.Spawn()
	assert.Error(t, b.Apply(e, "teleporter"))
	assert.Error(t, b.Apply(e, "key id:seven"))
	assert.Error(t, b.Apply(e, "device voltage"))

	_, err := b.Spawn("spaceship", world.NewPosition(0, 0, 0))
	assert.Error(t, err)
}

func TestFurnish(t *testing.T) {
	b := NewBuilder(entity.NewStore())
	rng := rand.New(rand.NewSource(1))

	e, ok, err := b.Furnish("Port Mess Hall", world.NewPosition(2, 2, 0), rng)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, b.Store.Obstructives.Has(e))
	assert.Contains(t, []string{"Food Dispenser", "Coffee Machine"}, b.Store.Name(e))

	_, ok, err = b.Furnish("hallway", world.NewPosition(3, 3, 0), rng)
	assert.NoError(t, err)
	assert.False(t, ok)
}
