package planq

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

type rig struct {
	store    *entity.Store
	log      *msglog.Log
	bus      *event.Bus
	sys      *System
	monitor  *Monitor
	player   ecs.Entity
	handheld ecs.Entity
	elapsed  time.Duration
	rng      *rand.Rand
}

// newRig builds a player carrying a switched-off PLANQ
func newRig(t *testing.T) *rig {
	t.Helper()
	store := entity.NewStore()
	player := store.Spawn()
	store.Players.Set(player, entity.Player{})
	store.Positions.Set(player, world.NewPosition(5, 5, 0))
	store.Descriptions.Set(player, entity.Description{Name: "player", Locn: "Bridge"})

	handheld := store.Spawn()
	store.Planqs.Set(handheld, entity.Planq{})
	store.Descriptions.Set(handheld, entity.Description{Name: "PLANQ"})
	store.Portables.Set(handheld, entity.Portable{Carrier: player})
	store.Devices.Set(handheld, entity.Device{BattVoltage: 100})

	return &rig{
		store:    store,
		log:      msglog.New(0),
		bus:      event.NewBus(),
		sys:      NewSystem(NewData(), 3*time.Second),
		monitor:  NewMonitor(DefaultSources),
		player:   player,
		handheld: handheld,
		rng:      rand.New(rand.NewSource(7)),
	}
}

func (r *rig) frame(frozen bool) Frame {
	return Frame{
		Store:   r.store,
		Log:     r.log,
		Bus:     r.bus,
		Rng:     r.rng,
		Elapsed: r.elapsed,
		Delta:   time.Second,
		Frozen:  frozen,
	}
}

// tick runs one one-second update and ends the event frame
func (r *rig) tick() {
	r.sys.Update(r.frame(false))
	r.monitor.Update(r.frame(false), r.sys.Data)
	r.elapsed += time.Second
	r.bus.EndFrame()
}

func (r *rig) switchOn() {
	r.store.Devices.Get(r.handheld).PwSwitch = true
}

// boot powers the PLANQ on and runs it until idle
func (r *rig) boot(t *testing.T) {
	t.Helper()
	r.switchOn()
	for i := 0; i < 20 && r.sys.Data.CPUMode != Idle; i++ {
		r.tick()
	}
	require.Equal(t, Idle, r.sys.Data.CPUMode)
}

func TestBootSequence(t *testing.T) {
	r := newRig(t)
	d := r.sys.Data

	r.switchOn()
	r.tick()
	assert.Equal(t, Startup, d.CPUMode)
	assert.Equal(t, 0, d.BootStage)
	assert.True(t, d.PowerIsOn)
	assert.True(t, r.log.Contains(msglog.ChannelPlanq, "¶│BIOS:  GRAIN v17.6.8 'Cedar'"))

	r.tick()
	r.tick()
	assert.Equal(t, 0, d.BootStage, "stage must not advance before the interval has run")

	r.tick()
	assert.Equal(t, 1, d.BootStage)
	assert.True(t, r.log.Contains(msglog.ChannelPlanq, "¶│Hardware Status ....... [OK]"))

	stages := []int{d.BootStage}
	for i := 0; i < 12 && d.CPUMode == Startup; i++ {
		r.tick()
		if d.BootStage != stages[len(stages)-1] {
			stages = append(stages, d.BootStage)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4}, stages)
	assert.Equal(t, Idle, d.CPUMode)
	assert.Equal(t, 4, d.BootStage)
	assert.True(t, r.log.Contains(msglog.ChannelPlanq, "¶│Ready for input!"))
	assert.Len(t, d.ProcTable, 1, "kernel process stays resident")
}

func TestBootStageNeverDecreasesDuringStartup(t *testing.T) {
	r := newRig(t)
	d := r.sys.Data
	r.switchOn()
	last := 0
	for i := 0; i < 15 && d.CPUMode != Idle; i++ {
		r.bus.Planq.Send(event.BootStage(0))
		r.tick()
		assert.GreaterOrEqual(t, d.BootStage, last)
		last = d.BootStage
	}
}

func TestFrozenTimersDoNotAdvance(t *testing.T) {
	r := newRig(t)
	d := r.sys.Data
	r.switchOn()
	r.tick()
	for i := 0; i < 10; i++ {
		r.sys.Update(r.frame(true))
		r.bus.EndFrame()
	}
	assert.Equal(t, 0, d.BootStage)
	proc := r.store.Processes.Get(d.ProcTable[0])
	require.NotNil(t, proc)
	assert.Equal(t, time.Second, proc.Timer.Elapsed)
}

func TestCrashWhenProcessTableEmpties(t *testing.T) {
	r := newRig(t)
	r.boot(t)
	d := r.sys.Data

	r.store.Despawn(d.ProcTable[0])
	r.tick()
	assert.Equal(t, Error, d.CPUMode)
	assert.Equal(t, CrashCode, d.ErrorCode)
	assert.Equal(t, "ERROR(420)", d.ModeLabel())
	assert.Equal(t, "¶│FATAL ERROR: 420", r.log.Last(msglog.ChannelPlanq))

	before := r.log.ChannelLen(msglog.ChannelPlanq)
	r.tick()
	assert.Equal(t, before, r.log.ChannelLen(msglog.ChannelPlanq), "fatal error is printed once")

	// power cycling recovers
	r.store.Devices.Get(r.handheld).PwSwitch = false
	r.tick()
	r.tick()
	assert.Equal(t, Offline, d.CPUMode)
	r.boot(t)
}

func TestShutdownClearsProcesses(t *testing.T) {
	r := newRig(t)
	r.boot(t)
	d := r.sys.Data

	r.bus.Planq.Send(event.NewPlanqEvent(event.PlanqShutdown))
	r.tick()
	assert.Equal(t, Offline, d.CPUMode)
	assert.False(t, d.PowerIsOn)
	assert.Empty(t, d.ProcTable)
	assert.Empty(t, entity.Collect[entity.PlanqProcess](r.store, nil, nil))
	assert.False(t, r.store.Devices.Get(r.handheld).PwSwitch)
}

func TestRebootComesBackUp(t *testing.T) {
	r := newRig(t)
	r.boot(t)
	d := r.sys.Data

	r.bus.Planq.Send(event.NewPlanqEvent(event.PlanqReboot))
	r.tick()
	assert.Equal(t, Offline, d.CPUMode)
	assert.True(t, r.store.Devices.Get(r.handheld).PwSwitch)

	r.tick()
	assert.Equal(t, Startup, d.CPUMode)
	r.boot(t)
}

func TestUseAndCarryEvents(t *testing.T) {
	r := newRig(t)
	d := r.sys.Data

	r.bus.Game.Send(event.NewPlayerAction(event.Action(event.UseItem), r.player, r.handheld))
	r.tick()
	assert.Equal(t, "There is a faint 'click' as you press the PLANQ's power button.", r.log.Last(msglog.ChannelWorld))
	assert.True(t, d.IsCarried)

	r.store.Portables.Get(r.handheld).Carrier = entity.Placeholder
	r.bus.Game.Send(event.NewPlayerAction(event.Action(event.DropItem), r.player, r.handheld))
	r.tick()
	assert.False(t, d.IsCarried)
}
