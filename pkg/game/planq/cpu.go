package planq

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// DefaultBootInterval is how long each boot stage takes
const DefaultBootInterval = 3 * time.Second

// DefaultConnectDelay is how long the connect job runs before the link comes up
const DefaultConnectDelay = time.Second

// Frame is what one PLANQ pass gets to work with
type Frame struct {
	Store *entity.Store
	Log   *msglog.Log
	Bus   *event.Bus
	Rng   *rand.Rand
	// Elapsed is total game time, Delta the time this tick covers
	Elapsed time.Duration
	Delta   time.Duration
	// Frozen stops process timers from advancing, ie while the game is paused
	Frozen bool
}

// System is the PLANQ update stage
type System struct {
	Data         *Data
	BootInterval time.Duration
	ConnectDelay time.Duration

	games  event.Reader[event.GameEvent]
	planqs event.Reader[event.PlanqEvent]
}

// NewSystem creates the update stage for a PLANQ
func NewSystem(data *Data, bootInterval time.Duration) *System {
	if bootInterval <= 0 {
		bootInterval = DefaultBootInterval
	}
	return &System{Data: data, BootInterval: bootInterval, ConnectDelay: DefaultConnectDelay}
}

// Update runs one tick of the PLANQ: reacts to game and PLANQ events, follows
// the power switch, steps the CPU state machine, then advances process timers
func (s *System) Update(f Frame) {
	player, ok := f.Store.Player()
	if !ok {
		return
	}
	handheld, ok := f.Store.Planq()
	if !ok || !f.Store.Devices.Has(handheld) {
		return
	}
	d := s.Data

	for _, ev := range s.games.Read(f.Bus.Game) {
		if ev.IsValid() {
			s.onGameEvent(f, ev, player, handheld)
		}
	}
	for _, pe := range s.planqs.Read(f.Bus.Planq) {
		s.handle(f, pe, handheld)
	}

	// Follow the power switch
	device := f.Store.Devices.Get(handheld)
	if !d.PowerIsOn && device.PwSwitch {
		d.killAll(f.Store)
		d.PowerIsOn = true
		d.ShowTerminal = true
		d.CPUMode = Startup
		d.BootStage = 0
		d.ErrorDisplayed = false
		f.Store.Devices.Get(handheld).State = entity.DeviceWorking
	} else if d.PowerIsOn && !device.PwSwitch {
		d.PowerIsOn = false
		d.CPUMode = Shutdown
	}

	d.pruneDead(f.Store)
	s.checkJack(f, player, handheld)

	// A running CPU always has its resident process
	if d.PowerIsOn && len(d.ProcTable) == 0 && (d.CPUMode == Idle || d.CPUMode == Working) {
		d.CPUMode = Error
		d.ErrorCode = CrashCode
		logger.For("planq").WithField("code", CrashCode).Error("process table empty while running")
	}

	switch d.CPUMode {
	case Error:
		if !d.ErrorDisplayed {
			f.Log.TellPlanq(fmt.Sprintf("¶│FATAL ERROR: %d", d.ErrorCode))
			d.ErrorDisplayed = true
			f.Store.Devices.Get(handheld).State = entity.DeviceError
		}
	case Offline:
	case Startup:
		s.boot(f, handheld)
	case Shutdown:
		s.shutdown(f, handheld)
	case Idle:
		if len(d.ProcTable) > 1 {
			d.CPUMode = Working
		}
	case Working:
		s.runJobs(f, handheld)
		if d.CPUMode == Working && len(d.ProcTable) == 1 {
			d.goIdle(f.Log)
		}
	}

	if !f.Frozen {
		for _, p := range d.ProcTable {
			if proc := f.Store.Processes.Get(p); proc != nil && !proc.Timer.Finished() {
				proc.Timer.Tick(f.Delta)
			}
		}
	}

	// Keep the carried flag honest
	if portable := f.Store.Portables.Get(handheld); portable != nil {
		d.IsCarried = portable.Carrier == player
	}
	d.InventoryList = f.Store.CarriedBy(player)
	d.Stdout = f.Log.Messages(msglog.ChannelPlanq, 0)
}

func (s *System) onGameEvent(f Frame, ev event.GameEvent, player, handheld ecs.Entity) {
	d := s.Data
	switch {
	case ev.IsAction(event.MoveItem):
		if ev.Object() == handheld {
			d.IsCarried = ev.Subject() == player
		}
	case ev.IsAction(event.DropItem):
		if ev.Object() == handheld {
			d.IsCarried = false
		}
	case ev.IsAction(event.UseItem):
		if ev.Subject() == player && ev.Object() == handheld {
			f.Log.TellPlayer(gotext.Get("There is a faint 'click' as you press the PLANQ's power button."))
		}
	case ev.Type == event.PlanqConnect:
		if ev.Subject() != player {
			return
		}
		if !f.Store.AccessPorts.Has(ev.Target) {
			f.Log.TellPlayer(gotext.Get("There's nowhere to plug the PLANQ's access jack into."))
			return
		}
		d.JackPlug = ev.Target
		f.Log.TellPlayer(gotext.Get("You plug the PLANQ's access jack into the %s.", f.Store.Name(ev.Target)))
	}
}

// handle applies one PLANQ event
func (s *System) handle(f Frame, pe event.PlanqEvent, handheld ecs.Entity) {
	d := s.Data
	switch pe.Type {
	case event.PlanqNull:
	case event.PlanqStartup:
		if device := f.Store.Devices.Get(handheld); device != nil {
			device.PwSwitch = true
		}
	case event.PlanqBootStage:
		if pe.Stage > d.BootStage {
			d.BootStage = pe.Stage
		}
	case event.PlanqShutdown:
		if d.PowerIsOn {
			d.CPUMode = Shutdown
		}
	case event.PlanqReboot:
		if d.PowerIsOn {
			d.RebootPending = true
			d.CPUMode = Shutdown
		}
	case event.PlanqGoIdle:
		d.goIdle(f.Log)
	case event.PlanqCliOpen:
		d.ShowCliInput = true
		d.ActionMode = ActionCliInput
	case event.PlanqCliClose:
		d.ShowCliInput = false
		d.ActionMode = ActionDefault
	case event.PlanqAccessLink:
		if !f.Store.Alive(pe.Target) {
			f.Log.TellPlanq(gotext.Get("[[fg:red]]ERROR:[[end]] link target vanished"))
			return
		}
		d.JackCnxn = pe.Target
		f.Log.TellPlanq(gotext.Get("Connected: %s", f.Store.Name(pe.Target)))
		f.Log.TellPlanq(gotext.Get("Status: %s", targetStatus(f.Store, pe.Target)))
		if d.running() {
			d.goIdle(f.Log)
		}
	case event.PlanqAccessUnlink:
		d.killJobs(f.Store)
		d.JackCnxn = entity.Placeholder
		f.Log.TellPlanq(gotext.Get("Connection closed"))
		if d.running() {
			d.goIdle(f.Log)
		}
	case event.PlanqCommand:
		s.execute(f, pe.Text)
	}
}

// boot walks the boot stages on the resident process's timer
func (s *System) boot(f Frame, handheld ecs.Entity) {
	d := s.Data
	if len(d.ProcTable) == 0 {
		if d.BootStage == 0 {
			f.Log.BootMessage(0)
			d.spawnProcess(f.Store, s.BootInterval, event.BootStage(1))
		}
		return
	}
	proc := f.Store.Processes.Get(d.ProcTable[0])
	if proc == nil || !proc.Timer.JustFinished() || proc.Outcome.Type != event.PlanqBootStage {
		return
	}
	if proc.Outcome.Stage > d.BootStage {
		d.BootStage = proc.Outcome.Stage
	}
	f.Log.BootMessage(d.BootStage)
	if d.BootStage < 4 {
		proc.Timer.Reset()
		proc.Outcome = event.BootStage(d.BootStage + 1)
		return
	}
	proc.Outcome = event.NewPlanqEvent(event.PlanqNull)
	d.goIdle(f.Log)
	if device := f.Store.Devices.Get(handheld); device != nil {
		device.State = entity.DeviceIdle
	}
}

// shutdown stops everything and powers the device down, or back up for a reboot
func (s *System) shutdown(f Frame, handheld ecs.Entity) {
	d := s.Data
	d.killAll(f.Store)
	d.BootStage = 0
	d.ShowCliInput = false
	d.ActionMode = ActionDefault
	d.JackCnxn = entity.Placeholder
	d.PowerIsOn = false
	d.CPUMode = Offline
	f.Log.TellPlanq(gotext.Get("¶│Shutting down..."))
	if device := f.Store.Devices.Get(handheld); device != nil {
		device.PwSwitch = d.RebootPending
		device.State = entity.DeviceOffline
	}
	d.RebootPending = false
}

// runJobs fires the outcome of every finished job and retires it
func (s *System) runJobs(f Frame, handheld ecs.Entity) {
	d := s.Data
	if len(d.ProcTable) <= 1 {
		return
	}
	var done []ecs.Entity
	var outcomes []event.PlanqEvent
	for _, job := range d.ProcTable[1:] {
		proc := f.Store.Processes.Get(job)
		if proc != nil && proc.Timer.Finished() {
			done = append(done, job)
			outcomes = append(outcomes, proc.Outcome)
		}
	}
	for i, job := range done {
		d.killProcess(f.Store, job)
		s.handle(f, outcomes[i], handheld)
	}
}

// checkJack pulls the cable out when the player walks away from the port
func (s *System) checkJack(f Frame, player, handheld ecs.Entity) {
	d := s.Data
	if d.JackPlug.IsZero() {
		return
	}
	plugged := f.Store.Alive(d.JackPlug) && d.IsCarried
	if plugged {
		pp := f.Store.Positions.Get(player)
		tp := f.Store.Positions.Get(d.JackPlug)
		plugged = pp != nil && tp != nil && pp.Adjacent(*tp)
	}
	if plugged {
		return
	}
	d.JackPlug = entity.Placeholder
	f.Log.TellPlayer(gotext.Get("The PLANQ's access cable pops loose."))
	if !d.JackCnxn.IsZero() {
		s.handle(f, event.NewPlanqEvent(event.PlanqAccessUnlink), handheld)
	}
}

func (d *Data) running() bool {
	return d.CPUMode == Idle || d.CPUMode == Working
}

func targetStatus(store *entity.Store, target ecs.Entity) string {
	if dev := store.Devices.Get(target); dev != nil {
		if !dev.PwSwitch {
			return "unpowered"
		}
		return dev.State.String()
	}
	return "nominal"
}
