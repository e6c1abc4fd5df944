// Package savestate captures a running game as a JSON document and restores
// it. Entity references are written as serials and remapped on load.
package savestate

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/mlange-42/ark/ecs"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
	"github.com/zgrow/spacegame-sub000/pkg/game/planq"
	"github.com/zgrow/spacegame-sub000/pkg/game/state"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// Version is the snapshot format written by Capture
const Version = 1

// ErrVersion is returned when a snapshot was written by another format version
var ErrVersion = errors.New("unsupported save format version")

// Snapshot is a complete saved game
type Snapshot struct {
	Version int              `json:"version"`
	ID      ulid.ULID        `json:"id"`
	Session string           `json:"session"`
	SavedAt time.Time        `json:"saved_at"`
	Mode    event.EngineMode `json:"mode"`
	Tick    uint64           `json:"tick"`
	Elapsed time.Duration    `json:"elapsed"`

	Model    *world.Model   `json:"model"`
	Entities []EntityRecord `json:"entities"`
	Log      *msglog.Log    `json:"log"`
	Planq    PlanqRecord    `json:"planq"`
	Monitor  *planq.Monitor `json:"monitor"`

	Processed []EventRecord `json:"processed,omitempty"`
}

// EntityRecord holds one entity's components. Tags are booleans, references are serials.
type EntityRecord struct {
	Serial uint64 `json:"serial"`

	Position    *world.Position             `json:"position,omitempty"`
	Body        *entity.Body                `json:"body,omitempty"`
	Description *entity.Description         `json:"description,omitempty"`
	Viewshed    *int                        `json:"viewshed,omitempty"`
	Memory      map[world.Position][]uint64 `json:"memory,omitempty"`
	Portable    *uint64                     `json:"portable,omitempty"`
	Opaque      *entity.Opaque              `json:"opaque,omitempty"`
	Openable    *entity.Openable            `json:"openable,omitempty"`
	Lockable    *entity.Lockable            `json:"lockable,omitempty"`
	Key         *entity.Key                 `json:"key,omitempty"`
	Device      *entity.Device              `json:"device,omitempty"`
	Process     *ProcessRecord              `json:"process,omitempty"`
	SampleTimer *entity.DataSampleTimer     `json:"sample_timer,omitempty"`

	Player      bool `json:"player,omitempty"`
	LMR         bool `json:"lmr,omitempty"`
	ActionSet   bool `json:"actionset,omitempty"`
	Container   bool `json:"container,omitempty"`
	Obstructive bool `json:"obstructive,omitempty"`
	Mobile      bool `json:"mobile,omitempty"`
	Networkable bool `json:"networkable,omitempty"`
	AccessPort  bool `json:"accessport,omitempty"`
	IsCarried   bool `json:"is_carried,omitempty"`
	Planq       bool `json:"planq,omitempty"`
}

// ProcessRecord is a PLANQ process with its outcome target as a serial
type ProcessRecord struct {
	Timer  entity.Timer         `json:"timer"`
	Type   event.PlanqEventType `json:"type"`
	Stage  int                  `json:"stage,omitempty"`
	Target uint64               `json:"target,omitempty"`
	Text   string               `json:"text,omitempty"`
}

// EventRecord is a processed game event with its context as serials
type EventRecord struct {
	Type    event.GameEventType `json:"type"`
	Action  event.ActionType    `json:"action"`
	Mode    event.EngineMode    `json:"mode,omitempty"`
	Target  uint64              `json:"target,omitempty"`
	Subject uint64              `json:"subject,omitempty"`
	Object  uint64              `json:"object,omitempty"`
	Text    string              `json:"text,omitempty"`
	Args    []any               `json:"args,omitempty"`
}

// PlanqRecord is the handheld's working state with entity references as serials
type PlanqRecord struct {
	Data      planq.Data `json:"data"`
	Inventory []uint64   `json:"inventory"`
	ProcTable []uint64   `json:"proc_table"`
	JackPlug  uint64     `json:"jack_plug"`
	JackCnxn  uint64     `json:"jack_cnxn"`
}

// EntityMapper resolves saved serials to the entities spawned for them
type EntityMapper struct {
	bySerial map[uint64]ecs.Entity
}

// Map returns the entity for serial; unknown serials and 0 give the placeholder
func (m *EntityMapper) Map(serial uint64) ecs.Entity {
	if e, ok := m.bySerial[serial]; ok {
		return e
	}
	return entity.Placeholder
}

func (m *EntityMapper) mapAll(serials []uint64) []ecs.Entity {
	var out []ecs.Entity
	for _, s := range serials {
		if e := m.Map(s); !e.IsZero() {
			out = append(out, e)
		}
	}
	return out
}

// Capture copies the game into a snapshot
func Capture(g *state.Game) *Snapshot {
	s := g.Store
	serial := s.Serial
	snap := &Snapshot{
		Version: Version,
		ID:      ulid.Make(),
		Session: g.Session,
		SavedAt: time.Now().UTC(),
		Mode:    g.Mode,
		Tick:    g.Tick,
		Elapsed: g.Elapsed,
		Model:   g.Model,
		Log:     g.Log.Snapshot(),
		Monitor: g.Monitor,
	}

	for _, e := range s.All() {
		rec := EntityRecord{Serial: serial(e)}
		if p := s.Positions.Get(e); p != nil {
			pos := *p
			rec.Position = &pos
		}
		if b := s.Bodies.Get(e); b != nil {
			body := entity.Body{RefPosn: b.RefPosn, Extent: append([]world.Glyph(nil), b.Extent...)}
			rec.Body = &body
		}
		rec.Description = copyOf(s.Descriptions.Get(e))
		if v := s.Viewsheds.Get(e); v != nil {
			r := v.Range
			rec.Viewshed = &r
		}
		if m := s.Memories.Get(e); m != nil {
			rec.Memory = make(map[world.Position][]uint64, len(m.Visual))
			for p, list := range m.Visual {
				for _, seen := range list {
					if id := serial(seen); id != 0 {
						rec.Memory[p] = append(rec.Memory[p], id)
					}
				}
			}
		}
		if p := s.Portables.Get(e); p != nil {
			carrier := serial(p.Carrier)
			rec.Portable = &carrier
		}
		rec.Opaque = copyOf(s.Opaques.Get(e))
		rec.Openable = copyOf(s.Openables.Get(e))
		rec.Lockable = copyOf(s.Lockables.Get(e))
		rec.Key = copyOf(s.Keys.Get(e))
		rec.Device = copyOf(s.Devices.Get(e))
		rec.SampleTimer = copyOf(s.SampleTimers.Get(e))
		if proc := s.Processes.Get(e); proc != nil {
			rec.Process = &ProcessRecord{
				Timer:  proc.Timer,
				Type:   proc.Outcome.Type,
				Stage:  proc.Outcome.Stage,
				Target: serial(proc.Outcome.Target),
				Text:   proc.Outcome.Text,
			}
		}
		rec.Player = s.Players.Has(e)
		rec.LMR = s.LMRs.Has(e)
		rec.ActionSet = s.ActionSets.Has(e)
		rec.Container = s.Containers.Has(e)
		rec.Obstructive = s.Obstructives.Has(e)
		rec.Mobile = s.Mobiles.Has(e)
		rec.Networkable = s.Networkables.Has(e)
		rec.AccessPort = s.AccessPorts.Has(e)
		rec.IsCarried = s.IsCarrieds.Has(e)
		rec.Planq = s.Planqs.Has(e)
		snap.Entities = append(snap.Entities, rec)
	}

	for _, ev := range g.Processed {
		snap.Processed = append(snap.Processed, EventRecord{
			Type:    ev.Type,
			Action:  ev.Action,
			Mode:    ev.Mode,
			Target:  serial(ev.Target),
			Subject: serial(ev.Subject()),
			Object:  serial(ev.Object()),
			Text:    ev.Text,
			Args:    ev.Args,
		})
	}

	d := *g.Planq
	snap.Planq = PlanqRecord{
		Inventory: serials(s, d.InventoryList),
		ProcTable: serials(s, d.ProcTable),
		JackPlug:  serial(d.JackPlug),
		JackCnxn:  serial(d.JackCnxn),
	}
	d.InventoryList, d.ProcTable = nil, nil
	d.JackPlug, d.JackCnxn = entity.Placeholder, entity.Placeholder
	d.Stdout = append([]msglog.Message(nil), d.Stdout...)
	snap.Planq.Data = d
	return snap
}

// Restore replaces the game's world, entities and PLANQ state with the snapshot.
// The Data and Monitor are overwritten in place so systems holding them stay wired.
func Restore(snap *Snapshot, g *state.Game) error {
	if snap.Version != Version {
		return oops.In("savestate").With("version", snap.Version).Wrap(ErrVersion)
	}
	if snap.Model == nil {
		return oops.In("savestate").Errorf("snapshot has no world model")
	}

	store := entity.NewStore()
	mapper := &EntityMapper{bySerial: make(map[uint64]ecs.Entity, len(snap.Entities))}
	for _, rec := range snap.Entities {
		mapper.bySerial[rec.Serial] = store.SpawnWithSerial(rec.Serial)
	}

	for _, rec := range snap.Entities {
		e := mapper.Map(rec.Serial)
		if rec.Position != nil {
			store.Positions.Set(e, *rec.Position)
		}
		if rec.Body != nil {
			store.Bodies.Set(e, *rec.Body)
		}
		setIf(store.Descriptions, e, rec.Description)
		if rec.Viewshed != nil {
			store.Viewsheds.Set(e, entity.NewViewshed(*rec.Viewshed))
		}
		if rec.Memory != nil {
			mem := entity.NewMemory()
			for p, ids := range rec.Memory {
				if seen := mapper.mapAll(ids); len(seen) > 0 {
					mem.Visual[p] = seen
				}
			}
			store.Memories.Set(e, mem)
		}
		if rec.Portable != nil {
			store.Portables.Set(e, entity.Portable{Carrier: mapper.Map(*rec.Portable)})
		}
		setIf(store.Opaques, e, rec.Opaque)
		setIf(store.Openables, e, rec.Openable)
		setIf(store.Lockables, e, rec.Lockable)
		setIf(store.Keys, e, rec.Key)
		setIf(store.Devices, e, rec.Device)
		setIf(store.SampleTimers, e, rec.SampleTimer)
		if rec.Process != nil {
			store.Processes.Set(e, entity.PlanqProcess{
				Timer: rec.Process.Timer,
				Outcome: event.PlanqEvent{
					Type:   rec.Process.Type,
					Stage:  rec.Process.Stage,
					Target: mapper.Map(rec.Process.Target),
					Text:   rec.Process.Text,
				},
			})
		}
		tag(store.Players, e, rec.Player, entity.Player{})
		tag(store.LMRs, e, rec.LMR, entity.LMR{})
		tag(store.ActionSets, e, rec.ActionSet, entity.NewActionSet())
		tag(store.Containers, e, rec.Container, entity.Container{})
		tag(store.Obstructives, e, rec.Obstructive, entity.Obstructive{})
		tag(store.Mobiles, e, rec.Mobile, entity.Mobile{})
		tag(store.Networkables, e, rec.Networkable, entity.Networkable{})
		tag(store.AccessPorts, e, rec.AccessPort, entity.AccessPort{})
		tag(store.IsCarrieds, e, rec.IsCarried, entity.IsCarried{})
		tag(store.Planqs, e, rec.Planq, entity.Planq{})
	}

	for _, level := range snap.Model.Levels {
		level.UpdateTilemaps()
		if len(level.Revealed) != len(level.Tiles) {
			level.Revealed = make([]bool, len(level.Tiles))
		}
	}

	d := snap.Planq.Data
	d.InventoryList = mapper.mapAll(snap.Planq.Inventory)
	d.ProcTable = mapper.mapAll(snap.Planq.ProcTable)
	d.JackPlug = mapper.Map(snap.Planq.JackPlug)
	d.JackCnxn = mapper.Map(snap.Planq.JackCnxn)

	g.Store = store
	g.Model = snap.Model
	if snap.Log != nil {
		g.Log = snap.Log
	}
	*g.Planq = d
	if snap.Monitor != nil {
		*g.Monitor = *snap.Monitor
		if g.Monitor.RawData == nil {
			g.Monitor.RawData = map[string]planq.DataValue{}
		}
	}
	g.Processed = nil
	for _, rec := range snap.Processed {
		g.Processed = append(g.Processed, event.GameEvent{
			Type:    rec.Type,
			Action:  rec.Action,
			Mode:    rec.Mode,
			Target:  mapper.Map(rec.Target),
			Text:    rec.Text,
			Args:    rec.Args,
			Context: event.NewContext(mapper.Map(rec.Subject), mapper.Map(rec.Object)),
		})
	}
	g.Mode = snap.Mode
	g.Tick = snap.Tick
	g.Elapsed = snap.Elapsed
	g.RebuildOccupancy()

	logger.For("savestate").WithField("snapshot", snap.ID.String()).WithField("from_session", snap.Session).
		Info("restored snapshot")
	return nil
}

// Write encodes the snapshot as indented JSON
func Write(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return oops.In("savestate").Wrapf(err, "encode snapshot")
	}
	return nil
}

// Read decodes a snapshot and checks its version
func Read(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, oops.In("savestate").Wrapf(err, "decode snapshot")
	}
	if snap.Version != Version {
		return nil, oops.In("savestate").With("version", snap.Version).Wrap(ErrVersion)
	}
	return &snap, nil
}

// WriteFile saves the snapshot to path, replacing any earlier save
func WriteFile(path string, snap *Snapshot) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return oops.In("savestate").With("path", path).Wrapf(err, "create save file")
	}
	if err := Write(f, snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return oops.In("savestate").With("path", path).Wrapf(err, "close save file")
	}
	return oops.In("savestate").With("path", path).Wrap(os.Rename(tmp, path))
}

// ReadFile loads a snapshot from path
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oops.In("savestate").With("path", path).Wrapf(err, "open save file")
	}
	defer f.Close()
	return Read(f)
}

// Handler returns the pipeline hook that serves save and load requests using path
func Handler(path string) func(g *state.Game, ev event.GameEvent) error {
	return func(g *state.Game, ev event.GameEvent) error {
		switch ev.Type {
		case event.SaveRequest:
			if err := WriteFile(path, Capture(g)); err != nil {
				return err
			}
			g.Log.TellPlayer(gotext.Get("Game saved."))
		case event.LoadRequest:
			snap, err := ReadFile(path)
			if err != nil {
				return err
			}
			if err := Restore(snap, g); err != nil {
				return err
			}
			g.Log.TellPlayer(gotext.Get("Game loaded."))
		}
		return nil
	}
}

func serials(s *entity.Store, list []ecs.Entity) []uint64 {
	out := make([]uint64, 0, len(list))
	for _, e := range list {
		if id := s.Serial(e); id != 0 {
			out = append(out, id)
		}
	}
	return out
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func setIf[T any](c entity.Component[T], e ecs.Entity, v *T) {
	if v != nil {
		c.Set(e, *v)
	}
}

func tag[T any](c entity.Component[T], e ecs.Entity, on bool, v T) {
	if on {
		c.Set(e, v)
	}
}
