package planq

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/entity"
	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
)

// spawnProcess starts a one-shot task that fires outcome after d and registers it
func (d *Data) spawnProcess(store *entity.Store, dur time.Duration, outcome event.PlanqEvent) ecs.Entity {
	e := store.Spawn()
	store.Processes.Set(e, entity.PlanqProcess{
		Timer:   entity.NewTimer(dur, entity.TimerOnce),
		Outcome: outcome,
	})
	d.ProcTable = append(d.ProcTable, e)
	return e
}

// killProcess despawns a process and drops it from the table
func (d *Data) killProcess(store *entity.Store, e ecs.Entity) {
	for i, p := range d.ProcTable {
		if p == e {
			d.ProcTable = append(d.ProcTable[:i], d.ProcTable[i+1:]...)
			break
		}
	}
	store.Despawn(e)
}

// killJobs stops every process except the resident one at index 0
func (d *Data) killJobs(store *entity.Store) int {
	if len(d.ProcTable) <= 1 {
		return 0
	}
	jobs := append([]ecs.Entity{}, d.ProcTable[1:]...)
	for _, job := range jobs {
		d.killProcess(store, job)
	}
	return len(jobs)
}

// killAll empties the process table
func (d *Data) killAll(store *entity.Store) {
	for _, p := range d.ProcTable {
		store.Despawn(p)
	}
	d.ProcTable = nil
}

// pruneDead drops table entries whose entities no longer exist
func (d *Data) pruneDead(store *entity.Store) {
	live := d.ProcTable[:0]
	for _, p := range d.ProcTable {
		if store.Processes.Has(p) {
			live = append(live, p)
		}
	}
	d.ProcTable = live
}
