package event

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// PlanqEventType selects what a PlanqEvent does
type PlanqEventType int

// PLANQ event types
const (
	PlanqNull PlanqEventType = iota
	PlanqStartup
	PlanqBootStage
	PlanqShutdown
	PlanqReboot
	PlanqGoIdle
	PlanqCliOpen
	PlanqCliClose
	PlanqAccessLink
	PlanqAccessUnlink
	PlanqCommand
)

func (t PlanqEventType) String() string {
	switch t {
	case PlanqNull:
		return "NullEvent"
	case PlanqStartup:
		return "Startup"
	case PlanqBootStage:
		return "BootStage"
	case PlanqShutdown:
		return "Shutdown"
	case PlanqReboot:
		return "Reboot"
	case PlanqGoIdle:
		return "GoIdle"
	case PlanqCliOpen:
		return "CliOpen"
	case PlanqCliClose:
		return "CliClose"
	case PlanqAccessLink:
		return "AccessLink"
	case PlanqAccessUnlink:
		return "AccessUnlink"
	case PlanqCommand:
		return "Command"
	default:
		return "Unknown"
	}
}

// PlanqEvent drives the handheld's state machine. Stage is used by BootStage,
// Target by AccessLink, Text by Command (a line typed into the PLANQ's shell).
type PlanqEvent struct {
	Type   PlanqEventType
	Stage  int
	Target ecs.Entity
	Text   string
}

// NewPlanqEvent creates a parameterless PlanqEvent
func NewPlanqEvent(t PlanqEventType) PlanqEvent {
	return PlanqEvent{Type: t}
}

// BootStage creates a BootStage(n) event
func BootStage(stage int) PlanqEvent {
	return PlanqEvent{Type: PlanqBootStage, Stage: stage}
}

// AccessLink creates an AccessLink(target) event
func AccessLink(target ecs.Entity) PlanqEvent {
	return PlanqEvent{Type: PlanqAccessLink, Target: target}
}

// Command creates a Command event carrying a line of shell input
func Command(text string) PlanqEvent {
	return PlanqEvent{Type: PlanqCommand, Text: text}
}

func (e PlanqEvent) String() string {
	switch e.Type {
	case PlanqBootStage:
		return fmt.Sprintf("BootStage(%d)", e.Stage)
	default:
		return e.Type.String()
	}
}
