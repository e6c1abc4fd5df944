// Package planq runs the PLANQ, the player's handheld computer: a CPU state
// machine with a boot sequence, a table of timed processes, a shell, and a
// monitor that samples named data sources for the status strip.
package planq

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/zgrow/spacegame-sub000/pkg/engine/msglog"
	"github.com/zgrow/spacegame-sub000/pkg/engine/world"
)

// CPUMode is the PLANQ firmware's operating mode
type CPUMode int

// CPU modes
const (
	Offline CPUMode = iota
	Startup
	Idle
	Working
	Shutdown
	Error
)

// String returns the mode name shown on the status strip
func (m CPUMode) String() string {
	switch m {
	case Offline:
		return "OFFLINE"
	case Startup:
		return "STARTUP"
	case Idle:
		return "IDLE"
	case Working:
		return "WORKING"
	case Shutdown:
		return "SHUTDOWN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// CrashCode is the error raised when the process table empties under a running CPU
const CrashCode = 420

// ActionMode disambiguates what player input means while the PLANQ is in hand
type ActionMode int

// Action modes
const (
	ActionDefault ActionMode = iota
	ActionCliInput
)

// Data is the PLANQ's settings and working state
type Data struct {
	PowerIsOn      bool             `json:"power_is_on"`
	BootStage      int              `json:"boot_stage"`
	IsCarried      bool             `json:"is_carried"`
	CPUMode        CPUMode          `json:"cpu_mode"`
	ErrorCode      int              `json:"error_code"`
	ActionMode     ActionMode       `json:"action_mode"`
	ShowTerminal   bool             `json:"show_terminal"`
	ShowInventory  bool             `json:"show_inventory"`
	ShowCliInput   bool             `json:"show_cli_input"`
	InventoryList  []ecs.Entity     `json:"-"`
	PlayerLoc      world.Position   `json:"player_loc"`
	Stdout         []msglog.Message `json:"stdout"`
	ProcTable      []ecs.Entity     `json:"-"`
	JackPlug       ecs.Entity       `json:"-"` // what the access cable is physically plugged into
	JackCnxn       ecs.Entity       `json:"-"` // the established data link, set by AccessLink
	RebootPending  bool             `json:"reboot_pending"`
	ErrorDisplayed bool             `json:"error_displayed"`
}

// NewData returns a powered-down PLANQ
func NewData() *Data {
	return &Data{CPUMode: Offline, PlayerLoc: world.Invalid}
}

// ModeLabel returns the mode with its error code, if any
func (d *Data) ModeLabel() string {
	if d.CPUMode == Error {
		return fmt.Sprintf("%s(%d)", d.CPUMode, d.ErrorCode)
	}
	return d.CPUMode.String()
}

// goIdle moves to Idle and leaves a blank line in the terminal
func (d *Data) goIdle(log *msglog.Log) {
	log.TellPlanq(" ")
	d.CPUMode = Idle
}
