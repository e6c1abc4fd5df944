package event

// EngineMode is the top-level run state of the game
type EngineMode int

// Engine modes
const (
	ModeOffline EngineMode = iota
	ModeStandby
	ModeStartup
	ModeRunning
	ModePaused
	ModeGoodEnd
	ModeBadEnd
)

func (m EngineMode) String() string {
	switch m {
	case ModeOffline:
		return "Offline"
	case ModeStandby:
		return "Standby"
	case ModeStartup:
		return "Startup"
	case ModeRunning:
		return "Running"
	case ModePaused:
		return "Paused"
	case ModeGoodEnd:
		return "GoodEnd"
	case ModeBadEnd:
		return "BadEnd"
	default:
		return "Unknown"
	}
}
