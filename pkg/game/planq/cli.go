package planq

import (
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/zgrow/spacegame-sub000/pkg/engine/event"
	"github.com/zgrow/spacegame-sub000/pkg/logger"
)

// CmdKind identifies a shell command
type CmdKind int

// Shell commands
const (
	CmdNoOperation CmdKind = iota
	CmdError
	CmdHelp
	CmdShutdown
	CmdReboot
	CmdConnect
	CmdDisconnect
)

// Cmd is one parsed line of shell input. Arg is the target for Connect and the
// offending input for Error.
type Cmd struct {
	Kind CmdKind
	Arg  string
}

// commandHelp is printed by "help", one line per command
var commandHelp = []string{
	"help ............ show this list",
	"shutdown ........ power down",
	"reboot .......... power cycle",
	"connect TARGET .. open a data link over the access jack",
	"disconnect ...... close the data link",
}

// ParseCmd turns a line of shell input into a Cmd
func ParseCmd(input string) Cmd {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Cmd{Kind: CmdNoOperation}
	}
	switch strings.ToLower(fields[0]) {
	case "help", "?":
		return Cmd{Kind: CmdHelp}
	case "shutdown":
		return Cmd{Kind: CmdShutdown}
	case "reboot":
		return Cmd{Kind: CmdReboot}
	case "connect":
		return Cmd{Kind: CmdConnect, Arg: strings.Join(fields[1:], " ")}
	case "disconnect":
		return Cmd{Kind: CmdDisconnect}
	default:
		return Cmd{Kind: CmdError, Arg: strings.TrimSpace(input)}
	}
}

// execute echoes a line of shell input and runs it
func (s *System) execute(f Frame, input string) {
	d := s.Data
	handheld, ok := f.Store.Planq()
	if !ok {
		return
	}
	if !d.running() {
		f.Log.TellPlayer(gotext.Get("The PLANQ is not responding."))
		return
	}
	f.Log.TellPlanq("[[fg:green]]>[[end]] " + input)

	cmd := ParseCmd(input)
	switch cmd.Kind {
	case CmdNoOperation:
	case CmdHelp:
		for _, line := range commandHelp {
			f.Log.TellPlanq(line)
		}
	case CmdShutdown:
		s.handle(f, event.NewPlanqEvent(event.PlanqShutdown), handheld)
	case CmdReboot:
		s.handle(f, event.NewPlanqEvent(event.PlanqReboot), handheld)
	case CmdConnect:
		s.connect(f, cmd.Arg)
	case CmdDisconnect:
		if d.JackCnxn.IsZero() {
			s.cliError(f, gotext.Get("no link to close"))
			return
		}
		s.handle(f, event.NewPlanqEvent(event.PlanqAccessUnlink), handheld)
	case CmdError:
		logger.For("planq").WithField("input", cmd.Arg).Warn("unknown shell command")
		s.cliError(f, gotext.Get("unknown command '%s'", cmd.Arg))
	}
}

// connect starts the job that brings up a link to the port the jack is plugged into
func (s *System) connect(f Frame, target string) {
	d := s.Data
	if d.JackPlug.IsZero() {
		s.cliError(f, gotext.Get("access jack is not plugged in"))
		return
	}
	name := f.Store.Name(d.JackPlug)
	if target != "" && !strings.EqualFold(target, name) {
		s.cliError(f, gotext.Get("no such device: %s", target))
		return
	}
	if !f.Store.AccessPorts.Has(d.JackPlug) {
		s.cliError(f, gotext.Get("%s has no access port", name))
		return
	}
	f.Log.TellPlanq(gotext.Get("Connecting to %s...", name))
	d.spawnProcess(f.Store, s.ConnectDelay, event.AccessLink(d.JackPlug))
}

func (s *System) cliError(f Frame, text string) {
	f.Log.TellPlanq("[[fg:red]]ERROR:[[end]] " + text)
}
