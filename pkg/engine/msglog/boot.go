package msglog

// planqLogo is printed at the end of the boot sequence
var planqLogo = []string{
	"▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄",
	"▌ __         __  __     __   ▐",
	"▌/   _||   |/  \\(_     /_    ▐",
	"▌\\__(-|||_||\\__/__)  \\/__)/) ▐",
	"▌────────<-──────────<-─<{ (<▐",
	"▌         \\           \\   \\) ▐",
	"▙▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▟",
}

// BootLines returns the canned PLANQ output for a boot stage; stages past 4 print nothing
func BootLines(stage int) []string {
	switch stage {
	case 0:
		return []string{"¶│BIOS:  GRAIN v17.6.8 'Cedar'"}
	case 1:
		return []string{"¶│Hardware Status ....... [OK]"}
	case 2:
		return []string{"¶│Firmware Status ....... [OK]"}
	case 3:
		return []string{"¶│Bootloader Status ..... [OK]"}
	case 4:
		lines := append([]string{}, planqLogo...)
		return append(lines, " ", "¶│Ready for input!")
	default:
		return nil
	}
}

// BootMessage writes a boot stage's lines to the planq channel
func (l *Log) BootMessage(stage int) {
	for _, line := range BootLines(stage) {
		l.TellPlanq(line)
	}
}
