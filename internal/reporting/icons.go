package reporting

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Icon constants
const (
	IconCheck     = "✅" // U+2705
	IconCross     = "❌" // U+274C
	IconWarning   = "⚠" // U+26A0 without VS16
	IconAlarm     = "🚨" // U+1F6A8 (restart counts past the critical threshold)
	IconGlobe     = "🌐" // U+1F310
	IconDatabase  = "🗄" // U+1F5C4 without VS16
	IconZap       = "⚡" // U+26A1
	IconSearch    = "🔍" // U+1F50D
	IconClipboard = "📋" // U+1F4CB
	IconTestTube  = "🧪" // U+1F9EA
	IconRocket    = "🚀" // U+1F680
	IconCalendar  = "📅" // U+1F4C5
	IconParty     = "🎉" // U+1F389
	IconChart     = "📊" // U+1F4CA
	IconSkip      = "⏭" // U+23ED without VS16
	IconClock     = "⏰" // U+23F0
	IconSleep     = "💤" // U+1F4A4
	IconStop      = "🛑" // U+1F6D1
	IconRefresh   = "🔄" // U+1F504
)

// SafeIcon wraps an icon with proper spacing to prevent rendering issues.
// Wide glyphs (most emojis) get two trailing spaces so terminals that render
// them double-width still show a visible gap before the next character.
func SafeIcon(icon string) string {
	w := runewidth.StringWidth(icon)
	spaces := 1
	if w >= 2 {
		spaces = 2
	}
	return fmt.Sprintf("%s%s", icon, strings.Repeat(" ", spaces))
}

// IconText formats an icon with text, handling spacing properly
func IconText(icon string, text string) string {
	return fmt.Sprintf("%s%s", SafeIcon(icon), text)
}

// KindIcon returns the display icon for a service classification.
func KindIcon(kind string) string {
	switch kind {
	case "HTTP":
		return IconGlobe
	case "Middleware":
		return IconDatabase
	default:
		return IconZap
	}
}
