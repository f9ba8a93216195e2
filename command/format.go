package command

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/onnwee/evespai/spinner"
)

// SecurityTier buckets a system's security status for display.
type SecurityTier int

const (
	TierHighHigh SecurityTier = iota
	TierHigh
	TierMidHigh
	TierMidLow
	TierLowest
)

// TierOf maps a security status to its display tier. Boundaries are closed
// on the lower bound: exactly 0.8 is high-high, exactly 0.6 is high, exactly
// 0.5 is mid-high.
func TierOf(security float64) SecurityTier {
	switch {
	case security >= 0.8:
		return TierHighHigh
	case security >= 0.6:
		return TierHigh
	case security >= 0.5:
		return TierMidHigh
	case security >= 0.1:
		return TierMidLow
	default:
		return TierLowest
	}
}

func (t SecurityTier) String() string {
	switch t {
	case TierHighHigh:
		return "high-high"
	case TierHigh:
		return "high"
	case TierMidHigh:
		return "mid-high"
	case TierMidLow:
		return "mid/low"
	case TierLowest:
		return "lowest"
	default:
		return "unknown"
	}
}

// mIRC color codes per tier, green through red.
var tierColors = map[SecurityTier]string{
	TierHighHigh: "03",
	TierHigh:     "09",
	TierMidHigh:  "08",
	TierMidLow:   "07",
	TierLowest:   "04",
}

// FormatSystem decorates a solar system name with the color of its security tier.
func FormatSystem(name string, security float64) string {
	return "\x03" + tierColors[TierOf(security)] + name + "\x03"
}

// maxRegionID is the exclusive upper bound of the region id range; map item
// ids at or above it are solar systems (or below them in the hierarchy).
const maxRegionID = 30000000

// IsRegionID reports whether a location id denotes a region.
func IsRegionID(id int64) bool { return id < maxRegionID }

// starbaseStates maps corporation_starbase state codes to labels.
var starbaseStates = map[int]string{
	0: "Unanchored",
	1: "Anchored/Offline",
	2: "Onlining",
	3: "Reinforced",
	4: "Online",
}

// StarbaseState renders a starbase state code, "Unknown" for anything
// outside the published range.
func StarbaseState(code int) string {
	if s, ok := starbaseStates[code]; ok {
		return s
	}
	return "Unknown"
}

// podSentinel is how stationspinner records a member whose hull is not a
// known type, i.e. a capsule.
const podSentinel = "Unknown Type"

func shipName(m spinner.Member) string {
	if m.ShipType == podSentinel {
		return "Pod"
	}
	return m.ShipType
}

func memberLine(m spinner.Member) string {
	return fmt.Sprintf("%s :: %s :: %s", m.Name, m.Location, shipName(m))
}

// printer renders prices and volumes with English thousands separators.
var printer = message.NewPrinter(language.English)

func formatISK(v float64) string { return printer.Sprintf("%.2f", v) }

func formatVolume(v int64) string { return printer.Sprintf("%d", v) }
