package developments

import "strings"

// Confidence is a discrete trust tier attached to scores, sources, and
// field comparisons.
type Confidence string

// Confidence tiers, highest first.
const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// String returns the string representation of a Confidence.
func (c Confidence) String() string {
	return string(c)
}

// ParseConfidence maps a tier string to a Confidence. Unrecognized input
// returns (ConfidenceLow, false).
func ParseConfidence(s string) (Confidence, bool) {
	switch Confidence(strings.ToUpper(strings.TrimSpace(s))) {
	case ConfidenceHigh:
		return ConfidenceHigh, true
	case ConfidenceMedium:
		return ConfidenceMedium, true
	case ConfidenceLow:
		return ConfidenceLow, true
	}
	return ConfidenceLow, false
}

// ConfidenceForScore maps a confidence score to its tier.
func ConfidenceForScore(score float64) Confidence {
	switch {
	case score >= 0.7:
		return ConfidenceHigh
	case score >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Status is a development lifecycle status. The three values form a fixed
// forward order: In Planning, Under Construction, Operational.
type Status string

// Lifecycle statuses.
const (
	StatusInPlanning        Status = "In Planning"
	StatusUnderConstruction Status = "Under Construction"
	StatusOperational       Status = "Operational"
)

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// Rank returns the status position in the lifecycle order, or -1 for a
// value outside the vocabulary.
func (s Status) Rank() int {
	switch s {
	case StatusInPlanning:
		return 0
	case StatusUnderConstruction:
		return 1
	case StatusOperational:
		return 2
	}
	return -1
}

// ParseStatus maps an exact status string to a Status. Synonyms are not
// accepted here; see NormalizeStatus for fuzzy status input.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusInPlanning:
		return StatusInPlanning, true
	case StatusUnderConstruction:
		return StatusUnderConstruction, true
	case StatusOperational:
		return StatusOperational, true
	}
	return "", false
}

// DevelopmentType distinguishes apartment blocks from housing schemes.
type DevelopmentType string

// Development types.
const (
	TypeMultifamily  DevelopmentType = "Multifamily"
	TypeSingleFamily DevelopmentType = "Single Family"
)

// String returns the string representation of a DevelopmentType.
func (t DevelopmentType) String() string {
	return string(t)
}

// ParseType maps a type string to a DevelopmentType. Anything outside the
// vocabulary falls back to Multifamily, the directory default.
func ParseType(s string) (DevelopmentType, bool) {
	switch DevelopmentType(s) {
	case TypeMultifamily:
		return TypeMultifamily, true
	case TypeSingleFamily:
		return TypeSingleFamily, true
	}
	return TypeMultifamily, false
}

// Region is one of the twelve UK regions used by the directory. The set
// matches the database CHECK constraint.
type Region string

// UK regions.
const (
	RegionLondon          Region = "London"
	RegionSouthEast       Region = "South East"
	RegionSouthWest       Region = "South West"
	RegionEastOfEngland   Region = "East of England"
	RegionEastMidlands    Region = "East Midlands"
	RegionWestMidlands    Region = "West Midlands"
	RegionNorthWest       Region = "North West"
	RegionNorthEast       Region = "North East"
	RegionYorkshire       Region = "Yorkshire and The Humber"
	RegionScotland        Region = "Scotland"
	RegionWales           Region = "Wales"
	RegionNorthernIreland Region = "Northern Ireland"
)

// Regions lists every valid region in directory order.
func Regions() []Region {
	return []Region{
		RegionLondon,
		RegionSouthEast,
		RegionSouthWest,
		RegionEastOfEngland,
		RegionEastMidlands,
		RegionWestMidlands,
		RegionNorthWest,
		RegionNorthEast,
		RegionYorkshire,
		RegionScotland,
		RegionWales,
		RegionNorthernIreland,
	}
}

// String returns the string representation of a Region.
func (r Region) String() string {
	return string(r)
}

// ParseRegion maps an exact region string to a Region. Values outside the
// vocabulary (extraction output regularly invents counties) return
// ("", false) and must be dropped, never substituted.
func ParseRegion(s string) (Region, bool) {
	for _, r := range Regions() {
		if Region(s) == r {
			return r, true
		}
	}
	return "", false
}
