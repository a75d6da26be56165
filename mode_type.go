package osm2net

import (
	"sort"
	"strings"
)

// ModeType is a transport mode which could travel along a link segment
type ModeType uint16

const (
	MODE_FOOT = ModeType(iota + 1)
	MODE_BICYCLE
	MODE_MOTORCYCLE
	MODE_CAR
	MODE_GOODS
	MODE_BUS
	MODE_TRAM
	MODE_TRAIN
	MODE_LIGHTRAIL
	MODE_SUBWAY
	MODE_FERRY
	MODE_UNDEFINED = ModeType(0)
)

func (iotaIdx ModeType) String() string {
	return [...]string{"undefined", "foot", "bicycle", "motorcycle", "car", "goods", "bus", "tram", "train", "lightrail", "subway", "ferry"}[iotaIdx]
}

var (
	modeTypesAll = []ModeType{
		MODE_FOOT,
		MODE_BICYCLE,
		MODE_MOTORCYCLE,
		MODE_CAR,
		MODE_GOODS,
		MODE_BUS,
		MODE_TRAM,
		MODE_TRAIN,
		MODE_LIGHTRAIL,
		MODE_SUBWAY,
		MODE_FERRY,
	}

	modeTypesByName = map[string]ModeType{
		"foot":       MODE_FOOT,
		"bicycle":    MODE_BICYCLE,
		"motorcycle": MODE_MOTORCYCLE,
		"car":        MODE_CAR,
		"goods":      MODE_GOODS,
		"bus":        MODE_BUS,
		"tram":       MODE_TRAM,
		"train":      MODE_TRAIN,
		"lightrail":  MODE_LIGHTRAIL,
		"subway":     MODE_SUBWAY,
		"ferry":      MODE_FERRY,
	}
)

// ParseModeType returns mode for its textual name. MODE_UNDEFINED is returned for unknown names
func ParseModeType(name string) ModeType {
	if mode, ok := modeTypesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return mode
	}
	return MODE_UNDEFINED
}

// ModeSet is a set of modes packed into a bitmask. It is comparable and could be used as map key
type ModeSet uint32

var (
	MODES_NONE      = ModeSet(0)
	MODES_MOTORIZED = NewModeSet(MODE_MOTORCYCLE, MODE_CAR, MODE_GOODS, MODE_BUS)
	MODES_VEHICLE   = MODES_MOTORIZED.Add(MODE_BICYCLE)
	MODES_ROAD      = MODES_VEHICLE.Add(MODE_FOOT)
	MODES_RAIL      = NewModeSet(MODE_TRAM, MODE_TRAIN, MODE_LIGHTRAIL, MODE_SUBWAY)
	MODES_ALL       = MODES_ROAD.Union(MODES_RAIL).Add(MODE_FERRY)
)

// NewModeSet creates set from given modes
func NewModeSet(modes ...ModeType) ModeSet {
	set := MODES_NONE
	for _, mode := range modes {
		set = set.Add(mode)
	}
	return set
}

func modeBit(mode ModeType) ModeSet {
	if mode == MODE_UNDEFINED {
		return MODES_NONE
	}
	return ModeSet(1) << (mode - 1)
}

// Add returns copy of set with given mode included
func (set ModeSet) Add(mode ModeType) ModeSet {
	return set | modeBit(mode)
}

// Remove returns copy of set with given mode excluded
func (set ModeSet) Remove(mode ModeType) ModeSet {
	return set &^ modeBit(mode)
}

// Has checks if mode is in the set
func (set ModeSet) Has(mode ModeType) bool {
	bit := modeBit(mode)
	return bit != 0 && set&bit == bit
}

func (set ModeSet) Union(other ModeSet) ModeSet {
	return set | other
}

func (set ModeSet) Intersect(other ModeSet) ModeSet {
	return set & other
}

// Minus returns modes of the set which are not in other
func (set ModeSet) Minus(other ModeSet) ModeSet {
	return set &^ other
}

func (set ModeSet) IsEmpty() bool {
	return set == MODES_NONE
}

// Modes returns modes of the set in ascending order
func (set ModeSet) Modes() []ModeType {
	modes := make([]ModeType, 0, len(modeTypesAll))
	for _, mode := range modeTypesAll {
		if set.Has(mode) {
			modes = append(modes, mode)
		}
	}
	return modes
}

func (set ModeSet) String() string {
	modes := set.Modes()
	names := make([]string, len(modes))
	for i, mode := range modes {
		names[i] = mode.String()
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
