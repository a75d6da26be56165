package osm2net

import (
	"strings"
)

// corridorScheme describes family of side-qualified tags granting a dedicated corridor to single mode
type corridorScheme struct {
	key   string
	token string
}

var (
	corridorSchemes = []corridorScheme{
		{"cycleway", "bicycle"},
		{"busway", "bus"},
	}

	corridorPositiveValues = map[string]struct{}{
		"lane":         {},
		"track":        {},
		"shared_lane":  {},
		"share_busway": {},
		"shoulder":     {},
		"yes":          {},
		"designated":   {},
	}

	corridorSides = []string{"left", "right"}
)

func isOppositeCorridor(value string) bool {
	return strings.HasPrefix(value, "opposite")
}

func isPositiveCorridor(value string) bool {
	_, ok := corridorPositiveValues[value]
	return ok
}

// corridorDirections returns which directions the corridor serves: natural is direction of traffic next to it
func corridorDirections(natural DirectionType, onewayValue string) (forward, backward bool) {
	switch {
	case onewayValue == "no":
		return true, true
	case isOnewayBackwardValue(onewayValue):
		natural = natural.Opposite()
	}
	return natural == DIRECTION_FORWARD, natural == DIRECTION_BACKWARD
}

// applyCorridors includes modes of `cycleway*` and `busway*` corridors serving the direction.
// Physical side maps to direction via driving side; on oneway ways the side follows travel direction
func (engine *RuleEngine) applyCorridors(tags map[string]string, direction DirectionType, side DrivingSide, oneway OnewayType, modes ModeSet, evidence *directionEvidence) ModeSet {
	travel := oneway.Travel()
	for _, scheme := range corridorSchemes {
		target, ok := engine.mapping.modesOf(scheme.token)
		if !ok {
			continue
		}
		serves := false
		for _, key := range []string{scheme.key, scheme.key + ":both"} {
			value := tags[key]
			switch {
			case isOppositeCorridor(value):
				serves = serves || (oneway != ONEWAY_NO && direction != travel)
			case isPositiveCorridor(value):
				if oneway == ONEWAY_NO || direction == travel || tags[key+":oneway"] == "no" {
					serves = true
				}
			}
		}
		for _, physical := range corridorSides {
			key := scheme.key + ":" + physical
			value := tags[key]
			switch {
			case isOppositeCorridor(value):
				serves = serves || (oneway != ONEWAY_NO && direction != travel)
			case isPositiveCorridor(value):
				natural := sideDirection(physical, side)
				if oneway != ONEWAY_NO {
					natural = travel
				}
				forward, backward := corridorDirections(natural, tags[key+":oneway"])
				if (direction == DIRECTION_FORWARD && forward) || (direction == DIRECTION_BACKWARD && backward) {
					serves = true
				}
			}
		}
		if serves {
			modes = modes.Union(target)
			evidence.explicit = evidence.explicit.Union(target)
		}
	}
	return modes
}
