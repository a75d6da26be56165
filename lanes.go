package osm2net

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type parseStatus uint16

const (
	PARSE_OK = parseStatus(iota + 1)
	PARSE_TRUNCATED
	PARSE_INVALID
	PARSE_MISSING = parseStatus(0)
)

// laneDesignations are entries of `<mode>:lanes` pipe lists which grant the lane to the mode
var laneDesignations = map[string]struct{}{
	"yes":        {},
	"designated": {},
	"permissive": {},
	"lane":       {},
}

// parseLanes parses lanes number. Decimal numbers are truncated
func parseLanes(value string) (int, parseStatus) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, PARSE_MISSING
	}
	if lanes, err := strconv.Atoi(value); err == nil {
		if lanes < 0 {
			return 0, PARSE_INVALID
		}
		return lanes, PARSE_OK
	}
	lanesFloat, err := strconv.ParseFloat(value, 64)
	if err != nil || lanesFloat < 0 || math.IsInf(lanesFloat, 0) || math.IsNaN(lanesFloat) {
		return 0, PARSE_INVALID
	}
	return int(lanesFloat), PARSE_TRUNCATED
}

// parseLaneList counts lanes in `<mode>:lanes` value. Both plain number and pipe-separated list are accepted
func parseLaneList(value string) (int, parseStatus) {
	if !strings.Contains(value, "|") {
		if _, ok := laneDesignations[strings.TrimSpace(value)]; ok {
			return 1, PARSE_OK
		}
		return parseLanes(value)
	}
	count := 0
	for _, entry := range strings.Split(value, "|") {
		if _, ok := laneDesignations[strings.TrimSpace(entry)]; ok {
			count++
		}
	}
	return count, PARSE_OK
}

// lanesTag reads lanes number from tag and accounts parse errors
func (engine *RuleEngine) lanesTag(tags map[string]string, key string, parse func(string) (int, parseStatus)) (int, bool) {
	value, ok := tags[key]
	if !ok {
		return 0, false
	}
	lanes, status := parse(value)
	switch status {
	case PARSE_OK:
		return lanes, true
	case PARSE_TRUNCATED:
		if engine.reportOnce(key) {
			engine.report.TruncatedLanes++
			engine.logger.Warn("Decimal lanes number has been truncated", zap.String("tag", key), zap.String("value", value), zap.Int("lanes", lanes))
		}
		return lanes, true
	case PARSE_INVALID:
		if engine.reportOnce(key) {
			engine.report.InvalidLanes++
			engine.logger.Debug("Can't parse lanes number", zap.String("tag", key), zap.String("value", value))
		}
	}
	return 0, false
}

// applyLaneSchemes includes modes which have dedicated lanes in the direction.
// Both `lanes:<mode>` and `<mode>:lanes` schemes are supported; the larger count wins
func (engine *RuleEngine) applyLaneSchemes(tags map[string]string, direction DirectionType, oneway OnewayType, modes ModeSet, evidence *directionEvidence) ModeSet {
	applies := oneway == ONEWAY_NO || direction == oneway.Travel()
	for _, token := range engine.tokens {
		target, ok := engine.mapping.modesOf(token)
		if !ok {
			continue
		}
		directed := 0
		if lanes, ok := engine.lanesTag(tags, "lanes:"+token+":"+direction.String(), parseLanes); ok {
			directed = lanes
		}
		if lanes, ok := engine.lanesTag(tags, token+":lanes:"+direction.String(), parseLaneList); ok && lanes > directed {
			directed = lanes
		}
		undirected := 0
		if applies {
			if lanes, ok := engine.lanesTag(tags, "lanes:"+token, parseLanes); ok {
				undirected = lanes
			}
			if lanes, ok := engine.lanesTag(tags, token+":lanes", parseLaneList); ok && lanes > undirected {
				undirected = lanes
			}
		}
		if directed > 0 {
			modes = modes.Union(target)
			evidence.explicit = evidence.explicit.Union(target)
			evidence.addLanes(target, directed)
		} else if undirected > 0 {
			modes = modes.Union(target)
			evidence.addLanes(target, undirected)
		}
	}
	return modes
}

// resolveLanes returns lanes number for direction which has at least one allowed mode
func (engine *RuleEngine) resolveLanes(tags map[string]string, direction DirectionType, oneway OnewayType, reopened bool, modes ModeSet, template *AttributeTemplate, evidence *directionEvidence) int {
	own, ownOk := engine.lanesTag(tags, "lanes:"+direction.String(), parseLanes)
	if ownOk && own > 0 {
		return own
	}
	if reopened {
		// Contraflow opened by corridor or lane-scheme evidence only
		if lanes := evidence.maxModeLanes(modes); lanes > 0 {
			return lanes
		}
		return 1
	}
	other, otherOk := engine.lanesTag(tags, "lanes:"+direction.Opposite().String(), parseLanes)
	total, totalOk := engine.lanesTag(tags, "lanes", parseLanes)
	if totalOk && total > 0 {
		if oneway != ONEWAY_NO {
			// Travel direction gets every lane except contraflow ones
			if otherOk && other > 0 && other < total {
				return total - other
			}
			return total
		}
		if otherOk && other > 0 && other < total {
			return total - other
		}
		return int(math.Ceil(float64(total) / 2.0))
	}
	if lanes := evidence.maxModeLanes(modes); lanes > 0 && modes.Minus(modesWithLanes(evidence)).IsEmpty() {
		return lanes
	}
	engine.report.MissingLanes++
	return template.DefaultLanes
}

func modesWithLanes(evidence *directionEvidence) ModeSet {
	modes := MODES_NONE
	for mode, lanes := range evidence.modeLanes {
		if lanes > 0 {
			modes = modes.Add(mode)
		}
	}
	return modes
}
