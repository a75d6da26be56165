package osm2net

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	MPH_TO_KMH   = 1.609344
	KNOTS_TO_KMH = 1.852
	WALK_SPEED   = 5.0
)

var (
	speedRegExp = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(km/h|kmh|kph|mph|knots)?$`)
	zoneRegExp  = regexp.MustCompile(`^zone:?(\d+)$`)

	// Implicit limits of `<country>:<zone>` values
	// See ref.: https://wiki.openstreetmap.org/wiki/Key:maxspeed#Implicit_maxspeed_values
	zoneSpeeds = map[string]float64{
		"urban":         50,
		"rural":         100,
		"trunk":         100,
		"motorway":      130,
		"living_street": 7,
		"bicycle_road":  30,
		"walk":          WALK_SPEED,
	}
)

// parseSpeed parses maxspeed value into km/h. Zero capped value means `none`
func parseSpeed(value string) (speed float64, unlimited bool, status parseStatus) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false, PARSE_MISSING
	}
	switch value {
	case "none", "signals", "variable":
		return 0, true, PARSE_OK
	case "walk":
		return WALK_SPEED, false, PARSE_OK
	}
	if matches := speedRegExp.FindStringSubmatch(value); matches != nil {
		number, err := strconv.ParseFloat(matches[1], 64)
		if err != nil {
			return 0, false, PARSE_INVALID
		}
		switch matches[2] {
		case "mph":
			number *= MPH_TO_KMH
		case "knots":
			number *= KNOTS_TO_KMH
		}
		return number, false, PARSE_OK
	}
	// Implicit values like `DE:urban` or `RU:zone60`
	if parts := strings.SplitN(value, ":", 2); len(parts) == 2 {
		zone := parts[1]
		if zoneSpeed, ok := zoneSpeeds[zone]; ok {
			return zoneSpeed, false, PARSE_OK
		}
		if matches := zoneRegExp.FindStringSubmatch(zone); matches != nil {
			number, err := strconv.ParseFloat(matches[1], 64)
			if err == nil {
				return number, false, PARSE_OK
			}
		}
	}
	return 0, false, PARSE_INVALID
}

// resolveSpeed returns speed limit for direction. `maxspeed:<direction>` overrides `maxspeed`
func (engine *RuleEngine) resolveSpeed(tags map[string]string, direction DirectionType, modes ModeSet, template *AttributeTemplate) float64 {
	for _, key := range []string{"maxspeed:" + direction.String(), "maxspeed"} {
		value, ok := tags[key]
		if !ok {
			continue
		}
		speed, unlimited, status := parseSpeed(value)
		if status != PARSE_OK {
			if engine.reportOnce(key) {
				engine.report.InvalidSpeed++
				engine.logger.Debug("Can't parse speed limit", zap.String("tag", key), zap.String("value", value))
			}
			continue
		}
		if unlimited {
			return template.DefaultSpeedFor(modes)
		}
		return speed
	}
	engine.report.MissingSpeed++
	return template.DefaultSpeedFor(modes)
}
