package osm2net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type ruleCase struct {
	name     string
	key      string
	tags     map[string]string
	side     DrivingSide
	forward  ModeSet
	backward ModeSet
}

func newTestEngine() (*RuleEngine, *Catalog, *Report) {
	report := NewReport()
	return NewRuleEngine(nil, report, nil), NewCatalog(nil), report
}

func TestResolveWayModes(t *testing.T) {
	bicycle := NewModeSet(MODE_BICYCLE)
	cases := []ruleCase{
		{
			name:     "oneway residential",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "oneway": "yes", "lanes": "2"},
			forward:  MODES_MOTORIZED,
			backward: MODES_NONE,
		},
		{
			name:     "reversed oneway",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "oneway": "-1"},
			forward:  MODES_NONE,
			backward: MODES_MOTORIZED,
		},
		{
			name:     "motorway is oneway by default",
			key:      "highway:motorway",
			tags:     map[string]string{"highway": "motorway"},
			forward:  MODES_MOTORIZED,
			backward: MODES_NONE,
		},
		{
			name:     "motorway tagged as bidirectional",
			key:      "highway:motorway",
			tags:     map[string]string{"highway": "motorway", "oneway": "no"},
			forward:  MODES_MOTORIZED,
			backward: MODES_MOTORIZED,
		},
		{
			name:     "cycle lane on the right in right-hand traffic",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "cycleway:right": "lane"},
			side:     DRIVING_RIGHT,
			forward:  MODES_MOTORIZED.Union(bicycle),
			backward: MODES_MOTORIZED,
		},
		{
			name:     "cycle lane on the right in left-hand traffic",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "cycleway:right": "lane"},
			side:     DRIVING_LEFT,
			forward:  MODES_MOTORIZED,
			backward: MODES_MOTORIZED.Union(bicycle),
		},
		{
			name:     "cycle lanes on both sides",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "cycleway:both": "lane"},
			forward:  MODES_MOTORIZED.Union(bicycle),
			backward: MODES_MOTORIZED.Union(bicycle),
		},
		{
			name:     "bidirectional side track",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "cycleway:left": "track", "cycleway:left:oneway": "no"},
			forward:  MODES_MOTORIZED.Union(bicycle),
			backward: MODES_MOTORIZED.Union(bicycle),
		},
		{
			name:     "cycle lane along oneway",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "oneway": "yes", "cycleway": "lane"},
			forward:  MODES_MOTORIZED.Union(bicycle),
			backward: MODES_NONE,
		},
		{
			name:     "contraflow cycle lane",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "oneway": "yes", "cycleway": "opposite_lane"},
			forward:  MODES_MOTORIZED,
			backward: bicycle,
		},
		{
			name:     "oneway except bicycles",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "oneway": "yes", "oneway:bicycle": "no"},
			forward:  MODES_MOTORIZED,
			backward: bicycle,
		},
		{
			name:     "direction-qualified access opens contraflow",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "oneway": "yes", "bicycle:backward": "yes"},
			forward:  MODES_MOTORIZED,
			backward: bicycle,
		},
		{
			name:     "oneway for bicycles only",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "bicycle": "yes", "oneway:bicycle": "yes"},
			forward:  MODES_MOTORIZED.Union(bicycle),
			backward: MODES_MOTORIZED,
		},
		{
			name:     "contraflow bus lane",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "oneway": "yes", "lanes": "3", "lanes:bus:backward": "1"},
			forward:  MODES_MOTORIZED,
			backward: NewModeSet(MODE_BUS),
		},
		{
			name:     "blanket denial with exception",
			key:      "highway:residential",
			tags:     map[string]string{"highway": "residential", "access": "no", "bicycle": "yes"},
			forward:  bicycle,
			backward: bicycle,
		},
		{
			name:     "group denial",
			key:      "highway:living_street",
			tags:     map[string]string{"highway": "living_street", "motor_vehicle": "no"},
			forward:  NewModeSet(MODE_FOOT, MODE_BICYCLE),
			backward: NewModeSet(MODE_FOOT, MODE_BICYCLE),
		},
		{
			name:     "leaf token",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "hgv": "no"},
			forward:  MODES_MOTORIZED.Remove(MODE_GOODS),
			backward: MODES_MOTORIZED.Remove(MODE_GOODS),
		},
		{
			name:     "footway open for bicycles",
			key:      "highway:footway",
			tags:     map[string]string{"highway": "footway", "bicycle": "designated"},
			forward:  NewModeSet(MODE_FOOT, MODE_BICYCLE),
			backward: NewModeSet(MODE_FOOT, MODE_BICYCLE),
		},
		{
			name:     "specific token overrides its group",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "bus": "no", "psv": "yes"},
			forward:  MODES_MOTORIZED.Remove(MODE_BUS),
			backward: MODES_MOTORIZED.Remove(MODE_BUS),
		},
		{
			name:     "hgv overrides goods",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "goods": "no", "hgv": "yes"},
			forward:  MODES_MOTORIZED,
			backward: MODES_MOTORIZED,
		},
		{
			name:     "direction-qualified denial wins over group permission",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "psv": "yes", "bus:backward": "no"},
			forward:  MODES_MOTORIZED,
			backward: MODES_MOTORIZED.Remove(MODE_BUS),
		},
		{
			name:     "direction-qualified permission wins over specific denial",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "bus": "no", "psv:forward": "yes"},
			forward:  MODES_MOTORIZED,
			backward: MODES_MOTORIZED.Remove(MODE_BUS),
		},
		{
			name:     "roundabout",
			key:      "highway:primary",
			tags:     map[string]string{"highway": "primary", "junction": "roundabout"},
			forward:  MODES_MOTORIZED,
			backward: MODES_NONE,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, catalog, _ := newTestEngine()
			template := mustTemplate(t, catalog, tc.key)
			side := tc.side
			if side == DRIVING_UNDEFINED {
				side = DRIVING_RIGHT
			}
			attrs := engine.ResolveWay(tc.tags, side, template, DIRECTION_UNDEFINED)
			assert.Equal(t, tc.forward.String(), attrs.Forward.Modes.String(), "forward")
			assert.Equal(t, tc.backward.String(), attrs.Backward.Modes.String(), "backward")
			assert.Equal(t, !tc.forward.IsEmpty(), attrs.Forward.IsPassable())
			assert.Equal(t, !tc.backward.IsEmpty(), attrs.Backward.IsPassable())

			forward := engine.ResolveDirectionalAttributes(tc.tags, DIRECTION_FORWARD, side, template)
			backward := engine.ResolveDirectionalAttributes(tc.tags, DIRECTION_BACKWARD, side, template)
			assert.Equal(t, attrs.Forward, forward)
			assert.Equal(t, attrs.Backward, backward)
		})
	}
}

func TestResolveOnewayResidential(t *testing.T) {
	engine, catalog, report := newTestEngine()
	template := mustTemplate(t, catalog, "highway:residential")
	tags := map[string]string{"highway": "residential", "oneway": "yes", "lanes": "2"}

	attrs := engine.ResolveWay(tags, DRIVING_RIGHT, template, DIRECTION_UNDEFINED)
	assert.Equal(t, ONEWAY_FORWARD, attrs.Oneway)
	assert.False(t, attrs.Roundabout)
	assert.Equal(t, 2, attrs.Forward.Lanes)
	assert.Equal(t, template.DefaultSpeedKmh, attrs.Forward.SpeedKmh)
	assert.False(t, attrs.Backward.IsPassable())
	assert.Equal(t, DirectionalAttributes{Modes: MODES_NONE}, attrs.Backward)
	assert.Equal(t, attrs.Forward, attrs.Direction(DIRECTION_FORWARD))
	assert.Equal(t, 1, report.DirectionsResolved)
	assert.Equal(t, 1, report.MissingSpeed)
	assert.Equal(t, 0, report.MissingLanes)

	// Same inputs give the same outputs
	assert.Equal(t, attrs, engine.ResolveWay(tags, DRIVING_RIGHT, template, DIRECTION_UNDEFINED))
}

func TestResolveForcedDirection(t *testing.T) {
	engine, catalog, _ := newTestEngine()
	template := mustTemplate(t, catalog, "highway:residential")
	tags := map[string]string{"highway": "residential", "oneway": "yes"}

	attrs := engine.ResolveWay(tags, DRIVING_RIGHT, template, DIRECTION_BACKWARD)
	assert.Equal(t, ONEWAY_BACKWARD, attrs.Oneway)
	assert.False(t, attrs.Forward.IsPassable())
	assert.Equal(t, MODES_MOTORIZED, attrs.Backward.Modes)
}

func TestResolveLanes(t *testing.T) {
	cases := []struct {
		name     string
		key      string
		tags     map[string]string
		forward  int
		backward int
	}{
		{"odd total", "highway:primary", map[string]string{"lanes": "3"}, 2, 2},
		{"even total", "highway:primary", map[string]string{"lanes": "4"}, 2, 2},
		{"directed", "highway:primary", map[string]string{"lanes": "4", "lanes:forward": "3"}, 3, 1},
		{"both directed", "highway:primary", map[string]string{"lanes": "5", "lanes:forward": "2", "lanes:backward": "2"}, 2, 2},
		{"decimal is truncated", "highway:primary", map[string]string{"lanes": "2.7"}, 1, 1},
		{"default", "highway:motorway", map[string]string{"oneway": "no"}, 2, 2},
		{"oneway with contraflow lane", "highway:primary", map[string]string{"oneway": "yes", "lanes": "3", "lanes:backward": "1", "bus:backward": "designated"}, 2, 1},
		{"contraflow bus lane", "highway:primary", map[string]string{"oneway": "yes", "lanes": "3", "lanes:bus:backward": "1"}, 3, 1},
		{"contraflow cycle lane", "highway:residential", map[string]string{"oneway": "yes", "cycleway": "opposite_lane"}, 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, catalog, _ := newTestEngine()
			template := mustTemplate(t, catalog, tc.key)
			attrs := engine.ResolveWay(tc.tags, DRIVING_RIGHT, template, DIRECTION_UNDEFINED)
			require.True(t, attrs.Forward.IsPassable())
			require.True(t, attrs.Backward.IsPassable())
			assert.Equal(t, tc.forward, attrs.Forward.Lanes, "forward")
			assert.Equal(t, tc.backward, attrs.Backward.Lanes, "backward")
		})
	}
}

func TestResolveLanesDiagnostics(t *testing.T) {
	engine, catalog, report := newTestEngine()
	template := mustTemplate(t, catalog, "highway:primary")

	// Malformed tag is counted once per way although both directions read it
	engine.ResolveWay(map[string]string{"lanes": "2.7"}, DRIVING_RIGHT, template, DIRECTION_UNDEFINED)
	assert.Equal(t, 1, report.TruncatedLanes)
	assert.Equal(t, 0, report.InvalidLanes)

	attrs := engine.ResolveWay(map[string]string{"lanes": "many"}, DRIVING_RIGHT, template, DIRECTION_UNDEFINED)
	assert.Equal(t, 1, report.InvalidLanes)
	assert.Equal(t, 2, report.MissingLanes)
	assert.Equal(t, template.DefaultLanes, attrs.Forward.Lanes)
	assert.Equal(t, 4, report.DirectionsResolved)
	assert.Equal(t, 50.0, report.MissingLanesPercent())
}

func TestResolveDiagnosticsOncePerWay(t *testing.T) {
	report := NewReport()
	core, logs := observer.New(zapcore.DebugLevel)
	engine := NewRuleEngine(nil, report, zap.New(core))
	template := mustTemplate(t, NewCatalog(nil), "highway:primary")
	tags := map[string]string{"highway": "primary", "lanes": "2.5", "lanes:forward": "1.5", "maxspeed": "fast"}

	engine.ResolveWay(tags, DRIVING_RIGHT, template, DIRECTION_UNDEFINED)
	assert.Equal(t, 2, report.TruncatedLanes)
	assert.Equal(t, 1, report.InvalidSpeed)
	assert.Equal(t, 2, logs.FilterMessage("Decimal lanes number has been truncated").Len())
	assert.Equal(t, 1, logs.FilterMessage("Can't parse speed limit").Len())

	// Next way is counted again
	engine.ResolveWay(tags, DRIVING_RIGHT, template, DIRECTION_UNDEFINED)
	assert.Equal(t, 4, report.TruncatedLanes)
	assert.Equal(t, 2, report.InvalidSpeed)

	engine.ResolveDirectionalAttributes(tags, DIRECTION_BACKWARD, DRIVING_RIGHT, template)
	assert.Equal(t, 6, report.TruncatedLanes)
	assert.Equal(t, 3, report.InvalidSpeed)
}

func TestResolveSpeed(t *testing.T) {
	cases := []struct {
		name     string
		key      string
		tags     map[string]string
		forward  float64
		backward float64
	}{
		{"plain", "highway:primary", map[string]string{"maxspeed": "50"}, 50, 50},
		{"miles per hour", "highway:primary", map[string]string{"maxspeed": "30 mph"}, 48.28032, 48.28032},
		{"directed", "highway:primary", map[string]string{"maxspeed": "50", "maxspeed:forward": "70"}, 70, 50},
		{"zone", "highway:primary", map[string]string{"maxspeed": "DE:urban"}, 50, 50},
		{"missing", "highway:primary", map[string]string{}, 80, 80},
		{"invalid", "highway:primary", map[string]string{"maxspeed": "fast"}, 80, 80},
		{"unlimited", "highway:motorway", map[string]string{"maxspeed": "none", "oneway": "no"}, 120, 120},
		{"bicycle only", "highway:cycleway", map[string]string{}, 25, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, catalog, _ := newTestEngine()
			template := mustTemplate(t, catalog, tc.key)
			attrs := engine.ResolveWay(tc.tags, DRIVING_RIGHT, template, DIRECTION_UNDEFINED)
			assert.InDelta(t, tc.forward, attrs.Forward.SpeedKmh, 1e-9, "forward")
			assert.InDelta(t, tc.backward, attrs.Backward.SpeedKmh, 1e-9, "backward")
		})
	}
}

func TestParseSpeed(t *testing.T) {
	cases := []struct {
		value     string
		speed     float64
		unlimited bool
		status    parseStatus
	}{
		{"50", 50, false, PARSE_OK},
		{"50.5", 50.5, false, PARSE_OK},
		{"60 km/h", 60, false, PARSE_OK},
		{"60kmh", 60, false, PARSE_OK},
		{"30 mph", 30 * MPH_TO_KMH, false, PARSE_OK},
		{"10 knots", 18.52, false, PARSE_OK},
		{"DE:urban", 50, false, PARSE_OK},
		{"DE:rural", 100, false, PARSE_OK},
		{"RU:zone60", 60, false, PARSE_OK},
		{"DE:zone:30", 30, false, PARSE_OK},
		{"walk", WALK_SPEED, false, PARSE_OK},
		{"none", 0, true, PARSE_OK},
		{"signals", 0, true, PARSE_OK},
		{"", 0, false, PARSE_MISSING},
		{"fast", 0, false, PARSE_INVALID},
		{"XX:unknown", 0, false, PARSE_INVALID},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			speed, unlimited, status := parseSpeed(tc.value)
			assert.InDelta(t, tc.speed, speed, 1e-9)
			assert.Equal(t, tc.unlimited, unlimited)
			assert.Equal(t, tc.status, status)
		})
	}
	speed, _, _ := parseSpeed("30 mph")
	assert.InDelta(t, 48.28, speed, 0.01)
}

func TestParseLanes(t *testing.T) {
	cases := []struct {
		value  string
		lanes  int
		status parseStatus
	}{
		{"2", 2, PARSE_OK},
		{" 3 ", 3, PARSE_OK},
		{"2.7", 2, PARSE_TRUNCATED},
		{"-1", 0, PARSE_INVALID},
		{"two", 0, PARSE_INVALID},
		{"", 0, PARSE_MISSING},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			lanes, status := parseLanes(tc.value)
			assert.Equal(t, tc.lanes, lanes)
			assert.Equal(t, tc.status, status)
		})
	}

	lanes, status := parseLaneList("designated|yes|no")
	assert.Equal(t, 2, lanes)
	assert.Equal(t, PARSE_OK, status)
	lanes, _ = parseLaneList("designated")
	assert.Equal(t, 1, lanes)
	lanes, _ = parseLaneList("2")
	assert.Equal(t, 2, lanes)
}
