package osm2net

import (
	"go.uber.org/zap"
)

type OnewayType uint16

const (
	ONEWAY_FORWARD = OnewayType(iota + 1)
	ONEWAY_BACKWARD
	ONEWAY_NO = OnewayType(0)
)

func (iotaIdx OnewayType) String() string {
	return [...]string{"no", "forward", "backward"}[iotaIdx]
}

// Travel returns the only allowed travel direction of oneway. DIRECTION_UNDEFINED for ONEWAY_NO
func (iotaIdx OnewayType) Travel() DirectionType {
	switch iotaIdx {
	case ONEWAY_FORWARD:
		return DIRECTION_FORWARD
	case ONEWAY_BACKWARD:
		return DIRECTION_BACKWARD
	default:
		return DIRECTION_UNDEFINED
	}
}

func onewayFromDirection(direction DirectionType) OnewayType {
	switch direction {
	case DIRECTION_FORWARD:
		return ONEWAY_FORWARD
	case DIRECTION_BACKWARD:
		return ONEWAY_BACKWARD
	default:
		return ONEWAY_NO
	}
}

// DirectionalAttributes is outcome of tag resolution for single travel direction. Empty Modes means impassable direction
type DirectionalAttributes struct {
	Modes    ModeSet
	Lanes    int
	SpeedKmh float64
}

func (attrs DirectionalAttributes) IsPassable() bool {
	return !attrs.Modes.IsEmpty()
}

// WayAttributes is outcome of tag resolution for both directions of a way
type WayAttributes struct {
	Forward    DirectionalAttributes
	Backward   DirectionalAttributes
	Oneway     OnewayType
	Roundabout bool
}

// Direction returns attributes for given direction
func (attrs WayAttributes) Direction(direction DirectionType) DirectionalAttributes {
	if direction == DIRECTION_BACKWARD {
		return attrs.Backward
	}
	return attrs.Forward
}

// RuleEngine derives per-direction modes, lanes and speed limits from OSM tags.
// Outputs depend only on the inputs; the engine state is the mode mapping and diagnostic sinks
type RuleEngine struct {
	mapping      ModeMapping
	tokens       []string
	accessTokens []accessToken
	report       *Report
	logger       *zap.Logger
	// Tags already reported as malformed during current resolution
	reported map[string]struct{}
}

func NewRuleEngine(mapping ModeMapping, report *Report, logger *zap.Logger) *RuleEngine {
	if mapping == nil {
		mapping = DefaultModeMapping()
	}
	if report == nil {
		report = NewReport()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleEngine{
		mapping:      mapping,
		tokens:       mapping.tokensOrdered(),
		accessTokens: mapping.accessTokens(),
		report:       report,
		logger:       logger,
		reported:     make(map[string]struct{}),
	}
}

// directionEvidence is what layers 3-5 learnt about single direction
type directionEvidence struct {
	// Modes explicitly allowed by direction-qualified or side-qualified tags
	explicit ModeSet
	// Dedicated lanes per mode
	modeLanes map[ModeType]int
}

func (evidence *directionEvidence) addLanes(modes ModeSet, lanes int) {
	for _, mode := range modes.Modes() {
		if lanes > evidence.modeLanes[mode] {
			evidence.modeLanes[mode] = lanes
		}
	}
}

// maxModeLanes returns the largest dedicated lanes number among given modes
func (evidence *directionEvidence) maxModeLanes(modes ModeSet) int {
	lanes := 0
	for _, mode := range modes.Modes() {
		if evidence.modeLanes[mode] > lanes {
			lanes = evidence.modeLanes[mode]
		}
	}
	return lanes
}

// ResolveDirectionalAttributes returns modes, lanes and speed limit for single direction of the way
func (engine *RuleEngine) ResolveDirectionalAttributes(tags map[string]string, direction DirectionType, side DrivingSide, template *AttributeTemplate) DirectionalAttributes {
	engine.resetReported()
	return engine.resolve(tags, direction, side, template, DIRECTION_UNDEFINED)
}

// ResolveWay resolves both directions. Non-undefined forced direction makes the way single-direction regardless of tags
func (engine *RuleEngine) ResolveWay(tags map[string]string, side DrivingSide, template *AttributeTemplate, forced DirectionType) WayAttributes {
	engine.resetReported()
	oneway, roundabout := resolveOneway(tags, template, forced)
	return WayAttributes{
		Forward:    engine.resolve(tags, DIRECTION_FORWARD, side, template, forced),
		Backward:   engine.resolve(tags, DIRECTION_BACKWARD, side, template, forced),
		Oneway:     oneway,
		Roundabout: roundabout,
	}
}

// resetReported starts new resolution: every malformed tag is counted once per way
func (engine *RuleEngine) resetReported() {
	for key := range engine.reported {
		delete(engine.reported, key)
	}
}

// reportOnce returns true for the first report of the tag in current resolution
func (engine *RuleEngine) reportOnce(key string) bool {
	if _, ok := engine.reported[key]; ok {
		return false
	}
	engine.reported[key] = struct{}{}
	return true
}

func (engine *RuleEngine) resolve(tags map[string]string, direction DirectionType, side DrivingSide, template *AttributeTemplate, forced DirectionType) DirectionalAttributes {
	oneway, roundabout := resolveOneway(tags, template, forced)
	travel := oneway.Travel()
	evidence := &directionEvidence{
		modeLanes: make(map[ModeType]int),
	}

	// Layer 1: classification defaults
	modes := template.DefaultModes
	// Layer 2: blanket access
	modes = engine.applyBlanketAccess(tags, direction, template, modes, evidence)
	// Layer 3: per-mode tags
	modes = engine.applyModeAccess(tags, direction, template, modes, evidence)
	// Layer 4: lane schemes
	modes = engine.applyLaneSchemes(tags, direction, oneway, modes, evidence)
	// Layer 5: cycle and bus corridors
	modes = engine.applyCorridors(tags, direction, side, oneway, modes, evidence)
	// Layer 6: oneway
	modes, reopened := engine.applyOneway(tags, direction, oneway, modes, evidence)
	// Layer 8: circular junction or forced direction closes everything against travel
	if (roundabout || forced != DIRECTION_UNDEFINED) && direction != travel {
		modes = MODES_NONE
	}
	if modes.IsEmpty() {
		return DirectionalAttributes{Modes: MODES_NONE}
	}

	engine.report.DirectionsResolved++
	// Layer 7: lanes
	lanes := engine.resolveLanes(tags, direction, oneway, reopened, modes, template, evidence)
	speed := engine.resolveSpeed(tags, direction, modes, template)
	return DirectionalAttributes{
		Modes:    modes,
		Lanes:    lanes,
		SpeedKmh: speed,
	}
}

// resolveOneway returns oneway state and whether the way is circular junction
func resolveOneway(tags map[string]string, template *AttributeTemplate, forced DirectionType) (OnewayType, bool) {
	roundabout := isRoundaboutWay(tags)
	if forced != DIRECTION_UNDEFINED {
		return onewayFromDirection(forced), roundabout
	}
	value := tags["oneway"]
	if _, ok := onewayForwardValues[value]; ok {
		return ONEWAY_FORWARD, roundabout
	}
	if _, ok := onewayBackwardValues[value]; ok {
		return ONEWAY_BACKWARD, roundabout
	}
	if roundabout {
		return ONEWAY_FORWARD, roundabout
	}
	if _, ok := onewayNoValues[value]; ok {
		return ONEWAY_NO, roundabout
	}
	if _, ok := onewayReversible[value]; ok {
		return ONEWAY_NO, roundabout
	}
	if template.Oneway {
		return ONEWAY_FORWARD, roundabout
	}
	return ONEWAY_NO, roundabout
}

// classModes returns modes which could ever use a link of given class
func classModes(template *AttributeTemplate) ModeSet {
	switch template.LinkClass {
	case LINK_CLASS_HIGHWAY:
		return MODES_ROAD.Union(template.DefaultModes)
	default:
		return template.DefaultModes
	}
}

// applyAccessValue adds or removes modes depending on the access-like value
func applyAccessValue(modes, target ModeSet, value string) (ModeSet, AccessValue) {
	access := parseAccessValue(value)
	switch access {
	case ACCESS_ALLOWED:
		return modes.Union(target), access
	case ACCESS_DENIED:
		return modes.Minus(target), access
	default:
		return modes, access
	}
}

func (engine *RuleEngine) applyBlanketAccess(tags map[string]string, direction DirectionType, template *AttributeTemplate, modes ModeSet, evidence *directionEvidence) ModeSet {
	target := classModes(template).Intersect(engine.mappedModes())
	modes, _ = applyAccessValue(modes, target, tags["access"])
	var access AccessValue
	modes, access = applyAccessValue(modes, target, tags["access:"+direction.String()])
	if access == ACCESS_ALLOWED {
		evidence.explicit = evidence.explicit.Union(target)
	}
	return modes
}

// mappedModes returns every mode reachable through mode mapping
func (engine *RuleEngine) mappedModes() ModeSet {
	modes := MODES_NONE
	for _, mode := range engine.mapping {
		modes = modes.Add(mode)
	}
	return modes
}

// applyModeAccess applies undirected tags of every token and only then direction-qualified ones,
// so `<token>:<direction>` decides the direction. Within each pass more specific tokens go later
func (engine *RuleEngine) applyModeAccess(tags map[string]string, direction DirectionType, template *AttributeTemplate, modes ModeSet, evidence *directionEvidence) ModeSet {
	compatible := classModes(template)
	for _, suffix := range []string{"", ":" + direction.String()} {
		for _, token := range engine.accessTokens {
			target, ok := engine.mapping.modesOf(token.key)
			if !ok {
				continue
			}
			if token.level < ACCESS_LEVEL_MODE_GROUP {
				target = target.Intersect(compatible)
			}
			var access AccessValue
			modes, access = applyAccessValue(modes, target, tags[token.key+suffix])
			if suffix != "" && access == ACCESS_ALLOWED {
				evidence.explicit = evidence.explicit.Union(target)
			}
		}
	}
	return modes
}

// applyOneway closes direction against oneway travel to everything not re-opened explicitly.
// Returns true when the closed direction has been re-opened for some modes
func (engine *RuleEngine) applyOneway(tags map[string]string, direction DirectionType, oneway OnewayType, modes ModeSet, evidence *directionEvidence) (ModeSet, bool) {
	if oneway == ONEWAY_NO {
		// Mode-specific oneway on bidirectional way
		for _, token := range engine.onewayTokens() {
			target, _ := engine.mapping.modesOf(token)
			switch value := tags["oneway:"+token]; {
			case isOnewayForwardValue(value) && direction == DIRECTION_BACKWARD:
				modes = modes.Minus(target)
			case isOnewayBackwardValue(value) && direction == DIRECTION_FORWARD:
				modes = modes.Minus(target)
			}
		}
		return modes, false
	}
	if direction == oneway.Travel() {
		return modes, false
	}
	reopened := modes.Intersect(evidence.explicit)
	for _, token := range engine.onewayTokens() {
		if _, ok := onewayNoValues[tags["oneway:"+token]]; !ok {
			continue
		}
		target, _ := engine.mapping.modesOf(token)
		reopened = reopened.Union(target)
	}
	return reopened, !reopened.IsEmpty()
}

// onewayTokens returns tokens which could be used in `oneway:<token>` tags
func (engine *RuleEngine) onewayTokens() []string {
	tokens := make([]string, 0, len(accessGroupTokens)+len(engine.tokens))
	for _, group := range accessGroupTokens {
		tokens = append(tokens, group.key)
	}
	return append(tokens, engine.tokens...)
}

func isOnewayForwardValue(value string) bool {
	_, ok := onewayForwardValues[value]
	return ok
}

func isOnewayBackwardValue(value string) bool {
	_, ok := onewayBackwardValues[value]
	return ok
}
