package osm2net

import "sort"

// AccessLevel is the precedence level of an OSM access token. More specific levels override less specific ones
type AccessLevel uint16

const (
	ACCESS_LEVEL_BLANKET = AccessLevel(iota + 1)
	ACCESS_LEVEL_VEHICLE
	ACCESS_LEVEL_MOTOR_VEHICLE
	ACCESS_LEVEL_MODE_GROUP
	ACCESS_LEVEL_MODE
	ACCESS_LEVEL_UNDEFINED = AccessLevel(0)
)

func (iotaIdx AccessLevel) String() string {
	return [...]string{"undefined", "access", "vehicle", "motor_vehicle", "mode_group", "mode"}[iotaIdx]
}

// accessToken is an OSM key prefix which grants or denies access to a group of modes
type accessToken struct {
	key   string
	level AccessLevel
}

var (
	// Group tokens of access hierarchy. Leaf tokens are resolved via ModeMapping.
	// See ref.: https://wiki.openstreetmap.org/wiki/Key:access#Transport_mode_restrictions
	accessGroupTokens = []accessToken{
		{"vehicle", ACCESS_LEVEL_VEHICLE},
		{"motor_vehicle", ACCESS_LEVEL_MOTOR_VEHICLE},
	}

	// Leaf tokens covering several vehicle kinds: `psv` is overridden by `bus`, `goods` by `hgv`
	accessModeGroupTokens = map[string]struct{}{
		"psv":   {},
		"goods": {},
	}

	accessGroupModes = map[string]ModeSet{
		"access":        MODES_ALL,
		"vehicle":       MODES_VEHICLE,
		"motor_vehicle": MODES_MOTORIZED,
	}

	// defaultModeMapping maps OSM mode token to internal mode
	defaultModeMapping = map[string]ModeType{
		"foot":       MODE_FOOT,
		"bicycle":    MODE_BICYCLE,
		"motorcycle": MODE_MOTORCYCLE,
		"moped":      MODE_MOTORCYCLE,
		"motorcar":   MODE_CAR,
		"goods":      MODE_GOODS,
		"hgv":        MODE_GOODS,
		"psv":        MODE_BUS,
		"bus":        MODE_BUS,
		"tram":       MODE_TRAM,
		"train":      MODE_TRAIN,
		"light_rail": MODE_LIGHTRAIL,
		"subway":     MODE_SUBWAY,
		"ferry":      MODE_FERRY,
	}

	accessPositiveValues = map[string]struct{}{
		"yes":          {},
		"designated":   {},
		"permissive":   {},
		"destination":  {},
		"delivery":     {},
		"official":     {},
		"customers":    {},
		"permit":       {},
		"agricultural": {},
		"forestry":     {},
		"true":         {},
		"1":            {},
	}

	accessNegativeValues = map[string]struct{}{
		"no":           {},
		"private":      {},
		"use_sidepath": {},
		"separate":     {},
		"restricted":   {},
		"dismount":     {},
		"false":        {},
		"0":            {},
	}
)

// AccessValue is normalized value of access-like tag
type AccessValue uint16

const (
	ACCESS_ALLOWED = AccessValue(iota + 1)
	ACCESS_DENIED
	ACCESS_UNKNOWN = AccessValue(0)
)

func (iotaIdx AccessValue) String() string {
	return [...]string{"unknown", "allowed", "denied"}[iotaIdx]
}

func parseAccessValue(value string) AccessValue {
	if _, ok := accessPositiveValues[value]; ok {
		return ACCESS_ALLOWED
	}
	if _, ok := accessNegativeValues[value]; ok {
		return ACCESS_DENIED
	}
	return ACCESS_UNKNOWN
}

// ModeMapping maps OSM mode tokens (e.g. `motorcar`, `psv`) to internal modes
type ModeMapping map[string]ModeType

// DefaultModeMapping returns copy of built-in OSM token to mode mapping
func DefaultModeMapping() ModeMapping {
	mapping := make(ModeMapping, len(defaultModeMapping))
	for token, mode := range defaultModeMapping {
		mapping[token] = mode
	}
	return mapping
}

// tokensOrdered returns leaf tokens sorted so the resolution is deterministic
func (mapping ModeMapping) tokensOrdered() []string {
	tokens := make([]string, 0, len(mapping))
	for token := range mapping {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// accessTokens returns group and leaf tokens from the least specific to the most specific one.
// Tokens of the same level are sorted by key
func (mapping ModeMapping) accessTokens() []accessToken {
	tokens := make([]accessToken, 0, len(accessGroupTokens)+len(mapping))
	tokens = append(tokens, accessGroupTokens...)
	for token := range mapping {
		level := ACCESS_LEVEL_MODE
		if _, ok := accessModeGroupTokens[token]; ok {
			level = ACCESS_LEVEL_MODE_GROUP
		}
		tokens = append(tokens, accessToken{key: token, level: level})
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].level != tokens[j].level {
			return tokens[i].level < tokens[j].level
		}
		return tokens[i].key < tokens[j].key
	})
	return tokens
}

// modesOf returns modes for any token: blanket, group or leaf one
func (mapping ModeMapping) modesOf(token string) (ModeSet, bool) {
	if modes, ok := accessGroupModes[token]; ok {
		return modes, true
	}
	if mode, ok := mapping[token]; ok && mode != MODE_UNDEFINED {
		return NewModeSet(mode), true
	}
	return MODES_NONE, false
}
