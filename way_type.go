package osm2net

import (
	"sort"
	"strings"
)

// wayTypeDefaults is a row of built-in classification table
type wayTypeDefaults struct {
	linkClass          LinkClass
	linkType           LinkType
	linkConnectionType LinkConnectionType
	modes              ModeSet
	lanes              int
	speed              float64
	capacity           float64
	maxDensity         float64
	oneway             bool
}

type railwayComposition struct {
	linkType LinkType
	modes    ModeSet
}

var (
	railwayTypes = map[string]railwayComposition{
		"rail":       {LINK_RAILWAY, NewModeSet(MODE_TRAIN)},
		"light_rail": {LINK_RAILWAY, NewModeSet(MODE_LIGHTRAIL)},
		"subway":     {LINK_RAILWAY, NewModeSet(MODE_SUBWAY)},
		"tram":       {LINK_TRAMWAY, NewModeSet(MODE_TRAM)},
	}

	routeTypes = map[string]railwayComposition{
		"ferry": {LINK_FERRY, NewModeSet(MODE_FERRY)},
	}

	// Same classification known under several keys
	wayTypeAliases = map[string]string{
		"highway:services":        "highway:service",
		"highway:bus_guideway":    "highway:busway",
		"railway:narrow_gauge":    "railway:rail",
		"highway:pedestrian_area": "highway:pedestrian",
	}

	defaultWayTypes          = buildDefaultWayTypes()
	defaultActivatedWayTypes = buildActivatedWayTypes()
)

// WayTypeKey composes classification key such as `highway:primary`
func WayTypeKey(class LinkClass, value string) string {
	return class.String() + ":" + value
}

func isClassificationKey(key string) bool {
	parts := strings.SplitN(key, ":", 2)
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// canonicalWayType resolves alias to its canonical key
func canonicalWayType(key string) string {
	if canonical, ok := wayTypeAliases[key]; ok {
		return canonical
	}
	return key
}

func lookupWayTypeDefaults(key string) (wayTypeDefaults, bool) {
	defaults, ok := defaultWayTypes[canonicalWayType(key)]
	return defaults, ok
}

// classifyWay returns classification key of the way. Highway takes precedence over railway, railway over route.
func classifyWay(tags map[string]string) (string, bool) {
	for _, class := range linkClassesOrdered {
		value := tags[class.String()]
		if value == "" {
			continue
		}
		if class == LINK_CLASS_ROUTE {
			if _, ok := routeTypes[value]; !ok {
				continue
			}
		}
		return WayTypeKey(class, value), true
	}
	return "", false
}

func newWayTypeDefaults(class LinkClass, composition linkComposition, modes ModeSet, oneway bool) wayTypeDefaults {
	return wayTypeDefaults{
		linkClass:          class,
		linkType:           composition.linkType,
		linkConnectionType: composition.linkConnectionType,
		modes:              modes,
		lanes:              defaultLanesByLinkType[composition.linkType],
		speed:              defaultSpeedByLinkType[composition.linkType],
		capacity:           defaultCapacityByLinkType[composition.linkType],
		maxDensity:         defaultMaxDensityByLinkType[composition.linkType],
		oneway:             oneway,
	}
}

func buildDefaultWayTypes() map[string]wayTypeDefaults {
	table := make(map[string]wayTypeDefaults)
	for _, highway := range highwayTypesAll {
		composition := linkTypeByHighway[highway]
		table[WayTypeKey(LINK_CLASS_HIGHWAY, highway.String())] = newWayTypeDefaults(LINK_CLASS_HIGHWAY, composition, modesByHighway[highway], onewayDefaultByHighway[highway])
	}
	for value, railway := range railwayTypes {
		table[WayTypeKey(LINK_CLASS_RAILWAY, value)] = newWayTypeDefaults(LINK_CLASS_RAILWAY, linkComposition{railway.linkType, NOT_A_LINK}, railway.modes, false)
	}
	for value, route := range routeTypes {
		table[WayTypeKey(LINK_CLASS_ROUTE, value)] = newWayTypeDefaults(LINK_CLASS_ROUTE, linkComposition{route.linkType, NOT_A_LINK}, route.modes, false)
	}
	return table
}

// buildActivatedWayTypes lists highway classifications and their aliases
func buildActivatedWayTypes() []string {
	activated := make([]string, 0, len(highwayTypesAll)+len(wayTypeAliases))
	for _, highway := range highwayTypesAll {
		activated = append(activated, WayTypeKey(LINK_CLASS_HIGHWAY, highway.String()))
	}
	aliases := make([]string, 0, len(wayTypeAliases))
	for alias, canonical := range wayTypeAliases {
		if strings.HasPrefix(canonical, LINK_CLASS_HIGHWAY.String()+":") {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return append(activated, aliases...)
}
