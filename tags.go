package osm2net

var (
	junctionTypes = map[string]struct{}{
		"circular":   {},
		"roundabout": {},
	}

	poiHighwayTags = map[string]struct{}{
		"bus_stop": {},
		"platform": {},
	}

	poiRailwayTags = map[string]struct{}{
		"depot":         {},
		"workshop":      {},
		"halt":          {},
		"interlocking":  {},
		"junction":      {},
		"spur_junction": {},
		"terminal":      {},
		"platform":      {},
	}

	negligibleHighwayTags = map[string]struct{}{
		"construction": {},
		"proposed":     {},
		"raceway":      {},
		"bridleway":    {},
		"rest_area":    {},
		"su":           {},
		"road":         {},
		"abandoned":    {},
		"planned":      {},
		"trailhead":    {},
		"stairs":       {},
		"dismantled":   {},
		"disused":      {},
		"razed":        {},
		"access":       {},
		"corridor":     {},
		"stop":         {},
	}

	onewayForwardValues = map[string]struct{}{
		"yes":  {},
		"true": {},
		"1":    {},
	}

	onewayBackwardValues = map[string]struct{}{
		"-1":      {},
		"reverse": {},
	}

	onewayNoValues = map[string]struct{}{
		"no":    {},
		"false": {},
		"0":     {},
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Tag:oneway%3Dreversible
	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}
)

// isPOIWay checks if way describes point of interest (platforms, depots and etc.) rather than a traversable way
func isPOIWay(tags map[string]string) bool {
	if _, ok := poiHighwayTags[tags["highway"]]; ok {
		return true
	}
	if _, ok := poiRailwayTags[tags["railway"]]; ok {
		return true
	}
	return tags["public_transport"] == "platform"
}

func isNegligibleWay(tags map[string]string) bool {
	_, ok := negligibleHighwayTags[tags["highway"]]
	return ok
}

func isAreaWay(tags map[string]string) bool {
	return tags["area"] == "yes"
}

func isRoundaboutWay(tags map[string]string) bool {
	_, ok := junctionTypes[tags["junction"]]
	return ok
}
