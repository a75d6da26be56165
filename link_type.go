package osm2net

type LinkType uint16

const (
	LINK_MOTORWAY = LinkType(iota + 1)
	LINK_TRUNK
	LINK_PRIMARY
	LINK_SECONDARY
	LINK_TERTIARY
	LINK_RESIDENTIAL
	LINK_LIVING_STREET
	LINK_SERVICE
	LINK_CYCLEWAY
	LINK_FOOTWAY
	LINK_TRACK
	LINK_UNCLASSIFIED
	LINK_BUSWAY
	LINK_RAILWAY
	LINK_TRAMWAY
	LINK_FERRY
	LINK_UNDEFINED = LinkType(0)
)

func (iotaIdx LinkType) String() string {
	return [...]string{"undefined", "motorway", "trunk", "primary", "secondary", "tertiary", "residential", "living_street", "service", "cycleway", "footway", "track", "unclassified", "busway", "railway", "tramway", "ferry"}[iotaIdx]
}

type linkComposition struct {
	linkType           LinkType
	linkConnectionType LinkConnectionType
}

var (
	defaultLanesByLinkType = map[LinkType]int{
		LINK_MOTORWAY:      2,
		LINK_TRUNK:         2,
		LINK_PRIMARY:       1,
		LINK_SECONDARY:     1,
		LINK_TERTIARY:      1,
		LINK_RESIDENTIAL:   1,
		LINK_LIVING_STREET: 1,
		LINK_SERVICE:       1,
		LINK_CYCLEWAY:      1,
		LINK_FOOTWAY:       1,
		LINK_TRACK:         1,
		LINK_UNCLASSIFIED:  1,
		LINK_BUSWAY:        1,
		LINK_RAILWAY:       1,
		LINK_TRAMWAY:       1,
		LINK_FERRY:         1,
	}
	defaultSpeedByLinkType = map[LinkType]float64{
		LINK_MOTORWAY:      120,
		LINK_TRUNK:         100,
		LINK_PRIMARY:       80,
		LINK_SECONDARY:     60,
		LINK_TERTIARY:      40,
		LINK_RESIDENTIAL:   30,
		LINK_LIVING_STREET: 10,
		LINK_SERVICE:       30,
		LINK_CYCLEWAY:      25,
		LINK_FOOTWAY:       5,
		LINK_TRACK:         30,
		LINK_UNCLASSIFIED:  30,
		LINK_BUSWAY:        50,
		LINK_RAILWAY:       120,
		LINK_TRAMWAY:       50,
		LINK_FERRY:         20,
	}
	// Vehicles per hour per lane
	defaultCapacityByLinkType = map[LinkType]float64{
		LINK_MOTORWAY:      2300,
		LINK_TRUNK:         2200,
		LINK_PRIMARY:       1800,
		LINK_SECONDARY:     1600,
		LINK_TERTIARY:      1200,
		LINK_RESIDENTIAL:   1000,
		LINK_LIVING_STREET: 400,
		LINK_SERVICE:       800,
		LINK_CYCLEWAY:      800,
		LINK_FOOTWAY:       800,
		LINK_TRACK:         800,
		LINK_UNCLASSIFIED:  800,
		LINK_BUSWAY:        1000,
		LINK_RAILWAY:       50,
		LINK_TRAMWAY:       60,
		LINK_FERRY:         20,
	}
	// Vehicles per kilometer per lane
	defaultMaxDensityByLinkType = map[LinkType]float64{
		LINK_MOTORWAY:      180,
		LINK_TRUNK:         180,
		LINK_PRIMARY:       180,
		LINK_SECONDARY:     180,
		LINK_TERTIARY:      180,
		LINK_RESIDENTIAL:   180,
		LINK_LIVING_STREET: 180,
		LINK_SERVICE:       180,
		LINK_CYCLEWAY:      250,
		LINK_FOOTWAY:       500,
		LINK_TRACK:         180,
		LINK_UNCLASSIFIED:  180,
		LINK_BUSWAY:        100,
		LINK_RAILWAY:       10,
		LINK_TRAMWAY:       20,
		LINK_FERRY:         5,
	}
	// Upper speed bound of each mode regardless of link type, km/h
	maxSpeedByMode = map[ModeType]float64{
		MODE_FOOT:       5,
		MODE_BICYCLE:    25,
		MODE_MOTORCYCLE: 130,
		MODE_CAR:        130,
		MODE_GOODS:      90,
		MODE_BUS:        100,
		MODE_TRAM:       70,
		MODE_TRAIN:      160,
		MODE_LIGHTRAIL:  80,
		MODE_SUBWAY:     80,
		MODE_FERRY:      40,
	}
)
