package osm2net

type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_CYCLEWAY
	HIGHWAY_FOOTWAY
	HIGHWAY_PEDESTRIAN
	HIGHWAY_STEPS
	HIGHWAY_PATH
	HIGHWAY_TRACK
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_BUSWAY
	HIGHWAY_UNDEFINED = HighwayType(0)
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"undefined", "motorway", "motorway_link", "trunk", "trunk_link", "primary", "primary_link", "secondary", "secondary_link", "tertiary", "tertiary_link", "residential", "living_street", "service", "cycleway", "footway", "pedestrian", "steps", "path", "track", "unclassified", "busway"}[iotaIdx]
}

var (
	highwayTypesAll = []HighwayType{
		HIGHWAY_MOTORWAY,
		HIGHWAY_MOTORWAY_LINK,
		HIGHWAY_TRUNK,
		HIGHWAY_TRUNK_LINK,
		HIGHWAY_PRIMARY,
		HIGHWAY_PRIMARY_LINK,
		HIGHWAY_SECONDARY,
		HIGHWAY_SECONDARY_LINK,
		HIGHWAY_TERTIARY,
		HIGHWAY_TERTIARY_LINK,
		HIGHWAY_RESIDENTIAL,
		HIGHWAY_LIVING_STREET,
		HIGHWAY_SERVICE,
		HIGHWAY_CYCLEWAY,
		HIGHWAY_FOOTWAY,
		HIGHWAY_PEDESTRIAN,
		HIGHWAY_STEPS,
		HIGHWAY_PATH,
		HIGHWAY_TRACK,
		HIGHWAY_UNCLASSIFIED,
		HIGHWAY_BUSWAY,
	}

	linkTypeByHighway = map[HighwayType]linkComposition{
		HIGHWAY_MOTORWAY:       {LINK_MOTORWAY, NOT_A_LINK},
		HIGHWAY_MOTORWAY_LINK:  {LINK_MOTORWAY, IS_LINK},
		HIGHWAY_TRUNK:          {LINK_TRUNK, NOT_A_LINK},
		HIGHWAY_TRUNK_LINK:     {LINK_TRUNK, IS_LINK},
		HIGHWAY_PRIMARY:        {LINK_PRIMARY, NOT_A_LINK},
		HIGHWAY_PRIMARY_LINK:   {LINK_PRIMARY, IS_LINK},
		HIGHWAY_SECONDARY:      {LINK_SECONDARY, NOT_A_LINK},
		HIGHWAY_SECONDARY_LINK: {LINK_SECONDARY, IS_LINK},
		HIGHWAY_TERTIARY:       {LINK_TERTIARY, NOT_A_LINK},
		HIGHWAY_TERTIARY_LINK:  {LINK_TERTIARY, IS_LINK},
		HIGHWAY_RESIDENTIAL:    {LINK_RESIDENTIAL, NOT_A_LINK},
		HIGHWAY_LIVING_STREET:  {LINK_LIVING_STREET, NOT_A_LINK},
		HIGHWAY_SERVICE:        {LINK_SERVICE, NOT_A_LINK},
		HIGHWAY_CYCLEWAY:       {LINK_CYCLEWAY, NOT_A_LINK},
		HIGHWAY_FOOTWAY:        {LINK_FOOTWAY, NOT_A_LINK},
		HIGHWAY_PEDESTRIAN:     {LINK_FOOTWAY, NOT_A_LINK},
		HIGHWAY_STEPS:          {LINK_FOOTWAY, NOT_A_LINK},
		HIGHWAY_PATH:           {LINK_FOOTWAY, NOT_A_LINK},
		HIGHWAY_TRACK:          {LINK_TRACK, NOT_A_LINK},
		HIGHWAY_UNCLASSIFIED:   {LINK_UNCLASSIFIED, NOT_A_LINK},
		HIGHWAY_BUSWAY:         {LINK_BUSWAY, NOT_A_LINK},
	}

	modesByHighway = map[HighwayType]ModeSet{
		HIGHWAY_MOTORWAY:       MODES_MOTORIZED,
		HIGHWAY_MOTORWAY_LINK:  MODES_MOTORIZED,
		HIGHWAY_TRUNK:          MODES_MOTORIZED,
		HIGHWAY_TRUNK_LINK:     MODES_MOTORIZED,
		HIGHWAY_PRIMARY:        MODES_MOTORIZED,
		HIGHWAY_PRIMARY_LINK:   MODES_MOTORIZED,
		HIGHWAY_SECONDARY:      MODES_MOTORIZED,
		HIGHWAY_SECONDARY_LINK: MODES_MOTORIZED,
		HIGHWAY_TERTIARY:       MODES_MOTORIZED,
		HIGHWAY_TERTIARY_LINK:  MODES_MOTORIZED,
		HIGHWAY_RESIDENTIAL:    MODES_MOTORIZED,
		HIGHWAY_LIVING_STREET:  MODES_ROAD,
		HIGHWAY_SERVICE:        MODES_MOTORIZED,
		HIGHWAY_CYCLEWAY:       NewModeSet(MODE_BICYCLE),
		HIGHWAY_FOOTWAY:        NewModeSet(MODE_FOOT),
		HIGHWAY_PEDESTRIAN:     NewModeSet(MODE_FOOT),
		HIGHWAY_STEPS:          NewModeSet(MODE_FOOT),
		HIGHWAY_PATH:           NewModeSet(MODE_FOOT, MODE_BICYCLE),
		HIGHWAY_TRACK:          NewModeSet(MODE_FOOT, MODE_BICYCLE),
		HIGHWAY_UNCLASSIFIED:   MODES_MOTORIZED,
		HIGHWAY_BUSWAY:         NewModeSet(MODE_BUS),
	}

	// Only motorways are oneway unless tagged otherwise
	onewayDefaultByHighway = map[HighwayType]bool{
		HIGHWAY_MOTORWAY:      true,
		HIGHWAY_MOTORWAY_LINK: true,
	}
)
