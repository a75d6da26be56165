package osm2net

// LinkClass is the top-level OSM key which classifies a way
type LinkClass uint16

const (
	LINK_CLASS_HIGHWAY = LinkClass(iota + 1)
	LINK_CLASS_RAILWAY
	LINK_CLASS_ROUTE
	LINK_CLASS_UNDEFINED = LinkClass(0)
)

func (iotaIdx LinkClass) String() string {
	return [...]string{"undefined", "highway", "railway", "route"}[iotaIdx]
}

var linkClassesOrdered = []LinkClass{
	LINK_CLASS_HIGHWAY,
	LINK_CLASS_RAILWAY,
	LINK_CLASS_ROUTE,
}
