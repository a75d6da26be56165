package osm2net

import (
	"github.com/paulmach/osm"
)

type DirectionType uint16

const (
	DIRECTION_FORWARD = DirectionType(iota + 1)
	DIRECTION_BACKWARD
	DIRECTION_UNDEFINED = DirectionType(0)
)

func (iotaIdx DirectionType) String() string {
	return [...]string{"undefined", "forward", "backward"}[iotaIdx]
}

// Opposite returns reversed direction
func (iotaIdx DirectionType) Opposite() DirectionType {
	switch iotaIdx {
	case DIRECTION_FORWARD:
		return DIRECTION_BACKWARD
	case DIRECTION_BACKWARD:
		return DIRECTION_FORWARD
	default:
		return DIRECTION_UNDEFINED
	}
}

type LinkSegmentID int

// LinkSegment is single traversable direction of a link.
// DIRECTION_FORWARD means travel from link's source node to its target node
type LinkSegment struct {
	ID        LinkSegmentID
	LinkID    NetworkLinkID
	Direction DirectionType
	Modes     ModeSet
	SpeedKmh  float64
	Lanes     int
	Template  *AttributeTemplate
	OSMWayID  osm.WayID
}

// Capacity returns capacity of all lanes, vehicles per hour
func (segment *LinkSegment) Capacity() float64 {
	return segment.Template.CapacityPerLane * float64(segment.Lanes)
}

// MaxDensity returns jam density of all lanes, vehicles per kilometer
func (segment *LinkSegment) MaxDensity() float64 {
	return segment.Template.MaxDensityPerLane * float64(segment.Lanes)
}

// TravelTimeSeconds returns free-flow travel time along the segment's link
func (segment *LinkSegment) TravelTimeSeconds(link *NetworkLink) float64 {
	if segment.SpeedKmh <= 0 {
		return 0
	}
	return link.LengthMeters / (segment.SpeedKmh / 3.6)
}
