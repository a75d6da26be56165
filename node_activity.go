package osm2net

type ActivityType uint16

const (
	ACTIVITY_LINK = ActivityType(iota + 1)
	ACTIVITY_NONE = ActivityType(0)
)

func (iotaIdx ActivityType) String() string {
	return [...]string{"none", "link"}[iotaIdx]
}

type BoundaryType uint16

const (
	BOUNDARY_NONE = BoundaryType(iota)
	BOUNDARY_INCOME_ONLY
	BOUNDARY_OUTCOME_ONLY
	BOUNDARY_INCOME_OUTCOME
)

func (iotaIdx BoundaryType) String() string {
	return [...]string{"none", "income_only", "outcome_only", "income_outcome"}[iotaIdx]
}

// NodeActivity describes how node is used by links around it
type NodeActivity struct {
	ActivityType     ActivityType
	ActivityLinkType LinkType
	BoundaryType     BoundaryType
	Incoming         int
	Outgoing         int
}

// NodeActivity counts segments entering and leaving the node. Dominant link type is the most frequent one among
// incident segments; ties go to the most important (lowest) link type
func (network *Network) NodeActivity(nodeID NetworkNodeID) NodeActivity {
	activity := NodeActivity{
		ActivityType:     ACTIVITY_NONE,
		ActivityLinkType: LINK_UNDEFINED,
		BoundaryType:     BOUNDARY_NONE,
	}
	node, ok := network.Node(nodeID)
	if !ok {
		return activity
	}
	linkTypesCounters := make(map[LinkType]int)
	var lastIncoming, lastOutgoing *LinkSegment
	for _, linkID := range node.LinkIDs() {
		link := network.links[linkID]
		for _, direction := range []DirectionType{DIRECTION_FORWARD, DIRECTION_BACKWARD} {
			segment, ok := network.Segment(link.SegmentID(direction))
			if !ok {
				continue
			}
			linkTypesCounters[segment.Template.LinkType]++
			from, to := link.SourceNodeID, link.TargetNodeID
			if direction == DIRECTION_BACKWARD {
				from, to = to, from
			}
			if to == nodeID {
				activity.Incoming++
				lastIncoming = segment
			}
			if from == nodeID {
				activity.Outgoing++
				lastOutgoing = segment
			}
		}
	}

	maxLinkTypeCount := 0
	for linkType, counter := range linkTypesCounters {
		if linkType == LINK_UNDEFINED {
			continue
		}
		if counter > maxLinkTypeCount || (counter == maxLinkTypeCount && linkType < activity.ActivityLinkType) {
			maxLinkTypeCount = counter
			activity.ActivityLinkType = linkType
		}
	}
	if activity.ActivityLinkType != LINK_UNDEFINED {
		activity.ActivityType = ACTIVITY_LINK
	}

	switch {
	case activity.Incoming == 0 && activity.Outgoing == 0:
	case activity.Outgoing == 0:
		activity.BoundaryType = BOUNDARY_INCOME_ONLY
	case activity.Incoming == 0:
		activity.BoundaryType = BOUNDARY_OUTCOME_ONLY
	case activity.Incoming == 1 && activity.Outgoing == 1 && lastIncoming.LinkID == lastOutgoing.LinkID:
		// Dead end: the only way out is the way back
		activity.BoundaryType = BOUNDARY_INCOME_OUTCOME
	}
	return activity
}
