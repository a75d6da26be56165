package osm2net

import (
	"strings"
)

// DrivingSide is the side of the carriageway traffic keeps to
type DrivingSide uint16

const (
	DRIVING_RIGHT = DrivingSide(iota + 1)
	DRIVING_LEFT
	DRIVING_UNDEFINED = DrivingSide(0)
)

func (iotaIdx DrivingSide) String() string {
	return [...]string{"undefined", "right", "left"}[iotaIdx]
}

// ISO 3166-1 alpha-2 codes of countries with left-hand traffic
// See ref.: https://en.wikipedia.org/wiki/Left-_and_right-hand_traffic
var leftHandTrafficCountries = map[string]struct{}{
	"AG": {}, "AI": {}, "AU": {}, "BB": {}, "BD": {}, "BM": {}, "BN": {}, "BS": {}, "BT": {}, "BW": {},
	"CY": {}, "DM": {}, "FJ": {}, "FK": {}, "GB": {}, "GD": {}, "GG": {}, "GY": {}, "HK": {}, "ID": {},
	"IE": {}, "IM": {}, "IN": {}, "JE": {}, "JM": {}, "JP": {}, "KE": {}, "KI": {}, "KN": {}, "KY": {},
	"LC": {}, "LK": {}, "LS": {}, "MO": {}, "MS": {}, "MT": {}, "MU": {}, "MV": {}, "MW": {}, "MY": {},
	"MZ": {}, "NA": {}, "NP": {}, "NR": {}, "NZ": {}, "PG": {}, "PK": {}, "PN": {}, "SB": {}, "SC": {},
	"SG": {}, "SH": {}, "SR": {}, "SZ": {}, "TC": {}, "TH": {}, "TL": {}, "TO": {}, "TT": {}, "TV": {},
	"TZ": {}, "UG": {}, "VC": {}, "VG": {}, "VI": {}, "WS": {}, "ZA": {}, "ZM": {}, "ZW": {},
}

// drivingSideByCountry returns DRIVING_LEFT for left-hand traffic countries and DRIVING_RIGHT otherwise
func drivingSideByCountry(countryCode string) DrivingSide {
	if _, ok := leftHandTrafficCountries[strings.ToUpper(strings.TrimSpace(countryCode))]; ok {
		return DRIVING_LEFT
	}
	return DRIVING_RIGHT
}

// sideDirection returns direction of travel along the way for the given physical side of carriageway
func sideDirection(side string, driving DrivingSide) DirectionType {
	forwardSide := "right"
	if driving == DRIVING_LEFT {
		forwardSide = "left"
	}
	if side == forwardSide {
		return DIRECTION_FORWARD
	}
	return DIRECTION_BACKWARD
}
