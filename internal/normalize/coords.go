package normalize

import (
	"regexp"
	"strconv"

	geo "github.com/paulmach/go.geo"
)

// Axis selects the hemisphere letters and range for a coordinate field.
type Axis struct {
	limit    float64
	pos, neg byte
}

var (
	Latitude  = Axis{limit: 90, pos: 'N', neg: 'S'}
	Longitude = Axis{limit: 180, pos: 'E', neg: 'W'}
)

var (
	// dmsRe matches NASR dash-separated DMS with a trailing hemisphere,
	// e.g. "40-11-23.4560N".
	dmsRe = regexp.MustCompile(`^(\d{1,3})-(\d{1,2})-(\d{1,2}(?:\.\d+)?)([NSEW])$`)

	// decimalRe matches a bare signed decimal, e.g. "-75.123456".
	decimalRe = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?$`)

	// conus is a conservative box around the contiguous United States.
	conus = geo.NewBound(-130, -65, 24, 50)
)

// ParseCoordinate accepts either DMS with a hemisphere letter valid for the
// axis or a decimal within the axis range. Anything else fails.
func ParseCoordinate(s string, axis Axis) (float64, bool) {
	if m := dmsRe.FindStringSubmatch(s); m != nil {
		hemi := m[4][0]
		if hemi != axis.pos && hemi != axis.neg {
			return 0, false
		}
		deg, _ := strconv.ParseFloat(m[1], 64)
		mins, _ := strconv.ParseFloat(m[2], 64)
		secs, _ := strconv.ParseFloat(m[3], 64)
		v := deg + mins/60 + secs/3600
		if v > axis.limit {
			return 0, false
		}
		if hemi == axis.neg {
			v = -v
		}
		return v, true
	}

	if decimalRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < -axis.limit || v > axis.limit {
			return 0, false
		}
		return v, true
	}

	return 0, false
}

// InCONUS reports whether the point lies inside the CONUS box, edges included.
func InCONUS(lat, lon float64) bool {
	return conus.Contains(geo.NewPoint(lon, lat))
}
