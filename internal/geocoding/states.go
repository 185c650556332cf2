package geocoding

import "github.com/UnknownOlympus/loadmatch/internal/models"

// stateCenters holds the approximate geographic center of each US state and DC.
var stateCenters = map[string]models.Coordinate{
	"AL": models.MustCoordinate(32.806671, -86.791130),
	"AK": models.MustCoordinate(61.370716, -152.404419),
	"AZ": models.MustCoordinate(33.729759, -111.431221),
	"AR": models.MustCoordinate(34.969704, -92.373123),
	"CA": models.MustCoordinate(36.116203, -119.681564),
	"CO": models.MustCoordinate(39.059811, -105.311104),
	"CT": models.MustCoordinate(41.597782, -72.755371),
	"DE": models.MustCoordinate(39.318523, -75.507141),
	"DC": models.MustCoordinate(38.897438, -77.026817),
	"FL": models.MustCoordinate(27.766279, -81.686783),
	"GA": models.MustCoordinate(33.040619, -83.643074),
	"HI": models.MustCoordinate(21.094318, -157.498337),
	"ID": models.MustCoordinate(44.240459, -114.478828),
	"IL": models.MustCoordinate(40.349457, -88.986137),
	"IN": models.MustCoordinate(39.849426, -86.258278),
	"IA": models.MustCoordinate(42.011539, -93.210526),
	"KS": models.MustCoordinate(38.526600, -96.726486),
	"KY": models.MustCoordinate(37.668140, -84.670067),
	"LA": models.MustCoordinate(31.169546, -91.867805),
	"ME": models.MustCoordinate(44.693947, -69.381927),
	"MD": models.MustCoordinate(39.063946, -76.802101),
	"MA": models.MustCoordinate(42.230171, -71.530106),
	"MI": models.MustCoordinate(43.326618, -84.536095),
	"MN": models.MustCoordinate(45.694454, -93.900192),
	"MS": models.MustCoordinate(32.741646, -89.678696),
	"MO": models.MustCoordinate(38.456085, -92.288368),
	"MT": models.MustCoordinate(46.921925, -110.454353),
	"NE": models.MustCoordinate(41.125370, -98.268082),
	"NV": models.MustCoordinate(38.313515, -117.055374),
	"NH": models.MustCoordinate(43.452492, -71.563896),
	"NJ": models.MustCoordinate(40.298904, -74.521011),
	"NM": models.MustCoordinate(34.840515, -106.248482),
	"NY": models.MustCoordinate(42.165726, -74.948051),
	"NC": models.MustCoordinate(35.630066, -79.806419),
	"ND": models.MustCoordinate(47.528912, -99.784012),
	"OH": models.MustCoordinate(40.388783, -82.764915),
	"OK": models.MustCoordinate(35.565342, -96.928917),
	"OR": models.MustCoordinate(44.572021, -122.070938),
	"PA": models.MustCoordinate(40.590752, -77.209755),
	"RI": models.MustCoordinate(41.680893, -71.511780),
	"SC": models.MustCoordinate(33.856892, -80.945007),
	"SD": models.MustCoordinate(44.299782, -99.438828),
	"TN": models.MustCoordinate(35.747845, -86.692345),
	"TX": models.MustCoordinate(31.054487, -97.563461),
	"UT": models.MustCoordinate(40.150032, -111.862434),
	"VT": models.MustCoordinate(44.045876, -72.710686),
	"VA": models.MustCoordinate(37.769337, -78.169968),
	"WA": models.MustCoordinate(47.400902, -121.490494),
	"WV": models.MustCoordinate(38.491226, -80.954453),
	"WI": models.MustCoordinate(44.268543, -89.616508),
	"WY": models.MustCoordinate(42.755966, -107.302490),
}

// StateCenter returns the approximate center of a two-letter US state code (or DC).
func StateCenter(state string) (models.Coordinate, bool) {
	c, ok := stateCenters[state]
	return c, ok
}
