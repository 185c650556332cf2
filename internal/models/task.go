package models

// LoadTask is a posted load whose pickup location still needs coordinates.
type LoadTask struct {
	ID       int           // ID is the load identifier in the load board.
	Location LocationQuery // Location is the pickup address as posted.
}

// OpenLoad is a posted load with a resolved pickup, available for matching.
type OpenLoad struct {
	ID        int
	Latitude  float64
	Longitude float64
	Precision Precision
	Revenue   *float64
}
