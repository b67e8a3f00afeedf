package courier

// Candidate is a courier found near a pickup point.
type Candidate struct {
	CourierID      string
	DistanceMeters float64
}
