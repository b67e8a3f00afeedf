// Package courier provides the Courier aggregate: a delivery person and the
// last position they reported. Positions feed the geo matcher that picks the
// nearest courier for a new delivery.
//
// The package includes:
//   - Courier: identity, display name and last known location
//   - Candidate: a courier found near a pickup point, with its distance
//
// Couriers carry no availability or workload state; every registered courier
// within the search radius is eligible.
package courier
