// Package kernel provides the shared value objects of the food delivery domain.
//
// The package includes:
//   - UUID: identifier of orders, deliveries and payments
//   - Location: a WGS84 point with great-circle distance in meters
//   - Actor: the opaque identity and role issued by the authentication service
//
// All values are immutable and safe for concurrent use. Zero values are invalid
// and fail Validate; use the constructors.
package kernel
