// Package services provides domain services that work across aggregates or
// that guard the boundary of the domain.
//
// The package includes:
//   - GeoDriverMatcher: ranks couriers around a pickup point, nearest first
//   - WebhookSignatureVerifier: authenticates payment provider callbacks
package services
