// Package errs holds the error vocabulary shared by the domain, the use cases
// and the adapters.
//
// Every typed error unwraps to a sentinel, so callers classify failures with
// errors.Is and never inspect messages:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange for rejected input
//   - ErrObjectNotFound for a missing order, delivery, payment or courier
//   - ErrInvalidTransition for a status move outside the edge table
//   - ErrNotAuthorized for an actor whose role may not perform the move
//   - ErrConcurrentModification for a conditional update that matched no row
//
// The HTTP adapter turns these sentinels into status codes.
package errs
