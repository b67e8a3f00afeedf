// Package order implements the Order aggregate and the order state machine.
//
// The package includes:
//   - Order: aggregate root holding item snapshots, the immutable total and the courier slot
//   - Status: the fulfillment state machine with its edge table
//   - PaymentStatus: settlement state driven by the payment reconciler
//   - Item: an order line priced from the menu at order time
//
// Key business rules:
//   - pending -> confirmed -> preparing -> out_for_delivery -> delivered, with cancellation
//     allowed from pending, confirmed and preparing
//   - customers may cancel only before preparation starts
//   - a failed delivery cancels the order through CancelAfterFailedDelivery
package order
