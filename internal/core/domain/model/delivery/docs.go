// Package delivery implements the Delivery aggregate and its state machine:
// assigned -> picked_up -> in_transit -> delivered | failed.
//
// Only the courier holding the delivery, or an admin, may change it.
package delivery
