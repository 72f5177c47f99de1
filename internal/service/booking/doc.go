// Package booking admits and cancels course bookings.
//
// Remaining credit (purchased credits minus active bookings) and remaining
// capacity (max_participants minus active bookings) are recomputed inside the
// same transaction that writes the booking. Row locks on the user and the
// course serialise competing requests, and a partial unique index on active
// bookings backs up the one-active-booking-per-course rule.
package booking
