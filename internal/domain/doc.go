// Package domain contains the core business entities of the booking platform:
// users and their roles, coaches, skills, courses, credit packages and
// purchases, and course bookings. It is independent of any storage or
// delivery mechanism.
package domain
