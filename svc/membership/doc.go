// Package membership implements the paid membership lifecycle.
//
// Engine applies authenticated payments (new purchase, early renewal,
// lapsed renewal) to the Store and scans all records once a day to remind
// members whose membership ends within the reminder window. Handler exposes
// the payment webhook and the reminder trigger. Storage, messaging and the
// payment gateway are ports; adapters live in svc/membership/store,
// pkg/telegram and pkg/razorpay.
//
// Expiry is a calendar date. A member stays active through the whole expiry
// day, and an early renewal extends from the current expiry rather than from
// today.
package membership
