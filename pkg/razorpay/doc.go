// Package razorpay is a minimal client for hosted payment links plus a
// decoder for the webhook envelope.
//
// Only the pieces the membership service needs are modelled: creating a
// link with member notes attached, and reading the member id back out of a
// payment_link.paid event. Webhook signatures are checked by pkg/webhook
// before ParseEvent ever sees the body.
package razorpay
