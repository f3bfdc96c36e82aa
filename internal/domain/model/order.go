package model

type OrderStatus string

// Statuses Razorpay documents for an order. The set is provider-defined;
// unknown values are passed through untouched rather than rejected.
const (
	OrderStatusCreated   OrderStatus = "created"   // order exists, no payment yet
	OrderStatusAttempted OrderStatus = "attempted" // at least one payment attempt made
	OrderStatusPaid      OrderStatus = "paid"      // payment captured
)

// Order is the provider-side record of an intent to collect payment.
// Amounts are in minor currency units (paise for INR) to avoid float errors.
//
// Fields are pointers because the provider response is the source of truth:
// a field the provider omitted stays nil and serializes as JSON null instead
// of silently becoming a zero value. The record is immutable once returned;
// nothing in this service persists it.
type Order struct {
	ID       *string      `json:"id"`
	Amount   *int64       `json:"amount"`
	Currency *string      `json:"currency"`
	Status   *OrderStatus `json:"status"`
	Receipt  *string      `json:"receipt"`
}
