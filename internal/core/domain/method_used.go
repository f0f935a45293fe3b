package domain

// Payment method names as seeded in the method_used table.
const (
	MethodWebCreditCard   = "Web Form Credit Card"
	MethodWebPayPal       = "Web Form PayPal"
	MethodAdminCreditCard = "Admin-Entered Credit Card"
	MethodCheck           = "Check"
	MethodMoneyOrder      = "Money Order"
	MethodStock           = "Stock"
	MethodCash            = "Cash"
	MethodWire            = "Wire Transfer"
	MethodVenmo           = "Venmo"
	MethodApplePay        = "ApplePay"
	MethodOther           = "Other"
	MethodUnknown         = "Unknown Method Used"
)

// MethodUsed describes one way a donation can be paid. Methods that bill a
// credit card require a billing address and route through the payment
// processor; the rest are recorded locally only.
type MethodUsed struct {
	ID                     int16  `json:"id"`
	Name                   string `json:"name"`
	BillingAddressRequired bool   `json:"billingAddressRequired"`
}

// IsProcessorBacked reports whether a sale with this method calls the
// payment processor.
func (m MethodUsed) IsProcessorBacked() bool {
	switch m.Name {
	case MethodWebCreditCard, MethodWebPayPal, MethodAdminCreditCard:
		return true
	}
	return false
}

// OnlineMethodNames are the methods the webhook reconciler may match a
// vault customer id against.
func OnlineMethodNames() []string {
	return []string{MethodWebCreditCard, MethodAdminCreditCard}
}
