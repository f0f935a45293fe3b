package models

// MethodUsed mirrors the method_used seed table.
type MethodUsed struct {
	ID                     int16  `json:"id"`
	Name                   string `json:"name"`
	BillingAddressRequired bool   `json:"billingAddressRequired"`
}
