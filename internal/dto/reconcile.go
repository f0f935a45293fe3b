package dto

// ReconcileSummary reports what one batch reconciliation run changed.
type ReconcileSummary struct {
	SalesExamined       int               `json:"salesExamined"`
	TransactionsWritten int               `json:"transactionsWritten"`
	GiftsCreated        int               `json:"giftsCreated"`
	DisputesExamined    int               `json:"disputesExamined"`
	FinesAssessed       int               `json:"finesAssessed"`
	PrioritySales       int               `json:"prioritySales"`
	PriorityDisputes    int               `json:"priorityDisputes"`
	FailedSales         int               `json:"failedSales"`
	ReportURLs          map[string]string `json:"reportURLs,omitempty"`
}
