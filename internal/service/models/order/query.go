package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids         []int64  `json:"ids,omitempty"`
	OrderIds    []string `json:"orderIds,omitempty"`
	CustomerIds []int64  `json:"customerIds,omitempty"`
	Unassigned  bool     `json:"unassigned,omitempty"`
	Statuses    []Status `json:"statuses,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
}
