package dto

// PageRequest pagination for list endpoints.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage applies defaults when Limit/Offset are zero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RowWarning is a soft, row-level issue found while reconciling a batch.
// Collected and returned, never raised; the batch keeps going.
type RowWarning struct {
	Row            int    `json:"row"`
	ProductCode    string `json:"product_code,omitempty"`
	WarehouseLabel string `json:"warehouse_label,omitempty"`
	Reason         string `json:"reason"`
}
