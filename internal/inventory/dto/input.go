package dto

// ProposeUpdateInput is the stock update form as entered. Quantity and
// Date stay raw text so each can be reported with its own message.
type ProposeUpdateInput struct {
	ProductID string
	Quantity  string // signed delta
	Reason    string
	Date      string // YYYY-MM-DD
	Shift     string // defaults to day
	UpdatedBy string
}
