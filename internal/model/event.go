package model

// EventInventoryChanged is fired after any committed stock write.
const EventInventoryChanged = "inventory.changed"

type InventoryChanged struct {
	ProductID string
	Stock     int
	Source    string // "stock_update" or "set_stock"
}
