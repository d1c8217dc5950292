package entity

import "time"

// AdminAction admin harakatlari
type AdminAction struct {
	ID        string
	UserEmail string
	Action    string // "create_product", "update_product", "delete_product", "import_catalog"
	ProductID int64
	Details   string
	Timestamp time.Time
}
