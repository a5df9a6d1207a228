package domain

// UserOrder links a user to a certificate bought at a specific moment.
// Certificate and Price are copied by value at placement time and never
// change afterwards, regardless of what happens to the catalog entry.
type UserOrder struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Certificate  GiftCertificate `json:"certificate"`
	Price        int64           `json:"price"`
	PurchaseDate DateTime        `json:"purchaseDate"`
}
