package domain

// Tag is a descriptive label attached to certificates, unique by name.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GiftCertificate is the catalog's central entity. Price is an integer in
// minor currency units and duration is a validity period in days; both are
// strictly positive.
type GiftCertificate struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          int64    `json:"price"`
	Duration       int64    `json:"duration"`
	CreateDate     DateTime `json:"createDate"`
	LastUpdateDate DateTime `json:"lastUpdateDate"`
	Tags           []Tag    `json:"tags"`
}

// Snapshot returns a deep copy of the certificate, detached from the
// original's tag slice. Orders and audit records store snapshots so later
// catalog changes cannot rewrite history.
func (c GiftCertificate) Snapshot() GiftCertificate {
	copied := c
	if c.Tags != nil {
		copied.Tags = make([]Tag, len(c.Tags))
		copy(copied.Tags, c.Tags)
	}
	return copied
}
