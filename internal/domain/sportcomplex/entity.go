package sportcomplex

import "time"

// Complex is the tenant boundary: every court, client, product and tab
// belongs to exactly one complex.
type Complex struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
