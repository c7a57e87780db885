package models

// Tenant is the scheduling universe for one school account. Every other
// catalog entity carries a TenantID and no entity of one tenant is ever
// visible while solving for another.
type Tenant struct {
	ID int64 `db:"id" json:"id"`
}
