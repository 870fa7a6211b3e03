package models

import "time"

// Role classifies what an actor may do in the marketplace.
type Role string

const (
	// RoleGrocery is a retail buyer: creates invoices and approves bids on them.
	RoleGrocery Role = "grocery"
	// RoleMerchant is a wholesale seller: views open invoices and places bids.
	RoleMerchant Role = "merchant"
	// RoleAdmin can see everything and approve on behalf of any grocery.
	// Admin accounts are never self-registered.
	RoleAdmin Role = "admin"
)

// Registerable reports whether the role may be chosen at registration time.
func (r Role) Registerable() bool {
	return r == RoleGrocery || r == RoleMerchant
}

// Actor represents a registered marketplace participant.
type Actor struct {
	// ID is the unique identifier for the actor (UUID format).
	ID string `json:"id"`

	// Name is the display name (shop or business name).
	Name string `json:"name"`

	// Phone is the actor's phone number. Unique across the directory;
	// it doubles as the login identifier.
	Phone string `json:"phone"`

	// Role is the actor's fixed role, assigned at registration.
	Role Role `json:"role"`

	// Address is a free-form delivery/contact address.
	Address string `json:"address"`

	// CreatedAt is when the actor registered.
	CreatedAt time.Time `json:"createdAt"`
}

// Summary is the reduced actor view returned by register and login.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Summary returns the reduced view of the actor.
func (a *Actor) Summary() Summary {
	return Summary{ID: a.ID, Name: a.Name, Role: a.Role}
}
