package model

import "time"

// User represents a registered account as stored in the `users`
// table. The only user-supplied attribute is the display name;
// there are no credentials because the application has no login.
// Display names are unique across the table and restricted to
// alphanumerics and underscores with at least one letter. The
// uniqueness is enforced by the database so concurrent
// registrations cannot slip past an earlier availability check.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Name      – unique display name.
//  CreatedAt – timestamp of registration.
type User struct {
	ID        uint64    `json:"id"`         // users.id
	Name      string    `json:"name"`       // users.name
	CreatedAt time.Time `json:"created_at"` // users.created_at
}
