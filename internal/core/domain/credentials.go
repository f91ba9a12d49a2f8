package domain

import "time"

// Credentials stores the bearer token for a hosting service. Each hosting
// service identity has at most one Credentials; every protocol request
// carries the token as its first field.
type Credentials struct {
	// Service is the hosting-service identity the token belongs to.
	Service string `toml:"service"`

	// Token is the bearer credential issued by the hosting service.
	Token string `toml:"token"`

	// CreatedAt is when the credentials were stored.
	CreatedAt time.Time `toml:"created_at"`
}
