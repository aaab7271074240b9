package domain

// Registration is the sign-up payload forwarded to the rental API.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     Role
}
