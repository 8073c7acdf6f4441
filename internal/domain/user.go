package domain

// User is the domain model for library members and staff accounts.
type User struct {
	Metadata
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	// Password carries the plaintext on inbound create requests only; the
	// service hashes it into PasswordHash and clears it before persistence.
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Sanitized returns a copy with credential material stripped for responses.
func (u User) Sanitized() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
