package models

// User is a stored credential record.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"` // email address, unique
	PasswordHash string `json:"-"`        // don't expose hash
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}

// PublicUser is the client-facing projection of a User (no credentials).
type PublicUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Public strips credential fields for API responses.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
