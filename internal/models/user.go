package models

// Roles a user record can carry. Legacy store files predate the role
// field; see repository.FileStore for how they are normalized on load.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is one registered identity with its hashed credential and
// profile fields. Username is the unique key and never changes after
// registration. Email is not unique; lookups take the first match.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"` // bcrypt hash; json key kept for store-file compatibility
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PhoneNumber  string `json:"phoneNumber"`
	Email        string `json:"email"`
	Role         string `json:"role,omitempty"`
}

// IsAdmin reports whether the record carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the projection returned by the admin listing; it never
// carries the password hash.
type PublicUser struct {
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// Public returns the hash-free projection of the record.
func (u *User) Public() PublicUser {
	return PublicUser{
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
	}
}
