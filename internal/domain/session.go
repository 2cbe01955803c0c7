package domain

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

const RoleAdmin = "admin"

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is the current identity. Both fields are empty for guests;
// a non-empty token is what switches the cart into server mode.
type Session struct {
	User  *User
	Token string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
