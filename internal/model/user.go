package model

// User is a site account. Passwords are stored exactly as given; there
// is no credential flow in this server and no user HTTP surface.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// InsertUser is the signup input; the store assigns the id.
type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *InsertUser) Validate() error {
	var v ValidationError
	if in.Username == "" {
		v.Add("username", "Username is required")
	}
	if in.Password == "" {
		v.Add("password", "Password is required")
	}
	return v.OrNil()
}
