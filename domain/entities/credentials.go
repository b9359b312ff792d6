package entities

// Credentials is a username/password pair submitted through the login form.
// No validation happens locally; the target application decides.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

