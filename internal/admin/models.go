package admin

// Admin is an operator account that manages the robot fleet. Storage of the
// actual record lives behind the Store interface.
type Admin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the credential. Never serialize.
	PasswordHash string `json:"-"`
}
