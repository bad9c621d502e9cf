package entity

// Identity is anything that can act as the authenticated party of a request.
type Identity interface {
	IdentityID() int64
}

type User struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
}

// IdentityID implements Identity.
func (u *User) IdentityID() int64 {
	return u.ID
}
