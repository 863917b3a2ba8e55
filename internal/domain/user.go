package domain

import "time"

type User struct {
	Id          UserId
	Email       Email
	Name        string
	PassHash    string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool
}

type Credentials struct {
	Email    Email
	Password Password
}

// ProfileUpdate carries merge-semantics changes to the requesting
// account. Nil fields stay untouched.
type ProfileUpdate struct {
	Name     *string
	Password *Password
}

// AuthToken is the opaque bearer credential bound to one account.
// A user has at most one token; repeated logins return the same key.
type AuthToken struct {
	Key     string
	UserId  UserId
	Created time.Time
}
