package models

// User represents a registered account. Email is the primary key.
type User struct {
	Name         string `json:"name" dynamodbav:"name"`
	Email        string `json:"email" dynamodbav:"email"`
	PasswordHash string `json:"-" dynamodbav:"password"` // Never expose this to the client
}

// PublicUser is the part of a User that may be returned to clients.
type PublicUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{Name: u.Name, Email: u.Email}
}
