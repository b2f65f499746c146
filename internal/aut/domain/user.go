package domain

import "strings"

// User is one account record as persisted in the directory file. Missing
// fields on load default to their zero values, which keeps partial records
// written by older versions readable.
type User struct {
	Disabled     bool     `yaml:"disabled"`
	DisplayName  string   `yaml:"displayname"`
	Email        string   `yaml:"email"`
	PasswordHash string   `yaml:"password"` // PHC-encoded Argon2id hash, never plaintext
	Groups       []string `yaml:"groups"`
}

// Directory is the full account collection, keyed by username. It has no
// identity beyond the backing file: it is rebuilt from the file on every
// operation and rewritten wholesale on every mutation.
type Directory struct {
	Users map[string]User `yaml:"users"`
}

// Entry pairs a username with its account for ordered listings.
type Entry struct {
	Name string
	User User
}

// UserForm is the unvalidated edit request for creating or updating an
// account. It only becomes a User after validation and password hashing
// succeed. Editing is full-replace: every field, password included, must be
// resupplied on each save.
type UserForm struct {
	Name            string
	Disabled        bool
	DisplayName     string
	Email           string
	Password        string
	ConfirmPassword string
	Groups          string // space-separated group names
}

// Validate checks the form in a fixed order and returns the first failure.
// A nil return means the form is ready to be hashed and stored.
func (f UserForm) Validate() *ValidationError {
	if f.Name == "" {
		return ErrNameRequired
	}
	if f.DisplayName == "" {
		return ErrDisplayNameRequired
	}
	if f.Password == "" {
		return ErrPasswordRequired
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// User converts a validated form into an account record carrying the given
// password hash. The groups string is split on whitespace runs; empty tokens
// are dropped and authored order is kept.
func (f UserForm) User(passwordHash string) User {
	return User{
		Disabled:     f.Disabled,
		DisplayName:  f.DisplayName,
		Email:        f.Email,
		PasswordHash: passwordHash,
		Groups:       strings.Fields(f.Groups),
	}
}

// FormForUser builds the edit form for an existing account. The password
// fields are always blank: hashes are one-way and must be re-entered to
// save. Groups are joined with single spaces, which loses the original
// whitespace style but not the token sequence.
func FormForUser(name string, u User) UserForm {
	return UserForm{
		Name:        name,
		Disabled:    u.Disabled,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Groups:      strings.Join(u.Groups, " "),
	}
}
