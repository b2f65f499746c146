package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/aut-dev/aut/internal/aut/domain"
	"github.com/aut-dev/aut/internal/aut/store"
	"github.com/aut-dev/aut/pkg/cryptox"
	"github.com/aut-dev/aut/pkg/slogx"
)

// UserService implements the directory operations over a Store. It holds no
// state of its own; every call works against a fresh load of the backing
// file.
type UserService struct {
	Store store.Store
}

// ListUsers returns all accounts sorted by username ascending, independent
// of the mapping's internal order.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.Entry, error) {
	dir, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(dir.Users))
	for name, u := range dir.Users {
		entries = append(entries, domain.Entry{Name: name, User: u})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return entries, nil
}

// GetUserOrDefault returns the account for name, or a zero-valued User when
// no such account exists. The non-error default is deliberate: the edit form
// uses it as the empty template for creating a new account. Callers must not
// take a returned zero User as proof the account exists.
func (s *UserService) GetUserOrDefault(ctx context.Context, name string) (domain.User, error) {
	dir, err := s.Store.Load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	return dir.Users[name], nil
}

// SaveUser validates the form, hashes its plaintext password and inserts or
// overwrites the account under form.Name. The stored record is a full
// replacement; there is no partial-field patching. Validation failures are
// returned as *domain.ValidationError before the store is touched at all.
func (s *UserService) SaveUser(ctx context.Context, form domain.UserForm) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if verr := form.Validate(); verr != nil {
		l.Debug("rejected user save", "name", form.Name, "reason", verr.Reason)
		return domain.User{}, verr
	}

	// Hash before loading: a broken RNG should never cost a file rewrite.
	hash, err := cryptox.HashPassword(form.Password)
	if err != nil {
		l.Error("failed to hash password", "error", err)
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := form.User(hash)
	err = s.Store.Mutate(ctx, func(dir *domain.Directory) error {
		dir.Users[form.Name] = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user saved", "name", form.Name)
	return user, nil
}

// DeleteUser removes the account if present. Deleting a nonexistent account
// succeeds silently; the directory is still rewritten.
func (s *UserService) DeleteUser(ctx context.Context, name string) error {
	err := s.Store.Mutate(ctx, func(dir *domain.Directory) error {
		delete(dir.Users, name)
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", "name", name)
	return nil
}

// VerifyUserPassword checks a plaintext candidate against the stored
// credential for name. Absent accounts, disabled accounts and accounts
// without a stored hash all verify false. A stored hash that cannot be
// parsed surfaces as an error wrapping cryptox.ErrMalformedHash - corrupt
// credentials are never silently treated as "no password".
func (s *UserService) VerifyUserPassword(
	ctx context.Context,
	name, password string,
) (bool, error) {
	dir, err := s.Store.Load(ctx)
	if err != nil {
		return false, err
	}

	u, ok := dir.Users[name]
	if !ok || u.Disabled || u.PasswordHash == "" {
		return false, nil
	}

	match, err := cryptox.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("verifying credential for %q: %w", name, err)
	}
	return match, nil
}
