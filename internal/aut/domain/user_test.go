package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validForm() UserForm {
	return UserForm{
		Name:            "amy",
		DisplayName:     "Amy",
		Email:           "amy@example.com",
		Password:        "hunter2",
		ConfirmPassword: "hunter2",
		Groups:          "admin dev",
	}
}

func TestUserFormValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid form passes", func(t *testing.T) {
		require.Nil(t, validForm().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*UserForm)
		want   *ValidationError
	}{
		{
			name:   "missing name",
			mutate: func(f *UserForm) { f.Name = "" },
			want:   ErrNameRequired,
		},
		{
			name:   "missing display name",
			mutate: func(f *UserForm) { f.DisplayName = "" },
			want:   ErrDisplayNameRequired,
		},
		{
			name:   "missing password",
			mutate: func(f *UserForm) { f.Password = "" },
			want:   ErrPasswordRequired,
		},
		{
			name:   "mismatched confirmation",
			mutate: func(f *UserForm) { f.ConfirmPassword = "other" },
			want:   ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			require.Equal(t, tt.want, f.Validate())
		})
	}

	t.Run("first failure wins", func(t *testing.T) {
		// Everything wrong at once: name is checked first.
		f := UserForm{}
		require.Equal(t, ErrNameRequired, f.Validate())
	})
}

func TestUserFormGroupsTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		groups string
		want   []string
	}{
		{"single", "admin", []string{"admin"}},
		{"multiple", "admin dev", []string{"admin", "dev"}},
		{"whitespace runs", "  admin   dev ", []string{"admin", "dev"}},
		{"tabs and newlines", "admin\tdev\nops", []string{"admin", "dev", "ops"}},
		{"empty", "", nil},
		{"only whitespace", "   ", nil},
		{"duplicates and order preserved", "dev admin dev", []string{"dev", "admin", "dev"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Groups = tt.groups
			require.Equal(t, tt.want, f.User("$hash$").Groups)
		})
	}
}

func TestFormForUser(t *testing.T) {
	t.Parallel()

	u := User{
		Disabled:     true,
		DisplayName:  "Amy",
		Email:        "amy@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Groups:       []string{"admin", "dev"},
	}

	f := FormForUser("amy", u)
	require.Equal(t, "amy", f.Name)
	require.True(t, f.Disabled)
	require.Equal(t, "Amy", f.DisplayName)
	require.Equal(t, "amy@example.com", f.Email)
	require.Equal(t, "admin dev", f.Groups)

	// The hash never round-trips into the form.
	require.Empty(t, f.Password)
	require.Empty(t, f.ConfirmPassword)
}

func TestGroupsRoundTrip(t *testing.T) {
	t.Parallel()

	f := validForm()
	f.Groups = "  admin   dev "
	u := f.User("$hash$")
	require.Equal(t, []string{"admin", "dev"}, u.Groups)

	// Redisplay joins with single spaces; token sequence is lossless.
	require.Equal(t, "admin dev", FormForUser("amy", u).Groups)
}
