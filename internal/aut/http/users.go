package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aut-dev/aut/internal/aut/domain"
	"github.com/aut-dev/aut/internal/aut/service"
	"github.com/aut-dev/aut/pkg/slogx"
)

// UsersHandler serves the admin pages: the account list and the edit form.
// All directory semantics live in the service; this layer only marshals
// forms and renders templates.
type UsersHandler struct {
	UserService *service.UserService
	Logger      *slog.Logger
}

// HandleList handles GET /
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	entries, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderListPage(w, log, listPage{Users: entries})
}

// HandleEdit handles GET /users/{username}. An unknown username yields a
// blank form: this page doubles as the "create new account" form.
func (h *UsersHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	username := r.PathValue("username")

	user, err := h.UserService.GetUserOrDefault(ctx, username)
	if err != nil {
		log.Error("failed to load user", "error", err, "name", username)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderEditPage(w, log, editPage{Form: domain.FormForUser(username, user)})
}

// HandleSave handles POST /users. Validation failures re-render the form
// with the submitted input and the rejection reason; store failures are a
// generic 500.
func (h *UsersHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := domain.UserForm{
		Name:            r.PostFormValue("name"),
		Disabled:        r.PostFormValue("disabled") != "",
		DisplayName:     r.PostFormValue("displayname"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Groups:          r.PostFormValue("groups"),
	}

	_, err := h.UserService.SaveUser(ctx, form)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			renderEditPage(w, log, editPage{Error: verr.Reason, Form: form})
			return
		}
		log.Error("failed to save user", "error", err, "name", form.Name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderEditPage(w, log, editPage{Success: "User saved.", Form: form})
}

// HandleDelete handles GET /users/delete/{username}
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	username := r.PathValue("username")

	if err := h.UserService.DeleteUser(ctx, username); err != nil {
		log.Error("failed to delete user", "error", err, "name", username)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
