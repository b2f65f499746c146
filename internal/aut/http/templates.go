package http

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aut-dev/aut/internal/aut/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// listPage is the data for the user list page.
type listPage struct {
	Users []domain.Entry
}

// editPage is the data for the edit form page. At most one of Success and
// Error is set; the form echoes the submitted input back on failure.
type editPage struct {
	Success string
	Error   string
	Form    domain.UserForm
}

func renderListPage(w http.ResponseWriter, log *slog.Logger, data listPage) {
	renderPage(w, log, "list_users.html", data)
}

func renderEditPage(w http.ResponseWriter, log *slog.Logger, data editPage) {
	renderPage(w, log, "edit_user.html", data)
}

func renderPage(w http.ResponseWriter, log *slog.Logger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already gone at this point; just log it.
		log.Error("failed to render template", "template", name, "error", err)
	}
}
