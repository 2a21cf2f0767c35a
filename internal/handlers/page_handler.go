package handlers

import (
	"html/template"
	"net/http"

	"gym-frontend/templates"
)

type PageHandler struct {
	templates *template.Template
}

func NewPageHandler() *PageHandler {
	// Parse all templates from embedded filesystem
	t := template.Must(template.ParseFS(templates.FS, "*.html"))

	return &PageHandler{
		templates: t,
	}
}

// Templates exposes the parsed set for handlers that render pages.
func (h *PageHandler) Templates() *template.Template {
	return h.templates
}

// HomePage serves the marketing landing page.
func (h *PageHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "home.html", map[string]interface{}{
		"Flash": MakeFlash(r),
	})
}

// LoginPage serves the owner login page.
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "login.html", map[string]interface{}{
		"Flash": MakeFlash(r),
	})
}

// RegisterPage serves the owner registration page.
func (h *PageHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "register_owner.html", map[string]interface{}{
		"Flash": MakeFlash(r),
	})
}
