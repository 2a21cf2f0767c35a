package handlers

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"gym-frontend/internal/backend"
)

// MemberHandler serves the public QR landing pages: member
// self-registration and cash payment verification. No session is
// involved; the gym is identified by the ID baked into the QR URL.
type MemberHandler struct {
	client    *backend.Client
	templates *template.Template
}

func NewMemberHandler(client *backend.Client, t *template.Template) *MemberHandler {
	return &MemberHandler{client: client, templates: t}
}

type publicPageData struct {
	GymID     string
	Owner     *backend.Owner
	Flash     *Flash
	Submitted bool
	SessionID string
	LoadError string
}

func (h *MemberHandler) publicData(r *http.Request, gymID string) publicPageData {
	data := publicPageData{
		GymID: gymID,
		Flash: MakeFlash(r),
	}
	data.Submitted = r.URL.Query().Get("ok") != ""

	owner, err := h.client.GetOwner(r.Context(), gymID)
	if err != nil {
		log.Printf("[Public] gym lookup failed for %s: %v", gymID, err)
		data.LoadError = backend.Detail(err)
		return data
	}
	data.Owner = owner
	return data
}

// RegisterMemberPage shows the self-registration form reached by
// scanning the gym's QR code.
func (h *MemberHandler) RegisterMemberPage(w http.ResponseWriter, r *http.Request) {
	gymID := mux.Vars(r)["gym_id"]
	h.templates.ExecuteTemplate(w, "register_member.html", h.publicData(r, gymID))
}

// RegisterMemberSubmit creates the member and redirects back into the
// submitted state.
func (h *MemberHandler) RegisterMemberSubmit(w http.ResponseWriter, r *http.Request) {
	gymID := mux.Vars(r)["gym_id"]
	base := "/register-member/" + url.PathEscape(gymID)

	r.ParseForm()
	name := strings.TrimSpace(r.FormValue("name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	if name == "" || phone == "" {
		redirectError(w, r, base, "Name and phone are required.")
		return
	}

	err := h.client.RegisterMember(r.Context(), backend.RegisterMemberRequest{
		Name:  name,
		Phone: phone,
		GymID: gymID,
	})
	if err != nil {
		redirectError(w, r, base, backend.Detail(err))
		return
	}

	http.Redirect(w, r, base+"?ok=registered", http.StatusSeeOther)
}

// VerifyCashPage shows the cash verification form. An optional
// ?session= links the submission to a pending payment session;
// ?session_id= is accepted as an alias.
func (h *MemberHandler) VerifyCashPage(w http.ResponseWriter, r *http.Request) {
	gymID := mux.Vars(r)["gym_id"]
	data := h.publicData(r, gymID)
	data.SessionID = r.URL.Query().Get("session")
	if data.SessionID == "" {
		data.SessionID = r.URL.Query().Get("session_id")
	}
	h.templates.ExecuteTemplate(w, "verify_cash.html", data)
}

// VerifyCashSubmit records a cash payment claim for the member
// matching the submitted phone and name.
func (h *MemberHandler) VerifyCashSubmit(w http.ResponseWriter, r *http.Request) {
	gymID := mux.Vars(r)["gym_id"]
	base := "/verify-cash-payment/" + url.PathEscape(gymID)

	r.ParseForm()
	name := strings.TrimSpace(r.FormValue("name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	sessionID := strings.TrimSpace(r.FormValue("session_id"))
	if name == "" || phone == "" {
		redirectError(w, r, base, "Name and phone are required.")
		return
	}

	if err := h.client.VerifyCashPayment(r.Context(), gymID, phone, name, sessionID); err != nil {
		redirectError(w, r, base, backend.Detail(err))
		return
	}

	http.Redirect(w, r, base+"?ok=verified", http.StatusSeeOther)
}
