package handlers

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"gym-frontend/internal/backend"
	"gym-frontend/internal/metrics"
	"gym-frontend/internal/middleware"
	"gym-frontend/internal/money"
	"gym-frontend/internal/session"
)

// Dashboard tab names. An unknown ?tab= falls back to overview.
var dashboardTabs = map[string]bool{
	"overview": true,
	"members":  true,
	"payments": true,
	"whatsapp": true,
	"qr-codes": true,
}

type DashboardHandler struct {
	client    *backend.Client
	sessions  *session.Manager
	templates *template.Template
}

func NewDashboardHandler(client *backend.Client, sessions *session.Manager, t *template.Template) *DashboardHandler {
	return &DashboardHandler{client: client, sessions: sessions, templates: t}
}

type memberView struct {
	backend.Member
	FeeDisplay string
}

type dashboardStats struct {
	TotalMembers   int
	ActiveMembers  int
	PaidMembers    int
	UnpaidMembers  int
	MonthlyRevenue string
	PendingAmount  string
}

type dashboardData struct {
	Owner          *backend.Owner
	Tab            string
	Members        []memberView
	Recent         []memberView
	Stats          dashboardStats
	Flash          *Flash
	PaymentSession *paymentSessionView
	LoadError      string
}

type paymentSessionView struct {
	MemberName string
	QRCode     string
	Amount     string
	ExpiresAt  string
}

// memberStats aggregates the member list in paise so the rupee totals
// come out exact.
func memberStats(members []backend.Member) dashboardStats {
	var revenue, pending money.Paise
	s := dashboardStats{TotalMembers: len(members)}

	for _, m := range members {
		if m.IsActive {
			s.ActiveMembers++
		}
		fee := money.FromRupees(m.CurrentMonthFee)
		if m.FeeStatus == backend.FeeStatusPaid {
			s.PaidMembers++
			revenue += fee
		} else {
			s.UnpaidMembers++
			if m.IsActive {
				pending += fee
			}
		}
	}

	s.MonthlyRevenue = revenue.Rupees()
	s.PendingAmount = pending.Rupees()
	return s
}

func toViews(members []backend.Member) []memberView {
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, memberView{
			Member:     m,
			FeeDisplay: money.FromRupees(m.CurrentMonthFee).Rupees(),
		})
	}
	return views
}

// recentMembers returns the first five members in backend order, the
// slice the overview tab shows.
func recentMembers(views []memberView) []memberView {
	if len(views) <= 5 {
		return views
	}
	return views[:5]
}

// Dashboard renders the operator dashboard. The member list is fetched
// fresh on every load; mutations redirect back here.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())

	tab := r.URL.Query().Get("tab")
	if !dashboardTabs[tab] {
		tab = "overview"
	}

	data := dashboardData{
		Owner: owner,
		Tab:   tab,
		Flash: MakeFlash(r),
	}

	members, err := h.client.ListMembers(r.Context(), owner.ID)
	if err != nil {
		log.Printf("[Dashboard] member list fetch failed for gym %s: %v", owner.ID, err)
		data.LoadError = backend.Detail(err)
	} else {
		views := toViews(members)
		data.Members = views
		data.Recent = recentMembers(views)
		data.Stats = memberStats(members)
	}

	h.templates.ExecuteTemplate(w, "dashboard.html", data)
}

// MarkPaid records a payment for one member.
func (h *DashboardHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())
	memberID := mux.Vars(r)["member_id"]

	r.ParseForm()
	method := r.FormValue("payment_method")
	if method != backend.PaymentMethodCash && method != backend.PaymentMethodOnline {
		h.redirectTab(w, r, "members", "error", "Choose cash or online payment.")
		return
	}

	if err := h.client.UpdatePayment(r.Context(), owner.ID, memberID, method); err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("update_payment", "error").Inc()
		h.redirectTab(w, r, "members", "error", backend.Detail(err))
		return
	}
	metrics.BackendRequestsTotal.WithLabelValues("update_payment", "ok").Inc()
	h.redirectTab(w, r, "members", "ok", "payment_updated")
}

// ToggleActive flips a member between active and inactive.
func (h *DashboardHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())
	memberID := mux.Vars(r)["member_id"]

	if err := h.client.ToggleActive(r.Context(), owner.ID, memberID); err != nil {
		h.redirectTab(w, r, "members", "error", backend.Detail(err))
		return
	}
	h.redirectTab(w, r, "members", "ok", "status_changed")
}

// DeleteMember removes a member permanently.
func (h *DashboardHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())
	memberID := mux.Vars(r)["member_id"]

	if err := h.client.DeleteMember(r.Context(), owner.ID, memberID); err != nil {
		h.redirectTab(w, r, "members", "error", backend.Detail(err))
		return
	}
	h.redirectTab(w, r, "members", "ok", "deleted")
}

// SendNotification sends one WhatsApp message to a member.
func (h *DashboardHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())
	memberID := mux.Vars(r)["member_id"]

	r.ParseForm()
	message := strings.TrimSpace(r.FormValue("message"))
	if message == "" {
		h.redirectTab(w, r, "members", "error", "Message cannot be empty.")
		return
	}

	if err := h.client.SendNotification(r.Context(), owner.ID, memberID, message); err != nil {
		h.redirectTab(w, r, "members", "error", backend.Detail(err))
		return
	}
	h.redirectTab(w, r, "members", "ok", "notified")
}

// SendBulkReminders queues fee reminders for every unpaid member.
func (h *DashboardHandler) SendBulkReminders(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())

	if err := h.client.SendBulkReminders(r.Context(), owner.ID); err != nil {
		h.redirectTab(w, r, "members", "error", backend.Detail(err))
		return
	}
	h.redirectTab(w, r, "members", "ok", "reminders_queued")
}

// UpdateWhatsAppConfig saves the gym's WhatsApp sender number, then
// refreshes the stored session profile so the settings tab shows it.
func (h *DashboardHandler) UpdateWhatsAppConfig(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())
	sessionID, _ := middleware.SessionIDFromContext(r.Context())

	r.ParseForm()
	number := strings.TrimSpace(r.FormValue("whatsapp_number"))
	if number == "" {
		h.redirectTab(w, r, "whatsapp", "error", "Enter a WhatsApp number.")
		return
	}

	if err := h.client.UpdateWhatsAppConfig(r.Context(), owner.ID, number); err != nil {
		h.redirectTab(w, r, "whatsapp", "error", backend.Detail(err))
		return
	}

	if fresh, err := h.client.GetOwner(r.Context(), owner.ID); err == nil {
		if err := h.sessions.Update(r.Context(), sessionID, fresh); err != nil {
			log.Printf("[Dashboard] session refresh failed: %v", err)
		}
	}
	h.redirectTab(w, r, "whatsapp", "ok", "saved")
}

// GeneratePaymentSession asks the backend for a short-lived payment QR
// and renders the dashboard with it inline. A redirect would lose the
// one-time QR payload.
func (h *DashboardHandler) GeneratePaymentSession(w http.ResponseWriter, r *http.Request) {
	owner, _ := middleware.OwnerFromContext(r.Context())
	memberID := mux.Vars(r)["member_id"]

	members, err := h.client.ListMembers(r.Context(), owner.ID)
	if err != nil {
		h.redirectTab(w, r, "payments", "error", backend.Detail(err))
		return
	}

	var target *backend.Member
	for i := range members {
		if members[i].ID == memberID {
			target = &members[i]
			break
		}
	}
	if target == nil {
		h.redirectTab(w, r, "payments", "error", "Member not found.")
		return
	}

	ps, err := h.client.CreatePaymentSession(r.Context(), owner.ID, backend.PaymentSessionRequest{
		MemberID: memberID,
		Amount:   target.CurrentMonthFee,
	})
	if err != nil {
		h.redirectTab(w, r, "payments", "error", backend.Detail(err))
		return
	}

	views := toViews(members)
	data := dashboardData{
		Owner:   owner,
		Tab:     "payments",
		Members: views,
		Recent:  recentMembers(views),
		Stats:   memberStats(members),
		PaymentSession: &paymentSessionView{
			MemberName: target.Name,
			QRCode:     ps.QRCode,
			Amount:     money.FromRupees(ps.Amount).Rupees(),
			ExpiresAt:  ps.ExpiresAt.Local().Format("3:04 PM"),
		},
	}
	h.templates.ExecuteTemplate(w, "dashboard.html", data)
}

func (h *DashboardHandler) redirectTab(w http.ResponseWriter, r *http.Request, tab, kind, value string) {
	http.Redirect(w, r, "/dashboard?tab="+tab+"&"+kind+"="+url.QueryEscape(value), http.StatusSeeOther)
}
