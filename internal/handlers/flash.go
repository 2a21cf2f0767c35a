package handlers

import (
	"net/http"
	"strings"
)

type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

var okText = map[string]string{
	"registered":       "Registration successful! The gym owner has your details.",
	"payment_updated":  "Payment recorded.",
	"status_changed":   "Member status updated.",
	"deleted":          "Member removed.",
	"notified":         "Notification sent.",
	"reminders_queued": "Reminders are being sent to all unpaid members.",
	"saved":            "Settings saved.",
	"verified":         "Cash payment recorded. Thank you!",
}

// MakeFlash reads ?ok= / ?error= query params to build a Flash. Error
// values are shown verbatim since the backend's detail strings are
// already user-facing.
func MakeFlash(r *http.Request) *Flash {
	q := r.URL.Query()

	if errRaw := strings.TrimSpace(q.Get("error")); errRaw != "" {
		return &Flash{Kind: "error", Text: errRaw}
	}
	if okRaw := strings.TrimSpace(q.Get("ok")); okRaw != "" {
		if t, ok := okText[strings.ToLower(okRaw)]; ok {
			return &Flash{Kind: "ok", Text: t}
		}
		return &Flash{Kind: "ok", Text: okRaw}
	}
	return nil
}
