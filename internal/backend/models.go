package backend

import "time"

// Fee status values reported by the backend for a member's current month.
const (
	FeeStatusPaid   = "paid"
	FeeStatusUnpaid = "unpaid"
)

// Payment methods accepted by the payment update endpoint.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

// Owner is the gym operator record returned by registration, login and the
// public owner lookup. QR fields are base64-encoded PNG images.
type Owner struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Phone                 string    `json:"phone"`
	GymName               string    `json:"gym_name"`
	Address               string    `json:"address"`
	MonthlyFee            float64   `json:"monthly_fee"`
	QRCode                string    `json:"qr_code"`
	MemberRegistrationURL string    `json:"member_registration_url"`
	CashVerificationQR    string    `json:"cash_verification_qr"`
	WhatsAppNumber        string    `json:"whatsapp_number,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// Member is a gym member as stored by the backend. JoiningDate is an ISO
// date string on the wire.
type Member struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	JoiningDate     string    `json:"joining_date"`
	FeeStatus       string    `json:"fee_status"`
	CurrentMonthFee float64   `json:"current_month_fee"`
	PaymentMethod   *string   `json:"payment_method"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// PaymentSession is the short-lived online payment QR returned by the
// backend. It is displayed once and never persisted by this service.
type PaymentSession struct {
	SessionID string    `json:"session_id"`
	QRCode    string    `json:"qr_code"`
	Amount    float64   `json:"amount"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterOwnerRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	Password   string  `json:"password"`
	GymName    string  `json:"gym_name"`
	Address    string  `json:"address"`
	MonthlyFee float64 `json:"monthly_fee"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterMemberRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	GymID string `json:"gym_id"`
}

type PaymentUpdateRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type NotificationRequest struct {
	Message string `json:"message"`
}

type BulkRemindersRequest struct {
	GymID string `json:"gym_id"`
}

type WhatsAppConfigRequest struct {
	WhatsAppNumber string `json:"whatsapp_number"`
}

type PaymentSessionRequest struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}
