package models

import "encoding/json"

// Envelope types returned by assistant tools.
const (
	EnvelopeNavigation = "navigation_response"
	EnvelopeMessage    = "message_response"
	EnvelopePayment    = "payment_redirect"
)

// Navigation tells the frontend to redirect after a short delay.
type Navigation struct {
	Action  string `json:"action"`
	Path    string `json:"path"`
	DelayMS int    `json:"delay_ms"`
}

// Envelope is the structured result of an assistant tool call. Which
// fields are populated depends on Type.
type Envelope struct {
	Type       string      `json:"type"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Navigation *Navigation `json:"navigation,omitempty"`
	PaymentURL string      `json:"payment_url,omitempty"`
	Details    interface{} `json:"appointment_details,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// String renders the envelope as the JSON reply body the frontend parses.
func (e Envelope) String() string {
	b, err := json.Marshal(e)
	if err != nil {
		return `{"type":"message_response","success":false,"message":"internal error"}`
	}
	return string(b)
}

// NavigateTo builds a navigation envelope.
func NavigateTo(path string, delayMS int, success bool, message string) Envelope {
	return Envelope{
		Type:       EnvelopeNavigation,
		Success:    success,
		Message:    message,
		Navigation: &Navigation{Action: "navigate", Path: path, DelayMS: delayMS},
	}
}

// MessageOf builds a plain informational envelope.
func MessageOf(success bool, message string) Envelope {
	return Envelope{Type: EnvelopeMessage, Success: success, Message: message}
}

// AppointmentDetails is the payment_redirect summary shown before checkout.
type AppointmentDetails struct {
	Doctor    string  `json:"doctor"`
	Specialty string  `json:"specialty"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Fee       float64 `json:"fee"`
}

// ChatContext is the per-user assistant conversation memory held in Redis
// under an idle TTL. It carries the slot-fill state of an in-progress
// booking plus a short transcript for the model prompt.
type ChatContext struct {
	PendingDoctorID   string   `json:"pending_doctor_id,omitempty"`
	PendingDoctorName string   `json:"pending_doctor_name,omitempty"`
	PendingDate       string   `json:"pending_date,omitempty"`
	PendingTime       string   `json:"pending_time,omitempty"`
	PendingReason     string   `json:"pending_reason,omitempty"`
	Transcript        []string `json:"transcript,omitempty"`
}
