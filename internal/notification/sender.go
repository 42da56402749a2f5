package notification

import (
	"context"
	"fmt"
)

// Logical template names rendered by the email sender.
const (
	TemplateVerification     = "verification"
	TemplateChangeEmail      = "change_email"
	TemplateRegistration     = "registration"
	TemplateForgotPassword   = "forgot_password"
	TemplateAdminNewCustomer = "admin_new_customer"
	TemplateReferral         = "referral"
	TemplateReferralCustomer = "referral_customer"
	TemplateReferralPoints   = "referral_points"
)

type Recipient struct {
	Address string
	Name    string
}

// Sender renders a named template with substitution variables and
// dispatches it to the recipient. A failed send returns a
// DeliveryError; callers treat delivery as part of the operation.
type Sender interface {
	Send(ctx context.Context, template string, to Recipient, subject string, vars map[string]any) error
}

// SMSSender dispatches a short text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// DeliveryError wraps a transport failure with the provider diagnostic.
type DeliveryError struct {
	Provider string
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Provider, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
