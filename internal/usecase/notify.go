package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/internal/notification"
	"loyalty-program/pkg/utils"

	"go.uber.org/zap"
)

// notifier groups the customer-facing emails around the account
// lifecycle. Template names and substitution variables follow the
// notification sender contract.
type notifier struct {
	mail   notification.Sender
	config *utils.Config
	log    *zap.Logger
}

func (n *notifier) verificationURL(token string) string {
	return strings.ReplaceAll(n.config.App.VerificationURL, "{verification_token}", url.QueryEscape(token))
}

// confirmationCode is the short code emailed alongside the tokenized
// URL: the first 5 characters of the verification token.
func confirmationCode(token string) string {
	if len(token) < 5 {
		return token
	}
	return token[:5]
}

func (n *notifier) sendVerification(ctx context.Context, customer *entity.Customer, address string) error {
	token := ""
	if customer.VerificationToken != nil {
		token = *customer.VerificationToken
	}

	return n.mail.Send(ctx, notification.TemplateVerification,
		notification.Recipient{Address: address, Name: customer.FullName()},
		"Getting Started with "+n.config.App.ApplicationTitle,
		map[string]any{
			"firstname":              customer.Firstname,
			"confirmation_code":      confirmationCode(token),
			"verification_token_url": n.verificationURL(token),
			"public_url":             n.config.App.PublicURL,
			"application_title":      n.config.App.ApplicationTitle,
		})
}

func (n *notifier) sendChangeEmail(ctx context.Context, customer *entity.Customer) error {
	token := ""
	if customer.VerificationToken != nil {
		token = *customer.VerificationToken
	}
	address := customer.Email
	if customer.PendingEmail != nil {
		address = *customer.PendingEmail
	}

	return n.mail.Send(ctx, notification.TemplateChangeEmail,
		notification.Recipient{Address: address, Name: customer.FullName()},
		"Change E-mail address requested",
		map[string]any{
			"firstname":              customer.Firstname,
			"confirmation_code":      confirmationCode(token),
			"verification_token_url": n.verificationURL(token),
			"public_url":             n.config.App.PublicURL,
		})
}

func (n *notifier) sendRegistration(ctx context.Context, customer *entity.Customer) error {
	return n.mail.Send(ctx, notification.TemplateRegistration,
		notification.Recipient{Address: customer.Email, Name: customer.FullName()},
		"Account activated",
		map[string]any{
			"public_url": n.config.App.PublicURL,
		})
}

func (n *notifier) sendNewPassword(ctx context.Context, customer *entity.Customer, password string) error {
	return n.mail.Send(ctx, notification.TemplateForgotPassword,
		notification.Recipient{Address: customer.Email, Name: customer.FullName()},
		"Forgot password notification",
		map[string]any{
			"password":   password,
			"public_url": n.config.App.PublicURL,
		})
}

// notifyAdmins mails every active administrator about a freshly
// activated account.
func (n *notifier) notifyAdmins(ctx context.Context, repo *repository.Repository, customer *entity.Customer, keytag *entity.Keytag) error {
	admins, err := repo.User.FindActiveByGroup(ctx, entity.UserGroupAdmin)
	if err != nil {
		return err
	}

	zip := ""
	if address, err := repo.Address.FindActiveByCustomer(ctx, customer.ID); err == nil && address != nil {
		zip = address.Zip
	}

	phone := ""
	if customer.Phone != nil {
		phone = *customer.Phone
	}
	keytagUPCA := ""
	if keytag != nil {
		keytagUPCA = keytag.KeytagUPCA
	}

	for _, admin := range admins {
		err := n.mail.Send(ctx, notification.TemplateAdminNewCustomer,
			notification.Recipient{Address: admin.Email, Name: admin.FullName()},
			"Customer New Account",
			map[string]any{
				"email":     customer.Email,
				"firstname": customer.Firstname,
				"lastname":  customer.Lastname,
				"phone":     phone,
				"zip":       zip,
				"keytag":    keytagUPCA,
			})
		if err != nil {
			return err
		}
	}

	return nil
}

// actionSummary builds the promotion description block shared by the
// referral emails.
func actionSummary(action *entity.Action) string {
	summary := action.Title + "\n" + action.BriefDescription +
		"\n\nValidity period: " + action.DateFrom.Format("01/02/2006 15:04:05") +
		" - " + action.DateTo.Format("01/02/2006 15:04:05")
	if action.CoeffModifier != nil {
		summary += fmt.Sprintf("\nCoefficient: %g", *action.CoeffModifier)
	}
	if action.Points > 0 {
		summary += fmt.Sprintf("\nPoints: %dpts", action.Points)
	}
	return summary
}

// sendReferralInvite notifies the invitee. Existing members get the
// customer-to-customer variant.
func (n *notifier) sendReferralInvite(ctx context.Context, from *entity.Customer, referral *entity.Referral, action *entity.Action, merchant *entity.Organization, invitee *entity.Customer) error {
	merchantTitle := ""
	if merchant != nil {
		merchantTitle = merchant.Title
	}

	vars := map[string]any{
		"email_from":  from.FullName(),
		"merchant":    merchantTitle,
		"action_info": actionSummary(action),
		"public_url":  n.config.App.PublicURL,
	}

	if invitee != nil {
		vars["email_to"] = invitee.FullName()
		return n.mail.Send(ctx, notification.TemplateReferralCustomer,
			notification.Recipient{Address: referral.Email, Name: invitee.FullName()},
			"Would like to share with you exciting promotion",
			vars)
	}

	return n.mail.Send(ctx, notification.TemplateReferral,
		notification.Recipient{Address: referral.Email},
		"Referral Notification",
		vars)
}

func (n *notifier) sendReferralPoints(ctx context.Context, points int, referrer *entity.Customer, inviteeEmail string) error {
	return n.mail.Send(ctx, notification.TemplateReferralPoints,
		notification.Recipient{Address: referrer.Email, Name: referrer.FullName()},
		"You accrued points",
		map[string]any{
			"email_to":   referrer.FullName(),
			"points":     points,
			"email":      inviteeEmail,
			"public_url": n.config.App.PublicURL,
		})
}
