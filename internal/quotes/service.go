package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cleanedge/cleanedge/internal/customers"
	"github.com/cleanedge/cleanedge/internal/mailer"
)

// adminNotificationTemplate is the dispatcher template rendered for
// the operator notification.
const adminNotificationTemplate = "admin_notification"

// Notifier is the slice of the mail dispatcher the quote pipeline
// needs: a single transactional send.
type Notifier interface {
	Send(ctx context.Context, to, subject, templateName string, data map[string]any) (mailer.Result, error)
}

// ServiceConfig carries the fixed settings of the pipeline.
type ServiceConfig struct {
	ContactAddress string
	PublicBaseURL  string
}

// Service runs the quote-submission pipeline: normalize, persist,
// notify. Input validation happens in the handler before this layer.
type Service struct {
	repo     customers.Repository
	notifier Notifier
	logger   *slog.Logger
	cfg      ServiceConfig
}

func NewService(repo customers.Repository, notifier Notifier, logger *slog.Logger, cfg ServiceConfig) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
	}
}

// Submit persists one customer record for a validated quote request
// and sends the operator notification.
//
// Persistence strictly precedes notification. A transport failure is
// logged and swallowed: the customer row is the durable side effect
// and the caller's response must not depend on email delivery. A
// template-load failure is returned: the row still exists, but the
// deployment is broken and the error must surface.
func (s *Service) Submit(ctx context.Context, req QuoteRequest) (*customers.Customer, error) {
	now := time.Now().UTC()

	firstName, lastName := SplitFullName(req.FullName)
	addr := DecomposeAddress(req.ServiceAddress)

	customer := customers.Customer{
		FirstName:               firstName,
		LastName:                lastName,
		Email:                   req.Email,
		PrimaryAddressStreet:    addr.Street,
		PrimaryAddressCity:      addr.City,
		PrimaryAddressState:     addr.State,
		PrimaryAddressZip:       addr.Zip,
		PrimaryAddressCountry:   addr.Country,
		PhoneCell:               req.CellPhone,
		MarketingConsent:        req.MarketingConsent,
		PrivacyPolicyAgreed:     true,
		PrivacyPolicyAgreedDate: now,
		CustomerSince:           now,
		Active:                  true,
	}
	if req.HomePhone != "" {
		customer.PhoneHome = &req.HomePhone
	}
	if req.WorkPhone != "" {
		customer.PhoneWork = &req.WorkPhone
	}
	if req.MarketingConsent {
		customer.MarketingConsentDate = &now
	}

	otherDetail := "N/A"
	if containsService(req.Services, ServiceOther) {
		otherDetail = req.OtherDescription
		notes := "Other service requested: " + req.OtherDescription
		customer.Notes = &notes
	}

	id, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	customer.ID = id

	subject := "New Quote Request Received - " + req.FullName
	data := map[string]any{
		"CustomerName":     req.FullName,
		"Email":            req.Email,
		"CellPhone":        req.CellPhone,
		"Address":          req.ServiceAddress,
		"Services":         strings.Join(req.Services, ", "),
		"OtherDescription": otherDetail,
		"SubmittedAt":      now.Format(time.RFC1123),
		"CustomerLink":     fmt.Sprintf("%s/admin/customers/%d", strings.TrimRight(s.cfg.PublicBaseURL, "/"), id),
	}

	result, err := s.notifier.Send(ctx, s.cfg.ContactAddress, subject, adminNotificationTemplate, data)
	if err != nil {
		// Template-level failure: the customer record survives but the
		// error must propagate.
		return &customer, err
	}
	if !result.Success {
		s.logger.Error("quote notification not delivered",
			slog.Int64("customerId", id),
			slog.Any("error", result.Err),
		)
	}

	return &customer, nil
}
