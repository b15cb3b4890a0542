package quotes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanedge/cleanedge/internal/customers"
	"github.com/cleanedge/cleanedge/internal/mailer"
	"github.com/cleanedge/cleanedge/internal/platform/httpx"
)

type mockCustomerRepo struct {
	nextID    int64
	created   []customers.Customer
	createErr error
}

func (m *mockCustomerRepo) Get(ctx context.Context, id int64) (*customers.Customer, error) {
	return nil, customers.ErrNotFound
}

func (m *mockCustomerRepo) List(ctx context.Context, req customers.ListCustomersRequest) ([]customers.Customer, int, error) {
	return nil, 0, nil
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer customers.Customer) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	customer.ID = m.nextID
	m.created = append(m.created, customer)
	return m.nextID, nil
}

type sentMail struct {
	to       string
	subject  string
	template string
	data     map[string]any
}

type fakeNotifier struct {
	result mailer.Result
	err    error
	sent   []sentMail
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, templateName string, data map[string]any) (mailer.Result, error) {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, template: templateName, data: data})
	if f.err != nil {
		return mailer.Result{}, f.err
	}
	return f.result, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(repo customers.Repository, notifier Notifier) *Handler {
	service := NewService(repo, notifier, testLogger(), ServiceConfig{
		ContactAddress: "ops@cleanedgeremoval.com",
		PublicBaseURL:  "http://localhost:8080",
	})
	return NewHandler(testLogger(), service, nil)
}

func submitJSON(t *testing.T, h *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/request", &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func TestSubmitCreatesCustomer(t *testing.T) {
	repo := &mockCustomerRepo{}
	notifier := &fakeNotifier{result: mailer.Result{MessageID: "<id@test>", Success: true}}
	h := newTestHandler(repo, notifier)

	rec := submitJSON(t, h, validQuoteRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message    string `json:"message"`
		CustomerID int64  `json:"customerId"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Quote request received. We will contact you shortly.", resp.Message)
	assert.Equal(t, int64(1), resp.CustomerID)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, "Valid", created.FirstName)
	assert.Equal(t, "Name", created.LastName)
	assert.Equal(t, "valid@example.com", created.Email)
	assert.Equal(t, "123 Main Street, Springfield", created.PrimaryAddressStreet)
	assert.Equal(t, "USA", created.PrimaryAddressCountry)
	assert.True(t, created.PrivacyPolicyAgreed)
	assert.True(t, created.Active)
	assert.False(t, created.MarketingConsent)
	assert.Nil(t, created.MarketingConsentDate)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ops@cleanedgeremoval.com", notifier.sent[0].to)
	assert.Equal(t, "New Quote Request Received - Valid Name", notifier.sent[0].subject)
	assert.Equal(t, "admin_notification", notifier.sent[0].template)
}

func TestSubmitMarketingConsentStampsDate(t *testing.T) {
	repo := &mockCustomerRepo{}
	notifier := &fakeNotifier{result: mailer.Result{Success: true}}
	h := newTestHandler(repo, notifier)

	req := validQuoteRequest()
	req.MarketingConsent = true
	rec := submitJSON(t, h, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].MarketingConsent)
	require.NotNil(t, repo.created[0].MarketingConsentDate)
	assert.Equal(t, repo.created[0].CustomerSince, *repo.created[0].MarketingConsentDate)
}

func TestSubmitOtherServiceRecordsNotes(t *testing.T) {
	repo := &mockCustomerRepo{}
	notifier := &fakeNotifier{result: mailer.Result{Success: true}}
	h := newTestHandler(repo, notifier)

	req := validQuoteRequest()
	req.Services = []string{"Junk Removal", "Other"}
	req.OtherDescription = "old hot tub"
	rec := submitJSON(t, h, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, repo.created, 1)
	require.NotNil(t, repo.created[0].Notes)
	assert.Equal(t, "Other service requested: old hot tub", *repo.created[0].Notes)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "old hot tub", notifier.sent[0].data["OtherDescription"])
	assert.Equal(t, "Junk Removal, Other", notifier.sent[0].data["Services"])
}

func TestSubmitTransportFailureStillAccepted(t *testing.T) {
	repo := &mockCustomerRepo{}
	notifier := &fakeNotifier{result: mailer.Result{Success: false, Err: errors.New("dial tcp: connection refused")}}
	h := newTestHandler(repo, notifier)

	rec := submitJSON(t, h, validQuoteRequest())
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.created, 1)
}

func TestSubmitTemplateFailureReturns500(t *testing.T) {
	repo := &mockCustomerRepo{}
	notifier := &fakeNotifier{err: errors.New("mailer: load template \"admin_notification\": no such file")}
	h := newTestHandler(repo, notifier)

	rec := submitJSON(t, h, validQuoteRequest())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The customer row was written before the notification attempt.
	assert.Len(t, repo.created, 1)
}

func TestSubmitDuplicateEmailConflicts(t *testing.T) {
	repo := &mockCustomerRepo{
		createErr: fmt.Errorf("%w: valid@example.com", customers.ErrDuplicateEmail),
	}
	h := newTestHandler(repo, &fakeNotifier{})

	rec := submitJSON(t, h, validQuoteRequest())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitMalformedJSON(t *testing.T) {
	h := newTestHandler(&mockCustomerRepo{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/quotes/request", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp httpx.ValidationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "request body must be valid JSON", resp.Errors[0].Msg)
}

func TestSubmitValidationFailureListsEveryViolation(t *testing.T) {
	repo := &mockCustomerRepo{}
	notifier := &fakeNotifier{}
	h := newTestHandler(repo, notifier)

	rec := submitJSON(t, h, QuoteRequest{Email: "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httpx.ValidationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.GreaterOrEqual(t, len(resp.Errors), 5)

	// Nothing was persisted or sent on a rejected payload.
	assert.Empty(t, repo.created)
	assert.Empty(t, notifier.sent)
}

func TestListServices(t *testing.T) {
	h := newTestHandler(&mockCustomerRepo{}, &fakeNotifier{})

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/services", nil)
	rec := httptest.NewRecorder()
	h.ListServices(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Services []string `json:"services"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, ServiceCatalog, resp.Services)
	assert.Contains(t, resp.Services, ServiceOther)
}
