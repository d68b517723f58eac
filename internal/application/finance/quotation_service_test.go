package finance

import (
	"context"
	"errors"
	"testing"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/crm"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/finance"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockQuotationRepository is a mock implementation of QuotationRepository
type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CdnQuotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CdnQuotation), args.Error(1)
}

func (m *MockQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.CdnQuotation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.CdnQuotation), args.Error(1)
}

func (m *MockQuotationRepository) Save(ctx context.Context, quotation *finance.CdnQuotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuotationRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]finance.CdnQuotation, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]finance.CdnQuotation), args.Error(1)
}

// MockInterestRateRepository is a mock implementation of InterestRateRepository
type MockInterestRateRepository struct {
	mock.Mock
}

func (m *MockInterestRateRepository) FindAll(ctx context.Context) ([]finance.InterestRate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.InterestRate), args.Error(1)
}

func (m *MockInterestRateRepository) FindByTerm(ctx context.Context, termMonths int) (*finance.InterestRate, error) {
	args := m.Called(ctx, termMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.InterestRate), args.Error(1)
}

func (m *MockInterestRateRepository) Save(ctx context.Context, rate *finance.InterestRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of crm.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]crm.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *crm.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) FindByCreator(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]crm.Client, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]crm.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDNumber(ctx context.Context, idNumber string) (*crm.Client, error) {
	args := m.Called(ctx, idNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Client), args.Error(1)
}

func (m *MockClientRepository) ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error) {
	args := m.Called(ctx, idNumber)
	return args.Bool(0), args.Error(1)
}

// MockRenderer is a mock implementation of DocumentRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderQuotation(ctx context.Context, doc QuotationDocument) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockMailer is a mock implementation of Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendQuotation(ctx context.Context, doc QuotationDocument, pdf []byte) error {
	args := m.Called(ctx, doc, pdf)
	return args.Error(0)
}

type quotationMocks struct {
	quotations *MockQuotationRepository
	rates      *MockInterestRateRepository
	clients    *MockClientRepository
	renderer   *MockRenderer
	mailer     *MockMailer
	notifier   *notification.Service
}

func newQuotationService() (*QuotationService, *quotationMocks) {
	mocks := &quotationMocks{
		quotations: new(MockQuotationRepository),
		rates:      new(MockInterestRateRepository),
		clients:    new(MockClientRepository),
		renderer:   new(MockRenderer),
		mailer:     new(MockMailer),
		notifier:   notification.NewService(nil, zap.NewNop()),
	}
	svc := NewQuotationService(mocks.quotations, mocks.rates, mocks.clients,
		mocks.renderer, mocks.mailer, mocks.notifier, zap.NewNop())
	return svc, mocks
}

func makeRate(t *testing.T, termMonths int, annualRate string) *finance.InterestRate {
	t.Helper()
	rate, err := finance.NewInterestRate(termMonths, decimal.RequireFromString(annualRate))
	require.NoError(t, err)
	return rate
}

func makeClient(t *testing.T, email string) *crm.Client {
	t.Helper()
	client, err := crm.NewClient(uuid.New(), "Thandi", "Nkosi")
	require.NoError(t, err)
	if email != "" {
		require.NoError(t, client.SetContact(email, ""))
	}
	return client
}

func TestQuotePreviewUsesRateTable(t *testing.T) {
	svc, mocks := newQuotationService()

	mocks.rates.On("FindByTerm", mock.Anything, 12).Return(makeRate(t, 12, "12"), nil)

	resp, err := svc.Quote(context.Background(), QuoteRequest{
		Amount:     decimal.RequireFromString("10000"),
		TermMonths: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, "11268.25", resp.MaturityValue.StringFixed(2))
	assert.Equal(t, "12", resp.AnnualRate.String())
}

func TestQuoteUnknownTerm(t *testing.T) {
	svc, mocks := newQuotationService()

	mocks.rates.On("FindByTerm", mock.Anything, 7).Return(nil, shared.ErrNotFound)

	_, err := svc.Quote(context.Background(), QuoteRequest{
		Amount:     decimal.RequireFromString("10000"),
		TermMonths: 7,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "RATE_NOT_FOUND", domainErr.Code)
}

func TestCreateQuotationFreezesRate(t *testing.T) {
	svc, mocks := newQuotationService()
	creator := uuid.New()
	client := makeClient(t, "thandi@example.com")

	mocks.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	mocks.rates.On("FindByTerm", mock.Anything, 24).Return(makeRate(t, 24, "6"), nil)
	mocks.quotations.On("Save", mock.Anything, mock.AnythingOfType("*finance.CdnQuotation")).Return(nil)

	resp, err := svc.Create(context.Background(), creator, CreateQuotationRequest{
		ClientID:   client.ID,
		Amount:     decimal.RequireFromString("50000"),
		TermMonths: 24,
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "6", resp.AnnualRate.String())
	assert.Equal(t, "56357.99", resp.MaturityValue.StringFixed(2))
}

func TestCreateQuotationForArchivedClient(t *testing.T) {
	svc, mocks := newQuotationService()
	client := makeClient(t, "")
	require.NoError(t, client.Archive())

	mocks.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateQuotationRequest{
		ClientID:   client.ID,
		Amount:     decimal.RequireFromString("50000"),
		TermMonths: 24,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CLIENT_ARCHIVED", domainErr.Code)
	mocks.quotations.AssertNotCalled(t, "Save")
}

func TestSendQuotation(t *testing.T) {
	svc, mocks := newQuotationService()
	creator := uuid.New()
	client := makeClient(t, "thandi@example.com")

	quotation, err := finance.NewQuotation(creator, client.ID,
		decimal.RequireFromString("10000"), 12, decimal.RequireFromString("12"))
	require.NoError(t, err)

	pdf := []byte("%PDF-1.7")
	mocks.quotations.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
	mocks.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	mocks.renderer.On("RenderQuotation", mock.Anything, mock.AnythingOfType("finance.QuotationDocument")).Return(pdf, nil)
	mocks.mailer.On("SendQuotation", mock.Anything, mock.AnythingOfType("finance.QuotationDocument"), pdf).Return(nil)
	mocks.quotations.On("Save", mock.Anything, quotation).Return(nil)

	resp, err := svc.Send(context.Background(), quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, "sent", resp.Status)
	assert.NotNil(t, resp.SentAt)

	feed := mocks.notifier.List(creator)
	require.Len(t, feed, 1)
	assert.Equal(t, notification.KindQuotationSent, feed[0].Kind)
}

func TestSendQuotationWithoutClientEmail(t *testing.T) {
	svc, mocks := newQuotationService()
	client := makeClient(t, "")

	quotation, err := finance.NewQuotation(uuid.New(), client.ID,
		decimal.RequireFromString("10000"), 12, decimal.RequireFromString("12"))
	require.NoError(t, err)

	mocks.quotations.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
	mocks.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)

	_, err = svc.Send(context.Background(), quotation.ID)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NO_EMAIL", domainErr.Code)
	mocks.renderer.AssertNotCalled(t, "RenderQuotation")
}

func TestSendQuotationMailFailureLeavesDraft(t *testing.T) {
	svc, mocks := newQuotationService()
	client := makeClient(t, "thandi@example.com")

	quotation, err := finance.NewQuotation(uuid.New(), client.ID,
		decimal.RequireFromString("10000"), 12, decimal.RequireFromString("12"))
	require.NoError(t, err)

	mocks.quotations.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
	mocks.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	mocks.renderer.On("RenderQuotation", mock.Anything, mock.Anything).Return([]byte("%PDF-1.7"), nil)
	mocks.mailer.On("SendQuotation", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

	_, err = svc.Send(context.Background(), quotation.ID)
	require.Error(t, err)
	assert.Equal(t, finance.QuotationStatusDraft, quotation.Status)
	mocks.quotations.AssertNotCalled(t, "Save")
}

func TestAcceptQuotation(t *testing.T) {
	svc, mocks := newQuotationService()

	quotation, err := finance.NewQuotation(uuid.New(), uuid.New(),
		decimal.RequireFromString("10000"), 12, decimal.RequireFromString("12"))
	require.NoError(t, err)
	require.NoError(t, quotation.MarkSent())

	mocks.quotations.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)
	mocks.quotations.On("Save", mock.Anything, quotation).Return(nil)

	resp, err := svc.Accept(context.Background(), quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)
}

func TestDeleteQuotationOnlyDrafts(t *testing.T) {
	svc, mocks := newQuotationService()

	quotation, err := finance.NewQuotation(uuid.New(), uuid.New(),
		decimal.RequireFromString("10000"), 12, decimal.RequireFromString("12"))
	require.NoError(t, err)
	require.NoError(t, quotation.MarkSent())

	mocks.quotations.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)

	err = svc.Delete(context.Background(), quotation.ID)
	require.Error(t, err)
	mocks.quotations.AssertNotCalled(t, "Delete")
}

func TestSetRateUpdatesExistingTerm(t *testing.T) {
	svc, mocks := newQuotationService()
	existing := makeRate(t, 12, "10")

	mocks.rates.On("FindByTerm", mock.Anything, 12).Return(existing, nil)
	mocks.rates.On("Save", mock.Anything, existing).Return(nil)

	resp, err := svc.SetRate(context.Background(), SetRateRequest{
		TermMonths: 12,
		AnnualRate: decimal.RequireFromString("11.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11.5", resp.AnnualRate.String())
}

func TestSetRateCreatesNewTerm(t *testing.T) {
	svc, mocks := newQuotationService()

	mocks.rates.On("FindByTerm", mock.Anything, 36).Return(nil, shared.ErrNotFound)
	mocks.rates.On("Save", mock.Anything, mock.AnythingOfType("*finance.InterestRate")).Return(nil)

	resp, err := svc.SetRate(context.Background(), SetRateRequest{
		TermMonths: 36,
		AnnualRate: decimal.RequireFromString("9.25"),
	})
	require.NoError(t, err)
	assert.Equal(t, 36, resp.TermMonths)
}
