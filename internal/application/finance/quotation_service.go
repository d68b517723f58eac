package finance

import (
	"context"
	"fmt"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/crm"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/finance"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QuotationDocument carries everything the renderer and mailer need
type QuotationDocument struct {
	Quotation   QuotationResponse
	ClientName  string
	ClientEmail string
}

// DocumentRenderer renders a quotation into a PDF for sending
type DocumentRenderer interface {
	RenderQuotation(ctx context.Context, doc QuotationDocument) ([]byte, error)
}

// Mailer delivers a rendered quotation to the client
type Mailer interface {
	SendQuotation(ctx context.Context, doc QuotationDocument, pdf []byte) error
}

// QuotationService handles investment quotations and the pricing table
type QuotationService struct {
	quotationRepo finance.QuotationRepository
	rateRepo      finance.InterestRateRepository
	clientRepo    crm.ClientRepository
	renderer      DocumentRenderer
	mailer        Mailer
	notifier      *notification.Service
	logger        *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	quotationRepo finance.QuotationRepository,
	rateRepo finance.InterestRateRepository,
	clientRepo crm.ClientRepository,
	renderer DocumentRenderer,
	mailer Mailer,
	notifier *notification.Service,
	logger *zap.Logger,
) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		rateRepo:      rateRepo,
		clientRepo:    clientRepo,
		renderer:      renderer,
		mailer:        mailer,
		notifier:      notifier,
		logger:        logger,
	}
}

// Quote previews the maturity value for an amount and term without
// persisting anything. The rate comes from the pricing table.
func (s *QuotationService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	rate, err := s.rateRepo.FindByTerm(ctx, req.TermMonths)
	if err != nil {
		return nil, shared.NewDomainError("RATE_NOT_FOUND", fmt.Sprintf("No rate is offered for a %d month term", req.TermMonths))
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Investment amount must be positive")
	}
	return &QuoteResponse{
		Amount:        req.Amount,
		TermMonths:    req.TermMonths,
		AnnualRate:    rate.AnnualRate,
		MaturityValue: finance.MaturityValue(req.Amount, req.TermMonths, rate.AnnualRate),
	}, nil
}

// Create creates a draft quotation for a client. The rate is resolved from
// the pricing table and frozen onto the quotation.
func (s *QuotationService) Create(ctx context.Context, createdBy uuid.UUID, req CreateQuotationRequest) (*QuotationResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client.IsArchived() {
		return nil, shared.NewDomainError("CLIENT_ARCHIVED", "Cannot quote for an archived client")
	}

	rate, err := s.rateRepo.FindByTerm(ctx, req.TermMonths)
	if err != nil {
		return nil, shared.NewDomainError("RATE_NOT_FOUND", fmt.Sprintf("No rate is offered for a %d month term", req.TermMonths))
	}

	quotation, err := finance.NewQuotation(createdBy, req.ClientID, req.Amount, req.TermMonths, rate.AnnualRate)
	if err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	s.logger.Info("Quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.String("maturity_value", quotation.MaturityValue.String()))

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// GetByID retrieves a quotation by ID
func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToQuotationResponse(quotation)
	return &response, nil
}

// ListForClient returns a client's quotations
func (s *QuotationService) ListForClient(ctx context.Context, clientID uuid.UUID) ([]QuotationResponse, error) {
	quotations, err := s.quotationRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]QuotationResponse, len(quotations))
	for i := range quotations {
		responses[i] = ToQuotationResponse(&quotations[i])
	}
	return responses, nil
}

// Send renders the quotation as a PDF, emails it to the client and marks
// the quotation sent. The client must have an email address on file.
func (s *QuotationService) Send(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, quotation.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Email == "" {
		return nil, shared.NewDomainError("NO_EMAIL", "The client has no email address on file")
	}

	doc := QuotationDocument{
		Quotation:   ToQuotationResponse(quotation),
		ClientName:  client.FullName(),
		ClientEmail: client.Email,
	}
	pdf, err := s.renderer.RenderQuotation(ctx, doc)
	if err != nil {
		s.logger.Error("Failed to render quotation", zap.String("quotation_id", id.String()), zap.Error(err))
		return nil, err
	}
	if err := s.mailer.SendQuotation(ctx, doc, pdf); err != nil {
		s.logger.Error("Failed to email quotation", zap.String("quotation_id", id.String()), zap.Error(err))
		return nil, err
	}

	if err := quotation.MarkSent(); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}

	s.logger.Info("Quotation sent",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("client_email", client.Email))

	s.notifier.Notify(ctx, quotation.CreatedBy, notification.KindQuotationSent,
		"Quotation sent",
		fmt.Sprintf("Quotation for %s was emailed to %s", client.FullName(), client.Email),
		map[string]interface{}{"quotation_id": quotation.ID.String()})

	response := ToQuotationResponse(quotation)
	return &response, nil
}

// RenderPDF renders the quotation document without emailing it, for
// in-browser preview and download.
func (s *QuotationService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, quotation.ClientID)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderQuotation(ctx, QuotationDocument{
		Quotation:   ToQuotationResponse(quotation),
		ClientName:  client.FullName(),
		ClientEmail: client.Email,
	})
	if err != nil {
		s.logger.Error("Failed to render quotation", zap.String("quotation_id", id.String()), zap.Error(err))
		return nil, err
	}
	return pdf, nil
}

// Accept marks a sent quotation as accepted
func (s *QuotationService) Accept(ctx context.Context, id uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := quotation.Accept(); err != nil {
		return nil, err
	}
	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, err
	}
	response := ToQuotationResponse(quotation)
	return &response, nil
}

// Delete removes a draft quotation
func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.quotationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if quotation.Status != finance.QuotationStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only a draft quotation can be deleted")
	}
	return s.quotationRepo.Delete(ctx, id)
}

// ListRates returns the pricing table ordered by term
func (s *QuotationService) ListRates(ctx context.Context) ([]InterestRateResponse, error) {
	rates, err := s.rateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]InterestRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToInterestRateResponse(&rates[i])
	}
	return responses, nil
}

// SetRate creates or updates the rate offered for a term
func (s *QuotationService) SetRate(ctx context.Context, req SetRateRequest) (*InterestRateResponse, error) {
	existing, err := s.rateRepo.FindByTerm(ctx, req.TermMonths)
	if err == nil && existing != nil {
		if err := existing.UpdateRate(req.AnnualRate); err != nil {
			return nil, err
		}
		if err := s.rateRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		response := ToInterestRateResponse(existing)
		return &response, nil
	}

	rate, err := finance.NewInterestRate(req.TermMonths, req.AnnualRate)
	if err != nil {
		return nil, err
	}
	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	response := ToInterestRateResponse(rate)
	return &response, nil
}
