package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hsadv/quotes-service/internal/analytics"
	"github.com/hsadv/quotes-service/internal/config"
	"github.com/hsadv/quotes-service/internal/email"
	"github.com/hsadv/quotes-service/internal/model"
)

// QuoteStore is the persistence boundary for quote submissions.
type QuoteStore interface {
	Create(ctx context.Context, quote model.Quote) (*model.Quote, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Quote, error)
	ListRecent(ctx context.Context, limit int) ([]model.Quote, error)
	ListSince(ctx context.Context, from time.Time) ([]model.Quote, error)
	ListAll(ctx context.Context) ([]model.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OwnerNotifier delivers a short alert to the operator channel.
type OwnerNotifier interface {
	Send(ctx context.Context, title, content string) error
}

// CRMMirror copies a quote into the external workspace database.
type CRMMirror interface {
	SyncQuote(ctx context.Context, quote model.Quote) (string, error)
}

// EmailSender delivers a rendered confirmation message.
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

type ExcelGenerator interface {
	Generate(quotes []model.Quote) ([]byte, error)
}

type PDFGenerator interface {
	Generate(quote model.Quote) ([]byte, error)
}

type QuoteService struct {
	store    QuoteStore
	notifier OwnerNotifier
	crm      CRMMirror
	mailer   EmailSender
	excel    ExcelGenerator
	pdf      PDFGenerator

	ownerEmail        string
	recentLimit       int
	metricsPeriodDays int
	log               zerolog.Logger
}

func NewQuoteService(
	store QuoteStore,
	notifier OwnerNotifier,
	crm CRMMirror,
	mailer EmailSender,
	excel ExcelGenerator,
	pdf PDFGenerator,
	cfg *config.Config,
	log zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		store:             store,
		notifier:          notifier,
		crm:               crm,
		mailer:            mailer,
		excel:             excel,
		pdf:               pdf,
		ownerEmail:        cfg.Email.OwnerAddress,
		recentLimit:       cfg.Quotes.RecentLimit,
		metricsPeriodDays: cfg.Quotes.MetricsPeriodDays,
		log:               log.With().Str("component", "quotes").Logger(),
	}
}

type SubmitQuoteInput struct {
	Name                 string
	Email                string
	Phone                string
	Company              *string
	ServiceType          string
	ServiceLevel         *string
	ServiceSpecification *string
	Urgency              string
	ProjectDescription   *string
	ConsentMarketing     bool
}

type SubmitQuoteResult struct {
	Quote   *model.Quote
	Message string
}

const (
	submitSuccessMessage = "Orçamento solicitado com sucesso! Entraremos em contato em breve."
	clientEmailSubject   = "Seu Orçamento - Hudson Souza Advocacia"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submit runs the intake workflow: validate, persist, then three
// best-effort notification legs. A leg failure never fails the submission;
// persistence strictly precedes every leg.
func (s *QuoteService) Submit(ctx context.Context, input SubmitQuoteInput) (*SubmitQuoteResult, error) {
	if verr := validateSubmission(input); verr != nil {
		return nil, verr
	}

	consent := int16(0)
	if input.ConsentMarketing {
		consent = 1
	}

	saved, err := s.store.Create(ctx, model.Quote{
		Name:                 strings.TrimSpace(input.Name),
		Email:                input.Email,
		Phone:                input.Phone,
		Company:              normalizeOptional(input.Company),
		ServiceType:          model.ServiceType(input.ServiceType),
		ServiceLevel:         normalizeOptional(input.ServiceLevel),
		ServiceSpecification: normalizeOptional(input.ServiceSpecification),
		Urgency:              model.Urgency(input.Urgency),
		ProjectDescription:   normalizeOptional(input.ProjectDescription),
		ConsentMarketing:     consent,
		Status:               model.QuoteStatusNew,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to persist submission")
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	s.alertOwner(ctx, saved)
	s.mirrorToCRM(ctx, saved)
	s.sendConfirmationEmails(ctx, saved)

	return &SubmitQuoteResult{Quote: saved, Message: submitSuccessMessage}, nil
}

func validateSubmission(input SubmitQuoteInput) *ValidationError {
	fields := make(map[string]string)
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Nome é obrigatório"
	}
	if !emailPattern.MatchString(input.Email) {
		fields["email"] = "E-mail inválido"
	}
	if len(input.Phone) < 10 {
		fields["phone"] = "Telefone inválido"
	}
	if !model.ServiceType(input.ServiceType).Valid() {
		fields["serviceType"] = "Tipo de serviço inválido"
	}
	if !model.Urgency(input.Urgency).Valid() {
		fields["urgency"] = "Urgência inválida"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// alertOwner is isolated like the other legs: a lost alert is logged and
// never surfaces to the submitter once the quote is durably stored.
func (s *QuoteService) alertOwner(ctx context.Context, quote *model.Quote) {
	title := fmt.Sprintf("Novo Orçamento Solicitado - %s", quote.Name)
	content := fmt.Sprintf(
		"Nova solicitação de orçamento recebida:\n\nNome: %s\nE-mail: %s\nTelefone: %s\nEmpresa: %s\nServiço: %s\nUrgência: %s\n\nDescrição: %s",
		quote.Name,
		quote.Email,
		quote.Phone,
		stringOr(quote.Company, "Não informado"),
		quote.ServiceType.Label(),
		quote.Urgency.Label(),
		stringOr(quote.ProjectDescription, "Não informado"),
	)

	if err := s.notifier.Send(ctx, title, content); err != nil {
		s.log.Error().Err(err).
			Str("quote_id", quote.ID.String()).
			Str("leg", "owner_alert").
			Msg("notification leg failed")
	}
}

func (s *QuoteService) mirrorToCRM(ctx context.Context, quote *model.Quote) {
	if _, err := s.crm.SyncQuote(ctx, *quote); err != nil {
		s.log.Error().Err(err).
			Str("quote_id", quote.ID.String()).
			Str("leg", "crm_mirror").
			Msg("notification leg failed")
	}
}

func (s *QuoteService) sendConfirmationEmails(ctx context.Context, quote *model.Quote) {
	data := email.QuoteEmailData{
		ClientName:           quote.Name,
		ClientEmail:          quote.Email,
		ClientPhone:          quote.Phone,
		ClientCompany:        stringOr(quote.Company, ""),
		ServiceType:          quote.ServiceType.Label(),
		ServiceSpecification: stringOr(quote.ServiceSpecification, ""),
		Urgency:              quote.Urgency.Label(),
		ProjectDescription:   stringOr(quote.ProjectDescription, ""),
		SubmissionDate:       quote.CreatedAt,
	}

	html, err := email.RenderHTML(data)
	if err != nil {
		s.log.Error().Err(err).
			Str("quote_id", quote.ID.String()).
			Str("leg", "email").
			Msg("notification leg failed")
		return
	}
	text := email.RenderText(data)

	sends := []email.Message{
		{To: quote.Email, Subject: clientEmailSubject, Text: text, HTML: html},
		{To: s.ownerEmail, Subject: fmt.Sprintf("Novo Orçamento: %s - %s", quote.Name, quote.ServiceType.Label()), Text: text, HTML: html},
	}
	for _, msg := range sends {
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.log.Error().Err(err).
				Str("quote_id", quote.ID.String()).
				Str("leg", "email").
				Str("to", msg.To).
				Msg("notification leg failed")
		}
	}
}

func (s *QuoteService) ListRecent(ctx context.Context, limit int) ([]model.Quote, error) {
	if limit <= 0 {
		limit = s.recentLimit
	}
	return s.store.ListRecent(ctx, limit)
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Metrics recomputes the dashboard summary from a fresh snapshot.
func (s *QuoteService) Metrics(ctx context.Context, periodDays int) (*model.QuoteMetrics, error) {
	if periodDays <= 0 {
		periodDays = s.metricsPeriodDays
	}
	from := time.Now().Add(-time.Duration(periodDays) * 24 * time.Hour)
	quotes, err := s.store.ListSince(ctx, from)
	if err != nil {
		return nil, err
	}
	metrics := analytics.ComputeMetrics(quotes, periodDays)
	return &metrics, nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *QuoteService) ExportQuotes(ctx context.Context) (*ExportResult, error) {
	quotes, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(quotes)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("orcamentos-%s.xlsx", time.Now().Format("20060102-150405")),
		Content:  content,
	}, nil
}

func (s *QuoteService) ExportQuotePDF(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	quote, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	content, err := s.pdf.Generate(*quote)
	if err != nil {
		return nil, err
	}
	name := sanitizeFileName(quote.Name)
	if name == "" {
		name = quote.ID.String()
	}
	return &ExportResult{
		FileName: fmt.Sprintf("orcamento-%s-%s.pdf", name, time.Now().Format("20060102-150405")),
		Content:  content,
	}, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}

func normalizeOptional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
