// AngelaMos | 2026
// service.go

package research

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/insighthub/internal/config"
	"github.com/carterperez-dev/insighthub/internal/profile"
)

var tracer = otel.Tracer("research")

// Pipeline-stage failures the handler maps to distinct responses.
var (
	ErrGeneration = errors.New("insight generation failed")
	ErrPersist    = errors.New("research persist failed")
)

// ContextProvider fetches live web context for a query. An empty
// return means the pipeline proceeds without it.
type ContextProvider interface {
	FetchContext(ctx context.Context, query string) string
}

// Generator turns a query plus optional web context into a markdown
// insight.
type Generator interface {
	Generate(ctx context.Context, category, query, webContext string) (string, error)
	SuggestTip(ctx context.Context) string
}

// CreditLedger is the profile surface the pipeline needs: a balance
// check before spending work, and the post-run debit.
type CreditLedger interface {
	CheckBalance(ctx context.Context, userID string, cost int) error
	DebitForResearch(ctx context.Context, userID string, cost int) (*profile.Profile, error)
	GetProfile(ctx context.Context, userID string) (*profile.Profile, error)
	RecordSaved(ctx context.Context, userID string, saved bool)
}

type Service struct {
	repo      Repository
	web       ContextProvider
	generator Generator
	ledger    CreditLedger
	cfg       config.ResearchConfig
}

func NewService(
	repo Repository,
	web ContextProvider,
	generator Generator,
	ledger CreditLedger,
	cfg config.ResearchConfig,
) *Service {
	return &Service{
		repo:      repo,
		web:       web,
		generator: generator,
		ledger:    ledger,
		cfg:       cfg,
	}
}

// RunResult carries everything a run produced: the insight itself, the
// stored history record, the post-debit balance, and a warning when a
// bookkeeping step failed after the insight was already generated.
// Credits is nil when the authoritative balance could not be read.
type RunResult struct {
	Insight string
	Record  *Record
	Credits *int
	Warning string
}

// Run executes the research pipeline: balance check, web crawl,
// insight generation, history persist, credit debit. Credits are only
// charged once the insight exists and its record is stored; failures
// before that point leave the balance untouched.
func (s *Service) Run(
	ctx context.Context,
	userID string,
	req RunRequest,
) (*RunResult, error) {
	category := ParseCategory(req.Category)

	ctx, span := tracer.Start(ctx, "research.run",
		trace.WithAttributes(
			attribute.String("research.category", string(category)),
			attribute.Int("research.cost", s.cfg.CostPerRun),
		),
	)
	defer span.End()

	if err := s.ledger.CheckBalance(ctx, userID, s.cfg.CostPerRun); err != nil {
		span.RecordError(err)
		return nil, err
	}

	webContext := s.fetchContext(ctx, req.Query)
	span.SetAttributes(attribute.Bool("research.web_context", webContext != ""))

	insightText, err := s.generate(ctx, category, req.Query, webContext)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &RunResult{Insight: insightText}

	record, err := s.persist(ctx, userID, category, req.Query, insightText)
	if err != nil {
		// The insight is already paid for in API terms but not in
		// credits: skip the debit and hand the content back anyway.
		span.RecordError(err)
		slog.Error("research persist failed, skipping debit",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		result.Warning = "insight generated but could not be saved to history"
		result.Credits = s.currentBalance(ctx, userID)
		return result, nil
	}
	result.Record = record

	p, err := s.debit(ctx, userID)
	if err != nil {
		span.RecordError(err)
		slog.Error("credit debit failed after successful run",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		result.Warning = "insight saved but the credit balance could not be updated"
		result.Credits = s.currentBalance(ctx, userID)
		return result, nil
	}
	result.Credits = &p.Credits

	return result, nil
}

// currentBalance re-reads the stored balance so warning responses
// never report a locally assumed figure. nil means even the re-read
// failed and the response omits the balance entirely.
func (s *Service) currentBalance(ctx context.Context, userID string) *int {
	p, err := s.ledger.GetProfile(ctx, userID)
	if err != nil {
		slog.Warn("balance re-read failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return &p.Credits
}

func (s *Service) fetchContext(ctx context.Context, query string) string {
	ctx, span := tracer.Start(ctx, "research.crawl")
	defer span.End()

	crawlCtx, cancel := context.WithTimeout(ctx, s.cfg.CrawlTimeout)
	defer cancel()

	return s.web.FetchContext(crawlCtx, query)
}

func (s *Service) generate(
	ctx context.Context,
	category Category,
	query, webContext string,
) (string, error) {
	ctx, span := tracer.Start(ctx, "research.generate")
	defer span.End()

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerateTimeout)
	defer cancel()

	text, err := s.generator.Generate(genCtx, string(category), query, webContext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	return text, nil
}

func (s *Service) persist(
	ctx context.Context,
	userID string,
	category Category,
	query, content string,
) (*Record, error) {
	ctx, span := tracer.Start(ctx, "research.persist")
	defer span.End()

	record := &Record{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    DeriveTitle(query),
		Query:    query,
		Category: category,
		Content:  content,
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return record, nil
}

func (s *Service) debit(ctx context.Context, userID string) (*profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "research.debit")
	defer span.End()

	return s.ledger.DebitForResearch(ctx, userID, s.cfg.CostPerRun)
}

// Tip returns a one-line research tip for the dashboard.
func (s *Service) Tip(ctx context.Context) string {
	ctx, span := tracer.Start(ctx, "research.tip")
	defer span.End()

	tipCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	return s.generator.SuggestTip(tipCtx)
}

func (s *Service) GetResearch(
	ctx context.Context,
	userID, id string,
) (*Record, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) ListResearches(
	ctx context.Context,
	userID string,
	params ListParams,
) ([]Record, int, error) {
	params.Normalize()
	return s.repo.ListByUser(ctx, userID, params)
}

// SetSaved flips the saved flag and keeps the profile's saved_reports
// counter in step when the flag actually changed.
func (s *Service) SetSaved(
	ctx context.Context,
	userID, id string,
	saved bool,
) (*Record, error) {
	current, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if current.IsSaved == saved {
		return current, nil
	}

	record, err := s.repo.SetSaved(ctx, userID, id, saved)
	if err != nil {
		return nil, err
	}

	s.ledger.RecordSaved(ctx, userID, saved)

	return record, nil
}

func (s *Service) DeleteResearch(ctx context.Context, userID, id string) error {
	record, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	if record.IsSaved {
		s.ledger.RecordSaved(ctx, userID, false)
	}

	return nil
}

var _ CreditLedger = (*profile.Service)(nil)
