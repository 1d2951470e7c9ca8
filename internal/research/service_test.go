// AngelaMos | 2026
// service_test.go

package research

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insighthub/internal/config"
	"github.com/carterperez-dev/insighthub/internal/core"
	"github.com/carterperez-dev/insighthub/internal/profile"
)

type fakeProvider struct {
	context string
	calls   int
}

func (f *fakeProvider) FetchContext(_ context.Context, _ string) string {
	f.calls++
	return f.context
}

type fakeGenerator struct {
	text       string
	err        error
	calls      int
	gotContext string
	gotQuery   string
}

func (f *fakeGenerator) Generate(
	_ context.Context,
	_, query, webContext string,
) (string, error) {
	f.calls++
	f.gotQuery = query
	f.gotContext = webContext
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeGenerator) SuggestTip(_ context.Context) string {
	return "tip"
}

type fakeRepo struct {
	insertErr error
	inserted  *Record
	records   map[string]*Record
}

func (f *fakeRepo) Insert(_ context.Context, record *Record) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	record.CreatedAt = time.Now()
	f.inserted = record
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, _, id string) (*Record, error) {
	if r, ok := f.records[id]; ok {
		return r, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepo) ListByUser(
	_ context.Context,
	_ string,
	_ ListParams,
) ([]Record, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) SetSaved(
	_ context.Context,
	_, id string,
	saved bool,
) (*Record, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	r.IsSaved = saved
	return r, nil
}

func (f *fakeRepo) Delete(_ context.Context, _, id string) error {
	if _, ok := f.records[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeLedger struct {
	credits     int
	debitErr    error
	profileErr  error
	debitCalls  int
	debitedCost int
	savedCalls  []bool
}

func (f *fakeLedger) CheckBalance(_ context.Context, _ string, cost int) error {
	if f.credits < cost {
		return core.ErrInsufficientCredits
	}
	return nil
}

func (f *fakeLedger) DebitForResearch(
	_ context.Context,
	userID string,
	cost int,
) (*profile.Profile, error) {
	f.debitCalls++
	f.debitedCost = cost
	if f.debitErr != nil {
		return nil, f.debitErr
	}
	f.credits -= cost
	return &profile.Profile{UserID: userID, Credits: f.credits}, nil
}

func (f *fakeLedger) GetProfile(
	_ context.Context,
	userID string,
) (*profile.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &profile.Profile{UserID: userID, Credits: f.credits}, nil
}

func (f *fakeLedger) RecordSaved(_ context.Context, _ string, saved bool) {
	f.savedCalls = append(f.savedCalls, saved)
}

func testConfig() config.ResearchConfig {
	return config.ResearchConfig{
		CostPerRun:      5,
		DefaultCredits:  100,
		CrawlTimeout:    time.Second,
		GenerateTimeout: time.Second,
	}
}

func newTestService(
	repo *fakeRepo,
	provider *fakeProvider,
	gen *fakeGenerator,
	ledger *fakeLedger,
) *Service {
	return NewService(repo, provider, gen, ledger, testConfig())
}

func TestRunDebitsAfterSuccess(t *testing.T) {
	repo := &fakeRepo{}
	provider := &fakeProvider{context: "Source: https://a\nTitle: A\nContent: x"}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 100}

	svc := newTestService(repo, provider, gen, ledger)

	result, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query:    "compare CRM tools",
		Category: "product_research",
	})
	require.NoError(t, err)

	assert.Equal(t, "# Insight", result.Insight)
	require.NotNil(t, result.Credits)
	assert.Equal(t, 95, *result.Credits)
	assert.Empty(t, result.Warning)
	assert.Equal(t, 1, ledger.debitCalls)
	assert.Equal(t, 5, ledger.debitedCost)

	require.NotNil(t, result.Record)
	assert.Equal(t, "compare CRM tools", result.Record.Title)
	assert.Equal(t, CategoryProduct, result.Record.Category)
	assert.Equal(t, "# Insight", result.Record.Content)
	assert.False(t, result.Record.IsSaved)
	assert.Equal(t, provider.context, gen.gotContext)
}

func TestRunRefusesWithoutBalance(t *testing.T) {
	repo := &fakeRepo{}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 3}

	svc := newTestService(repo, &fakeProvider{}, gen, ledger)

	_, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query: "anything",
	})
	require.ErrorIs(t, err, core.ErrInsufficientCredits)

	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, 0, ledger.debitCalls)
	assert.Nil(t, repo.inserted)
}

func TestRunToleratesCrawlFailure(t *testing.T) {
	repo := &fakeRepo{}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 100}

	// Empty context stands in for any crawl failure mode.
	svc := newTestService(repo, &fakeProvider{context: ""}, gen, ledger)

	result, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query: "renewable energy trends",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Empty(t, gen.gotContext)
	require.NotNil(t, result.Credits)
	assert.Equal(t, 95, *result.Credits)
}

func TestRunGenerationFailureHasNoSideEffects(t *testing.T) {
	repo := &fakeRepo{}
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	ledger := &fakeLedger{credits: 100}

	svc := newTestService(repo, &fakeProvider{}, gen, ledger)

	_, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query: "anything",
	})
	require.ErrorIs(t, err, ErrGeneration)

	assert.Nil(t, repo.inserted)
	assert.Equal(t, 0, ledger.debitCalls)
	assert.Equal(t, 100, ledger.credits)
}

func TestRunPersistFailureSkipsDebit(t *testing.T) {
	repo := &fakeRepo{insertErr: errors.New("db down")}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 100}

	svc := newTestService(repo, &fakeProvider{}, gen, ledger)

	result, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query: "anything",
	})
	require.NoError(t, err)

	assert.Equal(t, "# Insight", result.Insight)
	assert.Nil(t, result.Record)
	assert.NotEmpty(t, result.Warning)
	assert.Equal(t, 0, ledger.debitCalls)
	assert.Equal(t, 100, ledger.credits)

	// The reported balance is the stored one, not a local guess.
	require.NotNil(t, result.Credits)
	assert.Equal(t, 100, *result.Credits)
}

func TestRunDebitFailureStillReturnsInsight(t *testing.T) {
	repo := &fakeRepo{}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 100, debitErr: errors.New("conflict")}

	svc := newTestService(repo, &fakeProvider{}, gen, ledger)

	result, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query: "anything",
	})
	require.NoError(t, err)

	assert.Equal(t, "# Insight", result.Insight)
	require.NotNil(t, result.Record)
	assert.NotEmpty(t, result.Warning)
	require.NotNil(t, result.Credits)
	assert.Equal(t, 100, *result.Credits)
}

func TestRunOmitsBalanceWhenRereadFails(t *testing.T) {
	repo := &fakeRepo{insertErr: errors.New("db down")}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 100, profileErr: errors.New("db down")}

	svc := newTestService(repo, &fakeProvider{}, gen, ledger)

	result, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query: "anything",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Warning)
	assert.Nil(t, result.Credits)
}

func TestRunTruncatesLongTitles(t *testing.T) {
	repo := &fakeRepo{}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 100}

	svc := newTestService(repo, &fakeProvider{}, gen, ledger)

	longQuery := ""
	for range 80 {
		longQuery += "q"
	}

	result, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query: longQuery,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Record)

	assert.Len(t, result.Record.Title, 53)
	assert.Equal(t, longQuery[:50]+"...", result.Record.Title)
	assert.Equal(t, longQuery, result.Record.Query)
}

func TestRunDefaultsUnknownCategory(t *testing.T) {
	repo := &fakeRepo{}
	gen := &fakeGenerator{text: "# Insight"}
	ledger := &fakeLedger{credits: 100}

	svc := newTestService(repo, &fakeProvider{}, gen, ledger)

	result, err := svc.Run(context.Background(), "user-1", RunRequest{
		Query:    "anything",
		Category: "astrology",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Record)

	assert.Equal(t, CategoryProduct, result.Record.Category)
}

func TestSetSavedAdjustsCounterOnce(t *testing.T) {
	record := &Record{ID: "r1", UserID: "user-1"}
	repo := &fakeRepo{records: map[string]*Record{"r1": record}}
	ledger := &fakeLedger{credits: 100}

	svc := newTestService(repo, &fakeProvider{}, &fakeGenerator{}, ledger)

	got, err := svc.SetSaved(context.Background(), "user-1", "r1", true)
	require.NoError(t, err)
	assert.True(t, got.IsSaved)
	assert.Equal(t, []bool{true}, ledger.savedCalls)

	// Saving an already-saved record must not bump the counter again.
	_, err = svc.SetSaved(context.Background(), "user-1", "r1", true)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, ledger.savedCalls)
}

func TestDeleteSavedResearchDecrementsCounter(t *testing.T) {
	record := &Record{ID: "r1", UserID: "user-1", IsSaved: true}
	repo := &fakeRepo{records: map[string]*Record{"r1": record}}
	ledger := &fakeLedger{credits: 100}

	svc := newTestService(repo, &fakeProvider{}, &fakeGenerator{}, ledger)

	require.NoError(t, svc.DeleteResearch(context.Background(), "user-1", "r1"))
	assert.Equal(t, []bool{false}, ledger.savedCalls)

	err := svc.DeleteResearch(context.Background(), "user-1", "r1")
	require.ErrorIs(t, err, core.ErrNotFound)
}
