package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"credit-score/domain"
	"credit-score/repository"
)

const defaultScoreCacheTTL = time.Minute

type ClientService struct {
	repo     repository.ClientRepository
	cache    repository.CacheRepository
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

type Option func(*ClientService)

// WithClock replaces time.Now as the source of "now" for scoring and
// follow-up decisions.
func WithClock(now func() time.Time) Option {
	return func(s *ClientService) { s.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *ClientService) { s.log = log }
}

func WithScoreCacheTTL(ttl time.Duration) Option {
	return func(s *ClientService) { s.cacheTTL = ttl }
}

// NewClientService creates a ClientService on top of the given repository
// and score cache.
func NewClientService(
	repo repository.ClientRepository,
	cache repository.CacheRepository,
	opts ...Option,
) *ClientService {
	s := &ClientService{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		log:      slog.Default(),
		now:      time.Now,
		cacheTTL: defaultScoreCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (s *ClientService) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return client, nil
}

// CreateClient validates the input, normalizes its timestamps and stores
// the client with its messages and debts. Input problems are reported as
// domain.ErrInvalidClient and nothing is stored.
func (s *ClientService) CreateClient(ctx context.Context, input domain.ClientInput) (domain.Client, error) {
	client, err := s.BuildClient(input)
	if err != nil {
		return domain.Client{}, err
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	s.log.Info("client created",
		"client_id", created.ID,
		"messages", len(created.Messages),
		"debts", len(created.Debts),
	)
	return created, nil
}

// BuildClient turns a creation payload into a client aggregate without
// storing it.
func (s *ClientService) BuildClient(input domain.ClientInput) (domain.Client, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.Client{}, fmt.Errorf("%w: %v", domain.ErrInvalidClient, err)
	}
	if len(input.Messages) > MaxMessagesPerClient {
		return domain.Client{}, fmt.Errorf("%w: more than %d messages", domain.ErrInvalidClient, MaxMessagesPerClient)
	}
	if len(input.Debts) > MaxDebtsPerClient {
		return domain.Client{}, fmt.Errorf("%w: more than %d debts", domain.ErrInvalidClient, MaxDebtsPerClient)
	}

	client := domain.Client{
		Name:     input.Name,
		Rut:      input.Rut,
		Salary:   input.Salary,
		Savings:  input.Savings,
		Messages: make([]domain.Message, 0, len(input.Messages)),
		Debts:    make([]domain.Debt, 0, len(input.Debts)),
	}

	for i, m := range input.Messages {
		sentAt, err := ParseTimestamp(m.SentAt)
		if err != nil {
			return domain.Client{}, fmt.Errorf("%w: messages[%d].sentAt: %v", domain.ErrInvalidClient, i, err)
		}
		client.Messages = append(client.Messages, domain.Message{
			Text:   m.Text,
			Role:   domain.Role(m.Role),
			SentAt: sentAt,
		})
	}

	for i, d := range input.Debts {
		dueDate, err := ParseTimestamp(d.DueDate)
		if err != nil {
			return domain.Client{}, fmt.Errorf("%w: debts[%d].dueDate: %v", domain.ErrInvalidClient, i, err)
		}
		client.Debts = append(client.Debts, domain.Debt{
			Institution: d.Institution,
			Amount:      d.Amount,
			DueDate:     dueDate,
		})
	}

	return client, nil
}

// DeleteClient removes the client and moves it to a new score cache
// generation, so scores computed before the delete are never read again.
func (s *ClientService) DeleteClient(ctx context.Context, id int64) error {
	gen := s.scoreGeneration(ctx, id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if err := s.cache.Set(ctx, scoreGenerationKey(id), strconv.FormatInt(gen+1, 10), 0); err != nil {
		s.log.Warn("failed to advance score cache generation", "client_id", id, "error", err)
	}
	if err := s.cache.Delete(ctx, scoreCacheKey(id, gen)); err != nil {
		s.log.Warn("failed to invalidate cached scores", "client_id", id, "error", err)
	}
	return nil
}

// ClientsToFollowUp returns the clients for which NeedsFollowUp holds at a
// single instant.
func (s *ClientService) ClientsToFollowUp(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	now := s.now()
	return lo.Filter(clients, func(c domain.Client, _ int) bool {
		return NeedsFollowUp(c, now)
	}), nil
}

// Score evaluates the client against the given credit and base amounts.
// Results are cached per client for the configured TTL. The cache
// generation is read before the client is loaded, so a concurrent delete
// leaves anything stored here unreachable.
func (s *ClientService) Score(ctx context.Context, id, creditAmount, baseAmount int64) (domain.ScoreBreakdown, error) {
	key := scoreCacheKey(id, s.scoreGeneration(ctx, id))
	field := fmt.Sprintf("%d:%d", creditAmount, baseAmount)

	cached := s.cachedScores(ctx, key)
	if b, ok := cached[field]; ok {
		return b, nil
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ScoreBreakdown{}, fmt.Errorf("get client %d: %w", id, err)
	}

	b, err := Evaluate(client, creditAmount, baseAmount, s.now())
	if err != nil {
		return domain.ScoreBreakdown{}, fmt.Errorf("score client %d: %w", id, err)
	}

	cached[field] = b
	s.storeScores(ctx, key, cached)

	return b, nil
}

// Ready reports whether the client store can serve requests.
func (s *ClientService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func scoreCacheKey(id, gen int64) string {
	return fmt.Sprintf("score:%d:%d", id, gen)
}

func scoreGenerationKey(id int64) string {
	return fmt.Sprintf("score-gen:%d", id)
}

// scoreGeneration falls back to 0 when the cache has no usable value.
func (s *ClientService) scoreGeneration(ctx context.Context, id int64) int64 {
	key := scoreGenerationKey(id)
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("failed to read score cache generation", "key", key, "error", err)
		return 0
	}
	if !ok {
		return 0
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.log.Warn("discarding unreadable score cache generation", "key", key, "error", err)
		return 0
	}
	return gen
}

func (s *ClientService) cachedScores(ctx context.Context, key string) map[string]domain.ScoreBreakdown {
	scores := make(map[string]domain.ScoreBreakdown)
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("failed to read cached scores", "key", key, "error", err)
		return scores
	}
	if !ok {
		return scores
	}
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		s.log.Warn("discarding unreadable cached scores", "key", key, "error", err)
		return make(map[string]domain.ScoreBreakdown)
	}
	return scores
}

// Caching is not critical; a failure only costs a recomputation.
func (s *ClientService) storeScores(ctx context.Context, key string, scores map[string]domain.ScoreBreakdown) {
	raw, err := json.Marshal(scores)
	if err != nil {
		s.log.Warn("failed to encode scores for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.log.Warn("failed to cache scores", "key", key, "error", err)
	}
}
