package article

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/presupuesto/internal/model"
	"github.com/SergeyParamoshkin/presupuesto/internal/store"
)

// Recorder receives one observation per operation.
type Recorder interface {
	Observe(ctx context.Context, op, outcome string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) Observe(context.Context, string, string, time.Duration) {}

// Service maps articles onto store hashes, one hash per article id.
type Service struct {
	store   store.Store
	log     *zap.SugaredLogger
	metrics Recorder
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for rejected operations and store faults.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRecorder sets where per-operation metrics go.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithIDGenerator overrides uuid generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService returns a Service over st. It does not own st; callers close it.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:   st,
		log:     zap.NewNop().Sugar(),
		metrics: nopRecorder{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the fields and writes them under a fresh id in a single
// multi-field write. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, description, quantity, category string) (a *model.Article, err error) {
	defer s.observe(ctx, "create", time.Now(), &err)

	a = &model.Article{
		Description: description,
		Quantity:    quantity,
		Category:    category,
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	a.ID = s.newID()
	if err := s.store.WriteFields(ctx, a.ID, a.Fields()); err != nil {
		return nil, err
	}

	return a, nil
}

// Get returns the article stored under id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (a *model.Article, err error) {
	defer s.observe(ctx, "get", time.Now(), &err)

	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	return s.read(ctx, id)
}

// Update writes each non-blank field of p individually. A quantity that is not
// all digits is dropped. The stored article is returned after the writes.
func (s *Service) Update(ctx context.Context, id string, p model.Patch) (a *model.Article, err error) {
	defer s.observe(ctx, "update", time.Now(), &err)

	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}

	for _, c := range p.Changes() {
		if err := s.store.WriteField(ctx, id, c[0], c[1]); err != nil {
			return nil, err
		}
	}

	return s.read(ctx, id)
}

// Delete removes an existing article unconditionally.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "delete", time.Now(), &err)

	if err := s.mustExist(ctx, id); err != nil {
		return err
	}

	return s.store.Delete(ctx, id)
}

// List reads every key in the store as an article, in store order. Keys that
// are not article hashes yield articles with empty fields or a store error.
func (s *Service) List(ctx context.Context) (list []*model.Article, err error) {
	defer s.observe(ctx, "list", time.Now(), &err)

	keys, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	list = make([]*model.Article, 0, len(keys))
	for _, k := range keys {
		a, err := s.read(ctx, k)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}

	return list, nil
}

func (s *Service) mustExist(ctx context.Context, id string) error {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

func (s *Service) read(ctx context.Context, id string) (*model.Article, error) {
	fields, err := s.store.ReadFields(ctx, id)
	if err != nil {
		return nil, err
	}

	return model.FromFields(id, fields), nil
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, errp *error) {
	outcome := OutcomeOf(*errp)
	s.metrics.Observe(ctx, op, outcome.String(), time.Since(start))

	switch outcome {
	case OutcomeStoreFault:
		s.log.Warnw("store fault", "op", op, "error", *errp)
	case OutcomeOK:
		s.log.Debugw("article operation", "op", op)
	default:
		s.log.Infow("article rejected", "op", op, "outcome", outcome.String(), "error", *errp)
	}
}
