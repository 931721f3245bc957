package article

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/presupuesto/internal/model"
	"github.com/SergeyParamoshkin/presupuesto/internal/store"
)

var errDown = errors.New("connection refused")

// faultStore fails every call once broken is set.
type faultStore struct {
	*store.Memory
	broken bool
	writes int
}

func (f *faultStore) Exists(ctx context.Context, key string) (bool, error) {
	if f.broken {
		return false, errDown
	}
	return f.Memory.Exists(ctx, key)
}

func (f *faultStore) WriteFields(ctx context.Context, key string, fields map[string]string) error {
	if f.broken {
		return errDown
	}
	f.writes++
	return f.Memory.WriteFields(ctx, key, fields)
}

func (f *faultStore) WriteField(ctx context.Context, key, field, value string) error {
	if f.broken {
		return errDown
	}
	f.writes++
	return f.Memory.WriteField(ctx, key, field, value)
}

func (f *faultStore) Delete(ctx context.Context, key string) error {
	if f.broken {
		return errDown
	}
	f.writes++
	return f.Memory.Delete(ctx, key)
}

func (f *faultStore) ListKeys(ctx context.Context) ([]string, error) {
	if f.broken {
		return nil, errDown
	}
	return f.Memory.ListKeys(ctx)
}

type recorded struct {
	op, outcome string
}

type fakeRecorder struct {
	seen []recorded
}

func (r *fakeRecorder) Observe(_ context.Context, op, outcome string, _ time.Duration) {
	r.seen = append(r.seen, recorded{op, outcome})
}

func newTestService(t *testing.T) (*Service, *faultStore) {
	t.Helper()

	fs := &faultStore{Memory: store.NewMemory()}
	n := 0
	svc := NewService(fs, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))

	return svc, fs
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, "Office chairs", "12", "Furniture")
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &model.Article{ID: "id-1", Description: "Office chairs", Quantity: "12", Category: "Furniture"}, got)
}

func TestCreateUsesUUID(t *testing.T) {
	svc := NewService(store.NewMemory())

	a, err := svc.Create(context.Background(), "Lápices", "100", "Oficina")
	require.NoError(t, err)
	assert.Len(t, a.ID, 36)
}

func TestCreateInvalid(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name                            string
		description, quantity, category string
	}{
		{"empty description", "", "12", "Furniture"},
		{"non-digit quantity", "Chairs", "12a", "Furniture"},
		{"empty quantity", "Chairs", "", "Furniture"},
		{"empty category", "Chairs", "12", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, fs := newTestService(t)

			_, err := svc.Create(ctx, tt.description, tt.quantity, tt.category)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, OutcomeInvalid, OutcomeOf(err))
			assert.Zero(t, fs.writes)

			list, err := svc.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestUnknownIDNotFound(t *testing.T) {
	ctx := context.Background()
	svc, fs := newTestService(t)

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, "missing", model.Patch{Description: "x", Quantity: "1", Category: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Zero(t, fs.writes)
	ok, err := fs.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateBlankIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, fs := newTestService(t)

	a, err := svc.Create(ctx, "Office chairs", "12", "Furniture")
	require.NoError(t, err)
	writes := fs.writes

	got, err := svc.Update(ctx, a.ID, model.Patch{})
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, writes, fs.writes)
}

func TestUpdateDiscardsNonDigitQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, err := svc.Create(ctx, "Office chairs", "12", "Furniture")
	require.NoError(t, err)

	got, err := svc.Update(ctx, a.ID, model.Patch{Description: "Sillas", Quantity: "abc", Category: "Muebles"})
	require.NoError(t, err)
	assert.Equal(t, "Sillas", got.Description)
	assert.Equal(t, "12", got.Quantity)
	assert.Equal(t, "Muebles", got.Category)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc, fs := newTestService(t)

	a, err := svc.Create(ctx, "Office chairs", "12", "Furniture")
	require.NoError(t, err)
	writes := fs.writes

	got, err := svc.Update(ctx, a.ID, model.Patch{Quantity: "20"})
	require.NoError(t, err)
	assert.Equal(t, &model.Article{ID: a.ID, Description: "Office chairs", Quantity: "20", Category: "Furniture"}, got)
	assert.Equal(t, writes+1, fs.writes)
}

func TestDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, err := svc.Create(ctx, "Office chairs", "12", "Furniture")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))

	_, err = svc.Get(ctx, a.ID)
	assert.Equal(t, OutcomeNotFound, OutcomeOf(err))
}

func TestLifecycleExample(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	x, err := svc.Create(ctx, "Office chairs", "12", "Furniture")
	require.NoError(t, err)

	got, err := svc.Get(ctx, x.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office chairs", got.Description)

	got, err = svc.Update(ctx, x.ID, model.Patch{Quantity: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "12", got.Quantity)

	require.NoError(t, svc.Delete(ctx, x.ID))
	_, err = svc.Get(ctx, x.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, "Sillas", "12", "Muebles")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Lápices", "100", "Oficina")
	require.NoError(t, err)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "id-1", list[0].ID)
	assert.Equal(t, "Lápices", list[1].Description)
}

func TestListForeignKey(t *testing.T) {
	ctx := context.Background()
	svc, fs := newTestService(t)

	require.NoError(t, fs.Memory.WriteField(ctx, "session", "user", "ana"))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, &model.Article{ID: "session"}, list[0])
}

func TestStoreFault(t *testing.T) {
	ctx := context.Background()
	svc, fs := newTestService(t)
	fs.broken = true

	_, err := svc.Create(ctx, "Sillas", "12", "Muebles")
	assert.Equal(t, OutcomeStoreFault, OutcomeOf(err))
	assert.ErrorIs(t, err, errDown)

	_, err = svc.Get(ctx, "id")
	assert.Equal(t, OutcomeStoreFault, OutcomeOf(err))

	_, err = svc.Update(ctx, "id", model.Patch{})
	assert.Equal(t, OutcomeStoreFault, OutcomeOf(err))

	err = svc.Delete(ctx, "id")
	assert.Equal(t, OutcomeStoreFault, OutcomeOf(err))

	_, err = svc.List(ctx)
	assert.Equal(t, OutcomeStoreFault, OutcomeOf(err))
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	svc := NewService(store.NewMemory(), WithRecorder(rec))

	a, err := svc.Create(ctx, "Sillas", "12", "Muebles")
	require.NoError(t, err)
	_, _ = svc.Create(ctx, "", "12", "Muebles")
	_ = svc.Delete(ctx, a.ID)
	_, _ = svc.Get(ctx, a.ID)

	assert.Equal(t, []recorded{
		{"create", "ok"},
		{"create", "invalid"},
		{"delete", "ok"},
		{"get", "not_found"},
	}, rec.seen)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeOK, OutcomeOf(nil))
	assert.Equal(t, OutcomeInvalid, OutcomeOf(fmt.Errorf("%w: x", ErrInvalid)))
	assert.Equal(t, OutcomeNotFound, OutcomeOf(fmt.Errorf("%w: x", ErrNotFound)))
	assert.Equal(t, OutcomeStoreFault, OutcomeOf(errDown))
	assert.Equal(t, "store_fault", OutcomeStoreFault.String())
}
