package products

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type fakeProducts struct {
	products []domain.Product
	err      error
}

func (f *fakeProducts) ListAll(_ context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func TestList(t *testing.T) {
	repo := &fakeProducts{products: []domain.Product{
		{ID: 1, Name: "Amethyst Cluster", Price: 19.99, Quantity: 5},
	}}
	svc := NewService(repo, logger.NewNop())

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Amethyst Cluster", got[0].Name)
	assert.Equal(t, 19.99, got[0].Price)

	repo.err = errors.New("db down")
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
