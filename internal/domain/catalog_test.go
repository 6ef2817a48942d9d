package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/sophie/internal/domain"
)

func testModels() []domain.ModelDescriptor {
	return []domain.ModelDescriptor{
		{ID: "model-a", DisplayName: "Model A", Provider: "alpha", InputPerMTok: 2.00, OutputPerMTok: 6.00},
		{ID: "model-b", DisplayName: "Model B", Provider: "beta", InputPerMTok: 0.10, OutputPerMTok: 0.40},
	}
}

func TestStaticCatalog_List(t *testing.T) {
	catalog, err := domain.NewStaticCatalog(testModels()...)
	require.NoError(t, err)

	models := catalog.List(context.Background())
	require.Len(t, models, 2)

	// Registration order is preserved.
	require.Equal(t, "model-a", models[0].ID)
	require.Equal(t, "model-b", models[1].ID)
}

func TestStaticCatalog_Get(t *testing.T) {
	ctx := context.Background()
	catalog, err := domain.NewStaticCatalog(testModels()...)
	require.NoError(t, err)

	t.Run("known model", func(t *testing.T) {
		model, getErr := catalog.Get(ctx, "model-a")
		require.NoError(t, getErr)
		require.Equal(t, "alpha", model.Provider)
		require.InDelta(t, 2.00, model.InputPerMTok, 0.0001)
	})

	t.Run("unknown model returns NotFound", func(t *testing.T) {
		_, getErr := catalog.Get(ctx, "model-z")
		require.Error(t, getErr)
		require.Equal(t, domain.KindNotFound, domain.KindOf(getErr))
	})

	t.Run("empty model id returns NotFound", func(t *testing.T) {
		_, getErr := catalog.Get(ctx, "")
		require.Error(t, getErr)
		require.Equal(t, domain.KindNotFound, domain.KindOf(getErr))
	})
}

func TestNewStaticCatalog_Validation(t *testing.T) {
	tests := []struct {
		name   string
		models []domain.ModelDescriptor
	}{
		{
			name:   "empty model id",
			models: []domain.ModelDescriptor{{ID: "", Provider: "alpha"}},
		},
		{
			name:   "missing provider",
			models: []domain.ModelDescriptor{{ID: "model-a"}},
		},
		{
			name: "duplicate model id",
			models: []domain.ModelDescriptor{
				{ID: "model-a", Provider: "alpha"},
				{ID: "model-a", Provider: "beta"},
			},
		},
		{
			name:   "negative pricing",
			models: []domain.ModelDescriptor{{ID: "model-a", Provider: "alpha", InputPerMTok: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewStaticCatalog(tt.models...)
			require.Error(t, err)
			require.Equal(t, domain.KindConfiguration, domain.KindOf(err))
		})
	}
}
