package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"
	"github.com/Yash24242424/cloneverse-express/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductUsecase_ListPublicProducts_Validation(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock))
	ctx := context.Background()

	cases := []struct {
		name string
		in   usecase.ListProductsInput
		msg  string
	}{
		{"page zero", usecase.ListProductsInput{Page: 0, Limit: 20}, "invalid page"},
		{"limit too big", usecase.ListProductsInput{Page: 1, Limit: 101}, "invalid limit"},
		{"limit zero", usecase.ListProductsInput{Page: 1, Limit: 0}, "invalid limit"},
		{"q too long", usecase.ListProductsInput{Page: 1, Limit: 20, Q: strings.Repeat("a", 101)}, "q too long"},
		{"unknown sort", usecase.ListProductsInput{Page: 1, Limit: 20, Sort: "cheapest"}, "invalid sort"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ListPublicProducts(ctx, tc.in)
			assertHTTPError(t, err, http.StatusBadRequest, tc.msg)
		})
	}
}

func TestProductUsecase_ListPublicProducts_Success(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	q := repo.ProductListQuery{Page: 1, Limit: 20, Q: "air", Category: "audio", Sort: "rating"}
	items := []model.Product{{ID: "1", Name: "AirBeam Pro Earbuds", IsActive: true}}
	pRepo.On("ListPublic", mock.Anything, q).Return(items, int64(1), nil)

	out, err := uc.ListPublicProducts(ctx, usecase.ListProductsInput{Page: 1, Limit: 20, Q: "  air ", Category: "audio", Sort: "rating"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, items, out.Items)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListPublicProducts_DBError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)
	pRepo.On("ListPublic", mock.Anything, mock.Anything).Return(nil, int64(0), errDB)

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20})
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
}

func TestProductUsecase_GetProductDetail(t *testing.T) {
	ctx := context.Background()
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, "1").Return(model.Product{ID: "1", IsActive: true}, nil)
	pRepo.On("FindByID", mock.Anything, "2").Return(model.Product{ID: "2", IsActive: false}, nil)
	pRepo.On("FindByID", mock.Anything, "3").Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("FindByID", mock.Anything, "4").Return(model.Product{}, errDB)

	p, err := uc.GetProductDetail(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)

	_, err = uc.GetProductDetail(ctx, "2")
	assertHTTPError(t, err, http.StatusNotFound, "not found")

	_, err = uc.GetProductDetail(ctx, "3")
	assertHTTPError(t, err, http.StatusNotFound, "not found")

	_, err = uc.GetProductDetail(ctx, "4")
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")

	_, err = uc.GetProductDetail(ctx, " ")
	assertHTTPError(t, err, http.StatusBadRequest, "invalid product id")
}

func TestProductUsecase_ListCategories(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)
	pRepo.On("ListCategories", mock.Anything).Return([]repo.CategoryCount{
		{Category: "audio", Count: 2},
		{Category: "tech", Count: 3},
		{Category: "gaming", Count: 1},
	}, nil)

	out, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []usecase.CategoryOutput{
		{ID: "audio", Name: "Audio", Count: 2},
		{ID: "tech", Name: "Tech & Gadgets", Count: 3},
		{ID: "gaming", Name: "gaming", Count: 1},
	}, out.Items)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListCategories_DBError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)
	pRepo.On("ListCategories", mock.Anything).Return(nil, errDB)

	_, err := uc.ListCategories(context.Background())
	assertHTTPError(t, err, http.StatusInternalServerError, "db error")
}
