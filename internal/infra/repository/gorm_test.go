package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/Yash24242424/cloneverse-express/internal/domain/model"
	infraRepo "github.com/Yash24242424/cloneverse-express/internal/infra/repository"
	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserGorm_CreateDuplicateEmail(t *testing.T) {
	db, mock := setupGorm(t)
	r := infraRepo.NewUserGormRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := r.Create(context.Background(), &model.User{ID: "u1", Email: "a@example.com", Role: model.RoleUser})
	assert.ErrorIs(t, err, repo.ErrEmailAlreadyUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGorm_FindByEmailNotFound(t *testing.T) {
	db, mock := setupGorm(t)
	r := infraRepo.NewUserGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	u, err := r.FindByEmail(context.Background(), "nobody@example.com")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderGorm_UpdateStatusMissing(t *testing.T) {
	db, mock := setupGorm(t)
	r := infraRepo.NewOrderGormRepository(db)

	mock.ExpectExec(`UPDATE "orders" SET .* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.UpdateStatus(context.Background(), "ORD-000001", model.OrderStatusShipped, nil, time.Now())
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGorm_FindByID(t *testing.T) {
	db, mock := setupGorm(t)
	r := infraRepo.NewProductGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "sale_price", "is_active"}).
			AddRow("1", "AirBeam Pro Earbuds", "249.99", "199.99", true))

	p, err := r.FindByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "AirBeam Pro Earbuds", p.Name)
	assert.Equal(t, "199.99", p.EffectivePrice().StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGorm_FindByIDNotFound(t *testing.T) {
	db, mock := setupGorm(t)
	r := infraRepo.NewProductGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.FindByID(context.Background(), "404")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGorm_ListCategories(t *testing.T) {
	db, mock := setupGorm(t)
	r := infraRepo.NewProductGormRepository(db)

	mock.ExpectQuery(`SELECT category, COUNT\(\*\) AS count FROM "products" WHERE is_active = \$1 AND category <> \$2 GROUP BY .*category.* ORDER BY category asc`).
		WithArgs(true, "").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("audio", 2).
			AddRow("home", 3))

	got, err := r.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []repo.CategoryCount{{Category: "audio", Count: 2}, {Category: "home", Count: 3}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
