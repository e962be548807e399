package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pos2025/pos-backend/pkg/db/models"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/pagination"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:customers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		display_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestSearchByNameOrEmail(t *testing.T) {
	db := openTestDB(t)
	rows := []models.Customer{
		{DisplayName: "Ada Smith", Email: "ada@example.com"},
		{DisplayName: "Grace Jones", Email: "grace@example.com"},
	}
	require.NoError(t, db.Create(&rows).Error)
	svc := newTestService(t, db)
	ctx := context.Background()

	page, err := svc.Search(ctx, "ada", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ada Smith", page.Items[0].DisplayName)

	page, err = svc.Search(ctx, "grace@", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Grace Jones", page.Items[0].DisplayName)
}

func TestSearchFallsBackToFirstLastName(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Customer{FirstName: "Ada", LastName: "Smith", Email: "a@example.com"}).Error)
	svc := newTestService(t, db)

	page, err := svc.Search(context.Background(), "", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ada Smith", page.Items[0].DisplayName)
}

func TestGetRef(t *testing.T) {
	db := openTestDB(t)
	row := models.Customer{DisplayName: "Ada Smith", Email: "ada@example.com"}
	require.NoError(t, db.Create(&row).Error)
	svc := newTestService(t, db)
	ctx := context.Background()

	ref, err := svc.GetRef(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, ref.ID)
	assert.False(t, ref.IsGuest())

	_, err = svc.GetRef(ctx, row.ID+100)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = svc.GetRef(ctx, 0)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
