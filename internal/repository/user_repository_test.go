package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepoCreateMapsDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO line_users").
		WithArgs("Uabc", "Test User", "https://pic", "hello").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(context.Background(), "Uabc", "Test User", "https://pic", "hello"))

	mock.ExpectExec("INSERT INTO line_users").
		WithArgs("Uabc", "Test User", "https://pic", "hello").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))
	err = repo.Create(context.Background(), "Uabc", "Test User", "https://pic", "hello")
	assert.ErrorIs(t, err, ErrUserExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT 1 FROM line_users").
		WithArgs("Uabc").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	ok, err := repo.Exists(context.Background(), "Uabc")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery("SELECT 1 FROM line_users").
		WithArgs("Unew").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	ok, err = repo.Exists(context.Background(), "Unew")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
