package database

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_NoTransactionReturnsFallback(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	got := FromContext(context.Background(), db)
	assert.Equal(t, DBTX(db), got)
}

func TestTxManager_CommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sessions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := NewTxManager(db)
	err = m.InTx(context.Background(), func(ctx context.Context) error {
		_, execErr := FromContext(ctx, db).ExecContext(ctx, "INSERT INTO sessions (id) VALUES ($1)", "s1")
		return execErr
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	m := NewTxManager(db)
	err = m.InTx(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom, "the callback error is returned unchanged")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	m := NewTxManager(db)
	err = m.InTx(context.Background(), func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "beginning transaction")
}

func TestTxManager_CarriesTransactionInContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit()

	m := NewTxManager(db)
	err = m.InTx(context.Background(), func(ctx context.Context) error {
		assert.NotEqual(t, DBTX(db), FromContext(ctx, db), "the transaction must replace the pool")
		return nil
	})
	assert.NoError(t, err)
}

func TestNopTxRunner(t *testing.T) {
	called := false
	err := NopTxRunner{}.InTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)

	boom := errors.New("boom")
	err = NopTxRunner{}.InTx(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}
