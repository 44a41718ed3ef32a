package mysql_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/mysql"
)

func newStore(t *testing.T) (*mysql.KVStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mysql.NewKVStore(db), mock
}

func TestKVStore_GetExistente(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT v FROM app_storage WHERE k = ?")).
		WithArgs("app_products").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(`[{"id":"p1"}]`))

	raw, ok, err := store.Get(context.Background(), "app_products")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_GetInexistente(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT v FROM app_storage WHERE k = ?")).
		WithArgs("app_sales").
		WillReturnError(sql.ErrNoRows)

	raw, ok, err := store.Get(context.Background(), "app_sales")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestKVStore_PutHaceUpsert(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO app_storage (k,v,updated_at) VALUES (?,?,?) ON DUPLICATE KEY UPDATE")).
		WithArgs("app_settings", `{"companyName":"Ma Boutique"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Put(context.Background(), "app_settings", []byte(`{"companyName":"Ma Boutique"}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_PutManyEnUnaTransaccion(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO app_storage").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO app_storage").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.PutMany(context.Background(), map[string][]byte{
		"app_products": []byte(`[]`),
		"app_sales":    []byte(`[]`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_PutManyHaceRollbackSiFalla(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO app_storage").WillReturnError(&gomysql.MySQLError{Number: 1062, Message: "duplicate"})
	mock.ExpectRollback()

	err := store.PutMany(context.Background(), map[string][]byte{"app_products": []byte(`[]`)})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_Delete(t *testing.T) {
	store, mock := newStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM app_storage WHERE k = ?")).
		WithArgs("app_current_user").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "app_current_user"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
