package common

import (
	"context"
	"netrix/src/db"
	"netrix/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var paymentCols = []string{"id", "customer_id", "account_id", "reference", "amount", "currency", "term_days", "status", "created_at", "updated_at", "deleted_at"}

func pendingPaymentRows(reference string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(paymentCols).
		AddRow(5, 2, 77, reference, 9.99, "USD", 30, string(types.PAYMENT_PENDING), now, now, nil)
}

func TestSettlePaymentPaidCompletesCheckout(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WithArgs("ref-1", 1).
		WillReturnRows(pendingPaymentRows("ref-1"))
	mock.ExpectExec(`UPDATE "accounts" SET`).
		WithArgs(string(types.ACCOUNT_RENTED), sqlmock.AnyArg(), 77, string(types.ACCOUNT_IN_PROCESS)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "rentals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := SettlePayment(context.Background(), "ref-1", types.PAYMENT_PAID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A webhook retry for an already settled payment must be a no-op.
func TestSettlePaymentIdempotentOnRetry(t *testing.T) {
	_, mock := db.GetMockDB()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(paymentCols).
		AddRow(5, 2, 77, "ref-2", 9.99, "USD", 30, string(types.PAYMENT_PAID), now, now, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).WillReturnRows(rows)
	mock.ExpectCommit()

	err := SettlePayment(context.Background(), "ref-2", types.PAYMENT_PAID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlePaymentCanceledReleasesHold(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(pendingPaymentRows("ref-3"))
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "payments"`).
		WithArgs(77, string(types.PAYMENT_PENDING), 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "accounts" SET`).
		WithArgs(string(types.ACCOUNT_AVAILABLE), sqlmock.AnyArg(), 77, string(types.ACCOUNT_IN_PROCESS)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := SettlePayment(context.Background(), "ref-3", types.PAYMENT_CANCELED)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A late cancellation whose hold already timed out must not release an
// account a second checkout has since re-claimed: the payment is canceled
// but the account row stays untouched.
func TestSettlePaymentCanceledKeepsForeignHold(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(pendingPaymentRows("ref-6"))
	mock.ExpectExec(`UPDATE "payments" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "payments"`).
		WithArgs(77, string(types.PAYMENT_PENDING), 5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	err := SettlePayment(context.Background(), "ref-6", types.PAYMENT_CANCELED)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// When the hold expired and someone else took the account, a paid
// settlement must fail loudly instead of double-renting.
func TestSettlePaymentPaidHoldLost(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(pendingPaymentRows("ref-4"))
	mock.ExpectExec(`UPDATE "accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "accounts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := SettlePayment(context.Background(), "ref-4", types.PAYMENT_PAID)
	assert.ErrorIs(t, err, ErrHoldLost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlePaymentUnknownReference(t *testing.T) {
	_, mock := db.GetMockDB()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payments"`).
		WillReturnRows(sqlmock.NewRows(paymentCols))
	mock.ExpectRollback()

	err := SettlePayment(context.Background(), "ref-missing", types.PAYMENT_PAID)
	assert.ErrorIs(t, err, ErrUnknownPayment)
	assert.NoError(t, mock.ExpectationsWereMet())
}
