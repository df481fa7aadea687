package quickpay

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrAccountNotFound signals that no account matched the lookup
// credentials. Recoverable: the wizard stays on the search step.
var ErrAccountNotFound = errors.New("quickpay: account not found")

// SQLRepository stores accounts, payment methods, and transactions in the
// local SQLite database.
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository creates a quickpay repository.
func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const accountColumns = `account_number, last_name, holder_name, user_id, balance, due_date`

// FindAccount looks up an account by number and surname. Both matches are
// case-insensitive and exact.
func (r *SQLRepository) FindAccount(accountNumber, lastName string) (*Account, error) {
	row := r.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM pay_accounts
			WHERE LOWER(account_number) = LOWER(?) AND LOWER(last_name) = LOWER(?)`, accountColumns),
		accountNumber, lastName,
	)
	return scanAccount(row)
}

// AccountForUser returns the account linked to an app user, for the
// homeowner entry path that skips the lookup step.
func (r *SQLRepository) AccountForUser(userID string) (*Account, error) {
	row := r.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM pay_accounts WHERE user_id = ?", accountColumns),
		userID,
	)
	return scanAccount(row)
}

// InsertAccount stores a payable account. Existing rows are replaced so
// seeding is idempotent.
func (r *SQLRepository) InsertAccount(a Account) error {
	if _, err := r.db.Exec(
		fmt.Sprintf(`INSERT OR REPLACE INTO pay_accounts (%s) VALUES (?, ?, ?, ?, ?, ?)`, accountColumns),
		a.AccountNumber, a.LastName, a.HolderName, a.UserID, a.Balance.String(), a.DueDate,
	); err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

// MethodsForAccount returns stored payment methods for an account, oldest
// first.
func (r *SQLRepository) MethodsForAccount(accountNumber string) ([]Method, error) {
	rows, err := r.db.Query(
		`SELECT id, account_number, brand, last4, holder, expiry
		 FROM payment_methods WHERE account_number = ? ORDER BY created_at, rowid`,
		accountNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var methods []Method
	for rows.Next() {
		var m Method
		var brand string
		if err := rows.Scan(&m.ID, &m.AccountNumber, &brand, &m.Last4, &m.Holder, &m.Expiry); err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}
		m.Brand = Brand(brand)
		methods = append(methods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment methods: %w", err)
	}

	return methods, nil
}

// InsertMethod stores a new payment method.
func (r *SQLRepository) InsertMethod(m Method) error {
	if _, err := r.db.Exec(
		`INSERT INTO payment_methods (id, account_number, brand, last4, holder, expiry)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.AccountNumber, string(m.Brand), m.Last4, m.Holder, m.Expiry,
	); err != nil {
		return fmt.Errorf("inserting payment method: %w", err)
	}
	return nil
}

// InsertTransaction records a completed payment.
func (r *SQLRepository) InsertTransaction(tx Transaction) error {
	if _, err := r.db.Exec(
		`INSERT INTO transactions (id, account_number, method_id, amount, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		tx.ID, tx.AccountNumber, tx.MethodID, tx.Amount.String(), tx.CreatedAt,
	); err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// Transactions returns recorded payments for an account, newest first.
func (r *SQLRepository) Transactions(accountNumber string) ([]Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, account_number, method_id, amount, created_at
		 FROM transactions WHERE account_number = ? ORDER BY created_at DESC, rowid DESC`,
		accountNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	var txs []Transaction
	for rows.Next() {
		var tx Transaction
		var amount string
		if err := rows.Scan(&tx.ID, &tx.AccountNumber, &tx.MethodID, &amount, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", amount, err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	var balance string
	err := row.Scan(&a.AccountNumber, &a.LastName, &a.HolderName, &a.UserID, &balance, &a.DueDate)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying account: %w", err)
	}

	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parsing balance %q: %w", balance, err)
	}
	return &a, nil
}
