package model

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/gainledger/src/models"
)

// InsertTransaction stores one transaction row for a user. Decimal fields go
// in as their canonical string form.
func InsertTransaction(db *sql.DB, tx models.Transaction) error {
	_, err := db.Exec(`
		INSERT INTO transactions (id, user_id, asset_id, asset_name, kind, quantity, unit_price, fee, timestamp, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.AssetID, tx.AssetName, string(tx.Kind),
		tx.Quantity.String(), tx.UnitPrice.String(), tx.Fee.String(),
		tx.Timestamp.UTC().Format(time.RFC3339), string(tx.Status))
	if err != nil {
		return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
	}
	return nil
}

// GetTransactionsByUser returns a user's full transaction history in
// chronological order. The engine re-sorts anyway; the ordering here just
// keeps listings stable.
func GetTransactionsByUser(db *sql.DB, userID int64) ([]models.Transaction, error) {
	rows, err := db.Query(`
		SELECT id, user_id, asset_id, asset_name, kind, quantity, unit_price, fee, timestamp, status
		FROM transactions
		WHERE user_id = ?
		ORDER BY timestamp ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying transactions for user %d: %w", userID, err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var (
			tx                           models.Transaction
			kind, status                 string
			quantity, unitPrice, feeStr  string
			timestamp                    string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AssetID, &tx.AssetName, &kind,
			&quantity, &unitPrice, &feeStr, &timestamp, &status); err != nil {
			return nil, fmt.Errorf("scanning transaction for user %d: %w", userID, err)
		}
		tx.Kind = models.TransactionKind(kind)
		tx.Status = models.TransactionStatus(status)
		if tx.Quantity, err = decimal.NewFromString(quantity); err != nil {
			return nil, fmt.Errorf("transaction %s has malformed quantity %q: %w", tx.ID, quantity, err)
		}
		if tx.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("transaction %s has malformed unit price %q: %w", tx.ID, unitPrice, err)
		}
		if tx.Fee, err = decimal.NewFromString(feeStr); err != nil {
			return nil, fmt.Errorf("transaction %s has malformed fee %q: %w", tx.ID, feeStr, err)
		}
		if tx.Timestamp, err = time.Parse(time.RFC3339, timestamp); err != nil {
			return nil, fmt.Errorf("transaction %s has malformed timestamp %q: %w", tx.ID, timestamp, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions for user %d: %w", userID, err)
	}
	return txs, nil
}

// DeleteTransactionsByUser removes all of a user's transactions and returns
// the number of deleted rows.
func DeleteTransactionsByUser(db *sql.DB, userID int64) (int64, error) {
	res, err := db.Exec(`DELETE FROM transactions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting transactions for user %d: %w", userID, err)
	}
	return res.RowsAffected()
}
