package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceAdjustments computes the balance delta per account for
// removing the given transactions: the negated sum of their amounts.
// Deleting an expense raises the balance, deleting an income lowers it.
func BalanceAdjustments(transactions []Transaction) map[uuid.UUID]decimal.Decimal {
	adjustments := make(map[uuid.UUID]decimal.Decimal)

	for _, t := range transactions {
		adjustments[t.AccountID] = adjustments[t.AccountID].Sub(t.Amount)
	}

	return adjustments
}

// BatchDeleteTransactions deletes the given transactions of the user
// and adjusts the balance of every touched account accordingly.
//
// The deletes and the balance updates happen in a single database
// transaction, a failure rolls back everything.
func BatchDeleteTransactions(db *gorm.DB, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var deleted int64

	err := db.Transaction(func(tx *gorm.DB) error {
		var transactions []Transaction
		err := tx.
			Where("user_id = ?", userID).
			Where("id IN ?", ids).
			Find(&transactions).Error
		if err != nil {
			return err
		}

		res := tx.
			Where("user_id = ?", userID).
			Where("id IN ?", ids).
			Delete(&Transaction{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		for accountID, delta := range BalanceAdjustments(transactions) {
			err := tx.Model(&Account{}).
				Where("id = ? AND user_id = ?", accountID, userID).
				UpdateColumn("balance", gorm.Expr("balance + ?", delta)).Error
			if err != nil {
				return err
			}
		}

		return nil
	})

	return deleted, err
}

// BatchUpdateTransactionCategory assigns a category to all given
// transactions of the user in a single UPDATE statement. A nil
// categoryID clears the category.
func BatchUpdateTransactionCategory(db *gorm.DB, userID uuid.UUID, ids []uuid.UUID, categoryID *uuid.UUID) (int64, error) {
	if categoryID != nil {
		err := db.First(&Category{}, "id = ? AND user_id = ?", *categoryID, userID).Error
		if err != nil {
			return 0, err
		}
	}

	res := db.Model(&Transaction{}).
		Where("user_id = ?", userID).
		Where("id IN ?", ids).
		UpdateColumn("category_id", categoryID)

	return res.RowsAffected, res.Error
}
