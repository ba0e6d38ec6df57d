package repositories

import "gorm.io/gorm"

// conn returns tx when the caller runs inside a transaction, otherwise the
// repository's own handle.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
