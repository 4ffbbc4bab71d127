package validation

import (
	"fmt"
	"strings"

	"github.com/iudanet/bizkeeper/internal/models"
)

// MaxRecordIDLen максимальная длина идентификатора записи
const MaxRecordIDLen = 128

// ValidateCollection проверяет, что коллекция входит в набор бизнес-коллекций
func ValidateCollection(collection string) error {
	if collection == "" {
		return fmt.Errorf("collection cannot be empty")
	}
	if !models.IsKnownCollection(collection) {
		return fmt.Errorf("unknown collection %q (expected one of: %s)",
			collection, strings.Join(models.AllCollections(), ", "))
	}
	return nil
}

// ValidateRecordID проверяет идентификатор записи.
// id попадает в путь URL и ключ кеша, поэтому '/' и пробельные символы запрещены.
func ValidateRecordID(id string) error {
	if id == "" {
		return fmt.Errorf("record id cannot be empty")
	}
	if len(id) > MaxRecordIDLen {
		return fmt.Errorf("record id must not exceed %d characters", MaxRecordIDLen)
	}
	if strings.ContainsAny(id, "/ \t\r\n") {
		return fmt.Errorf("record id cannot contain '/' or whitespace")
	}
	return nil
}
