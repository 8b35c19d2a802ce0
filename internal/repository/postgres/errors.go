package postgres

import (
	"errors"
	"fmt"
	"strings"

	"storeRating/domain"

	"gorm.io/gorm"
)

// translateError maps gorm's translated driver errors onto the domain taxonomy.
// notFound and conflict are the entity-specific errors for the calling repository.
func translateError(err error, op string, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != nil:
		return conflict
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewError(domain.ErrConflict, "record already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrReferenceMissing
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return domain.ErrInvalidRating
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE operand matching s anywhere, with wildcards in s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
