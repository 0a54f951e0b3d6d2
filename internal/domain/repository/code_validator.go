package repository

import "pagegen/internal/domain/entity"

// CodeValidator gates generated component code before it reaches a caller.
type CodeValidator interface {
	Validate(code, sectionName string) entity.ValidationResult
	CleanAndValidate(code, sectionName string) (string, error)
}
