// Package service contains the orchestration layer: validation, policy
// checks, and repository coordination for the graph, feed, messaging, and
// user profile operations.
package service

import (
	"errors"
	"fmt"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// mapStoreError translates a repository failure into the error taxonomy.
// Missing rows become NOT_FOUND for the named resource; unique-constraint
// violations become CONFLICT (a concurrent duplicate insert can slip past
// the service-level existence check and must not surface as INTERNAL);
// AppErrors (e.g. from model hooks) pass through; anything else is
// INTERNAL.
func mapStoreError(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError(fmt.Sprintf("%s already exists", resource))
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewInternalError(err)
}
