package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Policy domain.RolePolicy
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogOutcome logs err at Warn when the caller can fix it and at Error otherwise.
func (s *BaseService) LogOutcome(ctx context.Context, err error, msg string, keyvals ...any) {
	if isStorageFailure(err) {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// Authorize checks that one of the actor's roles grants perm.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, perm domain.Permission) error {
	if actor.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	if !s.Policy.Allows(actor, perm) {
		s.GetLogger(ctx).Warn("Permission denied",
			slog.String("user_id", actor.UserID),
			slog.String("permission", string(perm)))
		return fmt.Errorf("%w: %s required", apperrors.ErrForbidden, perm)
	}
	return nil
}

// isStorageFailure reports errors that are not part of the domain taxonomy.
func isStorageFailure(err error) bool {
	if errors.Is(err, apperrors.ErrStorageFailure) {
		return true
	}
	for _, known := range []error{
		apperrors.ErrNotFound, apperrors.ErrValidation, apperrors.ErrDuplicate, apperrors.ErrForbidden,
		apperrors.ErrUnauthorized, apperrors.ErrInvalidState, apperrors.ErrEmptyBatch,
		apperrors.ErrSelfApproval, apperrors.ErrConflict, apperrors.ErrCapacityExceeded,
		apperrors.ErrNotApproved, apperrors.ErrTotalsMismatch, apperrors.ErrMissingField,
	} {
		if errors.Is(err, known) {
			return false
		}
	}
	return true
}
