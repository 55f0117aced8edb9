package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/validation"
)

const (
	analyticsCachePattern  = "analytics:*"
	analyticsGenerationKey = "analytics-generation"
)

// invalidateAnalytics advances the analytics generation before dropping the
// cached payloads. An aggregate computed before the write is stored under the
// previous generation and never read again.
func invalidateAnalytics(ctx context.Context, cache *CacheService) {
	_ = cache.Bump(ctx, analyticsGenerationKey)
	_ = cache.Invalidate(ctx, analyticsCachePattern)
}

func validationError(v *validation.Validator, err error, message string) error {
	appErr := appErrors.WrapAs(appErrors.ErrValidation, err, message)
	if v != nil {
		appErr.Fields = v.Translate(err)
	}
	return appErr
}

// storeError maps sql.ErrNoRows to NOT_FOUND and anything else to STORE_ERROR.
func storeError(err error, notFound, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.WrapAs(appErrors.ErrStore, err, message)
}
