package shared

import (
	"careops/shared/cache"
	"careops/shared/constant"
	"careops/shared/dto"
	"careops/shared/failure"
	"careops/shared/timezone"
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ParseBoolParam reads an optional boolean query parameter. An unparsable
// value is a 400.
func ParseBoolParam(value string) (*bool, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return nil, failure.InvalidBoolParam
	}

	return &boolValue, nil
}

// ParseDateParam is ParseDate for query parameters.
func ParseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil //nolint:nilnil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return nil, failure.InvalidDateParam
	}

	return &parsed, nil
}

// PatchFields maps the set fields of a patch request to their db columns and
// stamps modified_at and modified_by. Unset means the zero value, so patch
// requests use pointers for fields that may legitimately be zero.
func PatchFields(patch any, actor string) map[string]any {
	fields := map[string]any{}

	collectPatchFields(reflect.Indirect(reflect.ValueOf(patch)), fields)

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = actor

	return fields
}

func collectPatchFields(value reflect.Value, fields map[string]any) {
	if value.Kind() != reflect.Struct {
		return
	}

	for i := range value.NumField() {
		field, meta := value.Field(i), value.Type().Field(i)

		if meta.Anonymous && meta.IsExported() && field.Kind() == reflect.Struct {
			collectPatchFields(field, fields)

			continue
		}

		column := meta.Tag.Get("db")
		if column == "" || column == "-" || !meta.IsExported() || field.IsZero() {
			continue
		}

		fields[column] = field.Interface()
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), constant.CacheKeyDelim)
}

// InvalidateCaches deletes every key, logging failures instead of returning them
// so a cache outage never fails a committed write.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, keys ...string) {
	for _, key := range keys {
		if err := redisCache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("cacheKey", key).Msg("failed to invalidate cache")
		}
	}
}

// ClearCachePrefix drops every key under prefix. Failures are logged; stale
// entries expire with their TTL.
func ClearCachePrefix(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, BuildCacheKey(prefix, "")); err != nil {
		log.Warn().Err(err).Str("cachePrefix", prefix).Msg("failed to clear cache prefix")
	}
}

// Actor identifies who performs a write, falling back to guest for anonymous calls.
func Actor(ctx context.Context) string {
	if userID, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && userID != "" {
		return userID
	}

	return constant.ContextGuest
}

// ParseDate accepts RFC3339 timestamps or YYYY-MM-DD dates, the latter at
// midnight in the application timezone.
func ParseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(constant.DateFormat, value); err == nil {
		return parsed, nil
	}

	parsed, err := timezone.Parse(constant.DateOnly, value)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return parsed, nil
}

func IsPqError(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}
