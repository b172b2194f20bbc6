package shared

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strconv"
	"strings"

	"shine/shared/cache"
	"shine/shared/constant"
	"shine/shared/dto"
	"shine/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func ConvertStringToInt(value string) (int, error) {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to int: %w", err)
	}

	return intValue, nil
}

// BuildCacheKey joins the prefix and parts into a colon-delimited cache key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery derives a cache key from pagination params and the
// filter's where clause, so distinct queries never share an entry.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(where))
	_, _ = hasher.Write([]byte(fmt.Sprintf("%v", args)))

	return fmt.Sprintf("%s:%d:%d:%s:%s:%x", prefix, params.Page, params.Limit, params.SortBy, params.SortDir, hasher.Sum64())
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation, optionally on a specific named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	if string(pqErr.Code) != constant.PqErrorCodeUniqueViolation {
		return false
	}

	return constraint == constant.Empty || pqErr.Constraint == constraint
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
