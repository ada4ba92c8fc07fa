package service

import (
	"sort"
	"strings"

	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// Page is one limit/offset window of a listing together with the unpaged total.
type Page[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]string

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "This field is required."
	}
}

func (f fieldErrors) requiredPtr(field string, value *string, partial bool) {
	if value == nil {
		if !partial {
			f[field] = "This field is required."
		}
		return
	}
	f.required(field, *value)
}

func (f fieldErrors) choice(field, value string, valid bool, choices []string) {
	if !valid {
		sort.Strings(choices)
		f[field] = "\"" + value + "\" is not a valid choice. Expected one of: " + strings.Join(choices, ", ") + "."
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	details := make(map[string]any, len(f))
	for k, v := range f {
		details[k] = v
	}
	return apperrors.NewValidationError("Invalid input", map[string]any{"fields": details})
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func choiceStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
