package handlers

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/facility-complaints/internal/api/dto"
	"github.com/spec-kit/facility-complaints/internal/config"
	"github.com/spec-kit/facility-complaints/internal/service"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

// Paginator reads limit/offset parameters and renders page links.
type Paginator struct {
	defaultLimit int
	maxLimit     int
}

// NewPaginator builds a paginator from configuration.
func NewPaginator(cfg config.PaginationConfig) Paginator {
	p := Paginator{defaultLimit: cfg.DefaultLimit, maxLimit: cfg.MaxLimit}
	if p.defaultLimit <= 0 {
		p.defaultLimit = 10
	}
	if p.maxLimit <= 0 {
		p.maxLimit = 100
	}
	return p
}

// Parse returns the requested window. Limit is clamped to the configured maximum.
func (p Paginator) Parse(c *fiber.Ctx) (limit, offset int, err error) {
	limit = p.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, apperrors.NewValidationError("Invalid limit", nil)
		}
		if limit > p.maxLimit {
			limit = p.maxLimit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, apperrors.NewValidationError("Invalid offset", nil)
		}
	}
	return limit, offset, nil
}

// Links returns absolute next and previous URLs for the window, keeping the other query
// parameters of the request.
func (p Paginator) Links(c *fiber.Ctx, total, limit, offset int) (next, previous *string) {
	base := c.BaseURL() + c.Path()
	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		query.Add(string(key), string(value))
	})
	link := func(off int) *string {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("limit", strconv.Itoa(limit))
		if off > 0 {
			q.Set("offset", strconv.Itoa(off))
		} else {
			q.Del("offset")
		}
		s := base + "?" + q.Encode()
		return &s
	}
	if offset+limit < total {
		next = link(offset + limit)
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		previous = link(prev)
	}
	return next, previous
}

func newPageResponse[T, R any](c *fiber.Ctx, p Paginator, page service.Page[T], mapFn func([]T) []R) dto.PageResponse[R] {
	next, previous := p.Links(c, page.Total, page.Limit, page.Offset)
	return dto.PageResponse[R]{
		Count:    page.Total,
		Next:     next,
		Previous: previous,
		Results:  mapFn(page.Items),
	}
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

func choiceQuery[T ~string](c *fiber.Ctx, key string) (*T, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	value := T(v)
	if valid, ok := any(value).(interface{ Valid() bool }); ok && !valid.Valid() {
		return nil, apperrors.NewValidationError("Invalid input", map[string]any{
			"fields": map[string]any{key: "Select a valid choice. " + v + " is not one of the available choices."},
		})
	}
	return &value, nil
}
