package httphandler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/corehub/internal/domain/query"
)

// parsePageRequest reads page and size. Missing or garbage values fall
// back to the service defaults rather than failing the request.
func parsePageRequest(params url.Values) query.PageRequest {
	var p query.PageRequest
	if v, err := strconv.Atoi(params.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(params.Get("size")); err == nil {
		p.Size = v
	}
	return p
}

// parseSort reads a "field" or "field,desc" sort parameter. The field is
// validated against the kind's whitelist by the service, not here.
func parseSort(raw string) (query.Sort, error) {
	if raw == "" {
		return query.Sort{}, nil
	}

	field, direction, _ := strings.Cut(raw, ",")
	field = strings.TrimSpace(field)
	direction = strings.ToLower(strings.TrimSpace(direction))

	switch direction {
	case "", "asc":
		return query.Sort{Field: field}, nil
	case "desc":
		return query.Sort{Field: field, Desc: true}, nil
	default:
		return query.Sort{}, fmt.Errorf("invalid sort direction %q", direction)
	}
}

// parseCommonFilter handles the filter params every kind supports.
func parseCommonFilter(params url.Values) (query.Filter, error) {
	var f query.Filter

	if raw := params.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return query.Filter{}, fmt.Errorf("invalid active flag %q", raw)
		}
		f = f.Where("is_active", active)
	}

	return f, nil
}

// parseIntegrationFilter adds parent_id and environment filters.
func parseIntegrationFilter(params url.Values) (query.Filter, error) {
	f, err := parseCommonFilter(params)
	if err != nil {
		return query.Filter{}, err
	}

	if raw := params.Get("parent_id"); raw != "" {
		parentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query.Filter{}, fmt.Errorf("invalid parent_id %q", raw)
		}
		f = f.Where("parent_id", parentID)
	}

	if env := params.Get("environment"); env != "" {
		f = f.WhereFold("environment", env)
	}

	return f, nil
}

// parseFeedbackFilter adds user_id, resolved, and since filters.
func parseFeedbackFilter(params url.Values) (query.Filter, error) {
	f, err := parseCommonFilter(params)
	if err != nil {
		return query.Filter{}, err
	}

	if raw := params.Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query.Filter{}, fmt.Errorf("invalid user_id %q", raw)
		}
		f = f.Where("user_id", userID)
	}

	if raw := params.Get("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			return query.Filter{}, fmt.Errorf("invalid resolved flag %q", raw)
		}
		f = f.Where("is_resolved", resolved)
	}

	if raw := params.Get("since"); raw != "" {
		since, err := parseSince(raw)
		if err != nil {
			return query.Filter{}, err
		}
		f = f.Since("feedback_date", since)
	}

	return f, nil
}

// parseSince accepts RFC3339 or a bare date.
func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid since value %q", raw)
}
