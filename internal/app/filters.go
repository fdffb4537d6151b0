package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mcinar/cinema-booking-api/internal/domain"
)

const (
	DefaultPage          = 1
	DefaultOrderPageSize = 2
	MaxOrderPageSize     = 10
)

// parseIDList parses a comma-separated list of integer IDs. A single bad
// token fails the whole list; no partial filtering is ever applied.
func parseIDList(raw string) ([]int, error) {
	tokens := strings.Split(raw, ",")
	ids := make([]int, 0, len(tokens))

	for _, token := range tokens {
		id, err := strconv.Atoi(token)
		if err != nil {
			return nil, domain.NewFilterError(fmt.Sprintf("Invalid query string: %s. IDs must be integers.", raw))
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func parseMovieFilters(query url.Values) (domain.MovieFilters, error) {
	var filters domain.MovieFilters

	if genres := query.Get("genres"); genres != "" {
		ids, err := parseIDList(genres)
		if err != nil {
			return domain.MovieFilters{}, err
		}

		filters.GenreIDs = ids
	}

	if actors := query.Get("actors"); actors != "" {
		ids, err := parseIDList(actors)
		if err != nil {
			return domain.MovieFilters{}, err
		}

		filters.ActorIDs = ids
	}

	filters.Title = query.Get("title")

	return filters, nil
}

func parseMovieSessionFilters(query url.Values) (domain.MovieSessionFilters, error) {
	var filters domain.MovieSessionFilters

	if date := query.Get("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return domain.MovieSessionFilters{}, domain.NewFilterError("Invalid date format. Please use YYYY-MM-DD.")
		}

		filters.Date = &parsed
	}

	if movie := query.Get("movie"); movie != "" {
		id, err := strconv.Atoi(movie)
		if err != nil {
			return domain.MovieSessionFilters{}, domain.NewFilterError("Invalid movie ID. Please provide an integer.")
		}

		filters.MovieID = &id
	}

	return filters, nil
}

// parseOrderPagination never fails: unusable page or page_size values fall
// back to the defaults, and page_size is capped at MaxOrderPageSize.
func parseOrderPagination(query url.Values) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultOrderPageSize,
	}

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		pagination.Page = page
	}

	if pageSize, err := strconv.Atoi(query.Get("page_size")); err == nil && pageSize > 0 {
		pagination.PageSize = min(pageSize, MaxOrderPageSize)
	}

	return pagination
}
