package types

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
)

// TotalCount accepts a plain integer or a search engine style {"value": n} wrapper.
type TotalCount int

func (t *TotalCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, null) {
		*t = 0
		return nil
	}
	if data[0] == '{' {
		var wrapped struct {
			Value TotalCount `json:"value"`
		}
		if err := jsoncompat.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		*t = wrapped.Value
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("total: %w", err)
	}
	*t = TotalCount(n)
	return nil
}

type Pagination struct {
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
	Total TotalCount `json:"total"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

type Suggestion struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type SuggestionList struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Response is the envelope every catalog endpoint answers with.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}
