package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is one page of a list response. List endpoints return either a
// paginated envelope {count, results} or a bare array; Page absorbs both.
// For a bare array, Count equals len(Results) and Paginated is false.
type Page[T any] struct {
	Count     int
	Results   []T
	Paginated bool
}

// UnmarshalJSON branches on the envelope shape: a leading '[' means a bare
// (unpaginated) array, anything else is decoded as {count, results}.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		p.Results = items
		p.Count = len(items)
		p.Paginated = false
		return nil
	}

	var envelope struct {
		Count   int             `json:"count"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	if envelope.Results == nil {
		return fmt.Errorf("list response has neither results nor array form")
	}
	if err := json.Unmarshal(envelope.Results, &p.Results); err != nil {
		return err
	}
	p.Count = envelope.Count
	p.Paginated = true
	return nil
}

// TotalPages computes ceil(Count / pageSize). Unpaginated responses are a
// single page regardless of size.
func (p *Page[T]) TotalPages(pageSize int) int {
	if !p.Paginated || pageSize <= 0 {
		return 1
	}
	if p.Count == 0 {
		return 1
	}
	return (p.Count + pageSize - 1) / pageSize
}
