// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
)

// Page is one page of a Graph collection response
type Page[T any] struct {
	Value    []T    `json:"value"`
	NextLink string `json:"@odata.nextLink,omitempty"`
}

// PageFetcher retrieves the page found at an absolute URL
type PageFetcher[T any] func(ctx context.Context, url string) (*Page[T], error)

// Pager walks a paginated Graph collection lazily. Every call to Next issues
// exactly one request for the current cursor; iteration stops when a page has
// no next link or a request fails. The number of pages is not bounded, so a
// service that never stops returning next links keeps the pager going.
type Pager[T any] struct {
	fetch PageFetcher[T]
	next  string
	page  []T
	pages int
	err   error
}

// NewPager returns a pager starting at firstURL
func NewPager[T any](firstURL string, fetch PageFetcher[T]) *Pager[T] {
	return &Pager[T]{
		fetch: fetch,
		next:  firstURL,
	}
}

// Next fetches the next page and reports whether one is available
func (p *Pager[T]) Next(ctx context.Context) bool {
	p.page = nil
	if p.next == "" || p.err != nil {
		return false
	}

	page, err := p.fetch(ctx, p.next)
	if err != nil {
		p.err = err
		p.next = ""
		return false
	}

	p.pages++
	p.page = page.Value
	p.next = page.NextLink
	return true
}

// Page returns the items of the page fetched by the last successful Next
func (p *Pager[T]) Page() []T {
	return p.page
}

// Pages returns the number of pages fetched successfully so far
func (p *Pager[T]) Pages() int {
	return p.pages
}

// Err returns the error that stopped the iteration, if any
func (p *Pager[T]) Err() error {
	return p.err
}
