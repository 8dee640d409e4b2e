package ui

import (
	"context"
	"sync"

	"github.com/Belphemur/ShowFinder/internal/dom"
)

// View gives handlers access to the page they act on.
// Read may run concurrently with other reads; Update runs alone and its
// mutations are visible to every later Read.
type View interface {
	Read(ctx context.Context, fn func(p *dom.Page) error) error
	Update(ctx context.Context, fn func(p *dom.Page) error) error
}

// PageView is a View over a single in-memory page.
type PageView struct {
	mu   sync.RWMutex
	page *dom.Page
}

func NewPageView(p *dom.Page) *PageView {
	return &PageView{page: p}
}

func (v *PageView) Read(ctx context.Context, fn func(p *dom.Page) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return fn(v.page)
}

func (v *PageView) Update(ctx context.Context, fn func(p *dom.Page) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return fn(v.page)
}
