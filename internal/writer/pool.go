package writer

import (
	"context"
	"sync"
)

// PageResult holds the outcome of writing a single page.
type PageResult struct {
	Page Page
	Path string
	Err  error
}

// WriteFunc writes one page and returns the path it was written to.
type WriteFunc func(ctx context.Context, page Page) (path string, err error)

// WritePages writes pages with at most workers concurrent calls to fn.
// The result at index i belongs to pages[i]. Once ctx is done no further
// pages are handed out, and every page not yet started reports ctx.Err().
func WritePages(ctx context.Context, pages []Page, workers int, fn WriteFunc) []PageResult {
	results := make([]PageResult, len(pages))
	for i, page := range pages {
		results[i].Page = page
	}
	if len(pages) == 0 {
		return results
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(pages) {
		workers = len(pages)
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				results[i].Path, results[i].Err = fn(ctx, pages[i])
			}
		}()
	}

	fed := 0
feed:
	for ; fed < len(pages) && ctx.Err() == nil; fed++ {
		select {
		case next <- fed:
		case <-ctx.Done():
			break feed
		}
	}
	close(next)
	wg.Wait()

	for i := fed; i < len(pages); i++ {
		results[i].Err = ctx.Err()
	}
	return results
}
