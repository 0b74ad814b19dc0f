package scrape_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhodgson/phone-catalog-tracker/internal/scrape"
)

// fakeFetcher serves canned pages keyed by page number. Pages without an
// entry come back empty; pages mapped to "" fail.
type fakeFetcher struct {
	pages map[int]string
	calls []int
}

const emptyPage = `<html><body><div id="products"></div></body></html>`

func (f *fakeFetcher) FetchPage(_ context.Context, page int) (string, error) {
	f.calls = append(f.calls, page)
	src, ok := f.pages[page]
	if !ok {
		return emptyPage, nil
	}
	if src == "" {
		return "", errors.New("boom")
	}
	return src, nil
}

func productPage(titles ...string) string {
	var cards string
	for _, title := range titles {
		cards += fmt.Sprintf(`<div class="product">
		  <h3>%s</h3>
		  <span data-colour="black"></span>
		  <div class="price">£100.00</div>
		</div>`, title)
	}
	return "<html><body>" + cards + "</body></html>"
}

func TestPaginateStopsOnEmptyPage(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[int]string{
		1: productPage("iPhone 11", "iPhone 12"),
		2: productPage("Nokia 3310"),
	}}

	p := scrape.NewPaginator(fetcher)
	result, err := p.Paginate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "empty_page", result.StoppedAt)
	assert.Equal(t, 3, result.PagesUsed)
	assert.Equal(t, []int{1, 2, 3}, fetcher.calls)

	require.Len(t, result.Products, 3)
	assert.Equal(t, "page1", result.Products[0].Source)
	assert.Equal(t, "page1", result.Products[1].Source)
	assert.Equal(t, "page2", result.Products[2].Source)
}

func TestPaginateStopsAtMaxPages(t *testing.T) {
	t.Parallel()

	pages := map[int]string{}
	for i := 1; i <= 5; i++ {
		pages[i] = productPage(fmt.Sprintf("Phone %d", i))
	}
	fetcher := &fakeFetcher{pages: pages}

	p := scrape.NewPaginator(fetcher, scrape.WithMaxPages(3))
	result, err := p.Paginate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "max_pages", result.StoppedAt)
	assert.Equal(t, 3, result.PagesUsed)
	assert.Len(t, result.Products, 3)
}

func TestPaginateFirstPageErrorIsFatal(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[int]string{1: ""}}

	p := scrape.NewPaginator(fetcher)
	result, err := p.Paginate(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestPaginateLaterPageErrorReturnsPartial(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{pages: map[int]string{
		1: productPage("iPhone 11"),
		2: "",
	}}

	p := scrape.NewPaginator(fetcher)
	result, err := p.Paginate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "fetch_error", result.StoppedAt)
	assert.Equal(t, 1, result.PagesUsed)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "iPhone 11", result.Products[0].Title)
}

func TestPaginateCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := scrape.NewPaginator(&fakeFetcher{})
	_, err := p.Paginate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
