package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSlice(t *testing.T) {
	t.Parallel()

	assert.Len(t, pageSlice(1, 2), 2)
	assert.Len(t, pageSlice(3, 2), 1)
	assert.Empty(t, pageSlice(4, 2))
	assert.Len(t, pageSlice(1, 100), len(catalog))
}

func TestRenderPage(t *testing.T) {
	t.Parallel()

	html := renderPage(pageSlice(1, 2))

	require.Contains(t, html, `<div class="product">`)
	assert.Contains(t, html, "iPhone 12 Pro Max 128GB")
	assert.Contains(t, html, `data-colour="pacific blue"`)
	assert.Contains(t, html, "£999.99")
	assert.Equal(t, 2, strings.Count(html, `<div class="product">`))
}

func TestRenderPageEmpty(t *testing.T) {
	t.Parallel()

	html := renderPage(nil)
	assert.NotContains(t, html, `<div class="product">`)
}
