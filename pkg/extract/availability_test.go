package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mhodgson/phone-catalog-tracker/pkg/extract"
)

func TestIsAvailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text *string
		want bool
	}{
		{name: "in stock online", text: strp("Availability: In Stock Online"), want: true},
		{name: "lowercase", text: strp("in stock"), want: true},
		{name: "out of stock", text: strp("Out of Stock"), want: false},
		{name: "unrelated text", text: strp("Ships next week"), want: false},
		{name: "empty", text: strp(""), want: false},
		{name: "nil", text: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.IsAvailable(tt.text))
		})
	}
}
