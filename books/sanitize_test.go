package books_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookverse/backend/books"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Strips tags",
			input: "<script>alert('x')</script>The Go Programming Language",
			want:  "alert('x')The Go Programming Language",
		},
		{
			name:  "Collapses whitespace",
			input: "  The   Go\t\tProgramming\n\nLanguage  ",
			want:  "The Go Programming Language",
		},
		{
			name:  "Nested markup",
			input: "<p>A <b>bold</b> title</p>",
			want:  "A bold title",
		},
		{
			name:  "Plain text unchanged",
			input: "Clean Title",
			want:  "Clean Title",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, books.SanitizeString(tt.input))
		})
	}
}

func TestSanitizeISBN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Keeps digits and hyphens", "978-0-13-468599-1", "978-0-13-468599-1"},
		{"Drops junk characters", " 978 0134685991! ", "9780134685991"},
		{"Strips tags first", "<i>0134685997</i>", "0134685997"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, books.SanitizeISBN(tt.input))
		})
	}
}
