package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple title", in: "Colors of Nature", want: "colors-of-nature"},
		{name: "punctuation collapses", in: "Go -- the, language!", want: "go-the-language"},
		{name: "leading and trailing junk", in: "  ...Hello...  ", want: "hello"},
		{name: "digits kept", in: "Quiz 101", want: "quiz-101"},
		{name: "already a slug", in: "already-a-slug", want: "already-a-slug"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
