package post

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbemnt/internal/models"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		post models.Post
		want error
	}{
		{"portfolio with image", models.Post{Type: "portfolio", ImageURL: "https://cdn/x.webp"}, nil},
		{"portfolio without image", models.Post{Type: "portfolio", Title: "cut"}, ErrImageRequired},
		{"announcement with title", models.Post{Type: "announcement", Title: "Open on Sunday"}, nil},
		{"announcement blank title", models.Post{Type: "announcement", Title: "  "}, ErrTitleRequired},
		{"unknown type", models.Post{Type: "story"}, ErrInvalidType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.post)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
