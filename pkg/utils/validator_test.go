package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingForm struct {
	Text   string `form:"text" validate:"required"`
	Rating *int   `form:"rating" validate:"required,min=0,max=10" message:"Rating must be between 0 and 10" parse:"Rating must be a whole number"`
}

type signupForm struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   map[string]string
	}{
		{
			name:   "valid",
			values: url.Values{"text": {"good"}, "rating": {"8"}},
			want:   nil,
		},
		{
			name:   "zero rating is valid",
			values: url.Values{"text": {"meh"}, "rating": {"0"}},
			want:   nil,
		},
		{
			name:   "rating above range",
			values: url.Values{"text": {"good"}, "rating": {"11"}},
			want:   map[string]string{"rating": "Rating must be between 0 and 10"},
		},
		{
			name:   "negative rating",
			values: url.Values{"text": {"good"}, "rating": {"-1"}},
			want:   map[string]string{"rating": "Rating must be between 0 and 10"},
		},
		{
			name:   "rating not a number",
			values: url.Values{"text": {"good"}, "rating": {"ten"}},
			want:   map[string]string{"rating": "Rating must be a whole number"},
		},
		{
			name:   "missing everything",
			values: url.Values{},
			want: map[string]string{
				"text":   "This field is required",
				"rating": "This field is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f ratingForm
			assert.Equal(t, tt.want, ValidateForm(&f, tt.values))
		})
	}
}

func TestValidateForm_DecodesValues(t *testing.T) {
	var f ratingForm
	errs := ValidateForm(&f, url.Values{"text": {"good"}, "rating": {"8"}})
	require.Nil(t, errs)
	assert.Equal(t, "good", f.Text)
	require.NotNil(t, f.Rating)
	assert.Equal(t, 8, *f.Rating)
}

func TestValidateStruct_Email(t *testing.T) {
	errs := ValidateStruct(&signupForm{Name: "Ada", Email: "not-an-email"})
	assert.Equal(t, map[string]string{"email": "Invalid email address"}, errs)

	assert.Nil(t, ValidateStruct(&signupForm{Name: "Ada", Email: "ada@example.com"}))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3", "4.2"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "<p>good</p>", SanitizeHTML(`<p onclick="x()">good</p><script>alert(1)</script>`))
	assert.Equal(t, "<strong>bold</strong>", SanitizeHTML("  <strong>bold</strong>  "))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)
	assert.True(t, CheckPasswordHash("secret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
