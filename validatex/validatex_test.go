package validatex

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/pesantren-notify/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type media struct {
	URL string `validatex:"required,url"`
}

type request struct {
	To      string `validatex:"required,min=3"`
	Kind    string `validatex:"required,oneof=text image"`
	Body    string `validatex:"max=5"`
	Media   *media
	Ignored string `validatex:"-"`
}

type guarded struct {
	Name string `validatex:"required"`
}

func (g guarded) Validate() error {
	if g.Name == "forbidden" {
		return errors.New("name is reserved")
	}
	return nil
}

func TestValidate_OK(t *testing.T) {
	err := Validate(request{To: "62812", Kind: "image", Media: &media{URL: "https://cdn.example.com/a.png"}})
	assert.NoError(t, err)
}

func TestValidate_Failures(t *testing.T) {
	err := Validate(&request{To: "62", Kind: "video", Body: "too long", Media: &media{URL: "not a url"}})
	require.Error(t, err)

	assert.True(t, errx.IsCode(err, ErrInvalid))

	var xerr *errx.Error
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, "must be at least 3", xerr.Details["To"])
	assert.Equal(t, "must be one of [text image]", xerr.Details["Kind"])
	assert.Equal(t, "must be at most 5", xerr.Details["Body"])
	assert.Equal(t, "failed url", xerr.Details["Media.URL"])
}

type apiRequest struct {
	To    string `json:"to" validatex:"required"`
	Media *struct {
		URL string `json:"url" validatex:"required,url"`
	} `json:"media,omitempty"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	req := apiRequest{}
	req.Media = &struct {
		URL string `json:"url" validatex:"required,url"`
	}{URL: "ftp://files"}

	var xerr *errx.Error
	require.True(t, errors.As(Validate(req), &xerr))
	assert.Equal(t, "is required", xerr.Details["to"])
	assert.Equal(t, "failed url", xerr.Details["media.url"])
}

func TestValidate_OptionalEmptySkipsRules(t *testing.T) {
	assert.NoError(t, Validate(request{To: "62812", Kind: "text"}))
}

func TestValidate_Validatable(t *testing.T) {
	assert.NoError(t, Validate(guarded{Name: "ok"}))
	assert.EqualError(t, Validate(guarded{Name: "forbidden"}), "name is reserved")
	assert.Error(t, Validate(guarded{}))
}

func TestValidate_NotStruct(t *testing.T) {
	assert.True(t, errx.IsType(Validate(42), errx.TypeInternal))
}

func TestRegisterValidationFunc(t *testing.T) {
	RegisterValidationFunc("even", func(value any, _ string) bool {
		n, ok := value.(int)
		return ok && n%2 == 0
	})

	type counter struct {
		N int `validatex:"even"`
	}
	assert.NoError(t, Validate(counter{N: 4}))
	assert.Error(t, Validate(counter{N: 3}))
}
