package validation_test

import (
	"errors"
	"strings"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title string `validate:"notblank"`
	Body  string `validate:"notblank,max=5"`
}

func TestNotBlank(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(sample{Title: "x", Body: "ok"}))
	assert.Error(t, v.Struct(sample{Title: "", Body: "ok"}))
	assert.Error(t, v.Struct(sample{Title: " \t\n", Body: "ok"}))
}

func TestClassify(t *testing.T) {
	v := validation.New()

	assert.Nil(t, validation.Classify(nil))
	assert.ErrorIs(t, validation.Classify(v.Struct(sample{Title: " ", Body: "ok"})), domain.ErrMissingFields)
	assert.ErrorIs(t, validation.Classify(v.Struct(sample{Title: "x", Body: "too long"})), domain.ErrMessageTooLong)
	assert.ErrorIs(t, validation.Classify(v.Struct(sample{Title: "", Body: strings.Repeat("a", 10)})), domain.ErrMissingFields)

	other := errors.New("boom")
	assert.Equal(t, other, validation.Classify(other))
}
