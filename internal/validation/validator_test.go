package validation_test

import (
	"testing"

	"github.com/shuzaifak/Property-Sync-Owner/internal/validation"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `form:"name" validate:"notblank"`
	Price string `form:"price" validate:"required,positive_number"`
}

func TestFieldTags(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tags, err := validation.FieldTags(sample{Name: "x", Price: "10"})
		require.NoError(t, err)
		require.Nil(t, tags)
	})

	t.Run("collects every field", func(t *testing.T) {
		tags, err := validation.FieldTags(sample{Name: "   ", Price: ""})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"name": "notblank", "price": "required"}, tags)
	})

	t.Run("non numeric price", func(t *testing.T) {
		tags, err := validation.FieldTags(sample{Name: "x", Price: "abc"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"price": "positive_number"}, tags)
	})
}

func TestParsePositiveNumber(t *testing.T) {
	for _, s := range []string{"-5", "0", "abc", "NaN", "Inf", " "} {
		_, ok := validation.ParsePositiveNumber(s)
		require.False(t, ok, s)
	}
	f, ok := validation.ParsePositiveNumber(" 12.5 ")
	require.True(t, ok)
	require.Equal(t, 12.5, f)
}
