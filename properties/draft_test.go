package properties_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shuzaifak/Property-Sync-Owner/backend/backendfake"
	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

func image(name string) files.File {
	return files.File{Name: name, ContentType: "image/jpeg", Data: []byte(name)}
}

func ptr(f float64) *float64 { return &f }

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name     string
		fields   properties.Fields
		images   int
		expected properties.ValidationErrors
	}{
		{
			name:     "everything missing",
			fields:   properties.Fields{},
			expected: properties.ValidationErrors{"title": properties.Required, "address": properties.Required, "price": properties.Required, "images": properties.AtLeastOneImageRequired},
		},
		{
			name:     "blank text counts as missing",
			fields:   properties.Fields{Title: "   ", Address: "\t", Price: "100"},
			images:   1,
			expected: properties.ValidationErrors{"title": properties.Required, "address": properties.Required},
		},
		{
			name:     "zero price",
			fields:   properties.Fields{Title: "Flat", Address: "1 Road", Price: "0"},
			images:   1,
			expected: properties.ValidationErrors{"price": properties.MustBePositiveNumber},
		},
		{
			name:     "negative price",
			fields:   properties.Fields{Title: "Flat", Address: "1 Road", Price: "-5"},
			images:   1,
			expected: properties.ValidationErrors{"price": properties.MustBePositiveNumber},
		},
		{
			name:     "unparseable price",
			fields:   properties.Fields{Title: "Flat", Address: "1 Road", Price: "12abc"},
			images:   1,
			expected: properties.ValidationErrors{"price": properties.MustBePositiveNumber},
		},
		{
			name:     "valid",
			fields:   properties.Fields{Title: "Flat", Address: "1 Road", Price: "1500.50"},
			images:   2,
			expected: properties.ValidationErrors{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := properties.NewDraft()
			d.SetFields(tt.fields)
			for i := 0; i < tt.images; i++ {
				d.AttachImages([]files.File{image("img.jpg")})
			}
			require.Equal(t, tt.expected, d.Validate())
		})
	}
}

func TestValidationErrors_Message(t *testing.T) {
	errs := properties.ValidationErrors{
		"title":  properties.Required,
		"price":  properties.MustBePositiveNumber,
		"images": properties.AtLeastOneImageRequired,
	}
	require.Equal(t, "Title is required", errs.Message("title"))
	require.Equal(t, "Price must be a positive number", errs.Message("price"))
	require.Equal(t, "At least one image is required", errs.Message("images"))
	require.Empty(t, errs.Message("address"))
	require.Equal(t, "Price is required", properties.ValidationErrors{"price": properties.Required}.Message("price"))
}

func TestDraft_AttachImagesCap(t *testing.T) {
	t.Run("create mode keeps at most four", func(t *testing.T) {
		d := properties.NewDraft()
		kept := d.AttachImages([]files.File{image("1"), image("2"), image("3")})
		require.Equal(t, 3, kept)
		kept = d.AttachImages([]files.File{image("4"), image("5")})
		require.Equal(t, 1, kept)
		require.Equal(t, []string{"1", "2", "3", "4"}, d.View().NewImageNames)
		require.False(t, d.View().CanAddImages)
	})

	t.Run("existing images count toward the cap", func(t *testing.T) {
		api := backendfake.New()
		rec := api.AddProperty(properties.Record{Title: "Flat", Address: "1 Road", Price: ptr(10), Images: []string{"a", "b", "c"}})

		d := properties.NewDraft()
		require.NoError(t, d.Hydrate(context.Background(), api, rec.ID))
		require.Equal(t, 1, d.AttachImages([]files.File{image("1"), image("2")}))

		view := d.View()
		require.Len(t, view.ExistingImages, 3)
		require.Len(t, view.NewImageNames, 1)
	})

	t.Run("attaching clears the images error", func(t *testing.T) {
		d := properties.NewDraft()
		require.Contains(t, d.Validate(), "images")
		d.AttachImages([]files.File{image("1")})
		require.NotContains(t, d.View().Errors, "images")
	})
}

func TestDraft_RemoveImage(t *testing.T) {
	d := properties.NewDraft()
	d.AttachImages([]files.File{image("1"), image("2"), image("3")})

	require.True(t, d.RemoveImage(properties.NewImage, 1))
	require.Equal(t, []string{"1", "3"}, d.View().NewImageNames)
	require.False(t, d.RemoveImage(properties.NewImage, 5))
	require.False(t, d.RemoveImage(properties.ExistingImage, 0))

	f, ok := d.NewImageFile(1)
	require.True(t, ok)
	require.Equal(t, "3", f.Name)
}

func TestDraft_Hydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("fills the form", func(t *testing.T) {
		api := backendfake.New()
		rec := api.AddProperty(properties.Record{Title: "Flat", Address: "1 Road", Price: ptr(250000), Description: "Nice", Images: []string{"/uploads/a.jpg"}})

		d := properties.NewDraft()
		require.NoError(t, d.Hydrate(ctx, api, rec.ID))
		view := d.View()
		require.Equal(t, properties.ModeEdit, view.Mode)
		require.Equal(t, properties.StateHydrated, view.State)
		require.Equal(t, properties.Fields{Title: "Flat", Address: "1 Road", Price: "250000", Description: "Nice"}, view.Fields)
		require.Equal(t, []string{"/uploads/a.jpg"}, view.ExistingImages)
		require.True(t, view.Submittable)
	})

	t.Run("failure blocks submit", func(t *testing.T) {
		api := backendfake.New()
		d := properties.NewDraft()
		require.Error(t, d.Hydrate(ctx, api, "missing"))

		view := d.View()
		require.Equal(t, properties.MsgLoadFailed, view.PageError)
		require.False(t, view.Submittable)

		d.SetFields(properties.Fields{Title: "Flat", Address: "1 Road", Price: "10"})
		require.Error(t, d.Submit(ctx, api))
		require.Zero(t, api.CallCount(backendfake.OpUpdate))
	})

	t.Run("cancelled request leaves the draft untouched", func(t *testing.T) {
		api := backendfake.New()
		rec := api.AddProperty(properties.Record{Title: "Flat", Address: "1 Road", Price: ptr(1)})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		d := properties.NewDraft()
		require.ErrorIs(t, d.Hydrate(cctx, api, rec.ID), context.Canceled)
		require.Empty(t, d.View().Fields.Title)
		require.Empty(t, d.View().PageError)
	})
}

func TestDraft_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid draft never reaches the backend", func(t *testing.T) {
		api := backendfake.New()
		d := properties.NewDraft()
		d.SetFields(properties.Fields{Title: "Flat"})

		err := d.Submit(ctx, api)
		require.ErrorIs(t, err, apperrors.ErrValidation)
		require.Zero(t, api.CallCount(backendfake.OpCreate))
		require.Len(t, d.View().Errors, 3)
	})

	t.Run("create sends fields and files", func(t *testing.T) {
		api := backendfake.New()
		d := properties.NewDraft()
		d.SetFields(properties.Fields{Title: "Flat", Address: "1 Road", Price: " 1500.5 ", Description: "Nice"})
		d.AttachImages([]files.File{image("a.jpg"), image("b.jpg")})

		require.NoError(t, d.Submit(ctx, api))
		require.Len(t, api.Created, 1)
		p := api.Created[0]
		require.Equal(t, 1500.5, p.Price)
		require.Len(t, p.Images, 2)
		require.Nil(t, p.ExistingImages)
		require.Equal(t, properties.StateSuccess, d.View().State)
	})

	t.Run("edit sends retained existing images", func(t *testing.T) {
		api := backendfake.New()
		rec := api.AddProperty(properties.Record{Title: "Flat", Address: "1 Road", Price: ptr(10), Images: []string{"a", "b", "c"}})

		d := properties.NewDraft()
		require.NoError(t, d.Hydrate(ctx, api, rec.ID))
		d.RemoveImage(properties.ExistingImage, 1)
		d.AttachImages([]files.File{image("d.jpg")})

		require.NoError(t, d.Submit(ctx, api))
		p := api.Updated[rec.ID]
		require.Equal(t, []string{"a", "c"}, p.ExistingImages)
		require.Len(t, p.Images, 1)
		require.Equal(t, []string{"a", "c", "/d.jpg"}, api.Properties()[0].Images)
	})

	t.Run("edit may drop every image", func(t *testing.T) {
		api := backendfake.New()
		rec := api.AddProperty(properties.Record{Title: "Flat", Address: "1 Road", Price: ptr(10), Images: []string{"a"}})

		d := properties.NewDraft()
		require.NoError(t, d.Hydrate(ctx, api, rec.ID))
		d.RemoveImage(properties.ExistingImage, 0)
		require.Empty(t, d.Validate())
		require.NoError(t, d.Submit(ctx, api))
	})

	t.Run("server failure keeps the draft", func(t *testing.T) {
		api := backendfake.New()
		api.FailWithMessage(backendfake.OpCreate, 400, "Title already used")
		d := properties.NewDraft()
		d.SetFields(properties.Fields{Title: "Flat", Address: "1 Road", Price: "10"})
		d.AttachImages([]files.File{image("a.jpg")})

		require.ErrorIs(t, d.Submit(ctx, api), apperrors.ErrNetwork)
		view := d.View()
		require.Equal(t, properties.StateFailed, view.State)
		require.Equal(t, "Title already used", view.PageError)
		require.Equal(t, "Flat", view.Fields.Title)
		require.Len(t, view.NewImageNames, 1)
	})

	t.Run("failure without message uses the fallback", func(t *testing.T) {
		api := backendfake.New()
		api.FailWithMessage(backendfake.OpCreate, 500, "")
		d := properties.NewDraft()
		d.SetFields(properties.Fields{Title: "Flat", Address: "1 Road", Price: "10"})
		d.AttachImages([]files.File{image("a.jpg")})

		require.Error(t, d.Submit(ctx, api))
		require.Equal(t, properties.MsgSaveFailed, d.View().PageError)
	})
}

func TestRecord_DisplayPrice(t *testing.T) {
	require.Equal(t, "N/A", properties.Record{}.DisplayPrice())
	require.Equal(t, "1,250,000", properties.Record{Price: ptr(1250000)}.DisplayPrice())
	require.Equal(t, "999.5", properties.Record{Price: ptr(999.5)}.DisplayPrice())
	require.Equal(t, 0.0, properties.Record{}.PriceValue())
}
