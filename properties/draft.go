package properties

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
	"github.com/shuzaifak/Property-Sync-Owner/internal/validation"
)

// MaxImages caps existing plus new images on one property
const MaxImages = 4

const (
	MsgLoadFailed = "Failed to load property details"
	MsgSaveFailed = "Failed to save property"
)

// Mode says whether a draft creates a new property or edits one
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// State of a draft
type State string

const (
	StateEmpty      State = "empty"
	StateHydrating  State = "hydrating"
	StateHydrated   State = "hydrated"
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// ImageKind selects which image list RemoveImage works on
type ImageKind string

const (
	ExistingImage ImageKind = "existing"
	NewImage      ImageKind = "new"
)

// Fields are the text inputs of the property form
type Fields struct {
	Title       string
	Address     string
	Price       string // raw input, parsed on submit
	Description string
}

// Draft is the in-progress state of the add/edit property form.
// It is safe for concurrent use.
type Draft struct {
	mu sync.Mutex

	id         string
	mode       Mode
	propertyID string
	state      State
	hydrated   bool

	fields    Fields
	existing  []string
	newImages []files.File

	errs      ValidationErrors
	pageError string
}

// NewDraft starts an empty create-mode draft
func NewDraft() *Draft {
	return &Draft{
		id:    uuid.NewString(),
		mode:  ModeCreate,
		state: StateEmpty,
		errs:  ValidationErrors{},
	}
}

// ID identifies the draft for image previews
func (d *Draft) ID() string { return d.id }

// Hydrate switches the draft to edit mode and loads the property.
// On failure the draft keeps no data and cannot be submitted.
func (d *Draft) Hydrate(ctx context.Context, api Fetcher, propertyID string) error {
	d.mu.Lock()
	d.mode = ModeEdit
	d.propertyID = propertyID
	d.state = StateHydrating
	d.hydrated = false
	d.pageError = ""
	d.mu.Unlock()

	rec, err := api.GetProperty(ctx, propertyID)
	if ctx.Err() != nil {
		// caller went away, result is discarded
		return ctx.Err()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		log.Err(err).Str("property", propertyID).Msg("Failed to fetch property")
		d.state = StateEmpty
		d.pageError = MsgLoadFailed
		return apperrors.Wrapf(err, "[Draft Hydrate] %s", propertyID)
	}

	d.fields = Fields{
		Title:       rec.Title,
		Address:     rec.Address,
		Description: rec.Description,
	}
	if rec.Price != nil {
		d.fields.Price = strconv.FormatFloat(*rec.Price, 'f', -1, 64)
	}
	d.existing = append([]string(nil), rec.Images...)
	d.newImages = nil
	d.errs = ValidationErrors{}
	d.hydrated = true
	d.state = StateHydrated
	return nil
}

// SetFields replaces the text inputs
func (d *Draft) SetFields(f Fields) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields = f
	d.toEditing()
}

// AttachImages appends files while the total stays within MaxImages.
// Files past the cap are dropped. It returns how many were kept.
func (d *Draft) AttachImages(fs []files.File) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := 0
	for _, f := range fs {
		if len(d.existing)+len(d.newImages) >= MaxImages {
			break
		}
		d.newImages = append(d.newImages, f)
		kept++
	}
	if len(fs) > 0 {
		delete(d.errs, FieldImages)
	}
	d.toEditing()
	return kept
}

// RemoveImage drops the image at index from the chosen list.
// Out of range indexes are ignored.
func (d *Draft) RemoveImage(kind ImageKind, index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch kind {
	case ExistingImage:
		if index < 0 || index >= len(d.existing) {
			return false
		}
		d.existing = append(d.existing[:index:index], d.existing[index+1:]...)
	case NewImage:
		if index < 0 || index >= len(d.newImages) {
			return false
		}
		d.newImages = append(d.newImages[:index:index], d.newImages[index+1:]...)
	default:
		return false
	}
	d.toEditing()
	return true
}

// Validate runs every form rule, stores and returns the failures
func (d *Draft) Validate() ValidationErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.validate()
}

func (d *Draft) validate() ValidationErrors {
	d.state = StateValidating
	d.errs = validateFields(draftInput{
		Title:   d.fields.Title,
		Address: d.fields.Address,
		Price:   d.fields.Price,
		Images:  len(d.existing) + len(d.newImages),
		Create:  d.mode == ModeCreate,
	})
	d.state = StateEditing
	return d.errs.clone()
}

// Submittable reports whether Submit may be attempted. Edit drafts must be
// hydrated first.
func (d *Draft) Submittable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submittable()
}

func (d *Draft) submittable() bool {
	return d.mode == ModeCreate || d.hydrated
}

// Submit validates and sends the draft. Validation failures never reach api.
func (d *Draft) Submit(ctx context.Context, api Saver) error {
	d.mu.Lock()
	d.pageError = ""
	if !d.submittable() {
		d.pageError = MsgLoadFailed
		d.mu.Unlock()
		return apperrors.Wrapf(apperrors.ErrNotFound, "[Draft Submit] property %s not loaded", d.propertyID)
	}
	if errs := d.validate(); len(errs) > 0 {
		d.mu.Unlock()
		return apperrors.Wrapf(apperrors.ErrValidation, "[Draft Submit] %d field(s)", len(errs))
	}

	price, _ := validation.ParsePositiveNumber(d.fields.Price)
	payload := Payload{
		Title:       d.fields.Title,
		Address:     d.fields.Address,
		Price:       price,
		Description: d.fields.Description,
		Images:      append([]files.File(nil), d.newImages...),
	}
	mode, id := d.mode, d.propertyID
	if mode == ModeEdit {
		payload.ExistingImages = append([]string{}, d.existing...)
	}
	d.state = StateSubmitting
	d.mu.Unlock()

	var err error
	if mode == ModeEdit {
		_, err = api.UpdateProperty(ctx, id, payload)
	} else {
		_, err = api.CreateProperty(ctx, payload)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if ctx.Err() != nil {
		d.state = StateEditing
		return ctx.Err()
	}
	if err != nil {
		log.Err(err).Str("mode", string(mode)).Msg("Failed to save property")
		d.state = StateFailed
		d.pageError = apperrors.MessageOr(err, MsgSaveFailed)
		return apperrors.Wrapf(err, "[Draft Submit] %s", mode)
	}
	d.state = StateSuccess
	d.newImages = nil
	return nil
}

// NewImageFile returns the pending upload at index for previews
func (d *Draft) NewImageFile(index int) (files.File, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.newImages) {
		return files.File{}, false
	}
	return d.newImages[index], true
}

// View is a read-only copy of the draft for rendering
type View struct {
	ID             string
	Mode           Mode
	PropertyID     string
	State          State
	Fields         Fields
	ExistingImages []string
	NewImageNames  []string
	Errors         ValidationErrors
	PageError      string
	CanAddImages   bool
	Submittable    bool
}

// View snapshots the draft
func (d *Draft) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, len(d.newImages))
	for i, f := range d.newImages {
		names[i] = f.Name
	}
	return View{
		ID:             d.id,
		Mode:           d.mode,
		PropertyID:     d.propertyID,
		State:          d.state,
		Fields:         d.fields,
		ExistingImages: append([]string(nil), d.existing...),
		NewImageNames:  names,
		Errors:         d.errs.clone(),
		PageError:      d.pageError,
		CanAddImages:   len(d.existing)+len(d.newImages) < MaxImages,
		Submittable:    d.submittable(),
	}
}

func (d *Draft) toEditing() {
	if d.state != StateSubmitting {
		d.state = StateEditing
	}
}

func (v ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, c := range v {
		out[k] = c
	}
	return out
}
