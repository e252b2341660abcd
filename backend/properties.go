package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/shuzaifak/Property-Sync-Owner/internal/errors"
	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
	"github.com/shuzaifak/Property-Sync-Owner/metrics"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
)

const (
	opListOwner = "list_owner_properties"
	opGet       = "get_property"
	opCreate    = "create_property"
	opUpdate    = "update_property"
	opDelete    = "delete_property"
)

var _ properties.API = (*Client)(nil)

// ListOwnerProperties returns the signed-in owner's properties.
// Anything but a JSON array is ErrDataShape.
func (c *Client) ListOwnerProperties(ctx context.Context) ([]properties.Record, error) {
	body, err := c.do(ctx, request{
		op:       opListOwner,
		method:   http.MethodGet,
		path:     "/properties/owner",
		fallback: properties.MsgListFailed,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords(opListOwner, body)
}

// GetProperty loads one property; the backend answers with a one-element array
func (c *Client) GetProperty(ctx context.Context, id string) (properties.Record, error) {
	body, err := c.do(ctx, request{
		op:       opGet,
		method:   http.MethodGet,
		path:     "/properties?" + url.Values{"id": {id}}.Encode(),
		fallback: properties.MsgLoadFailed,
	})
	if err != nil {
		return properties.Record{}, err
	}
	records, err := decodeRecords(opGet, body)
	if err != nil {
		return properties.Record{}, err
	}
	if len(records) == 0 {
		return properties.Record{}, apperrors.Wrapf(apperrors.ErrNotFound, "[%s] %s", opGet, id)
	}
	return records[0], nil
}

func (c *Client) CreateProperty(ctx context.Context, p properties.Payload) (properties.Record, error) {
	return c.saveProperty(ctx, opCreate, http.MethodPost, "/properties", p, false)
}

// UpdateProperty replaces a property. Retained images go as repeated
// existingImages fields next to the new uploads.
func (c *Client) UpdateProperty(ctx context.Context, id string, p properties.Payload) (properties.Record, error) {
	return c.saveProperty(ctx, opUpdate, http.MethodPut, "/properties/"+url.PathEscape(id), p, true)
}

func (c *Client) DeleteProperty(ctx context.Context, id string) error {
	_, err := c.do(ctx, request{
		op:       opDelete,
		method:   http.MethodDelete,
		path:     "/properties/" + url.PathEscape(id),
		fallback: properties.MsgDeleteFailed,
	})
	return err
}

func (c *Client) saveProperty(ctx context.Context, op, method, path string, p properties.Payload, withExisting bool) (properties.Record, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writePropertyForm(mw, p, withExisting); err != nil {
		return properties.Record{}, apperrors.Wrapf(err, "[%s] encode", op)
	}

	body, err := c.do(ctx, request{
		op:          op,
		method:      method,
		path:        path,
		body:        &buf,
		contentType: mw.FormDataContentType(),
		fallback:    properties.MsgSaveFailed,
	})
	if err != nil {
		return properties.Record{}, err
	}

	// Some deployments answer with an empty body or a wrapper; the saved
	// record is informational only
	var rec properties.Record
	if len(bytes.TrimSpace(body)) > 0 {
		_ = json.Unmarshal(body, &rec)
	}
	return rec, nil
}

func writePropertyForm(mw *multipart.Writer, p properties.Payload, withExisting bool) error {
	fields := [][2]string{
		{"title", p.Title},
		{"address", p.Address},
		{"price", strconv.FormatFloat(p.Price, 'f', -1, 64)},
		{"description", p.Description},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	if withExisting {
		for _, img := range p.ExistingImages {
			if err := mw.WriteField("existingImages", img); err != nil {
				return err
			}
		}
	}
	for _, img := range p.Images {
		if err := writeFile(mw, "images", img); err != nil {
			return err
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// writeFile adds a file part that keeps the upload's content type
func writeFile(mw *multipart.Writer, field string, f files.File) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
	ctype := f.ContentType
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	h.Set("Content-Type", ctype)
	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = w.Write(f.Data)
	return err
}

// decodeRecords accepts only a JSON array of properties
func decodeRecords(op string, body []byte) ([]properties.Record, error) {
	var raw json.RawMessage
	if err := decode(op, body, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		metrics.BackendRequestsTotal.WithLabelValues(op, "bad_shape").Inc()
		return nil, fmt.Errorf("[%s] %w: expected an array", op, apperrors.ErrDataShape)
	}
	var records []properties.Record
	if err := decode(op, trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}
