// Package backendfake is an in-memory stand-in for the backend API, for tests.
package backendfake

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/shuzaifak/Property-Sync-Owner/backend"
	"github.com/shuzaifak/Property-Sync-Owner/internal/files"
	"github.com/shuzaifak/Property-Sync-Owner/properties"
	"github.com/shuzaifak/Property-Sync-Owner/users"
)

// Operation names used to inject failures
const (
	OpLogin        = "login"
	OpRegister     = "register"
	OpUploadAvatar = "upload_avatar"
	OpList         = "list_owner_properties"
	OpGet          = "get_property"
	OpCreate       = "create_property"
	OpUpdate       = "update_property"
	OpDelete       = "delete_property"
)

type account struct {
	user     users.User
	password string
}

// Fake implements properties.API and users.API
type Fake struct {
	mu sync.Mutex

	accounts   map[string]account
	properties []properties.Record
	failures   map[string]error

	// Current is the user returned by UploadAvatar
	Current users.User
	// Token is handed out on login
	Token string

	Created []properties.Payload
	Updated map[string]properties.Payload
	Deleted []string
	Calls   []string
}

// New returns an empty fake
func New() *Fake {
	return &Fake{
		accounts: map[string]account{},
		failures: map[string]error{},
		Updated:  map[string]properties.Payload{},
		Token:    "fake-token",
	}
}

// AddUser registers an account that Login will accept
func (f *Fake) AddUser(u users.User, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[u.Email] = account{user: u, password: password}
}

// AddProperty seeds a property and returns it with an id
func (f *Fake) AddProperty(r properties.Record) properties.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	f.properties = append(f.properties, r)
	return r
}

// Fail makes every later call of op return err. A nil err clears it.
func (f *Fake) Fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

// FailWithMessage fails op like a non-2xx backend response carrying message
func (f *Fake) FailWithMessage(op string, status int, message string) {
	f.Fail(op, &backend.Error{Status: status, Message: message})
}

// Properties returns a copy of the stored properties
func (f *Fake) Properties() []properties.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]properties.Record(nil), f.properties...)
}

// CallCount returns how often op was called
func (f *Fake) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *Fake) begin(op string) error {
	f.Calls = append(f.Calls, op)
	return f.failures[op]
}

func (f *Fake) Login(_ context.Context, in users.LoginInput) (users.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpLogin); err != nil {
		return users.LoginResult{}, err
	}
	acc, ok := f.accounts[in.Email]
	if !ok || acc.password != in.Password {
		return users.LoginResult{}, &backend.Error{Status: 401, Message: "Invalid email or password"}
	}
	f.Current = acc.user
	return users.LoginResult{User: acc.user, Token: f.Token}, nil
}

func (f *Fake) Register(_ context.Context, in users.RegisterInput) (users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpRegister); err != nil {
		return users.User{}, err
	}
	if _, exists := f.accounts[in.Email]; exists {
		return users.User{}, &backend.Error{Status: 400, Message: "User already exists"}
	}
	u := users.User{ID: uuid.NewString(), Name: in.Name, Email: in.Email, Role: in.Role}
	f.accounts[in.Email] = account{user: u, password: in.Password}
	return u, nil
}

func (f *Fake) UploadAvatar(_ context.Context, avatar files.File) (users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpUploadAvatar); err != nil {
		return users.User{}, err
	}
	f.Current.Avatar = "/uploads/avatars/" + avatar.Name
	if acc, ok := f.accounts[f.Current.Email]; ok {
		acc.user = f.Current
		f.accounts[f.Current.Email] = acc
	}
	return f.Current, nil
}

func (f *Fake) ListOwnerProperties(context.Context) ([]properties.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpList); err != nil {
		return nil, err
	}
	return append([]properties.Record{}, f.properties...), nil
}

func (f *Fake) GetProperty(_ context.Context, id string) (properties.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpGet); err != nil {
		return properties.Record{}, err
	}
	if i := f.indexOf(id); i >= 0 {
		return f.properties[i], nil
	}
	return properties.Record{}, &backend.Error{Status: 404, Message: "Property not found"}
}

func (f *Fake) CreateProperty(_ context.Context, p properties.Payload) (properties.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpCreate); err != nil {
		return properties.Record{}, err
	}
	f.Created = append(f.Created, p)
	rec := recordFrom(uuid.NewString(), p, nil)
	f.properties = append(f.properties, rec)
	return rec, nil
}

func (f *Fake) UpdateProperty(_ context.Context, id string, p properties.Payload) (properties.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpUpdate); err != nil {
		return properties.Record{}, err
	}
	i := f.indexOf(id)
	if i < 0 {
		return properties.Record{}, &backend.Error{Status: 404, Message: "Property not found"}
	}
	f.Updated[id] = p
	rec := recordFrom(id, p, p.ExistingImages)
	rec.IsOccupied = f.properties[i].IsOccupied
	f.properties[i] = rec
	return rec, nil
}

func (f *Fake) DeleteProperty(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(OpDelete); err != nil {
		return err
	}
	i := f.indexOf(id)
	if i < 0 {
		return &backend.Error{Status: 404, Message: "Property not found"}
	}
	f.properties = append(f.properties[:i:i], f.properties[i+1:]...)
	f.Deleted = append(f.Deleted, id)
	return nil
}

func (f *Fake) indexOf(id string) int {
	for i, r := range f.properties {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func recordFrom(id string, p properties.Payload, kept []string) properties.Record {
	price := p.Price
	images := append([]string{}, kept...)
	for _, img := range p.Images {
		images = append(images, fmt.Sprintf("/%s", img.Name))
	}
	return properties.Record{
		ID:          id,
		Title:       p.Title,
		Address:     p.Address,
		Price:       &price,
		Description: p.Description,
		Images:      images,
	}
}
