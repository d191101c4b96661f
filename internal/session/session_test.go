package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/me/tijara/internal/authn"
	"github.com/me/tijara/internal/credstore"
	"github.com/me/tijara/internal/logging"
	"github.com/me/tijara/pkg/platform"
)

// memStore is an in-memory credstore.Store for tests.
type memStore struct {
	m map[string]string
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string]string)}
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", credstore.ErrNotFound
	}
	return v, nil
}

func (s *memStore) Set(ctx context.Context, key, value string) error {
	s.m[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.m, key)
	return nil
}

func (s *memStore) Close() error { return nil }

// fakeProvider returns canned results.
type fakeProvider struct {
	loginRes    *platform.AuthResult
	loginErr    error
	registerRes *platform.AuthResult
	registerErr error
	refreshRes  *platform.AuthResult
	refreshErr  error
	calls       int
}

func (p *fakeProvider) Login(ctx context.Context, creds platform.Credentials) (*platform.AuthResult, error) {
	p.calls++
	return p.loginRes, p.loginErr
}

func (p *fakeProvider) Register(ctx context.Context, reg platform.Registration) (*platform.AuthResult, error) {
	p.calls++
	return p.registerRes, p.registerErr
}

func (p *fakeProvider) Refresh(ctx context.Context) (*platform.AuthResult, error) {
	p.calls++
	return p.refreshRes, p.refreshErr
}

// recorder captures notification and navigation side effects.
type recorder struct {
	successes []string
	errors    []string
	infos     []string
	routes    []string
}

func (r *recorder) Success(msg string) { r.successes = append(r.successes, msg) }
func (r *recorder) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recorder) Info(msg string)    { r.infos = append(r.infos, msg) }

func (r *recorder) NavigateTo(route string) error {
	r.routes = append(r.routes, route)
	return nil
}

func testUser() platform.User {
	return platform.User{
		ID:    "u1",
		Name:  "Aya",
		Email: "aya@example.com",
		Role:  platform.RoleSupplier,
	}
}

func newTestManager(store credstore.Store, provider authn.Provider, rec *recorder, opts Options) *Manager {
	return NewManager(store, provider, rec, rec, logging.Discard(), opts)
}

func TestManager_Login(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	provider := &fakeProvider{
		loginRes: &platform.AuthResult{User: testUser(), Token: "tok-1"},
	}
	m := newTestManager(store, provider, rec, Options{})

	if err := m.Login(context.Background(), "aya@example.com", "secret123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if !m.IsAuthenticated() {
		t.Error("not authenticated after login")
	}
	if got := m.Token(); got != "tok-1" {
		t.Errorf("Token() = %q, want tok-1", got)
	}
	if store.m[credstore.KeyToken] != "tok-1" {
		t.Error("token not persisted")
	}
	if store.m[credstore.KeyUser] == "" {
		t.Error("user not persisted")
	}
	if len(rec.routes) != 1 || rec.routes[0] != "/supplier" {
		t.Errorf("routes = %v, want [/supplier]", rec.routes)
	}
	if len(rec.successes) != 1 || rec.successes[0] != "Welcome Aya!" {
		t.Errorf("successes = %v", rec.successes)
	}
}

func TestManager_Login_Failure(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	provider := &fakeProvider{
		loginErr: &platform.Error{Op: "auth.login", Status: 401, Message: "Invalid credentials"},
	}
	m := newTestManager(store, provider, rec, Options{})

	if err := m.Login(context.Background(), "aya@example.com", "wrong"); err == nil {
		t.Fatal("expected error")
	}

	if m.IsAuthenticated() {
		t.Error("authenticated after failed login")
	}
	if len(store.m) != 0 {
		t.Errorf("storage written on failed login: %v", store.m)
	}
	if len(rec.routes) != 0 {
		t.Errorf("navigated on failed login: %v", rec.routes)
	}
	if len(rec.errors) != 1 || rec.errors[0] != "Invalid credentials" {
		t.Errorf("errors = %v, want server message", rec.errors)
	}
}

func TestManager_Login_DemoFallback(t *testing.T) {
	// Remote provider unreachable, demo chain takes over.
	store := newMemStore()
	rec := &recorder{}
	remote := &fakeProvider{
		loginErr: &platform.Error{Op: "auth.login", Status: 0, Message: "no response", Err: platform.ErrNoResponse},
	}
	chain := authn.NewChain(remote, authn.DemoProvider{})
	m := newTestManager(store, chain, rec, Options{})

	if err := m.Login(context.Background(), "merchant@demo.com", "password123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	user := m.User()
	if user == nil || user.Role != platform.RoleMerchant {
		t.Fatalf("user = %+v, want demo merchant", user)
	}
	if len(rec.routes) != 1 || rec.routes[0] != "/merchant" {
		t.Errorf("routes = %v, want [/merchant]", rec.routes)
	}
}

func TestManager_Login_NoFallbackOnRejection(t *testing.T) {
	// A definite rejection from the backend must not fall through to
	// the demo accounts, even with matching demo credentials.
	store := newMemStore()
	rec := &recorder{}
	remote := &fakeProvider{
		loginErr: &platform.Error{Op: "auth.login", Status: 401, Message: "Invalid credentials"},
	}
	chain := authn.NewChain(remote, authn.DemoProvider{})
	m := newTestManager(store, chain, rec, Options{})

	if err := m.Login(context.Background(), "merchant@demo.com", "password123"); err == nil {
		t.Fatal("expected rejection to propagate")
	}
	if m.IsAuthenticated() {
		t.Error("authenticated despite rejection")
	}
}

func TestManager_Register(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	provider := &fakeProvider{
		registerRes: &platform.AuthResult{User: testUser(), Token: "tok-r"},
	}
	m := newTestManager(store, provider, rec, Options{})

	err := m.Register(context.Background(), platform.Registration{
		Name:     "Aya",
		Email:    "aya@example.com",
		Password: "secret123",
		Role:     platform.RoleSupplier,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if !m.IsAuthenticated() {
		t.Error("not authenticated after register")
	}
	// Registration never navigates; the caller decides.
	if len(rec.routes) != 0 {
		t.Errorf("routes = %v, want none", rec.routes)
	}
}

func TestManager_Initialize_Rehydrates(t *testing.T) {
	store := newMemStore()
	user := testUser()
	data, _ := json.Marshal(user)
	store.m[credstore.KeyToken] = "tok-persisted"
	store.m[credstore.KeyUser] = string(data)

	// Provider must not be consulted without ValidateOnInit.
	provider := &fakeProvider{refreshErr: errors.New("should not be called")}
	rec := &recorder{}
	m := newTestManager(store, provider, rec, Options{})

	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if !m.IsAuthenticated() {
		t.Fatal("not authenticated after rehydration")
	}
	if got := m.Token(); got != "tok-persisted" {
		t.Errorf("Token() = %q", got)
	}
	if got := m.User(); got.Email != user.Email {
		t.Errorf("User() = %+v", got)
	}
	if provider.calls != 0 {
		t.Errorf("provider consulted %d times during offline rehydration", provider.calls)
	}
}

func TestManager_Initialize_Empty(t *testing.T) {
	m := newTestManager(newMemStore(), &fakeProvider{}, &recorder{}, Options{})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if m.IsAuthenticated() {
		t.Error("authenticated with empty storage")
	}
}

func TestManager_Initialize_CorruptUser(t *testing.T) {
	store := newMemStore()
	store.m[credstore.KeyToken] = "tok"
	store.m[credstore.KeyUser] = "{not json"

	m := newTestManager(store, &fakeProvider{}, &recorder{}, Options{})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if m.IsAuthenticated() {
		t.Error("authenticated with corrupt user record")
	}
	if len(store.m) != 0 {
		t.Errorf("corrupt state not cleared: %v", store.m)
	}
}

func TestManager_Initialize_OrphanedToken(t *testing.T) {
	store := newMemStore()
	store.m[credstore.KeyToken] = "tok"

	m := newTestManager(store, &fakeProvider{}, &recorder{}, Options{})
	if err := m.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	if m.IsAuthenticated() {
		t.Error("authenticated with token but no user record")
	}
	if len(store.m) != 0 {
		t.Errorf("orphaned token not cleared: %v", store.m)
	}
}

func TestManager_Logout(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	provider := &fakeProvider{
		loginRes: &platform.AuthResult{User: testUser(), Token: "tok-1"},
	}
	m := newTestManager(store, provider, rec, Options{})
	m.Login(context.Background(), "aya@example.com", "secret123")

	m.Logout(context.Background())

	if m.IsAuthenticated() {
		t.Error("authenticated after logout")
	}
	if len(store.m) != 0 {
		t.Errorf("storage not cleared: %v", store.m)
	}
	if rec.routes[len(rec.routes)-1] != LandingRoute {
		t.Errorf("routes = %v, want landing last", rec.routes)
	}

	// Logging out while anonymous is harmless.
	m.Logout(context.Background())
	if m.IsAuthenticated() {
		t.Error("authenticated after double logout")
	}
}

func TestManager_UpdateUser(t *testing.T) {
	store := newMemStore()
	provider := &fakeProvider{
		loginRes: &platform.AuthResult{User: testUser(), Token: "tok-1"},
	}
	m := newTestManager(store, provider, &recorder{}, Options{})
	m.Login(context.Background(), "aya@example.com", "secret123")

	name := "Aya Updated"
	phone := "+123456"
	if err := m.UpdateUser(context.Background(), platform.UserPatch{Name: &name, Phone: &phone}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	user := m.User()
	if user.Name != "Aya Updated" || user.Phone != "+123456" {
		t.Errorf("user = %+v", user)
	}
	// Untouched fields survive the merge.
	if user.Email != "aya@example.com" {
		t.Errorf("email lost in merge: %q", user.Email)
	}

	var persisted platform.User
	if err := json.Unmarshal([]byte(store.m[credstore.KeyUser]), &persisted); err != nil {
		t.Fatalf("persisted user unreadable: %v", err)
	}
	if persisted.Name != "Aya Updated" {
		t.Errorf("persisted name = %q", persisted.Name)
	}
	// Token stays as it was.
	if store.m[credstore.KeyToken] != "tok-1" {
		t.Error("token changed by profile update")
	}
}

func TestManager_UpdateUser_Anonymous(t *testing.T) {
	m := newTestManager(newMemStore(), &fakeProvider{}, &recorder{}, Options{})
	name := "x"
	if err := m.UpdateUser(context.Background(), platform.UserPatch{Name: &name}); err != nil {
		t.Fatalf("UpdateUser() on anonymous session error = %v", err)
	}
}

func TestManager_RefreshToken_FailClosed(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	provider := &fakeProvider{
		loginRes:   &platform.AuthResult{User: testUser(), Token: "tok-1"},
		refreshErr: &platform.Error{Op: "auth.refresh", Status: 401, Message: "expired"},
	}
	m := newTestManager(store, provider, rec, Options{})
	m.Login(context.Background(), "aya@example.com", "secret123")

	if err := m.RefreshToken(context.Background()); err == nil {
		t.Fatal("expected refresh failure")
	}

	if m.IsAuthenticated() {
		t.Error("still authenticated after failed refresh")
	}
	if len(store.m) != 0 {
		t.Errorf("storage not cleared: %v", store.m)
	}
}

func TestManager_RefreshToken_Success(t *testing.T) {
	store := newMemStore()
	provider := &fakeProvider{
		loginRes:   &platform.AuthResult{User: testUser(), Token: "tok-1"},
		refreshRes: &platform.AuthResult{User: testUser(), Token: "tok-2"},
	}
	m := newTestManager(store, provider, &recorder{}, Options{})
	m.Login(context.Background(), "aya@example.com", "secret123")

	if err := m.RefreshToken(context.Background()); err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if got := m.Token(); got != "tok-2" {
		t.Errorf("Token() = %q, want tok-2", got)
	}
	if store.m[credstore.KeyToken] != "tok-2" {
		t.Error("refreshed token not persisted")
	}
}

func TestManager_RefreshToken_Anonymous(t *testing.T) {
	provider := &fakeProvider{refreshErr: errors.New("should not be called")}
	m := newTestManager(newMemStore(), provider, &recorder{}, Options{})

	if err := m.RefreshToken(context.Background()); err != nil {
		t.Fatalf("RefreshToken() on anonymous session error = %v", err)
	}
	if provider.calls != 0 {
		t.Error("provider consulted for anonymous refresh")
	}
}

func TestManager_HandleUnauthorized(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	provider := &fakeProvider{
		loginRes: &platform.AuthResult{User: testUser(), Token: "tok-1"},
	}
	m := newTestManager(store, provider, rec, Options{})
	m.Login(context.Background(), "aya@example.com", "secret123")

	m.HandleUnauthorized()

	if m.IsAuthenticated() {
		t.Error("authenticated after 401 handling")
	}
	if len(store.m) != 0 {
		t.Errorf("storage not cleared: %v", store.m)
	}
	if rec.routes[len(rec.routes)-1] != LoginRoute {
		t.Errorf("routes = %v, want login last", rec.routes)
	}
	if len(rec.errors) == 0 || rec.errors[len(rec.errors)-1] != "Your session has expired, please log in again" {
		t.Errorf("errors = %v", rec.errors)
	}
}

func TestManager_UserReturnsCopy(t *testing.T) {
	provider := &fakeProvider{
		loginRes: &platform.AuthResult{User: testUser(), Token: "tok-1"},
	}
	m := newTestManager(newMemStore(), provider, &recorder{}, Options{})
	m.Login(context.Background(), "aya@example.com", "secret123")

	u := m.User()
	u.Name = "mutated"
	if m.User().Name == "mutated" {
		t.Error("User() exposes internal state")
	}
}
