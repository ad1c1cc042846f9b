package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/shared/config"
	"fleetdesk/internal/shared/logger"
)

const (
	testRealm      = "test"
	adminToken     = "service-account-token"
	aliceAccess    = "alice-access"
	aliceRefresh   = "alice-refresh"
	defaultRoleRep = "default-roles-test"
)

// fakeKeycloak is an in-memory provider covering the endpoints the client uses.
type fakeKeycloak struct {
	mu        sync.Mutex
	users     map[string]*userRepresentation
	passwords map[string]string
	roles     map[string]identity.Role
	mappings  map[string]map[string]bool
	calls     []string
}

func newFakeKeycloak() *fakeKeycloak {
	f := &fakeKeycloak{
		users:     map[string]*userRepresentation{},
		passwords: map[string]string{},
		roles:     map[string]identity.Role{},
		mappings:  map[string]map[string]bool{},
	}
	for _, name := range []string{"admin", "GPolicy", "Helpdesk", "offline_access", "uma_authorization", defaultRoleRep} {
		f.roles[name] = identity.Role{ID: uuid.NewString(), Name: name}
	}
	return f
}

func (f *fakeKeycloak) addUser(username, first, last string, roles ...string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.users[id] = &userRepresentation{
		ID: id, Username: username, FirstName: first, LastName: last,
		Enabled: true, CreatedTimestamp: 1710061200000,
	}
	f.mappings[id] = map[string]bool{defaultRoleRep: true}
	for _, r := range roles {
		f.mappings[id][r] = true
	}
	return id
}

func (f *fakeKeycloak) roleNames(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for name := range f.mappings[userID] {
		out = append(out, name)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeKeycloak) handler() http.Handler {
	mux := http.NewServeMux()
	openid := "/realms/" + testRealm + "/protocol/openid-connect"
	admin := "/admin/realms/" + testRealm

	mux.HandleFunc("POST "+openid+"/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		switch r.PostForm.Get("grant_type") {
		case "client_credentials":
			writeJSON(w, 200, map[string]any{"access_token": adminToken, "token_type": "Bearer", "expires_in": 300})
		case "password":
			if r.PostForm.Get("username") == "alice" && r.PostForm.Get("password") == "secret" {
				writeJSON(w, 200, map[string]any{"access_token": aliceAccess, "refresh_token": aliceRefresh, "token_type": "Bearer", "expires_in": 300})
				return
			}
			writeJSON(w, 401, map[string]any{"error": "invalid_grant", "error_description": "Invalid user credentials"})
		case "refresh_token":
			if r.PostForm.Get("refresh_token") == aliceRefresh {
				writeJSON(w, 200, map[string]any{"access_token": "alice-access-2", "refresh_token": "alice-refresh-2", "token_type": "Bearer", "expires_in": 300})
				return
			}
			writeJSON(w, 400, map[string]any{"error": "invalid_grant", "error_description": "Token is not active"})
		default:
			writeJSON(w, 400, map[string]any{"error": "unsupported_grant_type"})
		}
	})

	mux.HandleFunc("POST "+openid+"/token/introspect", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.PostForm.Get("token") != aliceAccess {
			writeJSON(w, 200, map[string]any{"active": false})
			return
		}
		writeJSON(w, 200, map[string]any{
			"active": true, "username": "alice", "name": "Alice Smith", "sub": "alice-id",
			"realm_access": map[string]any{"roles": []string{"GPolicy", defaultRoleRep}},
		})
	})

	mux.HandleFunc("POST "+openid+"/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+adminToken {
				writeJSON(w, 401, map[string]any{"error": "HTTP 401 Unauthorized"})
				return
			}
			f.mu.Lock()
			f.calls = append(f.calls, r.Method+" "+strings.TrimPrefix(r.URL.Path, admin))
			f.mu.Unlock()
			next(w, r)
		}
	}

	mux.HandleFunc("GET "+admin+"/users", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []userRepresentation{}
		username := r.URL.Query().Get("username")
		for _, u := range f.users {
			if username == "" || u.Username == username {
				out = append(out, *u)
			}
		}
		writeJSON(w, 200, out)
	}))

	mux.HandleFunc("POST "+admin+"/users", guard(func(w http.ResponseWriter, r *http.Request) {
		var rep userRepresentation
		_ = json.NewDecoder(r.Body).Decode(&rep)
		id := f.addUser(rep.Username, rep.FirstName, rep.LastName)
		w.Header().Set("Location", "http://"+r.Host+admin+"/users/"+id)
		w.WriteHeader(http.StatusCreated)
	}))

	userByID := func(w http.ResponseWriter, r *http.Request) (*userRepresentation, bool) {
		f.mu.Lock()
		defer f.mu.Unlock()
		u, ok := f.users[r.PathValue("id")]
		if !ok {
			writeJSON(w, 404, map[string]any{"error": "User not found"})
		}
		return u, ok
	}

	mux.HandleFunc("GET "+admin+"/users/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := userByID(w, r); ok {
			writeJSON(w, 200, u)
		}
	}))

	mux.HandleFunc("PUT "+admin+"/users/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		u, ok := userByID(w, r)
		if !ok {
			return
		}
		var changes map[string]any
		_ = json.NewDecoder(r.Body).Decode(&changes)
		f.mu.Lock()
		if v, ok := changes["firstName"].(string); ok {
			u.FirstName = v
		}
		if v, ok := changes["lastName"].(string); ok {
			u.LastName = v
		}
		if v, ok := changes["enabled"].(bool); ok {
			u.Enabled = v
		}
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("DELETE "+admin+"/users/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userByID(w, r); ok {
			f.mu.Lock()
			delete(f.users, r.PathValue("id"))
			f.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		}
	}))

	mux.HandleFunc("PUT "+admin+"/users/{id}/reset-password", guard(func(w http.ResponseWriter, r *http.Request) {
		var cred credentialRepresentation
		_ = json.NewDecoder(r.Body).Decode(&cred)
		f.mu.Lock()
		f.passwords[r.PathValue("id")] = cred.Value
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("GET "+admin+"/users/{id}/role-mappings/realm", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []identity.Role{}
		for name := range f.mappings[r.PathValue("id")] {
			out = append(out, f.roles[name])
		}
		writeJSON(w, 200, out)
	}))

	changeMappings := func(assign bool) http.HandlerFunc {
		return guard(func(w http.ResponseWriter, r *http.Request) {
			var roles []identity.Role
			_ = json.NewDecoder(r.Body).Decode(&roles)
			f.mu.Lock()
			defer f.mu.Unlock()
			for _, role := range roles {
				if assign {
					f.mappings[r.PathValue("id")][role.Name] = true
				} else {
					delete(f.mappings[r.PathValue("id")], role.Name)
				}
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
	mux.HandleFunc("POST "+admin+"/users/{id}/role-mappings/realm", changeMappings(true))
	mux.HandleFunc("DELETE "+admin+"/users/{id}/role-mappings/realm", changeMappings(false))

	mux.HandleFunc("GET "+admin+"/roles", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []identity.Role{}
		for _, role := range f.roles {
			out = append(out, role)
		}
		writeJSON(w, 200, out)
	}))

	mux.HandleFunc("GET "+admin+"/roles/{name}", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		role, ok := f.roles[r.PathValue("name")]
		if !ok {
			writeJSON(w, 404, map[string]any{"error": "Could not find role"})
			return
		}
		writeJSON(w, 200, role)
	}))

	mux.HandleFunc("GET "+admin+"/roles-by-id/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, role := range f.roles {
			if role.ID == r.PathValue("id") {
				writeJSON(w, 200, role)
				return
			}
		}
		writeJSON(w, 404, map[string]any{"error": "Could not find role with id"})
	}))

	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeKeycloak, *httptest.Server) {
	t.Helper()
	fake := newFakeKeycloak()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := NewClient(config.IdentityConfig{
		URL:           srv.URL,
		Realm:         testRealm,
		ClientID:      "fleetdesk",
		ClientSecret:  "s3cret",
		ProtectedUser: "admin",
	}, logger.NewLogger())
	return client, fake, srv
}
