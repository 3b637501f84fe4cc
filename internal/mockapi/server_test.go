package mockapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/libroteca/librocli/internal/models"
)

func startServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(opts...))
	t.Cleanup(server.Close)
	return server
}

func signin(t *testing.T, base, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(base+"/api/v1/auth/signin", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("signin returned %d", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out["token"]
}

func doAuth(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSignIn(t *testing.T) {
	server := startServer(t)

	if tok := signin(t, server.URL, DemoUserEmail, DemoUserPassword); tok == "" {
		t.Error("Expected token for valid credentials")
	}

	body, _ := json.Marshal(map[string]string{"email": DemoUserEmail, "password": "wrong"})
	resp, err := http.Post(server.URL+"/api/v1/auth/signin", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad credentials, got %d", resp.StatusCode)
	}
}

func TestBearerRequired(t *testing.T) {
	server := startServer(t)
	resp, err := http.Get(server.URL + "/api/v1/libros")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without bearer, got %d", resp.StatusCode)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	server := startServer(t, WithTokenTTL(-time.Minute))
	token := signin(t, server.URL, DemoUserEmail, DemoUserPassword)

	resp := doAuth(t, http.MethodGet, server.URL+"/api/v1/libros", token, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for expired token, got %d", resp.StatusCode)
	}
}

func TestAdminOnlyRoutes(t *testing.T) {
	server := startServer(t)
	userToken := signin(t, server.URL, DemoUserEmail, DemoUserPassword)

	libro := map[string]string{"titulo": "t", "autor": "a", "isbn": "i"}
	if resp := doAuth(t, http.MethodPost, server.URL+"/api/v1/libros", userToken, libro); resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 creating as user, got %d", resp.StatusCode)
	}
	if resp := doAuth(t, http.MethodGet, server.URL+"/api/v1/users", userToken, nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 listing users as user, got %d", resp.StatusCode)
	}
	if resp := doAuth(t, http.MethodGet, server.URL+"/api/v1/resources", userToken, nil); resp.StatusCode != http.StatusOK {
		t.Errorf("Expected resources readable by any authenticated user, got %d", resp.StatusCode)
	}
}

func TestPagingEnvelope(t *testing.T) {
	server := startServer(t)
	token := signin(t, server.URL, DemoUserEmail, DemoUserPassword)

	resp := doAuth(t, http.MethodGet, server.URL+"/api/v1/libros?page=0&size=4", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Content) != 4 || page.Number != 0 || page.TotalElements != 10 || page.TotalPages != 3 {
		t.Errorf("Unexpected first page: %+v", page)
	}
	if !page.First || page.Last {
		t.Errorf("Expected first=true last=false, got %+v", page)
	}

	resp = doAuth(t, http.MethodGet, server.URL+"/api/v1/libros?page=2&size=4", token, nil)
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Content) != 2 || !page.Last || page.First {
		t.Errorf("Unexpected last page: %+v", page)
	}
}

func TestLibroCRUD(t *testing.T) {
	server := startServer(t)
	token := signin(t, server.URL, DemoAdminEmail, DemoAdminPassword)

	created := models.Libro{}
	resp := doAuth(t, http.MethodPost, server.URL+"/api/v1/libros", token,
		map[string]string{"titulo": "Nuevo", "autor": "Autor", "isbn": "1234567890"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID <= 0 {
		t.Fatalf("Expected assigned id, got %d", created.ID)
	}

	url := fmt.Sprintf("%s/api/v1/libros/%d", server.URL, created.ID)

	var fetched models.Libro
	resp = doAuth(t, http.MethodGet, url, token, nil)
	if err := json.NewDecoder(resp.Body).Decode(&fetched); err != nil {
		t.Fatal(err)
	}
	if fetched != created {
		t.Errorf("Round trip mismatch: %+v vs %+v", fetched, created)
	}

	var updated models.Libro
	resp = doAuth(t, http.MethodPut, url, token,
		map[string]string{"titulo": "Cambiado", "autor": "Autor", "isbn": "1234567890"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 updating, got %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatal(err)
	}
	if updated.Titulo != "Cambiado" || updated.ID != created.ID {
		t.Errorf("Unexpected update result: %+v", updated)
	}

	if resp = doAuth(t, http.MethodDelete, url, token, nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204 deleting, got %d", resp.StatusCode)
	}
	if resp = doAuth(t, http.MethodGet, url, token, nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", resp.StatusCode)
	}

	resp = doAuth(t, http.MethodPost, server.URL+"/api/v1/libros", token,
		map[string]string{"titulo": "  ", "autor": "a", "isbn": "i"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank titulo, got %d", resp.StatusCode)
	}
}
