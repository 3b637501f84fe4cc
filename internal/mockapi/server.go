// Package mockapi is a seeded, in-memory stand-in for the library REST
// backend. It exists so the console can be exercised end-to-end without a
// real deployment; it persists nothing and is not a substitute for the
// production API.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/libroteca/librocli/internal/models"
)

// Demo accounts, matching the seed data the real backend ships in its
// demo profile.
const (
	DemoUserEmail     = "alice.johnson@example.com"
	DemoUserPassword  = "password123"
	DemoAdminEmail    = "bob.smith@example.com"
	DemoAdminPassword = "password456"
)

type Server struct {
	router   *mux.Router
	secret   []byte
	tokenTTL time.Duration
	instance string
	libros   *libroStore
	users    *userStore
}

type Option func(*Server)

func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		secret:   []byte("librocli-demo-secret"),
		tokenTTL: time.Hour,
		instance: uuid.NewString(),
		libros:   newLibroStore(),
		users:    newUserStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/auth/signin", s.handleSignIn).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/libros", s.authenticated(s.handleListLibros, false)).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/libros", s.authenticated(s.handleCreateLibro, true)).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/libros/{id:[0-9]+}", s.authenticated(s.handleGetLibro, false)).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/libros/{id:[0-9]+}", s.authenticated(s.handleUpdateLibro, true)).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/libros/{id:[0-9]+}", s.authenticated(s.handleDeleteLibro, true)).Methods(http.MethodDelete)
	r.HandleFunc("/api/v1/users", s.authenticated(s.handleListUsers, true)).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/resources", s.authenticated(s.handleResources, false)).Methods(http.MethodGet)
	s.router = r
}

func (s *Server) seed() {
	if err := s.users.Add(DemoUserEmail, "Alice Johnson", DemoUserPassword, []string{"ROLE_USER"}); err != nil {
		slog.Error("Unable to seed demo user", "err", err)
	}
	if err := s.users.Add(DemoAdminEmail, "Bob Smith", DemoAdminPassword, []string{"ROLE_ADMIN", "ROLE_USER"}); err != nil {
		slog.Error("Unable to seed demo admin", "err", err)
	}
	for _, libro := range seedLibros {
		s.libros.Create(libro)
	}
}

var seedLibros = []models.Libro{
	{Titulo: "La sombra del viento", Autor: "Carlos Ruiz Zafón", Isbn: "8408043641"},
	{Titulo: "Cien años de soledad", Autor: "Gabriel García Márquez", Isbn: "8497592208"},
	{Titulo: "Don Quijote de la Mancha", Autor: "Miguel de Cervantes", Isbn: "8420412147"},
	{Titulo: "Rayuela", Autor: "Julio Cortázar", Isbn: "8437604572"},
	{Titulo: "La casa de los espíritus", Autor: "Isabel Allende", Isbn: "8401242193"},
	{Titulo: "Ficciones", Autor: "Jorge Luis Borges", Isbn: "8420633127"},
	{Titulo: "Pedro Páramo", Autor: "Juan Rulfo", Isbn: "8437600812"},
	{Titulo: "El amor en los tiempos del cólera", Autor: "Gabriel García Márquez", Isbn: "8497592457"},
	{Titulo: "La ciudad y los perros", Autor: "Mario Vargas Llosa", Isbn: "8420471836"},
	{Titulo: "Nada", Autor: "Carmen Laforet", Isbn: "8423342793"},
}

// signToken issues an HS256 token with the claim shapes the console's
// role derivation understands.
func (s *Server) signToken(usuario models.Usuario) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    usuario.Email,
		"email":  usuario.Email,
		"nombre": usuario.Nombre,
		"roles":  usuario.Roles,
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authenticated(next http.HandlerFunc, adminOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeError(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			s.writeError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}
		if adminOnly && !hasRole(claims, "ROLE_ADMIN") {
			s.writeError(w, "admin role required", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

func hasRole(claims jwt.MapClaims, role string) bool {
	list, ok := claims["roles"].([]any)
	if !ok {
		return false
	}
	for _, v := range list {
		if v == role {
			return true
		}
	}
	return false
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	usuario, ok := s.users.Authenticate(req.Email, req.Password)
	if !ok {
		s.writeError(w, "bad credentials", http.StatusUnauthorized)
		return
	}
	token, err := s.signToken(usuario)
	if err != nil {
		s.writeError(w, "unable to sign token", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// pageResponse mirrors the Spring Data page envelope.
type pageResponse struct {
	Content       []models.Libro `json:"content"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	First         bool           `json:"first"`
	Last          bool           `json:"last"`
}

func (s *Server) handleListLibros(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)
	if size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}

	content, total := s.libros.Page(page, size)
	totalPages := int((total + int64(size) - 1) / int64(size))
	s.writeJSON(w, http.StatusOK, pageResponse{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         page == 0,
		Last:          totalPages == 0 || page >= totalPages-1,
	})
}

func (s *Server) handleCreateLibro(w http.ResponseWriter, r *http.Request) {
	libro, ok := s.decodeLibro(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusCreated, s.libros.Create(libro))
}

func (s *Server) handleGetLibro(w http.ResponseWriter, r *http.Request) {
	libro, ok := s.libros.Get(pathID(r))
	if !ok {
		s.writeError(w, "libro no encontrado", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, libro)
}

func (s *Server) handleUpdateLibro(w http.ResponseWriter, r *http.Request) {
	libro, ok := s.decodeLibro(w, r)
	if !ok {
		return
	}
	updated, ok := s.libros.Replace(pathID(r), libro)
	if !ok {
		s.writeError(w, "libro no encontrado", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteLibro(w http.ResponseWriter, r *http.Request) {
	if !s.libros.Delete(pathID(r)) {
		s.writeError(w, "libro no encontrado", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.users.All())
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service":   "librocli demo api",
		"instance":  s.instance,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    "ok",
		"endpoints": []string{
			"/api/v1/auth/signin",
			"/api/v1/libros",
			"/api/v1/users",
			"/api/v1/resources",
		},
	})
}

func (s *Server) decodeLibro(w http.ResponseWriter, r *http.Request) (models.Libro, bool) {
	var libro models.Libro
	if err := json.NewDecoder(r.Body).Decode(&libro); err != nil {
		s.writeError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return models.Libro{}, false
	}
	libro.Titulo = strings.TrimSpace(libro.Titulo)
	libro.Autor = strings.TrimSpace(libro.Autor)
	libro.Isbn = strings.TrimSpace(libro.Isbn)
	if libro.Titulo == "" || libro.Autor == "" || libro.Isbn == "" {
		s.writeError(w, "titulo, autor and isbn are required", http.StatusBadRequest)
		return models.Libro{}, false
	}
	libro.ID = 0
	return libro, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, code int) {
	s.writeJSON(w, code, map[string]string{"error": message})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}
