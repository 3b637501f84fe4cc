package mockapi

import (
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/libroteca/librocli/internal/models"
)

// libroStore is the in-memory catalog table.
type libroStore struct {
	mu     sync.Mutex
	seq    int64
	libros map[int64]models.Libro
}

func newLibroStore() *libroStore {
	return &libroStore{libros: make(map[int64]models.Libro)}
}

func (s *libroStore) Create(libro models.Libro) models.Libro {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	libro.ID = s.seq
	s.libros[libro.ID] = libro
	return libro
}

func (s *libroStore) Get(id int64) (models.Libro, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	libro, ok := s.libros[id]
	return libro, ok
}

func (s *libroStore) Replace(id int64, libro models.Libro) (models.Libro, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.libros[id]; !ok {
		return models.Libro{}, false
	}
	libro.ID = id
	s.libros[id] = libro
	return libro, true
}

func (s *libroStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.libros[id]; !ok {
		return false
	}
	delete(s.libros, id)
	return true
}

// Page returns one page ordered by id, plus the total count.
func (s *libroStore) Page(page, size int) ([]models.Libro, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Libro, 0, len(s.libros))
	for _, libro := range s.libros {
		all = append(all, libro)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return []models.Libro{}, total
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total
}

// userStore holds the seeded demo accounts.
type userStore struct {
	mu    sync.Mutex
	seq   int64
	users []userRecord
}

type userRecord struct {
	usuario      models.Usuario
	passwordHash []byte
}

func newUserStore() *userStore {
	return &userStore{}
}

func (s *userStore) Add(email, nombre, password string, roles []string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.users = append(s.users, userRecord{
		usuario: models.Usuario{
			ID:     s.seq,
			Email:  email,
			Nombre: nombre,
			Roles:  roles,
		},
		passwordHash: hash,
	})
	return nil
}

// Authenticate checks email and password, returning the account on match.
func (s *userStore) Authenticate(email, password string) (models.Usuario, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.users {
		if rec.usuario.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)) == nil {
			return rec.usuario, true
		}
		return models.Usuario{}, false
	}
	return models.Usuario{}, false
}

func (s *userStore) All() []models.Usuario {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Usuario, 0, len(s.users))
	for _, rec := range s.users {
		out = append(out, rec.usuario)
	}
	return out
}
