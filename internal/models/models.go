package models

// Libro represents a single catalog entry as the backend exposes it
type Libro struct {
	ID     int64  `json:"id,omitempty"`
	Titulo string `json:"titulo"`
	Autor  string `json:"autor"`
	Isbn   string `json:"isbn"`
}

// Usuario represents a backend user account
type Usuario struct {
	ID     int64    `json:"id"`
	Email  string   `json:"email"`
	Nombre string   `json:"nombre"`
	Roles  []string `json:"roles"`
}

// LibroPage is the Spring-style listing envelope. Every field besides
// content is optional on the wire; pointers distinguish absent metadata
// from a genuine zero.
type LibroPage struct {
	Content       []Libro `json:"content"`
	Number        *int    `json:"number"`
	TotalPages    *int    `json:"totalPages"`
	TotalElements *int64  `json:"totalElements"`
}
