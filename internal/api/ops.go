package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/libroteca/librocli/internal/models"
)

// Each operation returns the decoded value plus the raw Response so the
// console can mirror the exact payload in its diagnostic output pane.

// SignIn exchanges credentials for a token. The token is accepted from
// the first present of token, jwt, accessToken, access_token.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, Response, error) {
	resp, err := c.Request(ctx, "/api/v1/auth/signin", Options{
		Method: http.MethodPost,
		Body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return "", Response{}, err
	}
	var payload struct {
		Token        string `json:"token"`
		JWT          string `json:"jwt"`
		AccessToken  string `json:"accessToken"`
		AccessToken2 string `json:"access_token"`
	}
	if err := resp.Decode(&payload); err != nil {
		return "", resp, fmt.Errorf("decoding signin response: %w", err)
	}
	for _, t := range []string{payload.Token, payload.JWT, payload.AccessToken, payload.AccessToken2} {
		if t != "" {
			return t, resp, nil
		}
	}
	return "", resp, fmt.Errorf("signin response missing token (token/jwt/accessToken/access_token)")
}

func (c *Client) ListLibros(ctx context.Context, page, size int) (models.LibroPage, Response, error) {
	path := fmt.Sprintf("/api/v1/libros?page=%d&size=%d", page, size)
	resp, err := c.Request(ctx, path, Options{RequiresAuth: true})
	if err != nil {
		return models.LibroPage{}, Response{}, err
	}
	var pg models.LibroPage
	if err := resp.Decode(&pg); err != nil {
		return models.LibroPage{}, resp, fmt.Errorf("decoding listing: %w", err)
	}
	return pg, resp, nil
}

func (c *Client) GetLibro(ctx context.Context, id int64) (models.Libro, Response, error) {
	resp, err := c.Request(ctx, fmt.Sprintf("/api/v1/libros/%d", id), Options{RequiresAuth: true})
	if err != nil {
		return models.Libro{}, Response{}, err
	}
	var libro models.Libro
	if err := resp.Decode(&libro); err != nil {
		return models.Libro{}, resp, fmt.Errorf("decoding libro: %w", err)
	}
	return libro, resp, nil
}

func (c *Client) CreateLibro(ctx context.Context, titulo, autor, isbn string) (models.Libro, Response, error) {
	resp, err := c.Request(ctx, "/api/v1/libros", Options{
		Method:       http.MethodPost,
		Body:         map[string]string{"titulo": titulo, "autor": autor, "isbn": isbn},
		RequiresAuth: true,
	})
	if err != nil {
		return models.Libro{}, Response{}, err
	}
	var libro models.Libro
	if err := resp.Decode(&libro); err != nil {
		return models.Libro{}, resp, fmt.Errorf("decoding created libro: %w", err)
	}
	return libro, resp, nil
}

// UpdateLibro replaces one entry. The returned representation is the
// source of truth after the write.
func (c *Client) UpdateLibro(ctx context.Context, id int64, titulo, autor, isbn string) (models.Libro, Response, error) {
	resp, err := c.Request(ctx, fmt.Sprintf("/api/v1/libros/%d", id), Options{
		Method:       http.MethodPut,
		Body:         map[string]string{"titulo": titulo, "autor": autor, "isbn": isbn},
		RequiresAuth: true,
	})
	if err != nil {
		return models.Libro{}, Response{}, err
	}
	var libro models.Libro
	if err := resp.Decode(&libro); err != nil {
		return models.Libro{}, resp, fmt.Errorf("decoding updated libro: %w", err)
	}
	return libro, resp, nil
}

func (c *Client) DeleteLibro(ctx context.Context, id int64) (Response, error) {
	return c.Request(ctx, fmt.Sprintf("/api/v1/libros/%d", id), Options{
		Method:       http.MethodDelete,
		RequiresAuth: true,
	})
}

func (c *Client) ListUsuarios(ctx context.Context) ([]models.Usuario, Response, error) {
	resp, err := c.Request(ctx, "/api/v1/users", Options{RequiresAuth: true})
	if err != nil {
		return nil, Response{}, err
	}
	var usuarios []models.Usuario
	if err := resp.Decode(&usuarios); err != nil {
		return nil, resp, fmt.Errorf("decoding users: %w", err)
	}
	return usuarios, resp, nil
}

// GetResource fetches the diagnostic resource payload verbatim.
func (c *Client) GetResource(ctx context.Context) (Response, error) {
	return c.Request(ctx, "/api/v1/resources", Options{RequiresAuth: true})
}
