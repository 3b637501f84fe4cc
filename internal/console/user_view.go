package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/libroteca/librocli/internal/api"
)

// loadPage fetches and renders one catalog page for the user view. A
// failed fetch leaves the previously rendered page untouched.
func (c *Controller) loadPage(ctx context.Context, index int) {
	if !c.session.Active() {
		return
	}
	c.hideAllNotices()

	done := c.trackBusy()
	defer done()

	listing, resp, err := c.client.ListLibros(ctx, index, c.pageSize)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.setNotice(ScopeUser, NoticeDanger, "Error loading libros: "+err.Error())
		c.setOutError(err)
		return
	}

	page := NewPage(listing, index, c.pageSize)
	c.page = &page
	c.pageIndex = page.Index
	c.setOutResponse(resp)
	c.renderUserPage(page)
}

func (c *Controller) renderUserPage(page Page) {
	renderLibros(c.out, page.Items)

	totalLabel := "?"
	if page.TotalPages > 0 {
		totalLabel = fmt.Sprintf("%d", page.TotalPages)
	}
	elementsLabel := "?"
	if page.TotalElements >= 0 {
		elementsLabel = fmt.Sprintf("%d", page.TotalElements)
	}
	fmt.Fprintf(c.out, "Página %d/%s · %s elementos", page.Index+1, totalLabel, elementsLabel)
	if page.HasPrev() {
		fmt.Fprint(c.out, " · prev available")
	}
	if page.HasNext() {
		fmt.Fprint(c.out, " · next available")
	}
	fmt.Fprintln(c.out)
}
