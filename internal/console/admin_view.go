package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/libroteca/librocli/internal/api"
)

// adminRefresh reloads page 0 of the catalog, clearing the selection and
// any auxiliary panel.
func (c *Controller) adminRefresh(ctx context.Context) {
	c.hideAllNotices()
	c.clearPanels()
	c.clearForm()

	done := c.trackBusy()
	defer done()

	listing, resp, err := c.client.ListLibros(ctx, 0, c.pageSize)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.setNotice(ScopeAdmin, NoticeDanger, "Error refreshing listing: "+err.Error())
		c.setOutError(err)
		return
	}

	renderLibros(c.out, listing.Content)
	fmt.Fprintln(c.out, "actions: edit <id> | delete <id>")
	c.setOutResponse(resp)
}

// adminCreate prompts for the three fields and creates an entry. Blank
// fields fail locally; no request is made.
func (c *Controller) adminCreate(ctx context.Context) {
	c.hideAllNotices()

	titulo := strings.TrimSpace(c.promptLine("Titulo: "))
	autor := strings.TrimSpace(c.promptLine("Autor: "))
	isbn := strings.TrimSpace(c.promptLine("ISBN: "))
	if titulo == "" || autor == "" || isbn == "" {
		c.setNotice(ScopeAdmin, NoticeWarning, "Titulo, autor and isbn are all required.")
		return
	}

	done := c.trackBusy()
	defer done()

	created, resp, err := c.client.CreateLibro(ctx, titulo, autor, isbn)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.setNotice(ScopeAdmin, NoticeDanger, "Error creating libro: "+err.Error())
		c.setOutError(err)
		return
	}

	c.setNotice(ScopeAdmin, NoticeSuccess, fmt.Sprintf("Libro creado (ID=%d).", created.ID))
	c.setOutResponse(resp)
	c.clearForm()
	c.adminRefresh(ctx)
}

// adminEdit fetches one entry and loads it into the edit form as the
// current selection.
func (c *Controller) adminEdit(ctx context.Context, id int64) {
	c.hideAllNotices()

	done := c.trackBusy()
	defer done()

	libro, resp, err := c.client.GetLibro(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.setNotice(ScopeAdmin, NoticeDanger, fmt.Sprintf("Error loading libro %d: %s", id, err))
		c.setOutError(err)
		return
	}

	c.fillForm(libro)
	c.setNotice(ScopeAdmin, NoticeInfo, fmt.Sprintf("Editando libro ID=%d", id))
	fmt.Fprintf(c.out, "titulo: %s\nautor:  %s\nisbn:   %s\n",
		Sanitize(libro.Titulo), Sanitize(libro.Autor), Sanitize(libro.Isbn))
	c.setOutResponse(resp)
}

// adminUpdate submits the edit form. Prompted values default to the
// currently loaded ones; the server's returned representation becomes
// the new form content.
func (c *Controller) adminUpdate(ctx context.Context) {
	c.hideAllNotices()

	if c.selection == nil || c.form.ID <= 0 {
		c.setNotice(ScopeAdmin, NoticeWarning, "Select a libro first (edit <id>) before updating.")
		return
	}

	titulo := promptDefault(c, "Titulo", c.form.Titulo)
	autor := promptDefault(c, "Autor", c.form.Autor)
	isbn := promptDefault(c, "ISBN", c.form.Isbn)
	if titulo == "" || autor == "" || isbn == "" {
		c.setNotice(ScopeAdmin, NoticeWarning, "Titulo, autor and isbn are all required.")
		return
	}

	done := c.trackBusy()
	defer done()

	updated, resp, err := c.client.UpdateLibro(ctx, c.form.ID, titulo, autor, isbn)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.setNotice(ScopeAdmin, NoticeDanger, "Error updating libro: "+err.Error())
		c.setOutError(err)
		return
	}

	c.setNotice(ScopeAdmin, NoticeSuccess, "Libro actualizado.")
	c.setOutResponse(resp)
	c.adminRefresh(ctx)
	c.fillForm(updated)
}

// adminDelete removes an entry after explicit confirmation. Without a
// confirmed yes, no request is made.
func (c *Controller) adminDelete(ctx context.Context, id int64) {
	c.hideAllNotices()

	if id <= 0 {
		id = c.form.ID
	}
	if id <= 0 {
		c.setNotice(ScopeAdmin, NoticeWarning, "Select a libro first (edit <id>) or pass an id to delete.")
		return
	}
	if !c.confirm(fmt.Sprintf("Delete libro ID=%d? [y/N] ", id)) {
		fmt.Fprintln(c.out, "delete aborted")
		return
	}

	done := c.trackBusy()
	defer done()

	if _, err := c.client.DeleteLibro(ctx, id); err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.setNotice(ScopeAdmin, NoticeDanger, "Error deleting libro: "+err.Error())
		c.setOutError(err)
		return
	}

	c.setNotice(ScopeAdmin, NoticeSuccess, "Libro eliminado.")
	c.setOutValue(map[string]int64{"deletedId": id})
	c.clearForm()
	c.adminRefresh(ctx)
}

// adminUsers shows the read-only user listing, hiding the resource
// panel.
func (c *Controller) adminUsers(ctx context.Context) {
	c.hideAllNotices()
	c.panel = PanelUsers

	done := c.trackBusy()
	defer done()

	usuarios, resp, err := c.client.ListUsuarios(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.panel = PanelNone
		c.setNotice(ScopeAdmin, NoticeDanger, "Error fetching users: "+err.Error())
		c.setOutError(err)
		return
	}

	renderUsuarios(c.out, usuarios)
	c.setOutResponse(resp)
}

// adminResources shows the diagnostic resource payload, hiding the users
// panel.
func (c *Controller) adminResources(ctx context.Context) {
	c.hideAllNotices()
	c.panel = PanelResources

	done := c.trackBusy()
	defer done()

	resp, err := c.client.GetResource(ctx)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return
		}
		c.panel = PanelNone
		c.setNotice(ScopeAdmin, NoticeDanger, "Error fetching resources: "+err.Error())
		c.setOutError(err)
		return
	}

	fmt.Fprintln(c.out, resp.Pretty())
	c.setOutResponse(resp)
}

func promptDefault(c *Controller, label, current string) string {
	line := strings.TrimSpace(c.promptLine(fmt.Sprintf("%s [%s]: ", label, current)))
	if line == "" {
		return current
	}
	return line
}
