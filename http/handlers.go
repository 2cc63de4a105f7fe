// http/handlers.go
package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ViniZap4/lumi-notes/auth"
	"github.com/ViniZap4/lumi-notes/domain"
	"github.com/ViniZap4/lumi-notes/service"
)

// decodeJSON reads the request body into v. An empty body leaves v as is.
func decodeJSON(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, v); err != nil {
		return domain.Validation("Invalid JSON body")
	}
	return nil
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	sess, err := s.gate.Login(c.UserContext(), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   sess.Token,
		"user":    sessionUserView{ID: sess.ID, LastLogin: sess.LastLogin},
	})
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if err := s.gate.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (s *Server) handleVerify(c *fiber.Ctx) error {
	sess, err := s.gate.Verify(c.UserContext(), auth.BearerToken(c))
	if err != nil {
		if !auth.IsAuthError(err) {
			return err
		}
		_, msg := classify(err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"valid": false, "message": msg})
	}
	return c.JSON(fiber.Map{
		"valid": true,
		"user":  sessionUserView{ID: sess.ID, LastLogin: sess.LastLogin},
	})
}

func (s *Server) handleListFolders(c *fiber.Ctx) error {
	folders, err := s.svc.ListFolders(c.UserContext())
	if err != nil {
		return err
	}
	views := make([]folderView, len(folders))
	for i := range folders {
		views[i] = newFolderView(&folders[i])
	}
	return c.JSON(views)
}

func (s *Server) handleGetFolder(c *fiber.Ctx) error {
	f, err := s.svc.GetFolder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newFolderView(f))
}

func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
	var in service.FolderInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}
	f, err := s.svc.CreateFolder(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newFolderView(f))
}

func (s *Server) handleUpdateFolder(c *fiber.Ctx) error {
	var in service.FolderInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}
	f, err := s.svc.UpdateFolder(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(newFolderView(f))
}

func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	if err := s.svc.DeleteFolder(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Folder deleted successfully"})
}

func (s *Server) handleFolderStats(c *fiber.Ctx) error {
	stats, err := s.svc.FolderStats(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(folderStatsView(*stats))
}

func (s *Server) handleListFolderNotes(c *fiber.Ctx) error {
	q := domain.ParseNoteQuery(c.Params("folderId"), c.Query("search"), c.Query("sortBy"),
		c.Query("sortOrder"), c.Query("page"), c.Query("limit"))
	page, err := s.svc.ListFolderNotes(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(newNotePageView(page))
}

func (s *Server) handleSearchNotes(c *fiber.Ctx) error {
	page, limit := domain.ParsePage(c.Query("page"), c.Query("limit"))
	q := c.Query("q")
	result, err := s.svc.SearchNotes(c.UserContext(), q, page, limit)
	if err != nil {
		return err
	}
	view := newNotePageView(result)
	view.SearchQuery = strings.TrimSpace(q)
	return c.JSON(view)
}

func (s *Server) handleGetNote(c *fiber.Ctx) error {
	n, err := s.svc.GetNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newNoteView(n))
}

func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	var in service.NoteInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}
	n, err := s.svc.CreateNote(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newNoteView(n))
}

func (s *Server) handleUpdateNote(c *fiber.Ctx) error {
	var in service.NoteInput
	if err := decodeJSON(c, &in); err != nil {
		return err
	}
	n, err := s.svc.UpdateNote(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(newNoteView(n))
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	if err := s.svc.DeleteNote(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Note deleted successfully"})
}

func (s *Server) handleTogglePin(c *fiber.Ctx) error {
	n, err := s.svc.TogglePin(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newNoteView(n))
}

func (s *Server) handleExportNote(c *fiber.Ctx) error {
	format := c.Query("format", service.FormatMarkdown)
	data, contentType, err := s.svc.ExportNote(c.UserContext(), c.Params("id"), format)
	if err != nil {
		return err
	}
	ext := service.FormatMarkdown
	if strings.EqualFold(format, service.FormatHTML) {
		ext = service.FormatHTML
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", c.Params("id")+"."+ext))
	return c.Send(data)
}

func (s *Server) handleImportNote(c *fiber.Ctx) error {
	n, err := s.svc.ImportNote(c.UserContext(), c.Params("folderId"), c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(newNoteView(n))
}
