package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	planner "github.com/kuhatje/Spur-AMP/internal/planner/handlers"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	pmodels "github.com/kuhatje/Spur-AMP/internal/planner/models"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
	"github.com/kuhatje/Spur-AMP/internal/projects/models"
	"github.com/kuhatje/Spur-AMP/internal/projects/repository"
	"github.com/kuhatje/Spur-AMP/internal/projects/service"
)

// ============================================================
// Projects Handler
// ============================================================

// Users resolves login credentials.
type Users interface {
	GetByCredentials(ctx context.Context, login, password string) (*models.User, error)
	ListProjects(ctx context.Context, ownerID string) ([]models.Project, error)
}

type ProjectHandler struct {
	users    Users
	sessions *service.SessionManager
	editor   *service.Editor
}

func NewProjectHandler(users Users, sessions *service.SessionManager, editor *service.Editor) *ProjectHandler {
	return &ProjectHandler{
		users:    users,
		sessions: sessions,
		editor:   editor,
	}
}

// Register mounts the login and project routes on r.
func (h *ProjectHandler) Register(r fiber.Router) {
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Post("/projects", h.Create)
	r.Get("/projects", h.List)
	r.Get("/projects/:id", h.Get)
	r.Put("/projects/:id", h.Replace)
	r.Delete("/projects/:id", h.Delete)
	r.Post("/projects/:id/export", h.Export)

	r.Post("/projects/:id/panels", h.AddPanel)
	r.Delete("/projects/:id/panels", h.RemovePanel)
	r.Post("/projects/:id/panels/rotate", h.RotatePanel)

	r.Post("/projects/:id/stories", h.AddStory)
	r.Put("/projects/:id/stories/active", h.SetActive)
	r.Delete("/projects/:id/stories/:index", h.RemoveStory)
	r.Post("/projects/:id/stories/:index/clear", h.ClearStory)
	r.Post("/projects/:id/stories/:index/fill-perimeter", h.FillPerimeter)
	r.Post("/projects/:id/stories/:index/fill-floor", h.FillFloor)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type projectRequest struct {
	Name    string          `json:"name"`
	Project json.RawMessage `json:"project"`
}

type projectResponse struct {
	*models.Project
	File pmodels.Project `json:"project"`
}

type panelRequest struct {
	Story    *int   `json:"story"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Type     string `json:"type"`
	Rotation int    `json:"rotation"`
}

// Login issues a session token for a login/password pair.
func (h *ProjectHandler) Login(c fiber.Ctx) error {
	log.Printf("[PROJECTS] Login request")

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var req loginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Login == "" || req.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "login and password required"})
	}

	user, err := h.users.GetByCredentials(context.Background(), req.Login, req.Password)
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	return c.JSON(loginResponse{
		Token: h.sessions.Issue(user.ID),
		User:  user,
	})
}

func (h *ProjectHandler) Logout(c fiber.Ctx) error {
	if _, ok := h.authorize(c); !ok {
		return unauthorized(c)
	}
	h.sessions.Revoke(bearer(c))
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Project CRUD
// ============================================================

// Create stores a new project. An omitted project file starts empty.
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return unauthorized(c)
	}

	var req projectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}

	p, b, err := h.editor.Create(context.Background(), userID, req.Name, req.Project)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(projectResponse{Project: p, File: parser.ToProject(b)})
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return unauthorized(c)
	}

	projects, err := h.users.ListProjects(context.Background(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(projects)
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return unauthorized(c)
	}

	p, b, err := h.editor.Load(context.Background(), userID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(projectResponse{Project: p, File: parser.ToProject(b)})
}

// Replace overwrites the stored project file.
func (h *ProjectHandler) Replace(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return unauthorized(c)
	}

	var req projectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	p, b, err := h.editor.Replace(context.Background(), userID, c.Params("id"), req.Name, req.Project)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(projectResponse{Project: p, File: parser.ToProject(b)})
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.editor.Delete(context.Background(), userID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Export writes the project's artifacts. Partial failures answer 500 with the
// artifacts that were written.
func (h *ProjectHandler) Export(c fiber.Ctx) error {
	userID, ok := h.authorize(c)
	if !ok {
		return unauthorized(c)
	}

	res, err := h.editor.Export(context.Background(), userID, c.Params("id"))
	if err != nil {
		if res == nil {
			return fail(c, err)
		}
		log.Printf("[PROJECTS] Export %s incomplete: %v", c.Params("id"), err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"files": res.Files,
		})
	}
	return c.JSON(res)
}

// ============================================================
// Layout Mutations
// ============================================================

func (h *ProjectHandler) AddPanel(c fiber.Ctx) error {
	var req panelRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	t, err := layout.ParsePanelType(req.Type)
	if err != nil {
		return fail(c, err)
	}

	return h.apply(c, func(b *layout.Building) error {
		if err := selectStory(b, req.Story); err != nil {
			return err
		}
		return b.AddPanel(req.X, req.Y, t, layout.Orientation(req.Rotation))
	})
}

// RemovePanel takes x, y, type and an optional story from the query string.
func (h *ProjectHandler) RemovePanel(c fiber.Ctx) error {
	x, y, t, story, err := panelQuery(c)
	if err != nil {
		return fail(c, err)
	}
	return h.apply(c, func(b *layout.Building) error {
		if err := selectStory(b, story); err != nil {
			return err
		}
		return b.RemovePanel(x, y, t)
	})
}

func (h *ProjectHandler) RotatePanel(c fiber.Ctx) error {
	var req panelRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	t, err := layout.ParsePanelType(req.Type)
	if err != nil {
		return fail(c, err)
	}

	return h.apply(c, func(b *layout.Building) error {
		if err := selectStory(b, req.Story); err != nil {
			return err
		}
		return b.RotatePanel(req.X, req.Y, t)
	})
}

func (h *ProjectHandler) AddStory(c fiber.Ctx) error {
	return h.apply(c, func(b *layout.Building) error {
		b.AddStory()
		return nil
	})
}

func (h *ProjectHandler) SetActive(c fiber.Ctx) error {
	var req struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	return h.apply(c, func(b *layout.Building) error {
		return b.SetActive(req.Index)
	})
}

func (h *ProjectHandler) RemoveStory(c fiber.Ctx) error {
	return h.applyIndexed(c, (*layout.Building).RemoveStory)
}

func (h *ProjectHandler) ClearStory(c fiber.Ctx) error {
	return h.applyIndexed(c, (*layout.Building).ClearStory)
}

func (h *ProjectHandler) FillPerimeter(c fiber.Ctx) error {
	return h.applyIndexed(c, (*layout.Building).FillPerimeter)
}

func (h *ProjectHandler) FillFloor(c fiber.Ctx) error {
	return h.applyIndexed(c, (*layout.Building).FillFloor)
}

// ============================================================
// Helpers
// ============================================================

// apply runs op on the project named by :id and answers with the saved file.
func (h *ProjectHandler) apply(c fiber.Ctx, op service.Op) error {
	userID, ok := h.authorize(c)
	if !ok {
		return unauthorized(c)
	}

	b, err := h.editor.Apply(context.Background(), userID, c.Params("id"), op)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(parser.ToProject(b))
}

func (h *ProjectHandler) applyIndexed(c fiber.Ctx, fn func(*layout.Building, int) error) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid story index"})
	}
	return h.apply(c, func(b *layout.Building) error {
		return fn(b, index)
	})
}

func selectStory(b *layout.Building, story *int) error {
	if story == nil {
		return nil
	}
	return b.SetActive(*story)
}

func panelQuery(c fiber.Ctx) (int, int, layout.PanelType, *int, error) {
	x, errX := strconv.Atoi(c.Query("x"))
	y, errY := strconv.Atoi(c.Query("y"))
	if errX != nil || errY != nil {
		return 0, 0, "", nil, fmt.Errorf("%w: x and y required", layout.ErrOutOfBounds)
	}
	var story *int
	if raw := c.Query("story"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, "", nil, fmt.Errorf("%w: story %q", layout.ErrStoryIndex, raw)
		}
		story = &n
	}
	t, err := layout.ParsePanelType(c.Query("type"))
	return x, y, t, story, err
}

func (h *ProjectHandler) authorize(c fiber.Ctx) (string, bool) {
	token := bearer(c)
	if token == "" {
		return "", false
	}
	return h.sessions.Resolve(token)
}

func bearer(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}

// fail maps store and ownership errors, then defers to the planner mapping.
func fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrStoryLimit):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return planner.Fail(c, "PROJECTS", err)
}
