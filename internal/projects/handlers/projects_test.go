package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	pmodels "github.com/kuhatje/Spur-AMP/internal/planner/models"
	"github.com/kuhatje/Spur-AMP/internal/planner/scene"
	"github.com/kuhatje/Spur-AMP/internal/projects/repository"
	"github.com/kuhatje/Spur-AMP/internal/projects/service"
)

type testServer struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()

	db, err := repository.OpenSQLite(filepath.Join(dir, "projects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := repository.New(db)
	require.NoError(t, repo.Init(context.Background()))

	editor := service.NewEditor(repo,
		service.NewFileStorage(filepath.Join(dir, "export")),
		mapper.NewExporter(mapper.Options{}, nil, scene.DefaultConfig()),
		filepath.Join(dir, "revit", mapper.RevitFile))

	app := fiber.New()
	NewProjectHandler(repo, service.NewSessionManager(), editor).Register(app)

	s := &testServer{t: t, app: app}
	resp, body := s.do(http.MethodPost, "/login", `{"login":"admin","password":"admin"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &login))
	s.token = login.Token
	return s
}

func (s *testServer) do(method, path, body string) (*http.Response, string) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req)
	require.NoError(s.t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, string(data)
}

func (s *testServer) create(name string) string {
	s.t.Helper()
	resp, body := s.do(http.MethodPost, "/projects", `{"name":"`+name+`"}`)
	require.Equal(s.t, fiber.StatusCreated, resp.StatusCode, body)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(s.t, created.ID)
	return created.ID
}

func decodeFile(t *testing.T, body string) pmodels.Project {
	t.Helper()
	var p pmodels.Project
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestLogin(t *testing.T) {
	s := newServer(t)
	s.token = ""

	resp, _ := s.do(http.MethodPost, "/login", `{"login":"admin","password":"nope"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/login", ``)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/projects", ``)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProjectLifecycle(t *testing.T) {
	s := newServer(t)
	id := s.create("Cabin")

	resp, body := s.do(http.MethodGet, "/projects", ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"Cabin"`)

	resp, body = s.do(http.MethodPost, "/projects/"+id+"/panels", `{"x":0,"y":0,"type":"corner_panel","rotation":90}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	file := decodeFile(t, body)
	assert.Equal(t, 90, file.Floors[0].Components["0,0"][0].Rotation)

	resp, body = s.do(http.MethodPost, "/projects/"+id+"/panels/rotate", `{"x":0,"y":0,"type":"corner_panel"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Equal(t, 180, decodeFile(t, body).Floors[0].Components["0,0"][0].Rotation)

	resp, body = s.do(http.MethodPost, "/projects/"+id+"/stories", ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	file = decodeFile(t, body)
	assert.Len(t, file.Floors, 2)
	assert.Equal(t, 1, file.CurrentFloorIndex)

	resp, body = s.do(http.MethodPost, "/projects/"+id+"/stories/1/fill-perimeter", ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Len(t, decodeFile(t, body).Floors[1].Components, 36)

	resp, body = s.do(http.MethodDelete, "/projects/"+id+"/panels?x=0&y=0&type=corner_panel", ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	resp, body = s.do(http.MethodGet, "/projects/"+id, ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got struct {
		Name    string          `json:"name"`
		Project pmodels.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "Cabin", got.Name)
	require.Len(t, got.Project.Floors, 2)
	// removal hits the active story only
	assert.Len(t, got.Project.Floors[0].Components, 1)
	assert.Len(t, got.Project.Floors[1].Components, 35)

	resp, body = s.do(http.MethodPost, "/projects/"+id+"/export", ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	var res service.ExportResult
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Len(t, res.Files, 7)
	assert.NotEmpty(t, res.LayoutPath)

	resp, _ = s.do(http.MethodDelete, "/projects/"+id, ``)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/projects/"+id, ``)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMutationErrors(t *testing.T) {
	s := newServer(t)
	id := s.create("Cabin")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown type", http.MethodPost, "/panels", `{"x":0,"y":0,"type":"roof_panel"}`, fiber.StatusBadRequest},
		{"out of bounds", http.MethodPost, "/panels", `{"x":10,"y":0,"type":"floor_panel"}`, fiber.StatusBadRequest},
		{"bad rotation", http.MethodPost, "/panels", `{"x":1,"y":1,"type":"corner_panel","rotation":45}`, fiber.StatusBadRequest},
		{"missing panel", http.MethodDelete, "/panels?x=1&y=1&type=floor_panel", ``, fiber.StatusNotFound},
		{"unknown story", http.MethodPut, "/stories/active", `{"index":3}`, fiber.StatusNotFound},
		{"last story", http.MethodDelete, "/stories/0", ``, fiber.StatusConflict},
		{"bad index", http.MethodPost, "/stories/x/clear", ``, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := s.do(tc.method, "/projects/"+id+tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, body)
		})
	}

	resp, body := s.do(http.MethodPost, "/projects/"+id+"/panels", `{"x":2,"y":2,"type":"panel_4x8"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	resp, body = s.do(http.MethodPost, "/projects/"+id+"/panels", `{"x":2,"y":2,"type":"corner_panel"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, body)
}

func TestReplaceValidatesFile(t *testing.T) {
	s := newServer(t)
	id := s.create("Cabin")

	resp, _ := s.do(http.MethodPut, "/projects/"+id, `{"project":{"floors":[]}}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := s.do(http.MethodPut, "/projects/"+id, `{"name":"Barn","project":{"floors":[
	  {"floorNumber":0,"width":3,"height":3,"components":{"1,1":[{"type":"floor_panel","x":1,"y":1,"rotation":0}]}}],
	  "currentFloorIndex":0}}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	assert.Contains(t, body, `"Barn"`)
}

func TestRemovePanelOnStory(t *testing.T) {
	s := newServer(t)
	id := s.create("Cabin")

	resp, body := s.do(http.MethodPost, "/projects/"+id+"/panels", `{"x":0,"y":0,"type":"floor_panel"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	resp, body = s.do(http.MethodPost, "/projects/"+id+"/stories", ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)

	resp, _ = s.do(http.MethodDelete, "/projects/"+id+"/panels?x=0&y=0&type=floor_panel&story=9", ``)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = s.do(http.MethodDelete, "/projects/"+id+"/panels?x=0&y=0&type=floor_panel&story=a", ``)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = s.do(http.MethodDelete, "/projects/"+id+"/panels?x=0&y=0&type=floor_panel&story=0", ``)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body)
	file := decodeFile(t, body)
	assert.Equal(t, 0, file.CurrentFloorIndex)
	assert.Empty(t, file.Floors[0].Components)
}
