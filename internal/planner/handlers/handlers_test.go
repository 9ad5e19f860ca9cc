package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhatje/Spur-AMP/internal/planner/inventory"
	"github.com/kuhatje/Spur-AMP/internal/planner/layout"
	"github.com/kuhatje/Spur-AMP/internal/planner/mapper"
	"github.com/kuhatje/Spur-AMP/internal/planner/models"
	"github.com/kuhatje/Spur-AMP/internal/planner/parser"
)

const project = `{"floors":[
  {"floorNumber":0,"width":4,"height":4,"components":{
    "0,0":[{"type":"corner_panel","x":0,"y":0,"rotation":270}],
    "1,0":[{"type":"panel_4x8","x":1,"y":0,"rotation":0},{"type":"floor_panel","x":1,"y":0,"rotation":0}]}},
  {"floorNumber":1,"width":4,"height":4,"components":{
    "2,3":[{"type":"panel_4x8","x":2,"y":3,"rotation":90}]}}],
  "currentFloorIndex":1}`

func newApp() *fiber.App {
	app := fiber.New()
	NewConverter(mapper.Options{}).Register(app)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRevitEndpoint(t *testing.T) {
	resp := post(t, newApp(), "/revit", project)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload models.RevitPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 4, payload.Metadata.TotalPanels)
	assert.Equal(t, 2, payload.Metadata.TotalFloors)

	comp := payload.Stories[1].Components[0]
	assert.Equal(t, models.Position{X: 16, Y: 24, Elevation: 10}, comp.Position)
	assert.Equal(t, models.Point{X: 20, Y: 28}, comp.FootprintCenter)
}

func TestRenderEndpoints(t *testing.T) {
	app := newApp()
	cases := []struct {
		path        string
		contentType string
		prefix      string
	}{
		{"/render", "image/svg+xml", "<?xml"},
		{"/preview", "image/png", "\x89PNG"},
		{"/glb", mimeGLB, "glTF"},
		{"/gcode", "text/plain; charset=utf-8", "; Panel Layout Planner"},
		{"/inventory/chart", "text/html; charset=utf-8", ""},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp := post(t, app, tc.path, project)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.contentType, resp.Header.Get("Content-Type"))

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(body, []byte(tc.prefix)), "unexpected body prefix %q", body[:min(len(body), 16)])
		})
	}
}

func TestJSONEndpoints(t *testing.T) {
	app := newApp()

	resp := post(t, app, "/inventory", project)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var inv struct {
		TotalPanels int     `json:"totalPanels"`
		TotalCost   float64 `json:"totalCost"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inv))
	assert.Equal(t, 4, inv.TotalPanels)
	assert.InDelta(t, 2*90.0+110+85, inv.TotalCost, 1e-9)

	resp = post(t, app, "/manufacturing?project=Lake+House", project)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var mfg models.Manufacturing
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mfg))
	assert.Equal(t, "Lake House", mfg.Project)
	assert.Equal(t, 4, mfg.TotalPanels)

	resp = post(t, app, "/inventory/quote", project)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var quote models.Quote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quote))
	assert.Equal(t, inventory.DefaultQuoteProject, quote.Project)
	assert.Len(t, quote.Components, 3)
	assert.Equal(t, 4, quote.Totals.TotalPanels)
	assert.InDelta(t, 2*90.0+110+85, quote.Totals.TotalCost, 1e-9)

	resp = post(t, app, "/scene", project)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var sc struct {
		Solids []json.RawMessage `json:"solids"`
		Plates []json.RawMessage `json:"plates"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sc))
	assert.Len(t, sc.Solids, 4)
	assert.Len(t, sc.Plates, 2)
}

func TestMultipartUpload(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "house.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(project))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/revit", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMalformedProject(t *testing.T) {
	app := newApp()
	for _, body := range []string{"", "{", `{"floors":[],"currentFloorIndex":0}`} {
		resp := post(t, app, "/revit", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body %q", body)

		var errBody map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.NotEmpty(t, errBody["error"])
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		parser.ErrMalformedImport:  fiber.StatusBadRequest,
		layout.ErrOutOfBounds:      fiber.StatusBadRequest,
		layout.ErrInvalidPanel:     fiber.StatusBadRequest,
		layout.ErrNotFound:         fiber.StatusNotFound,
		layout.ErrStoryIndex:       fiber.StatusNotFound,
		layout.ErrInvalidPlacement: fiber.StatusConflict,
		layout.ErrStoryUnderflow:   fiber.StatusConflict,
		mapper.ErrExportFailure:    fiber.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, StatusFor(fmt.Errorf("wrapped: %w", err)), "%v", err)
	}
}
