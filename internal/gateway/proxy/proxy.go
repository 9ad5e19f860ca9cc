package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Proxy Handler
// ============================================================

// hop-by-hop headers and those fiber computes itself
var skipHeaders = map[string]bool{
	"Connection":        true,
	"Content-Length":    true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
}

// Upstream is one backend service behind the gateway.
type Upstream struct {
	Name    string
	BaseURL string
	client  *http.Client
}

func New(name, baseURL string, timeout time.Duration) *Upstream {
	return &Upstream{
		Name:    name,
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Handler forwards the request to the upstream, replacing the strip prefix
// of the path with the upstream base URL. Query strings are kept.
func (u *Upstream) Handler(strip string) fiber.Handler {
	return func(c fiber.Ctx) error {
		target := u.BaseURL + strings.TrimPrefix(c.Path(), strip)
		if q := c.Request().URI().QueryString(); len(q) > 0 {
			target += "?" + string(q)
		}
		return u.Forward(c, target)
	}
}

// Forward sends the body as is, multipart boundaries included, to targetURL
// and copies the answer back.
func (u *Upstream) Forward(c fiber.Ctx, targetURL string) error {
	log.Printf("[PROXY] %s %s -> %s (%s, %d bytes)", c.Method(), c.Path(), targetURL, u.Name, len(c.Body()))

	req, err := http.NewRequest(c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}
	for _, h := range []string{"Content-Type", "Authorization", "X-Request-ID"} {
		if v := c.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := u.client.Do(req)
	if err != nil {
		log.Printf("[PROXY] %s error: %v", u.Name, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

// Ready asks the upstream's readiness probe.
func (u *Upstream) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.BaseURL+"/health/ready", nil)
	if err != nil {
		return err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", u.Name, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", u.Name, resp.StatusCode)
	}
	return nil
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 && !skipHeaders[key] {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
