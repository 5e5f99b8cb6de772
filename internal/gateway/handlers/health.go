package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

// Readiness опрашивает /health/live у каждого upstream.
type Readiness struct {
	upstreams map[string]string
	client    *http.Client
}

func NewReadiness(upstreams map[string]string) *Readiness {
	return &Readiness{upstreams: upstreams, client: &http.Client{Timeout: 2 * time.Second}}
}

// ReadinessProbe проверяет готовность приложения обрабатывать запросы
func (r *Readiness) ReadinessProbe(c fiber.Ctx) error {
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		statuses = make(map[string]string, len(r.upstreams))
		ready    = true
	)
	for name, url := range r.upstreams {
		wg.Add(1)
		go func(name, url string) {
			defer wg.Done()
			status := r.check(c.Context(), url)
			mu.Lock()
			defer mu.Unlock()
			statuses[name] = status
			if status != "up" {
				ready = false
			}
		}(name, url)
	}
	wg.Wait()

	if !ready {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "upstreams": statuses})
	}
	return c.JSON(fiber.Map{"status": "ready", "upstreams": statuses})
}

func (r *Readiness) check(ctx context.Context, baseURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health/live", nil)
	if err != nil {
		return "down"
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "down"
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "down"
	}
	return "up"
}
