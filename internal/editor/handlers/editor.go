package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"floorplanner/internal/editor"
	"floorplanner/internal/editor/document"
	"floorplanner/internal/editor/report"
	"floorplanner/internal/editor/repository"
	"floorplanner/internal/editor/session"
	"floorplanner/internal/editor/storage"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// ============================================================
// Editor Handler
// ============================================================

type EditorHandler struct {
	sessions  *session.Registry
	store     repository.Store
	storage   *storage.FileStorage
	converter *ConverterClient
	log       zerolog.Logger
}

func NewEditorHandler(sessions *session.Registry, store repository.Store, files *storage.FileStorage, converter *ConverterClient, logger zerolog.Logger) *EditorHandler {
	return &EditorHandler{
		sessions:  sessions,
		store:     store,
		storage:   files,
		converter: converter,
		log:       logger.With().Str("component", "api").Logger(),
	}
}

// Register вешает маршруты редактора на router.
func (h *EditorHandler) Register(r fiber.Router) {
	r.Get("/templates", h.ListTemplates)

	r.Post("/sessions", h.OpenSession)
	r.Get("/sessions/:id", h.GetState)
	r.Delete("/sessions/:id", h.CloseSession)
	r.Post("/sessions/:id/commands", h.ExecuteCommand)
	r.Get("/sessions/:id/report", h.GetReport)
	r.Get("/sessions/:id/export/png", h.ExportPNG)
	r.Get("/sessions/:id/export/svg", h.ExportSVG)
	r.Post("/sessions/:id/save", h.SavePlan)
	r.Post("/sessions/:id/import", h.ImportSVG)

	r.Get("/plans", h.ListPlans)
	r.Get("/plans/:id", h.GetPlan)
	r.Delete("/plans/:id", h.DeletePlan)
	r.Get("/plans/:id/png", h.GetPlanPNG)
	r.Get("/plans/:id/svg", h.GetPlanSVG)
}

type openRequest struct {
	Template string             `json:"template"`
	PlanID   string             `json:"plan_id"`
	Document *document.Document `json:"document"`
}

type openResponse struct {
	Session string       `json:"session"`
	State   editor.State `json:"state"`
}

type saveRequest struct {
	Name   string `json:"name"`
	PlanID string `json:"plan_id"`
}

type reportResponse struct {
	Selected *report.Dimensions `json:"selected"`
	Summary  report.Summary     `json:"summary"`
}

// ListTemplates отдаёт каталог шаблонов.
func (h *EditorHandler) ListTemplates(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": document.Templates()})
}

// OpenSession создаёт сессию: пустую, из шаблона, из сохранённого плана или из документа.
func (h *EditorHandler) OpenSession(c fiber.Ctx) error {
	var req openRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}

	var doc *document.Document
	switch {
	case req.Document != nil:
		doc = req.Document
	case req.Template != "":
		tpl, err := document.LoadTemplate(req.Template)
		if err != nil {
			return h.fail(c, err)
		}
		doc = &tpl
	case req.PlanID != "":
		plan, err := h.store.Get(c.Context(), req.PlanID)
		if err != nil {
			return h.fail(c, err)
		}
		doc = &plan.Document
	}

	handle, err := h.sessions.Open(doc)
	if err != nil {
		return h.fail(c, err)
	}

	state, err := handle.State()
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(openResponse{Session: handle.ID, State: state})
}

func (h *EditorHandler) GetState(c fiber.Ctx) error {
	var state editor.State
	err := h.with(c, func(e *editor.Editor) error {
		state = e.State()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(state)
}

func (h *EditorHandler) CloseSession(c fiber.Ctx) error {
	if err := h.sessions.Close(c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ExecuteCommand применяет одну команду редактора.
func (h *EditorHandler) ExecuteCommand(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}
	var cmd editor.Command
	if err := json.Unmarshal(c.Body(), &cmd); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	var state editor.State
	err := h.with(c, func(e *editor.Editor) error {
		s, err := e.Execute(cmd)
		state = s
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(state)
}

func (h *EditorHandler) GetReport(c fiber.Ctx) error {
	var resp reportResponse
	err := h.with(c, func(e *editor.Editor) error {
		resp = reportResponse{Selected: e.Dimensions(), Summary: e.Summary()}
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(resp)
}

// ExportPNG отдаёт растровую картинку холста.
func (h *EditorHandler) ExportPNG(c fiber.Ctx) error {
	var data []byte
	err := h.with(c, func(e *editor.Editor) error {
		png, err := e.ExportPNG()
		data = png
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(data)
}

func (h *EditorHandler) ExportSVG(c fiber.Ctx) error {
	var svg string
	err := h.with(c, func(e *editor.Editor) error {
		svg = e.ExportSVG()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// SavePlan сохраняет документ сессии и пишет экспорты на диск.
func (h *EditorHandler) SavePlan(c fiber.Ctx) error {
	var req saveRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}

	var (
		doc     document.Document
		exports storage.Exports
	)
	err := h.with(c, func(e *editor.Editor) error {
		doc = e.Save(req.Name)
		png, err := e.ExportPNG()
		if err != nil {
			return err
		}
		exports.PNG = png
		exports.SVG = e.ExportSVG()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}

	name := doc.Name
	if name == "" {
		name = "Untitled Plan"
	}

	var plan *repository.Plan
	if req.PlanID != "" {
		plan, err = h.store.Update(c.Context(), req.PlanID, name, doc)
	} else {
		plan, err = h.store.Create(c.Context(), name, doc)
	}
	if err != nil {
		return h.fail(c, err)
	}

	exports.JSON, err = document.Marshal(plan.Document)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.storage.SaveExports(plan.ID, exports); err != nil {
		return h.fail(c, err)
	}

	h.log.Info().Str("plan", plan.ID).Str("name", plan.Name).Msg("plan saved")
	return c.JSON(repository.PlanInfo{ID: plan.ID, Name: plan.Name, CreatedAt: plan.CreatedAt, UpdatedAt: plan.UpdatedAt})
}

// ImportSVG распознаёт загруженный svg через Converter и загружает результат.
func (h *EditorHandler) ImportSVG(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}
	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	handle, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}

	doc, err := h.converter.Convert(c.Context(), file.Filename, data)
	if err != nil {
		return h.fail(c, err)
	}

	var state editor.State
	err = handle.Do(func(e *editor.Editor) error {
		if err := e.Load(doc); err != nil {
			return err
		}
		state = e.State()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(state)
}

func (h *EditorHandler) ListPlans(c fiber.Ctx) error {
	plans, err := h.store.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func (h *EditorHandler) GetPlan(c fiber.Ctx) error {
	plan, err := h.store.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(plan)
}

func (h *EditorHandler) DeletePlan(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.Delete(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	if err := h.storage.Remove(id); err != nil {
		h.log.Warn().Err(err).Str("plan", id).Msg("remove plan files")
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetPlanPNG отдаёт png, записанный при сохранении.
func (h *EditorHandler) GetPlanPNG(c fiber.Ctx) error {
	return h.sendPlanFile(c, h.storage.PNGPath, "image/png")
}

func (h *EditorHandler) GetPlanSVG(c fiber.Ctx) error {
	return h.sendPlanFile(c, h.storage.SVGPath, "image/svg+xml")
}

func (h *EditorHandler) sendPlanFile(c fiber.Ctx, pathFn func(string) string, contentType string) error {
	id := c.Params("id")
	if err := storage.ValidateID(id); err != nil {
		return h.fail(c, err)
	}
	path := pathFn(id)
	if !storage.Exists(path) {
		return h.fail(c, fmt.Errorf("plan %s file: %w", id, repository.ErrNotFound))
	}
	c.Set("Content-Type", contentType)
	return c.SendFile(path)
}

func (h *EditorHandler) with(c fiber.Ctx, fn func(e *editor.Editor) error) error {
	handle, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return handle.Do(fn)
}
