package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/DASystem/models"
	"github.com/patiponrmutl/DASystem/service"
	"github.com/patiponrmutl/DASystem/storage"
)

type ApplicationHandler struct {
	svc   *service.ApplicationService
	store storage.AttachmentStore
	dev   bool
}

func NewApplicationHandler(svc *service.ApplicationService, store storage.AttachmentStore, dev bool) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, store: store, dev: dev}
}

// POST /api/applications  (multipart: subject, message, files[0..5])
func (h *ApplicationHandler) Create(c echo.Context) error {
	uid, _ := identity(c)
	subject := strings.TrimSpace(c.FormValue("subject"))
	message := strings.TrimSpace(c.FormValue("message"))

	fhs, err := formFiles(c)
	if err != nil {
		return err
	}

	names, err := h.saveAll(fhs)
	if err != nil {
		return fail(c, err, h.dev)
	}

	app, err := h.svc.Submit(uid, subject, message, names)
	if err != nil {
		// no record was written, drop the stored files too
		h.removeAll(names)
		return fail(c, err, h.dev)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

// GET /api/applications
func (h *ApplicationHandler) List(c echo.Context) error {
	uid, role := identity(c)
	apps, err := h.svc.List(role, uid)
	if err != nil {
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": apps})
}

// GET /api/applications/:id
func (h *ApplicationHandler) GetByID(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	uid, role := identity(c)
	app, err := h.svc.Get(role, uid, id)
	if err != nil {
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, map[string]any{"application": app})
}

type decideReq struct {
	Status           string `json:"status"`
	PrincipalComment string `json:"principalComment"`
}

// PUT /api/applications/:id/status  (admin/principal)
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var body decideReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"message": "Invalid payload"})
	}

	_, role := identity(c)
	app, err := h.svc.Decide(role, id, models.Status(body.Status), body.PrincipalComment)
	if err != nil {
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Application status updated successfully",
		"application": app,
	})
}

// PUT /api/applications/:id  (owner, only while returned; multipart like Create)
func (h *ApplicationHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	uid, _ := identity(c)

	fhs, err := formFiles(c)
	if err != nil {
		return err
	}

	in := service.EditInput{}
	if v := strings.TrimSpace(c.FormValue("subject")); v != "" {
		in.Subject = &v
	}
	if v := strings.TrimSpace(c.FormValue("message")); v != "" {
		in.Message = &v
	}

	names, err := h.saveAll(fhs)
	if err != nil {
		return fail(c, err, h.dev)
	}
	in.Files = names

	app, err := h.svc.Edit(uid, id, in)
	if err != nil {
		h.removeAll(names)
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message":     "Application updated successfully",
		"application": app,
	})
}

// GET /api/applications/stats  (admin/principal)
func (h *ApplicationHandler) Stats(c echo.Context) error {
	_, role := identity(c)
	stats, err := h.svc.Stats(role)
	if err != nil {
		return fail(c, err, h.dev)
	}
	return c.JSON(http.StatusOK, map[string]any{"stats": stats})
}

/* ====================== upload plumbing ====================== */

// formFiles pulls the "files" field out of the multipart form. A request
// without files (or without a multipart body at all) is fine.
func formFiles(c echo.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	fhs := form.File["files"]
	if len(fhs) > storage.MaxFilesPerRequest {
		return nil, echo.NewHTTPError(http.StatusBadRequest,
			map[string]any{"message": "Maximum 5 files allowed"})
	}
	return fhs, nil
}

// saveAll validates every file before saving any, and unwinds files
// already written when a later save fails. A failed request never leaves
// attachments behind.
func (h *ApplicationHandler) saveAll(fhs []*multipart.FileHeader) ([]string, error) {
	for _, fh := range fhs {
		if err := h.store.Validate(fh); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		name, err := h.store.Save(fh)
		if err != nil {
			h.removeAll(names)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (h *ApplicationHandler) removeAll(names []string) {
	for _, n := range names {
		_ = h.store.Remove(n)
	}
}
