package web

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"DataLens/internal/dashboard"
	"DataLens/internal/model"

	"github.com/gin-gonic/gin"
)

type view struct {
	Sections []model.Section
	Periods  []model.Period
	Inputs   dashboard.Inputs
	Page     *dashboard.Page
	Error    string
}

func newView(in dashboard.Inputs) view {
	return view{Sections: model.Sections, Periods: model.Periods, Inputs: in}
}

// statusFor maps render failures to the response code of the error page.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, dashboard.ErrSource):
		return http.StatusBadGateway
	case errors.Is(err, dashboard.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Index runs one render pass for the query's controls.
func (h *Handler) Index(c *gin.Context) {
	in := inputsFromRequest(c)
	v := newView(in)
	page, err := h.Renderer.Render(c.Request.Context(), in)
	if err != nil {
		log.Printf("[ERROR] render %s: %v", in.Section, err)
		v.Error = err.Error()
		c.HTML(statusFor(err), "index", v)
		return
	}
	v.Page = page
	v.Inputs = page.Inputs
	c.HTML(http.StatusOK, "index", v)
}

// Upload stores the posted file and redirects to the upload section showing it.
func (h *Handler) Upload(c *gin.Context) {
	v := newView(dashboard.Inputs{Section: model.SectionUpload, Period: model.Period1Month})
	fail := func(status int, err error) {
		log.Printf("[WARN] upload rejected: %v", err)
		v.Error = err.Error()
		c.HTML(status, "index", v)
	}

	if c.Request.ContentLength > h.MaxBytes {
		fail(http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d bytes", h.MaxBytes))
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		fail(status, fmt.Errorf("read upload: %w", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(http.StatusBadRequest, fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		fail(statusFor(err), fmt.Errorf("read upload: %w", err))
		return
	}
	if _, err := h.Renderer.Tables.FromBytes(fh.Filename, data); err != nil {
		fail(http.StatusUnprocessableEntity, err)
		return
	}

	u, err := h.Uploads.Put(c.Request.Context(), fh.Filename, data)
	if err != nil {
		fail(http.StatusInternalServerError, fmt.Errorf("store upload: %w", err))
		return
	}
	log.Printf("[INFO] stored upload %s (%s, %d bytes)", u.ID, u.Name, len(data))
	c.Redirect(http.StatusSeeOther, "/?section=upload&upload="+url.QueryEscape(u.ID))
}

// Download returns the chart of the same render pass as an attachment.
func (h *Handler) Download(c *gin.Context) {
	in := inputsFromRequest(c)
	page, err := h.Renderer.Render(c.Request.Context(), in)
	if err != nil {
		log.Printf("[ERROR] download %s: %v", in.Section, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if !page.HasChart() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no chart for the current selection"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", page.Download))
	c.Data(http.StatusOK, "image/png", page.Chart)
}
