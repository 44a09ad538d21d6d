package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"resume-builder/internal/extract"
	"resume-builder/internal/model"
	"resume-builder/internal/render"
	"resume-builder/internal/stream"
	"resume-builder/internal/usecase"
	apperrors "resume-builder/pkg/errors"
	"resume-builder/pkg/logger"
)

type Handler struct {
	processor      *usecase.Processor
	exporter       *usecase.Exporter
	maxUploadBytes int64
}

func NewHandler(p *usecase.Processor, e *usecase.Exporter, maxUploadBytes int64) *Handler {
	return &Handler{processor: p, exporter: e, maxUploadBytes: maxUploadBytes}
}

// NewApp wires the routes, middleware and error handling into a fiber app.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "resume-builder",
		ErrorHandler:          ErrorHandler,
		BodyLimit:             int(h.maxUploadBytes) + 1<<20,
		DisableStartupMessage: true,
	})
	app.Use(RequestID(), AccessLog())

	app.Get("/", h.Health)
	api := app.Group("/api")
	api.Post("/stream-resume-processing", h.StreamUpload)
	api.Post("/sanitize", h.Sanitize)
	api.Post("/validate", h.Validate)
	api.Post("/preview", h.Preview)
	api.Post("/print", h.Print)
	api.Post("/export", h.Export)
	return app
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Resume Builder API is running"})
}

// StreamUpload validates the upload up front, then answers with a
// text/event-stream that the processor writes progress frames into.
func (h *Handler) StreamUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperrors.BadRequest("No file uploaded").WithDetail(err.Error())
	}
	if fh.Size > h.maxUploadBytes {
		return apperrors.TooLarge("File is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return apperrors.BadRequest("Could not read the uploaded file")
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return apperrors.BadRequest("Could not read the uploaded file")
	}
	if _, err := extract.Detect(fh.Filename, data); err != nil {
		if errors.Is(err, extract.ErrEmptyFile) {
			return apperrors.BadRequest("File is empty")
		}
		return apperrors.BadRequest("Unsupported file type. Please upload a PDF, DOCX or TXT file.").WithDetail(err.Error())
	}

	// the fiber.Ctx is recycled once this handler returns; the stream
	// writer only uses what is captured here
	ctx := c.UserContext()
	name := fh.Filename
	logger.FromContext(ctx).Info("upload accepted", "file", name, "bytes", len(data))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		sw := stream.NewWriter(w)
		if _, err := h.processor.Process(ctx, name, data, sw.Send); err != nil {
			logger.FromContext(ctx).Warn("upload stream ended with error", "error", err)
		}
		if err := sw.Done(); err != nil {
			logger.FromContext(ctx).Debug("client gone before end of stream", "error", err)
		}
	}))
	return nil
}

// Sanitize accepts any JSON body and returns the canonical ResumeData.
func (h *Handler) Sanitize(c *fiber.Ctx) error {
	return c.JSON(model.SanitizeJSON(c.Body()))
}

func (h *Handler) Validate(c *fiber.Ctx) error {
	var m map[string]interface{}
	if err := json.Unmarshal(c.Body(), &m); err != nil || m == nil {
		return apperrors.BadRequest("Body must be a JSON object")
	}
	violations, err := model.Violations(m)
	if err != nil {
		return err
	}
	if violations == nil {
		violations = []string{}
	}
	return c.JSON(fiber.Map{"valid": len(violations) == 0, "errors": violations})
}

func (h *Handler) Preview(c *fiber.Ctx) error { return h.page(c, render.Preview) }

func (h *Handler) Print(c *fiber.Ctx) error { return h.page(c, render.Print) }

func (h *Handler) page(c *fiber.Ctx, mode render.Mode) error {
	b, err := h.exporter.Page(model.SanitizeJSON(c.Body()), mode)
	if err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(b)
}

func (h *Handler) Export(c *fiber.Ctx) error {
	format, err := usecase.ParseFormat(c.Query("format"))
	if err != nil {
		return apperrors.BadRequest("format must be docx, pdf or print")
	}
	a, err := h.exporter.Export(c.UserContext(), model.SanitizeJSON(c.Body()), format)
	if err != nil {
		return apperrors.Internal(usecase.ExportFailedMessage)
	}
	c.Set(fiber.HeaderContentDisposition, contentDisposition(a.FileName))
	c.Set(fiber.HeaderContentType, a.ContentType)
	return c.Send(a.Body)
}

// contentDisposition quotes or RFC 2231-encodes the name as needed.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
