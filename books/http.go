package books

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/bookverse/backend/imagehost"
	"github.com/bookverse/backend/rest"
)

// MaxImageUploadBytes caps the multipart image payload.
const MaxImageUploadBytes = 5 * 1024 * 1024

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/tiff": {},
}

// Logger is the minimal logging surface the controller needs: a message
// plus alternating key/value pairs, the shape glog loggers accept.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type defLogger struct{}

func (d defLogger) Debug(msg string, args ...any) { logLine("[DBG]", msg, args) }
func (d defLogger) Info(msg string, args ...any)  { logLine("[INF]", msg, args) }
func (d defLogger) Warn(msg string, args ...any)  { logLine("[WRN]", msg, args) }
func (d defLogger) Error(msg string, args ...any) { logLine("[ERR]", msg, args) }

func logLine(prefix, msg string, args []any) {
	out := make([]any, 0, len(args)+1)
	out = append(out, prefix+" "+msg)
	out = append(out, args...)
	fmt.Println(out...)
}

// Controller exposes the catalog HTTP endpoints.
type Controller struct {
	books    Books
	uploader imagehost.Uploader
	logger   Logger
}

func NewController(books Books, uploader imagehost.Uploader) *Controller {
	return &Controller{
		books:    books,
		uploader: uploader,
		logger:   defLogger{},
	}
}

func (c *Controller) WithLogger(logger Logger) *Controller {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// RegisterRoutes mounts the catalog endpoints behind the given gate.
func (c *Controller) RegisterRoutes(app *fiber.App, gate fiber.Handler) {
	group := app.Group("/api/books", gate)
	group.Post("/create/", c.Create)
	group.Post("/image-upload/", c.UploadImage)
}

// Create validates and persists a new catalog record.
func (c *Controller) Create(ctx *fiber.Ctx) error {
	payload := new(CreateBookRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return rest.Fail(ctx, fiber.StatusBadRequest, "Invalid data", "malformed request body")
	}

	payload.Sanitize()
	if err := payload.Validate(); err != nil {
		return rest.Fail(ctx, fiber.StatusBadRequest, "Invalid data", err)
	}

	book, err := c.books.Create(ctx.UserContext(), payload.Record())
	if err != nil {
		c.logger.Warn("book create failed", "error", err)
		return rest.FailFromError(ctx, err)
	}

	return rest.Created(ctx, "Book created successfully", book)
}

// UploadImage accepts a multipart image and hosts it remotely.
func (c *Controller) UploadImage(ctx *fiber.Ctx) error {
	header, err := ctx.FormFile("image")
	if err != nil {
		return rest.Fail(ctx, fiber.StatusBadRequest, "No image file provided", nil)
	}

	if header.Size > MaxImageUploadBytes {
		return rest.Fail(ctx, fiber.StatusBadRequest, "Image file too large (max 5MB)", nil)
	}

	file, err := header.Open()
	if err != nil {
		return rest.FailFromError(ctx, errors.Wrap(err, errors.CategoryInternal, "failed to open uploaded file"))
	}
	defer file.Close()

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && n == 0 {
		return rest.FailFromError(ctx, errors.Wrap(err, errors.CategoryInternal, "failed to read uploaded file"))
	}

	contentType := http.DetectContentType(sniff[:n])
	if _, ok := allowedImageTypes[contentType]; !ok {
		return rest.Fail(ctx, fiber.StatusBadRequest, "Unsupported image type", fiber.Map{
			"content_type": contentType,
		})
	}

	if _, err := file.Seek(0, 0); err != nil {
		return rest.FailFromError(ctx, errors.Wrap(err, errors.CategoryInternal, "failed to rewind uploaded file"))
	}

	result, err := c.uploader.Upload(ctx.UserContext(), file, sanitizeFilename(header.Filename))
	if err != nil {
		c.logger.Error("image upload failed", "error", err)
		return rest.FailFromError(ctx, err)
	}

	return rest.OK(ctx, "Image uploaded successfully", result)
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return strings.ReplaceAll(base, " ", "_")
}
