package books

import (
	"context"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

const (
	// MaxImagesPerBook bounds how many hosted image URLs a record carries.
	MaxImagesPerBook = 5

	publicationDateLayout = "2006-01-02"
)

var authorPattern = regexp.MustCompile(`^[a-zA-Z\s.\-]+$`)

// Book is the catalog record.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:bok"`

	ID              int64      `bun:"id,pk,autoincrement" json:"id"`
	Title           string     `bun:"title,notnull" json:"title"`
	Author          string     `bun:"author,notnull" json:"author"`
	ISBN            string     `bun:"isbn,unique,nullzero" json:"isbn,omitempty"`
	PublicationDate string     `bun:"publication_date" json:"publication_date,omitempty"`
	Genre           string     `bun:"genre" json:"genre,omitempty"`
	Description     string     `bun:"description" json:"description,omitempty"`
	Images          []string   `bun:"images,type:text" json:"images"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// CreateSchema creates the books table if it does not exist.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*Book)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create books schema")
	}
	return nil
}

// CreateBookRequest is the payload accepted by the create endpoint.
type CreateBookRequest struct {
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	ISBN            string   `json:"isbn"`
	PublicationDate string   `json:"publication_date"`
	Genre           string   `json:"genre"`
	Description     string   `json:"description"`
	Images          []string `json:"images"`
}

// Sanitize cleans every text field in place. Call before Validate so
// the rules see the values that will be persisted.
func (r *CreateBookRequest) Sanitize() {
	r.Title = SanitizeString(r.Title)
	r.Author = SanitizeString(r.Author)
	r.ISBN = SanitizeISBN(r.ISBN)
	r.PublicationDate = SanitizeString(r.PublicationDate)
	r.Genre = SanitizeString(r.Genre)
	r.Description = SanitizeString(r.Description)
	for i, img := range r.Images {
		r.Images[i] = strings.TrimSpace(img)
	}
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required,
			validation.Length(2, 255),
		),
		validation.Field(&r.Author,
			validation.Required,
			validation.Length(2, 100),
			validation.Match(authorPattern).Error("must contain only letters, spaces, periods, and hyphens"),
		),
		validation.Field(&r.ISBN,
			validation.By(validISBN),
		),
		validation.Field(&r.PublicationDate,
			validation.By(validPublicationDate),
		),
		validation.Field(&r.Genre,
			validation.Length(2, 50),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2000),
		),
		validation.Field(&r.Images,
			validation.By(validImages),
		),
	)
}

// Record builds the persistable model from a sanitized request.
func (r CreateBookRequest) Record() *Book {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return &Book{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		PublicationDate: r.PublicationDate,
		Genre:           r.Genre,
		Description:     r.Description,
		Images:          images,
	}
}

func validISBN(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	digits := strings.ReplaceAll(raw, "-", "")
	if len(digits) != 10 && len(digits) != 13 {
		return validation.NewError("validation_isbn_length", "must be 10 or 13 digits")
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return validation.NewError("validation_isbn_digits", "must contain only digits and hyphens")
		}
	}
	return nil
}

func validPublicationDate(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	date, err := time.Parse(publicationDateLayout, raw)
	if err != nil {
		return validation.NewError("validation_date_format", "must use the YYYY-MM-DD format")
	}
	if date.After(time.Now()) {
		return validation.NewError("validation_date_future", "cannot be in the future")
	}
	return nil
}

func validImages(value any) error {
	images, _ := value.([]string)
	if len(images) > MaxImagesPerBook {
		return validation.NewError("validation_images_count", "cannot contain more than 5 images")
	}
	for _, img := range images {
		if err := validation.Validate(img, validation.Required, is.URL); err != nil {
			return validation.NewError("validation_images_url", "must contain valid image URLs")
		}
	}
	return nil
}
