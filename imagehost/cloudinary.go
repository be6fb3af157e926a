// Package imagehost wraps the remote media host the catalog stores
// book covers on.
package imagehost

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/goliatone/go-errors"
)

// DefaultTransformation renders a consistent catalog thumbnail.
const DefaultTransformation = "w_800,h_600,c_fill,q_auto,f_auto"

// Result describes a hosted image.
type Result struct {
	URL      string   `json:"url"`
	PublicID string   `json:"public_id"`
	Format   string   `json:"format"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Tags     []string `json:"tags"`
}

// Uploader hosts image files remotely.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*Result, error)
}

// Cloudinary is the production Uploader.
type Cloudinary struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinary builds an Uploader from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to initialize cloudinary client")
	}
	return &Cloudinary{client: client, folder: folder}, nil
}

// Upload pushes the file to the configured folder, attaches a width
// based size tag, and returns a transformed delivery URL.
func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, filename string) (*Result, error) {
	res, err := c.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         c.folder,
		PublicID:       filename,
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to upload image")
	}

	tags := SizeTags(res.Width)
	if _, err := c.client.Admin.UpdateAsset(ctx, admin.UpdateAssetParams{
		PublicID: res.PublicID,
		Tags:     api.CldAPIArray(tags),
	}); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to tag image")
	}

	url, err := c.transformedURL(res.PublicID)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:      url,
		PublicID: res.PublicID,
		Format:   res.Format,
		Width:    res.Width,
		Height:   res.Height,
		Tags:     tags,
	}, nil
}

func (c *Cloudinary) transformedURL(publicID string) (string, error) {
	img, err := c.client.Image(publicID)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to build image URL")
	}
	img.Transformation = DefaultTransformation
	url, err := img.String()
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to render image URL")
	}
	return url, nil
}

// SizeTags buckets an image by width.
func SizeTags(width int) []string {
	switch {
	case width > 900:
		return []string{"large"}
	case width > 500:
		return []string{"medium"}
	default:
		return []string{"small"}
	}
}
