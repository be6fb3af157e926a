package books

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Books is the persistence surface for catalog records.
type Books interface {
	Create(ctx context.Context, book *Book) (*Book, error)
	GetByID(ctx context.Context, id int64) (*Book, error)
	List(ctx context.Context, limit, offset int) ([]Book, int, error)
}

type bunBooks struct {
	db *bun.DB
}

// NewBooks returns a bun backed Books repository.
func NewBooks(db *bun.DB) Books {
	return &bunBooks{db: db}
}

func (r *bunBooks) Create(ctx context.Context, book *Book) (*Book, error) {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if book.ISBN != "" {
			exists, err := tx.NewSelect().
				Model((*Book)(nil)).
				Where("?TableAlias.isbn = ?", book.ISBN).
				Exists(ctx)
			if err != nil {
				return errors.Wrap(err, errors.CategoryInternal, "failed to check ISBN")
			}
			// The unique column constraint is the backstop for
			// concurrent inserts of the same ISBN.
			if exists {
				return ErrDuplicateISBN
			}
		}
		if _, err := tx.NewInsert().Model(book).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to insert book")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *bunBooks) GetByID(ctx context.Context, id int64) (*Book, error) {
	book := new(Book)
	err := r.db.NewSelect().
		Model(book).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to select book")
	}
	return book, nil
}

func (r *bunBooks) List(ctx context.Context, limit, offset int) ([]Book, int, error) {
	var records []Book
	total, err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to list books")
	}
	return records, total, nil
}
