package usecase

import (
	"context"

	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/repository"
	"hospital-management/pkg/validator"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// crudBase carries what every entity usecase needs.
type crudBase struct {
	db        *gorm.DB
	log       *logrus.Logger
	validator *validator.CustomValidator
}

// findOne loads a record, mapping a missing row to sentinel.
func findOne[T any](ctx context.Context, db *gorm.DB, repo repository.Repository[T], id int64, sentinel error) (*T, error) {
	record, err := repo.FindByID(ctx, db, id)
	if err != nil {
		return nil, notFoundAs(err, sentinel)
	}
	return record, nil
}

// listPage validates paging and returns one converted page.
func listPage[T, R any](
	ctx context.Context,
	b crudBase,
	repo repository.Repository[T],
	req dto.ListRequest,
	convert func([]T) []R,
) (*dto.ListResponse[R], error) {
	if err := validateParams(b.validator, &req); err != nil {
		return nil, err
	}

	records, total, err := repo.FindAll(ctx, b.db, req.Limit, req.Offset())
	if err != nil {
		b.log.Warnf("Failed to list records: %+v", err)
		return nil, err
	}
	return &dto.ListResponse[R]{
		Items: convert(records),
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	}, nil
}
