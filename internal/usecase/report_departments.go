package usecase

import (
	"context"

	"hospital-management/internal/converter"
	"hospital-management/internal/delivery/dto"
	"hospital-management/internal/domain/entity"
	"hospital-management/internal/query"
)

func (u *reportUsecase) LeaderlessDepartments(ctx context.Context, params dto.MinCountParams) ([]dto.DepartmentCountResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	counts, err := query.DoctorDepartment.Counts(ctx, u.db, query.CountOptions{
		Filter: []query.Scope{query.Where(query.C("departments.head_doctor_id IS NULL"))},
		Having: threshold(query.AtLeast(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count doctors per department: %+v", err)
		return nil, err
	}
	return u.departmentCounts(ctx, counts)
}

func (u *reportUsecase) DepartmentsByDoctorCount(ctx context.Context) ([]dto.DepartmentCountResponse, error) {
	counts, err := query.DoctorDepartment.Counts(ctx, u.db, query.CountOptions{Descending: true})
	if err != nil {
		u.log.Warnf("Failed to count doctors per department: %+v", err)
		return nil, err
	}
	return u.departmentCounts(ctx, counts)
}

// DepartmentHeads lists every department; head_doctor is null when unset.
func (u *reportUsecase) DepartmentHeads(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := query.New[entity.Department]().
		Preload("HeadDoctor.User").
		Execute(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to query department heads: %+v", err)
		return nil, err
	}
	return converter.DepartmentsToResponses(departments), nil
}

// DepartmentSurgeryCounts counts surgeries performed by each department's
// doctors.
func (u *reportUsecase) DepartmentSurgeryCounts(ctx context.Context) ([]dto.DepartmentCountResponse, error) {
	rows, err := query.CountRows(ctx, u.db, query.CountSpec{
		From: "departments",
		Keys: []string{"departments.id"},
		Joins: []query.Cond{
			query.C("LEFT JOIN doctors ON doctors.department_id = departments.id"),
			query.C("LEFT JOIN surgeries ON surgeries.doctor_id = doctors.id"),
		},
		Count: "surgeries.id",
	})
	if err != nil {
		u.log.Warnf("Failed to count surgeries per department: %+v", err)
		return nil, err
	}

	counts := make([]query.Count, len(rows))
	for i, r := range rows {
		counts[i] = query.Count{ID: r.Keys[0], Count: r.Count}
	}
	return u.departmentCounts(ctx, counts)
}

func (u *reportUsecase) StaffedDepartments(ctx context.Context, params dto.MinCountParams) ([]dto.DepartmentCountResponse, error) {
	if err := validateParams(u.validator, &params); err != nil {
		return nil, err
	}

	counts, err := query.DoctorDepartment.Counts(ctx, u.db, query.CountOptions{
		Having: threshold(query.AtLeast(params.Min)),
	})
	if err != nil {
		u.log.Warnf("Failed to count doctors per department: %+v", err)
		return nil, err
	}
	return u.departmentCounts(ctx, counts)
}
