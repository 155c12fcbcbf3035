package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/repository"
)

type assignmentService struct {
	staff     repository.StaffAssignmentRepo
	equipment repository.EquipmentAssignmentRepo
}

func NewAssignmentService(
	staff repository.StaffAssignmentRepo,
	equipment repository.EquipmentAssignmentRepo,
) AssignmentService {
	return &assignmentService{staff: staff, equipment: equipment}
}

func (s *assignmentService) CreateStaff(ctx context.Context, a *domain.StaffAssignment) error {
	if a.EndDate.Before(a.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(a.StartDate), End: dateutil.FormatISO(a.EndDate)}
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.StartDate = dateutil.Normalize(a.StartDate)
	a.EndDate = dateutil.Normalize(a.EndDate)
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.staff.Create(ctx, a)
}

func (s *assignmentService) CreateEquipment(ctx context.Context, a *domain.EquipmentAssignment) error {
	if a.EndDate.Before(a.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(a.StartDate), End: dateutil.FormatISO(a.EndDate)}
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.StartDate = dateutil.Normalize(a.StartDate)
	a.EndDate = dateutil.Normalize(a.EndDate)
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.equipment.Create(ctx, a)
}

func (s *assignmentService) ListStaff(ctx context.Context, ownerType domain.EntityType, ownerID string) ([]*domain.StaffAssignment, error) {
	return s.staff.ListByOwner(ctx, ownerType, ownerID)
}

func (s *assignmentService) ListEquipment(ctx context.Context, ownerType domain.EntityType, ownerID string) ([]*domain.EquipmentAssignment, error) {
	return s.equipment.ListByOwner(ctx, ownerType, ownerID)
}

func (s *assignmentService) DeleteStaff(ctx context.Context, id string) error {
	return s.staff.Delete(ctx, id)
}

func (s *assignmentService) DeleteEquipment(ctx context.Context, id string) error {
	return s.equipment.Delete(ctx, id)
}
