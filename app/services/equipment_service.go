package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
)

const (
	MaintenanceOverdue     = "overdue"
	MaintenanceDueSoon     = "due_soon"
	MaintenanceOK          = "ok"
	MaintenanceUnscheduled = "unscheduled"
)

// DueSoonWindowDays is how far ahead a service date counts as due soon.
const DueSoonWindowDays = 14

type EquipmentView struct {
	models.Equipment
	MaintenanceStatus string `json:"maintenance_status"`
	DaysUntilService  *int   `json:"days_until_service"`
}

type MaintenanceSummary struct {
	Total       int             `json:"total"`
	Overdue     int             `json:"overdue"`
	DueSoon     int             `json:"due_soon"`
	OK          int             `json:"ok"`
	Unscheduled int             `json:"unscheduled"`
	Upcoming    []EquipmentView `json:"upcoming"`
}

// EquipmentInput carries optional fields; nil means unchanged on update.
type EquipmentInput struct {
	Model               *string
	SerialNumber        *string
	Category            *string
	Status              *string
	HoursUsed           *int
	PurchaseDate        *time.Time
	LastServiceDate     *time.Time
	NextServiceDate     *time.Time
	ServiceIntervalDays *int
	Notes               *string
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepository
	now           func() time.Time
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepository) *EquipmentService {
	return &EquipmentService{equipmentRepo: equipmentRepo, now: time.Now}
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MaintenanceStatus compares the next service date with today, by UTC
// calendar day, so the result does not depend on the server's time zone.
func MaintenanceStatus(e *models.Equipment, now time.Time) (string, *int) {
	if e.NextServiceDate == nil {
		return MaintenanceUnscheduled, nil
	}

	today := startOfDay(now)
	due := startOfDay(*e.NextServiceDate)
	days := int(due.Sub(today).Round(time.Hour).Hours() / 24)

	switch {
	case days < 0:
		return MaintenanceOverdue, &days
	case days <= DueSoonWindowDays:
		return MaintenanceDueSoon, &days
	default:
		return MaintenanceOK, &days
	}
}

func (s *EquipmentService) view(e models.Equipment) EquipmentView {
	status, days := MaintenanceStatus(&e, s.now())
	return EquipmentView{Equipment: e, MaintenanceStatus: status, DaysUntilService: days}
}

func (s *EquipmentService) List(ctx context.Context, userID string) ([]EquipmentView, error) {
	machines, err := s.equipmentRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}

	views := make([]EquipmentView, 0, len(machines))
	for _, m := range machines {
		views = append(views, s.view(m))
	}
	return views, nil
}

func applyEquipmentInput(e *models.Equipment, in EquipmentInput) {
	if in.Model != nil {
		e.Model = *in.Model
	}
	if in.SerialNumber != nil {
		e.SerialNumber = *in.SerialNumber
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.HoursUsed != nil {
		e.HoursUsed = *in.HoursUsed
	}
	if in.PurchaseDate != nil {
		e.PurchaseDate = in.PurchaseDate
	}
	if in.LastServiceDate != nil {
		e.LastServiceDate = in.LastServiceDate
	}
	if in.NextServiceDate != nil {
		e.NextServiceDate = in.NextServiceDate
	}
	if in.ServiceIntervalDays != nil && *in.ServiceIntervalDays > 0 {
		e.ServiceIntervalDays = *in.ServiceIntervalDays
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
}

// scheduleNext fills a missing next service date from the last service, or
// the purchase date when the machine was never serviced.
func scheduleNext(e *models.Equipment) {
	if e.NextServiceDate != nil {
		return
	}
	if e.ServiceIntervalDays <= 0 {
		e.ServiceIntervalDays = models.DefaultServiceIntervalDays
	}

	base := e.LastServiceDate
	if base == nil {
		base = e.PurchaseDate
	}
	if base == nil {
		return
	}
	next := base.AddDate(0, 0, e.ServiceIntervalDays)
	e.NextServiceDate = &next
}

func (s *EquipmentService) Create(ctx context.Context, userID string, in EquipmentInput) (*EquipmentView, error) {
	machine := &models.Equipment{UserID: userID}
	applyEquipmentInput(machine, in)
	scheduleNext(machine)

	if err := s.equipmentRepo.Create(ctx, machine); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	v := s.view(*machine)
	return &v, nil
}

func (s *EquipmentService) Update(ctx context.Context, userID, id string, in EquipmentInput) (*EquipmentView, error) {
	machine, err := s.equipmentRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, ErrEquipmentNotFound
	}

	applyEquipmentInput(machine, in)
	scheduleNext(machine)

	if err := s.equipmentRepo.Save(ctx, machine); err != nil {
		return nil, fmt.Errorf("failed to update equipment: %w", err)
	}
	v := s.view(*machine)
	return &v, nil
}

// LogService records a completed service: the next one is due one interval
// from now and the machine is back in active use.
func (s *EquipmentService) LogService(ctx context.Context, userID, id string, hoursUsed *int, notes string) (*EquipmentView, error) {
	machine, err := s.equipmentRepo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, ErrEquipmentNotFound
	}

	now := s.now()
	if machine.ServiceIntervalDays <= 0 {
		machine.ServiceIntervalDays = models.DefaultServiceIntervalDays
	}
	next := now.AddDate(0, 0, machine.ServiceIntervalDays)

	machine.LastServiceDate = &now
	machine.NextServiceDate = &next
	machine.Status = models.EquipmentStatusActive
	if hoursUsed != nil {
		machine.HoursUsed = *hoursUsed
	}
	if notes != "" {
		machine.Notes = notes
	}

	if err := s.equipmentRepo.Save(ctx, machine); err != nil {
		return nil, fmt.Errorf("failed to record service: %w", err)
	}
	v := s.view(*machine)
	return &v, nil
}

// Summary counts machines per maintenance status and lists the ones that
// need attention, overdue first.
func (s *EquipmentService) Summary(ctx context.Context, userID string) (*MaintenanceSummary, error) {
	views, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &MaintenanceSummary{Total: len(views), Upcoming: []EquipmentView{}}
	var overdue, dueSoon []EquipmentView
	for _, v := range views {
		switch v.MaintenanceStatus {
		case MaintenanceOverdue:
			summary.Overdue++
			overdue = append(overdue, v)
		case MaintenanceDueSoon:
			summary.DueSoon++
			dueSoon = append(dueSoon, v)
		case MaintenanceOK:
			summary.OK++
		default:
			summary.Unscheduled++
		}
	}
	summary.Upcoming = append(summary.Upcoming, overdue...)
	summary.Upcoming = append(summary.Upcoming, dueSoon...)
	return summary, nil
}
