package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medagenda/clinic-slots-generator/internal/config"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/in"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
	slotgen "github.com/medagenda/clinic-slots-generator/internal/core/services/slot_generator_service"
)

type SlotGeneratorService struct {
	storagePort out.StoragePort
	cachePort   out.CachePort
	logger      out.LoggerPort
	cfg         *config.Config
}

func NewSlotGeneratorService(
	storagePort out.StoragePort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *SlotGeneratorService {
	return &SlotGeneratorService{
		storagePort: storagePort,
		cachePort:   cachePort,
		logger:      logger.WithModule("SlotGeneratorService"),
		cfg:         cfg,
	}
}

func (s *SlotGeneratorService) cacheEnabled() bool {
	return s.cachePort != nil && s.cfg.Cache.Enabled
}

func (s *SlotGeneratorService) GenerateAvailableSlots(ctx context.Context) ([]domain.Slot, error) {
	now := time.Now().In(s.cfg.Location())
	today := json_types.DateOf(now)

	s.logger.Info("slots.generate.started", out.LogFields{
		"today":    today,
		"leadTime": s.cfg.LeadTime().String(),
	})

	rules, err := s.storagePort.GetWorkingHoursRules(ctx)
	if err != nil {
		s.logger.Error("slots.generate.rules.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("slots.generate.rules.fetch_failed: %w", err)
	}

	appointments, err := s.storagePort.GetOccupyingAppointments(ctx, today)
	if err != nil {
		s.logger.Error("slots.generate.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("slots.generate.appointments.fetch_failed: %w", err)
	}

	// Правила группируются по специалисту: кэш слотов живет на уровне специалиста
	rulesByProfessional := make(map[uuid.UUID][]domain.WorkingHoursRule)
	order := make([]uuid.UUID, 0)
	for _, rule := range rules {
		if _, exists := rulesByProfessional[rule.ProfessionalID]; !exists {
			order = append(order, rule.ProfessionalID)
		}
		rulesByProfessional[rule.ProfessionalID] = append(rulesByProfessional[rule.ProfessionalID], rule)
	}

	slots := make([]domain.Slot, 0)
	for _, professionalID := range order {
		slots = append(slots, s.professionalSlots(ctx, professionalID, rulesByProfessional[professionalID], appointments, now)...)
	}

	// Слоты собирались по специалистам, глобальный порядок (дата, время)
	// восстанавливается одной финальной сортировкой
	result := slotgen.FilterLeadTime(slots, now, s.cfg.LeadTime())
	slotgen.SortSlots(result)

	s.logger.Info("slots.generate.finished", out.LogFields{
		"slotsCount": len(result),
	})

	return result, nil
}

func (s *SlotGeneratorService) professionalSlots(
	ctx context.Context,
	professionalID uuid.UUID,
	rules []domain.WorkingHoursRule,
	appointments []domain.Appointment,
	now time.Time,
) []domain.Slot {
	if s.cacheEnabled() {
		if cached, exists := s.cachePort.GetSlots(ctx, professionalID); exists {
			s.logger.Debug("slots.generate.cache.hit", out.LogFields{
				"professionalId": professionalID,
				"slotsCount":     len(cached),
			})
			// Кэш мог быть собран раньше: слоты, успевшие попасть в буфер,
			// отфильтруются общим проходом по lead time
			return cached
		}
	}

	s.logger.Debug("slots.generate.cache.miss", out.LogFields{
		"professionalId": professionalID,
	})

	generated := slotgen.GenerateAvailableSlots(rules, appointments, now, s.cfg.LeadTime(), s.logger)

	if s.cacheEnabled() {
		s.cachePort.StoreSlots(ctx, professionalID, generated)
	}

	return generated
}

func (s *SlotGeneratorService) BookSlot(ctx context.Context, req in.BookingRequest) (*domain.Appointment, error) {
	appointment := domain.Appointment{
		ID:               uuid.New(),
		ProfessionalID:   req.ProfessionalID,
		PatientID:        req.PatientID,
		ConsultationType: req.ConsultationType,
		Date:             req.Date,
		Time:             req.Time,
		Status:           domain.AppointmentStatusScheduled,
	}

	created, err := s.storagePort.InsertAppointment(ctx, appointment)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			s.logger.Warn("slots.book.conflict", out.LogFields{
				"professionalId": req.ProfessionalID,
				"date":           req.Date,
				"time":           req.Time,
			})
			return nil, err
		}

		s.logger.Error("slots.book.insert_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("slots.book.insert_failed: %w", err)
	}

	// Из кэша удаляется ровно тот слот, который был потреблен записью
	if s.cacheEnabled() {
		s.cachePort.RemoveSlot(ctx, created.ProfessionalID, created.Date, created.Time)
	}

	s.logger.Info("slots.book.accepted", out.LogFields{
		"appointmentId":  created.ID,
		"professionalId": created.ProfessionalID,
		"date":           created.Date,
		"time":           created.Time,
	})

	return created, nil
}

func (s *SlotGeneratorService) ReconcileAppointment(ctx context.Context, appointment domain.Appointment) error {
	if !s.cacheEnabled() {
		return nil
	}

	if appointment.Status.Occupies() {
		// Новая занимающая запись гасит один конкретный слот
		s.cachePort.RemoveSlot(ctx, appointment.ProfessionalID, appointment.Date, appointment.Time)
		s.logger.Debug("slots.reconcile.slot_removed", out.LogFields{
			"appointmentId":  appointment.ID,
			"professionalId": appointment.ProfessionalID,
		})
		return nil
	}

	// Отмена освобождает слот, но восстановить его из кэша нельзя -
	// сбрасываем специалиста целиком, следующий запрос пересоберет
	s.cachePort.InvalidateProfessional(ctx, appointment.ProfessionalID)
	s.logger.Debug("slots.reconcile.professional_invalidated", out.LogFields{
		"appointmentId":  appointment.ID,
		"professionalId": appointment.ProfessionalID,
	})
	return nil
}

func (s *SlotGeneratorService) InvalidateProfessionalSlots(ctx context.Context, professionalID uuid.UUID) {
	if !s.cacheEnabled() {
		return
	}
	s.cachePort.InvalidateProfessional(ctx, professionalID)
}

func (s *SlotGeneratorService) InvalidateAllSlots(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	s.cachePort.InvalidateAll(ctx)
}
