package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medagenda/clinic-slots-generator/internal/config"
	"github.com/medagenda/clinic-slots-generator/internal/core/domain"
	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
	"github.com/medagenda/clinic-slots-generator/internal/core/ports/out"
)

// Код уникального нарушения в Postgres
const uniqueViolationCode = "23505"

type PostgresAdapter struct {
	pool   *pgxpool.Pool
	logger out.LoggerPort
}

func NewPostgresAdapter(ctx context.Context, cfg *config.Config, logger out.LoggerPort) (*PostgresAdapter, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Postgres.URL)
	if err != nil {
		logger.Error("postgres.config.parse_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	poolConfig.MaxConns = cfg.Postgres.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("postgres.pool.init_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	// Быстрая проверка, что база жива
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Error("postgres.ping.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &PostgresAdapter{
		pool:   pool,
		logger: logger,
	}, nil
}

func (a *PostgresAdapter) Close() {
	a.pool.Close()
}

func (a *PostgresAdapter) GetWorkingHoursRules(ctx context.Context) ([]domain.WorkingHoursRule, error) {
	query := `SELECT w.professional_id, p.full_name, p.specialty, w.weekday,
			  to_char(w.start_time, 'HH24:MI'), to_char(w.end_time, 'HH24:MI'), w.duration_minutes
			  FROM working_hours w
			  JOIN professional p ON p.id = w.professional_id
			  ORDER BY w.professional_id, w.weekday`

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		a.logger.Error("postgres.working_hours.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer rows.Close()

	var rules []domain.WorkingHoursRule
	for rows.Next() {
		var rule domain.WorkingHoursRule
		var weekday, startTime, endTime string

		if err := rows.Scan(
			&rule.ProfessionalID, &rule.ProfessionalName, &rule.Specialty,
			&weekday, &startTime, &endTime, &rule.DurationMinutes,
		); err != nil {
			a.logger.Error("postgres.working_hours.scan_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, err
		}

		rule.Weekday = domain.Weekday(weekday)
		if rule.StartTime, err = json_types.ParseTimeOfDay(startTime); err != nil {
			return nil, err
		}
		if rule.EndTime, err = json_types.ParseTimeOfDay(endTime); err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	a.logger.Debug("postgres.working_hours.fetch_success", out.LogFields{
		"count": len(rules),
	})

	return rules, nil
}

func (a *PostgresAdapter) GetOccupyingAppointments(ctx context.Context, from json_types.Date) ([]domain.Appointment, error) {
	statuses := make([]string, 0)
	for _, status := range domain.OccupyingStatuses() {
		statuses = append(statuses, string(status))
	}

	query := `SELECT a.id, a.professional_id, a.patient_id, a.consultation_type,
			  to_char(a.date, 'YYYY-MM-DD'), to_char(a.time, 'HH24:MI'), a.status
			  FROM appointment a
			  WHERE a.status = ANY($1) AND a.date >= $2
			  ORDER BY a.date, a.time`

	rows, err := a.pool.Query(ctx, query, statuses, from.String())
	if err != nil {
		a.logger.Error("postgres.appointments.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var appointment domain.Appointment
		var date, timeOfDay, status string

		if err := rows.Scan(
			&appointment.ID, &appointment.ProfessionalID, &appointment.PatientID,
			&appointment.ConsultationType, &date, &timeOfDay, &status,
		); err != nil {
			a.logger.Error("postgres.appointments.scan_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, err
		}

		if appointment.Date, err = json_types.ParseDate(date); err != nil {
			return nil, err
		}
		if appointment.Time, err = json_types.ParseTimeOfDay(timeOfDay); err != nil {
			return nil, err
		}
		appointment.Status = domain.AppointmentStatus(status)

		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	a.logger.Debug("postgres.appointments.fetch_success", out.LogFields{
		"count": len(appointments),
		"from":  from,
	})

	return appointments, nil
}

// InsertAppointment вставляет запись, полагаясь на частичный уникальный
// индекс по (professional_id, date, time) среди занимающих статусов.
// Из двух конкурентных записей на один слот вторая получает ErrSlotTaken
func (a *PostgresAdapter) InsertAppointment(ctx context.Context, appointment domain.Appointment) (*domain.Appointment, error) {
	query := `INSERT INTO appointment (id, professional_id, patient_id, consultation_type, date, time, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.pool.Exec(ctx, query,
		appointment.ID, appointment.ProfessionalID, appointment.PatientID,
		appointment.ConsultationType, appointment.Date.String(), appointment.Time.String(),
		string(appointment.Status),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrSlotTaken
		}

		a.logger.Error("postgres.appointment.insert_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("postgres.appointment.insert_success", out.LogFields{
		"appointmentId": appointment.ID,
	})

	return &appointment, nil
}
