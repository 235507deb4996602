// services/schedule_service.go
package services

import (
	"fmt"
	"time"

	"pharmaflow-backend/models"
	"pharmaflow-backend/store"
)

const (
	tableAppointments  = "appointments"
	tableServices      = "services"
	tableProfessionals = "professionals"
	tableClients       = "clients"

	dateLayout = "2006-01-02"

	// DefaultDurationMinutes is used when a service has no configured
	// duration.
	DefaultDurationMinutes = 30
)

// Interval is a half-open time interval [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// BookedInterval is an existing appointment's interval, already parsed
// at ingestion so the conflict scan itself never touches raw strings.
type BookedInterval struct {
	Interval
	Appointment models.Appointment
}

// FindConflict returns the first existing interval overlapping the
// candidate, or nil. Half-open semantics: back-to-back appointments do
// not conflict. Pure and deterministic over its arguments.
func FindConflict(candidate Interval, existing []BookedInterval) *BookedInterval {
	for i := range existing {
		if candidate.Start.Before(existing[i].End) && candidate.End.After(existing[i].Start) {
			return &existing[i]
		}
	}
	return nil
}

// Slot statuses for the day grid.
const (
	SlotFree     = "Free"
	SlotOccupied = "Occupied"
)

// Slot is one display bucket of the day grid. It is a reporting view
// only; booking decisions always run against exact intervals.
type Slot struct {
	Time    string `json:"time"`
	Status  string `json:"status"`
	Client  string `json:"client"`
	Service string `json:"service"`
}

// BookingInput is the candidate appointment supplied by the caller.
type BookingInput struct {
	ClientID       *int   `json:"client_id"`
	ServiceID      int    `json:"service_id"`
	ProfessionalID int    `json:"professional_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
}

// ScheduleService books appointments and builds day occupancy grids.
// Every decision re-reads the live schedule from the store; nothing is
// cached across calls.
type ScheduleService struct {
	store store.Store

	// Working hours and grid bucket size, clock strings "HH:MM".
	WorkStart   string
	WorkEnd     string
	SlotMinutes int
}

func NewScheduleService(st store.Store) *ScheduleService {
	return &ScheduleService{
		store:       st,
		WorkStart:   "08:00",
		WorkEnd:     "19:00",
		SlotMinutes: 30,
	}
}

// Book validates the candidate, re-reads the professional's day from
// the store, runs the conflict check and persists the appointment as
// Scheduled. No lock is held between the read and the write; two
// concurrent callers can still race (see DESIGN.md).
func (s *ScheduleService) Book(input BookingInput) (models.Appointment, error) {
	var appt models.Appointment

	if input.ServiceID == 0 {
		return appt, validationf("service is required")
	}
	if input.ProfessionalID == 0 {
		return appt, validationf("professional is required")
	}
	if input.Date == "" {
		return appt, validationf("date is required")
	}
	if input.StartTime == "" {
		return appt, validationf("start time is required")
	}

	day, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return appt, validationf("invalid date %q, expected YYYY-MM-DD", input.Date)
	}
	startClock, err := parseClock(input.StartTime)
	if err != nil {
		return appt, validationf("invalid start time %q", input.StartTime)
	}

	if _, err := s.mustExist(tableProfessionals, input.ProfessionalID); err != nil {
		return appt, err
	}
	svcRow, err := s.mustExist(tableServices, input.ServiceID)
	if err != nil {
		return appt, err
	}

	var svc models.Service
	if err := store.Decode(svcRow, &svc); err != nil {
		return appt, &store.PersistenceError{Op: "decode", Table: tableServices, Err: err}
	}
	duration := svc.DurationMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	booked, err := s.daySchedule(input.ProfessionalID, day)
	if err != nil {
		return appt, err
	}

	start := day.Add(startClock)
	candidate := Interval{Start: start, End: start.Add(time.Duration(duration) * time.Minute)}
	if hit := FindConflict(candidate, booked); hit != nil {
		return appt, &ConflictError{Existing: hit.Appointment}
	}

	rec := store.Record{
		"client_id":        nil,
		"service_id":       input.ServiceID,
		"professional_id":  input.ProfessionalID,
		"date":             input.Date,
		"start_time":       formatClock(startClock),
		"duration_minutes": duration,
		"status":           models.StatusScheduled,
	}
	if input.ClientID != nil {
		rec["client_id"] = *input.ClientID
	}

	created, err := s.store.Insert(tableAppointments, rec)
	if err != nil {
		return appt, err
	}
	if err := store.Decode(created, &appt); err != nil {
		return appt, &store.PersistenceError{Op: "decode", Table: tableAppointments, Err: err}
	}
	return appt, nil
}

// DayGrid builds the visual occupancy grid for one professional and
// day: fixed buckets between the working-hour bounds, each marked Free
// or Occupied with the occupying client and service names.
func (s *ScheduleService) DayGrid(professionalID int, date string) ([]Slot, error) {
	if professionalID == 0 {
		return nil, validationf("professional is required")
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, validationf("invalid date %q, expected YYYY-MM-DD", date)
	}

	booked, err := s.daySchedule(professionalID, day)
	if err != nil {
		return nil, err
	}

	workStart, err := parseClock(s.WorkStart)
	if err != nil {
		return nil, fmt.Errorf("bad working hours start: %w", err)
	}
	workEnd, err := parseClock(s.WorkEnd)
	if err != nil {
		return nil, fmt.Errorf("bad working hours end: %w", err)
	}
	step := time.Duration(s.SlotMinutes) * time.Minute

	names := map[string]map[int]string{}
	var grid []Slot
	for cur := day.Add(workStart); cur.Before(day.Add(workEnd)); cur = cur.Add(step) {
		slot := Slot{
			Time:    cur.Format("15:04"),
			Status:  SlotFree,
			Client:  "-",
			Service: "-",
		}
		bucket := Interval{Start: cur, End: cur.Add(step)}
		if hit := FindConflict(bucket, booked); hit != nil {
			slot.Status = SlotOccupied
			if hit.Appointment.ClientID != nil {
				slot.Client, err = s.cachedName(names, tableClients, *hit.Appointment.ClientID)
				if err != nil {
					return nil, err
				}
			}
			slot.Service, err = s.cachedName(names, tableServices, hit.Appointment.ServiceID)
			if err != nil {
				return nil, err
			}
		}
		grid = append(grid, slot)
	}
	return grid, nil
}

// daySchedule re-reads the professional's Scheduled appointments for
// one day and parses them into intervals. A row that cannot be decoded
// or parsed fails the whole read: a malformed stored appointment means
// corrupted data, and silently skipping it could approve a conflicting
// booking.
func (s *ScheduleService) daySchedule(professionalID int, day time.Time) ([]BookedInterval, error) {
	rows, err := s.store.Select(tableAppointments, store.Filters{
		"professional_id": professionalID,
		"date":            day.Format(dateLayout),
		"status":          models.StatusScheduled,
	})
	if err != nil {
		return nil, err
	}

	booked := make([]BookedInterval, 0, len(rows))
	for _, row := range rows {
		var appt models.Appointment
		if err := store.Decode(row, &appt); err != nil {
			return nil, &store.PersistenceError{Op: "decode", Table: tableAppointments, Err: err}
		}
		clock, err := parseClock(appt.StartTime)
		if err != nil {
			return nil, &store.PersistenceError{
				Op:    "decode",
				Table: tableAppointments,
				Err:   fmt.Errorf("appointment %d has malformed start time %q", appt.ID, appt.StartTime),
			}
		}
		duration := appt.DurationMinutes
		if duration <= 0 {
			duration = DefaultDurationMinutes
		}
		start := day.Add(clock)
		booked = append(booked, BookedInterval{
			Interval:    Interval{Start: start, End: start.Add(time.Duration(duration) * time.Minute)},
			Appointment: appt,
		})
	}
	return booked, nil
}

func (s *ScheduleService) mustExist(table string, id int) (store.Record, error) {
	rows, err := s.store.Select(table, store.Filters{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, validationf("%s: no row with id %d", table, id)
	}
	return rows[0], nil
}

func (s *ScheduleService) cachedName(cache map[string]map[int]string, table string, id int) (string, error) {
	if byID, ok := cache[table]; ok {
		if name, ok := byID[id]; ok {
			return name, nil
		}
	} else {
		cache[table] = map[int]string{}
	}

	name := "?"
	rows, err := s.store.Select(table, store.Filters{"id": id})
	if err != nil {
		return "", err
	}
	if len(rows) > 0 {
		if n, ok := rows[0]["name"].(string); ok {
			name = n
		}
	}
	cache[table][id] = name
	return name, nil
}

// parseClock reads "HH:MM:SS" or "HH:MM" into an offset from midnight.
func parseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
		}
	}
	return 0, fmt.Errorf("malformed clock time %q", s)
}

func formatClock(offset time.Duration) string {
	return time.Time{}.Add(offset).Format("15:04:05")
}
