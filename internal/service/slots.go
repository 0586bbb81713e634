package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/model"
)

const dateLayout = "2006-01-02"

// parseLayout also accepts unpadded months and days ("2025-1-5").
const parseLayout = "2006-1-2"

// SlotPolicy describes the working day that slots are cut from. DayStart and
// DayEnd are offsets from local midnight in Location.
type SlotPolicy struct {
	Location      *time.Location
	DayStart      time.Duration
	DayEnd        time.Duration
	Step          time.Duration
	LookaheadDays int
	MaxRangeDays  int
}

// DefaultSlotPolicy is 09:00 to 17:00 UTC in 30 minute steps, one week ahead.
func DefaultSlotPolicy() SlotPolicy {
	return SlotPolicy{
		Location:      time.UTC,
		DayStart:      9 * time.Hour,
		DayEnd:        17 * time.Hour,
		Step:          30 * time.Minute,
		LookaheadDays: 7,
		MaxRangeDays:  90,
	}
}

func (p SlotPolicy) withDefaults() SlotPolicy {
	d := DefaultSlotPolicy()
	if p.Location == nil {
		p.Location = d.Location
	}
	if p.Step <= 0 {
		p.Step = d.Step
	}
	if p.DayEnd <= p.DayStart {
		p.DayStart, p.DayEnd = d.DayStart, d.DayEnd
	}
	if p.LookaheadDays <= 0 {
		p.LookaheadDays = d.LookaheadDays
	}
	if p.MaxRangeDays <= 0 {
		p.MaxRangeDays = d.MaxRangeDays
	}
	return p
}

// Candidates lists every slot the policy defines for the calendar dates
// from..to inclusive, in start order. Nothing when to is before from.
func (p SlotPolicy) Candidates(from, to time.Time) []model.Slot {
	from, to = p.midnight(from), p.midnight(to)
	var out []model.Slot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		for off := p.DayStart; off+p.Step <= p.DayEnd; off += p.Step {
			start := time.Date(day.Year(), day.Month(), day.Day(),
				int(off/time.Hour), int(off%time.Hour/time.Minute), 0, 0, p.Location)
			out = append(out, model.Slot{StartAt: start.UTC(), EndAt: start.Add(p.Step).UTC()})
		}
	}
	return out
}

func (p SlotPolicy) midnight(t time.Time) time.Time {
	t = t.In(p.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.Location)
}

type Slots struct {
	repo   SlotRepository
	policy SlotPolicy
	now    func() time.Time
	log    *slog.Logger
}

func (s *Slots) Policy() SlotPolicy { return s.policy }

// DefaultRange is today through LookaheadDays ahead.
func (s *Slots) DefaultRange() (time.Time, time.Time) {
	from := s.policy.midnight(s.now())
	return from, from.AddDate(0, 0, s.policy.LookaheadDays)
}

// ParseRange reads YYYY-MM-DD bounds in the policy's time zone. If either
// bound is blank the default range is used.
func (s *Slots) ParseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	fromStr, toStr = strings.TrimSpace(fromStr), strings.TrimSpace(toStr)
	if fromStr == "" || toStr == "" {
		from, to := s.DefaultRange()
		return from, to, nil
	}
	from, err := time.ParseInLocation(parseLayout, fromStr, s.policy.Location)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.ErrInvalidDateFormat
	}
	to, err := time.ParseInLocation(parseLayout, toStr, s.policy.Location)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.ErrInvalidDateFormat
	}
	if to.Sub(from) > time.Duration(s.policy.MaxRangeDays)*24*time.Hour {
		return time.Time{}, time.Time{}, apperr.ErrInvalidDateRange
	}
	return from, to, nil
}

// EnsureSlots creates any missing slots for the dates from..to. Safe to call
// repeatedly and concurrently; existing slots are never touched.
func (s *Slots) EnsureSlots(ctx context.Context, from, to time.Time) (int, error) {
	candidates := s.policy.Candidates(from, to)
	for i := range candidates {
		candidates[i].ID = uuid.NewString()
	}
	created, err := s.repo.InsertSlots(ctx, candidates)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if created > 0 {
		s.log.Info("slots generated",
			"from", from.Format(dateLayout), "to", to.Format(dateLayout), "created", created)
	}
	return created, nil
}

// ListAvailable returns unbooked slots starting on the dates from..to, in
// start order. The end date is inclusive.
func (s *Slots) ListAvailable(ctx context.Context, from, to time.Time) ([]model.Slot, error) {
	from, to = s.policy.midnight(from), s.policy.midnight(to)
	if to.Before(from) {
		return []model.Slot{}, nil
	}
	slots, err := s.repo.AvailableSlots(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return slots, nil
}

// Browse is the read path both transports use: parse the range, fill in
// missing slots, then list what is free.
func (s *Slots) Browse(ctx context.Context, fromStr, toStr string) ([]model.Slot, error) {
	from, to, err := s.ParseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	if _, err := s.EnsureSlots(ctx, from, to); err != nil {
		return nil, err
	}
	return s.ListAvailable(ctx, from, to)
}
