package rules

import "time"

// IsOvertimeCheckIn reports whether starting work at now counts as overtime
// for the workday of referenceDate. On Sunday and holidays there are no
// regular hours, so any start is overtime. On other days now must be strictly
// past the configured end of regular hours: a check-in at exactly the
// boundary is still inside regular hours.
func (e *Engine) IsOvertimeCheckIn(now, referenceDate time.Time) bool {
	return e.afterRegularHours(now, referenceDate)
}

// IsOvertimeCheckOut reports whether ending work at now counts as overtime
// for the workday of referenceDate. Same boundary semantics as
// IsOvertimeCheckIn: equal to the end boundary is not yet overtime.
func (e *Engine) IsOvertimeCheckOut(now, referenceDate time.Time) bool {
	return e.afterRegularHours(now, referenceDate)
}

func (e *Engine) afterRegularHours(now, referenceDate time.Time) bool {
	wt := e.ClassifyWorkday(referenceDate)
	end, ok := e.WorkEndTime(wt)
	if !ok {
		// No regular hours exist on this day.
		return true
	}
	return now.In(e.loc).After(end.On(referenceDate, e.loc))
}

// OvertimeMinutes returns how many whole minutes of checkOut fall past the
// end of regular hours on the day of referenceDate. On Sunday and holidays
// the whole worked span from checkIn to checkOut is overtime. Returns 0 when
// nothing spills past the boundary.
func (e *Engine) OvertimeMinutes(checkIn, checkOut, referenceDate time.Time) int {
	wt := e.ClassifyWorkday(referenceDate)
	end, ok := e.WorkEndTime(wt)
	if !ok {
		minutes := int(checkOut.Sub(checkIn).Minutes())
		if minutes < 0 {
			return 0
		}
		return minutes
	}
	boundary := end.On(referenceDate, e.loc)
	if !checkOut.In(e.loc).After(boundary) {
		return 0
	}
	return int(checkOut.In(e.loc).Sub(boundary).Minutes())
}

// LateMinutes returns how many whole minutes now falls past the scheduled
// start plus the grace period, measured from the scheduled start itself.
// Returns 0 when now is within the grace period or the day has no regular
// hours.
func (e *Engine) LateMinutes(now, referenceDate time.Time, gracePeriod time.Duration) int {
	wt := e.ClassifyWorkday(referenceDate)
	start, ok := e.WorkStartTime(wt)
	if !ok {
		return 0
	}
	scheduled := start.On(referenceDate, e.loc)
	if !now.In(e.loc).After(scheduled.Add(gracePeriod)) {
		return 0
	}
	// Lateness counts from the scheduled start, not from the grace limit.
	return int(now.In(e.loc).Sub(scheduled).Minutes())
}
