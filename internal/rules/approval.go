package rules

// ApprovalRole is the capability set an approver holds. The two gates are
// independent so a future role split does not need a redesign, even though
// current roles grant them together.
type ApprovalRole struct {
	CanApproveSundayWork   bool
	CanApproveLongOvertime bool
}

// CanApproveAnything reports whether the role holds baseline approval
// capability at all. A role with neither flag may never approve.
func (r ApprovalRole) CanApproveAnything() bool {
	return r.CanApproveSundayWork || r.CanApproveLongOvertime
}

// ApprovalView is the slice of an attendance record the approval gate looks
// at.
type ApprovalView struct {
	IsSundayWork    bool
	OvertimeMinutes int
}

// CanApprove reports whether role may approve the request. Both sub-gates
// must hold: Sunday work needs the Sunday capability, and overtime past the
// configured threshold needs the long-overtime capability. This is advisory
// for UI gating; the API layer must call it again before mutating state.
func (e *Engine) CanApprove(view ApprovalView, role ApprovalRole) bool {
	if !role.CanApproveAnything() {
		return false
	}
	if view.IsSundayWork && !role.CanApproveSundayWork {
		return false
	}
	if view.OvertimeMinutes > e.longOvertimeMinutes && !role.CanApproveLongOvertime {
		return false
	}
	return true
}
