package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalCapabilities(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleManager, RoleForeman} {
		caps := ApprovalCapabilities(role)
		assert.True(t, caps.CanApproveSundayWork, "role %s", role)
		assert.True(t, caps.CanApproveLongOvertime, "role %s", role)
	}

	caps := ApprovalCapabilities(RoleEmployee)
	assert.False(t, caps.CanApproveSundayWork)
	assert.False(t, caps.CanApproveLongOvertime)
	assert.False(t, caps.CanApproveAnything())
}

func TestApproverRole(t *testing.T) {
	assert.True(t, ApproverRole(RoleForeman))
	assert.False(t, ApproverRole(RoleEmployee))
	assert.False(t, ApproverRole(Role("intern")))
}
