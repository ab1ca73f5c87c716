package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled} {
		got, ok := ParseStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	for _, bad := range []string{"pending", "Approved", "DONE", ""} {
		_, ok := ParseStatus(bad)
		assert.False(t, ok, bad)
	}
}

func TestStatusBlocksAndTerminal(t *testing.T) {
	assert.True(t, StatusPending.Blocks())
	assert.True(t, StatusApproved.Blocks())
	assert.False(t, StatusRejected.Blocks())
	assert.False(t, StatusCancelled.Blocks())

	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestStatusTransitions(t *testing.T) {
	all := []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}
	allowed := map[Status][]Status{
		StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
		StatusApproved: {StatusRejected, StatusCancelled},
	}
	for _, from := range all {
		ok := map[Status]bool{}
		for _, next := range allowed[from] {
			ok[next] = true
		}
		for _, to := range all {
			assert.Equal(t, ok[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleBuildingIncharge, RoleProgramOffice} {
		got, ok := ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
	_, ok := ParseRole("ADMIN")
	assert.False(t, ok)
}

func TestParseRoomType(t *testing.T) {
	for _, rt := range []RoomType{RoomClassroom, RoomBreakout} {
		got, ok := ParseRoomType(string(rt))
		assert.True(t, ok)
		assert.Equal(t, rt, got)
	}
	_, ok := ParseRoomType("LAB")
	assert.False(t, ok)
}
