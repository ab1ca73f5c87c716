package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibook/room-reservation/internal/booking"
	"github.com/unibook/room-reservation/internal/model"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteEngineErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &booking.ValidationError{Field: "date", Reason: "in the past"}, http.StatusBadRequest},
		{"unauthorized", &booking.UnauthorizedError{Reason: "wrong role"}, http.StatusForbidden},
		{"invalid transition", &booking.InvalidTransitionError{From: model.StatusRejected, Action: "approve"}, http.StatusConflict},
		{"not found", &booking.NotFoundError{Kind: "room", ID: 9}, http.StatusNotFound},
		{"unknown error", assertableErr("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, writeEngineError(c, tc.err))
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }

func TestWriteEngineErrorConflictPayload(t *testing.T) {
	c, rec := newTestContext(t)
	err := &booking.ConflictError{
		RoomID:     1,
		Date:       "2026-03-12",
		Requested:  model.Window{Start: 600, End: 660},
		Blocking:   model.Window{Start: 630, End: 690},
		BlockingID: 5,
	}
	require.NoError(t, writeEngineError(c, err))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "10:30", body["blocking_start"])
	assert.Equal(t, "11:30", body["blocking_end"])
	assert.Equal(t, float64(5), body["blocking_id"])
}

func TestGetActor(t *testing.T) {
	t.Run("student without building", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("user_id", uint64(42))
		c.Set("role", "STUDENT")

		actor, err := getActor(c)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), actor.ID)
		assert.Equal(t, model.RoleStudent, actor.Role)
		assert.Nil(t, actor.BuildingID)
	})

	t.Run("incharge with building", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("user_id", uint64(10))
		c.Set("role", "BUILDING_INCHARGE")
		c.Set("building_id", uint64(3))

		actor, err := getActor(c)
		require.NoError(t, err)
		assert.Equal(t, model.RoleBuildingIncharge, actor.Role)
		require.NotNil(t, actor.BuildingID)
		assert.Equal(t, uint64(3), *actor.BuildingID)
	})

	t.Run("missing identity", func(t *testing.T) {
		c, _ := newTestContext(t)
		_, err := getActor(c)
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("user_id", uint64(1))
		c.Set("role", "ADMIN")
		_, err := getActor(c)
		assert.Error(t, err)
	})
}

func TestToReservationJSONFormatsClocks(t *testing.T) {
	r := model.Reservation{
		ID: 7, RoomID: 1, RequesterID: 42,
		Date:   "2026-03-12",
		Window: model.Window{Start: 600, End: 690},
		Status: model.StatusPending,
	}
	got := toReservationJSON(r)
	assert.Equal(t, "10:00", got.Start)
	assert.Equal(t, "11:30", got.End)
	assert.Equal(t, "PENDING", got.Status)
}
