package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/testutil"
)

func eventRequest() models.EventRequest {
	return models.EventRequest{
		Name:        "Taller de Go",
		Description: "Concurrencia en la práctica",
		StartDate:   "2026-11-01",
		EndDate:     "2026-11-02",
		Location:    "Auditorio",
		Capacity:    intPtr(20),
	}
}

func TestListFiltersByRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, f.db, "admin", models.RoleAdmin)
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)
	testutil.CreateEvent(t, f.db, admin, "Abierto", 10, true)
	testutil.CreateEvent(t, f.db, admin, "Oculto", 10, false)

	all, err := f.events.List(ctx, admin.Identity())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := f.events.List(ctx, ana.Identity())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Abierto", visible[0].Name)

	_, err = f.events.List(ctx, nil)
	assert.ErrorIs(t, err, models.ErrAuthenticationRequired)
}

func TestCreateEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)

	event, err := f.events.Create(ctx, ana.Identity(), eventRequest())
	require.NoError(t, err)
	assert.Equal(t, ana.ID, event.CreatorID)
	assert.True(t, event.Active)
	assert.Equal(t, "2026-11-01", event.StartDate.Format(models.DateLayout))

	req := eventRequest()
	req.Active = boolPtr(false)
	req.Capacity = intPtr(0)
	hidden, err := f.events.Create(ctx, ana.Identity(), req)
	require.NoError(t, err)

	var stored models.Event
	require.NoError(t, f.db.First(&stored, hidden.ID).Error)
	assert.False(t, stored.Active)
	assert.Equal(t, 0, stored.Capacity)
}

func TestCreateEvent_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)

	tests := []struct {
		name   string
		mutate func(r *models.EventRequest)
		field  string
		msg    string
	}{
		{"missing name", func(r *models.EventRequest) { r.Name = "" }, "name", "validation.required"},
		{"bad date", func(r *models.EventRequest) { r.StartDate = "01/11/2026" }, "start_date", "validation.datetime"},
		{"negative capacity", func(r *models.EventRequest) { r.Capacity = intPtr(-1) }, "capacity", "validation.gte"},
		{"missing capacity", func(r *models.EventRequest) { r.Capacity = nil }, "capacity", "validation.required"},
		{"end before start", func(r *models.EventRequest) { r.EndDate = "2026-10-31" }, "end_date", "validation.end_before_start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := eventRequest()
			tt.mutate(&req)

			_, err := f.events.Create(ctx, ana.Identity(), req)
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.msg, verr.Fields[tt.field])
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Event{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, f.db, "admin", models.RoleAdmin)
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)
	event := testutil.CreateEvent(t, f.db, admin, "Taller", 10, true)

	_, err := f.enrollments.Enroll(ctx, ana.Identity(), event.ID)
	require.NoError(t, err)

	err = f.events.Delete(ctx, ana.Identity(), event.ID)
	assert.ErrorIs(t, err, models.ErrPermissionDenied)

	detail, err := f.events.Get(ctx, ana.Identity(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.EnrolledCount)

	require.NoError(t, f.events.Delete(ctx, admin.Identity(), event.ID))

	_, err = f.events.Get(ctx, admin.Identity(), event.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	var remaining int64
	require.NoError(t, f.db.Model(&models.Enrollment{}).Where("event_id = ?", event.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, f.events.Delete(ctx, admin.Identity(), event.ID), models.ErrNotFound)
}

func TestGetEventDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, f.db, "admin", models.RoleAdmin)
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)
	event := testutil.CreateEvent(t, f.db, admin, "Oculto", 3, false)

	_, err := f.enrollments.Enroll(ctx, ana.Identity(), event.ID)
	require.NoError(t, err)

	detail, err := f.events.Get(ctx, ana.Identity(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.EnrolledCount)
	assert.Equal(t, int64(2), detail.SpotsLeft)
	assert.True(t, detail.IsEnrolled)

	detail, err = f.events.Get(ctx, admin.Identity(), event.ID)
	require.NoError(t, err)
	assert.False(t, detail.IsEnrolled)
}

func TestListEnrolled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, f.db, "admin", models.RoleAdmin)
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)
	first := testutil.CreateEvent(t, f.db, admin, "Uno", 3, true)
	testutil.CreateEvent(t, f.db, admin, "Dos", 3, true)

	_, err := f.enrollments.Enroll(ctx, ana.Identity(), first.ID)
	require.NoError(t, err)

	mine, err := f.events.ListEnrolled(ctx, ana.Identity())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)
}
