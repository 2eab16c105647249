package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/testutil"
)

func TestEnroll_Anonymous(t *testing.T) {
	f := newFixture(t)

	_, err := f.enrollments.Enroll(context.Background(), nil, 1)
	assert.ErrorIs(t, err, models.ErrAuthenticationRequired)
}

func TestEnroll_Outcomes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, f.db, "admin", models.RoleAdmin)
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)
	luis := testutil.CreateUser(t, f.db, "luis", models.RoleNormal)
	event := testutil.CreateEvent(t, f.db, admin, "Taller", 1, true)

	got, err := f.enrollments.Enroll(ctx, ana.Identity(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Taller", got.Name)

	_, err = f.enrollments.Enroll(ctx, ana.Identity(), event.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyEnrolled)

	_, err = f.enrollments.Enroll(ctx, luis.Identity(), event.ID)
	assert.ErrorIs(t, err, models.ErrEventFull)

	_, err = f.enrollments.Enroll(ctx, luis.Identity(), 404)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Eventually(t, func() bool {
		sent := f.mailer.enrollmentSent()
		return len(sent) == 1 && sent[0] == "ana:Taller"
	}, time.Second, 10*time.Millisecond)
}

func TestTicket(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, f.db, "admin", models.RoleAdmin)
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)
	event := testutil.CreateEvent(t, f.db, admin, "Taller", 5, true)

	_, err := f.enrollments.Ticket(ctx, ana.Identity(), event.ID)
	assert.ErrorIs(t, err, models.ErrNotEnrolled)

	_, err = f.enrollments.Enroll(ctx, ana.Identity(), event.ID)
	require.NoError(t, err)

	png, err := f.enrollments.Ticket(ctx, ana.Identity(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = f.enrollments.Ticket(ctx, ana.Identity(), event.ID+1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
