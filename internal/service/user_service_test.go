package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/testutil"
	"github.com/sefazor/eventos-backend/pkg/bcrypt"
)

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)

	user, err := f.users.UpdateProfile(ctx, ana.Identity(), models.UpdateProfileRequest{
		FirstName: "Ana María",
		LastName:  "Pérez",
		Email:     "anamaria@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", user.FirstName)

	got, err := f.users.GetProfile(ctx, ana.Identity())
	require.NoError(t, err)
	assert.Equal(t, "anamaria@example.com", got.Email)
	assert.NoError(t, bcrypt.ComparePassword(got.Password, "password123"))
}

func TestUpdateProfile_ChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.CreateUser(t, f.db, "ana", models.RoleNormal)

	login, err := f.auth.Login(ctx, models.LoginRequest{Username: "ana", Password: "password123"})
	require.NoError(t, err)
	identity, err := f.auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)

	base := models.UpdateProfileRequest{FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com"}

	wrong := base
	wrong.CurrentPassword = "not-my-password"
	wrong.NewPassword = "nuevo-secreto"
	wrong.ConfirmPassword = "nuevo-secreto"
	_, err = f.users.UpdateProfile(ctx, identity, wrong)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "validation.password_incorrect", verr.Fields["current_password"])

	mismatch := base
	mismatch.CurrentPassword = "password123"
	mismatch.NewPassword = "nuevo-secreto"
	mismatch.ConfirmPassword = "otro-secreto"
	_, err = f.users.UpdateProfile(ctx, identity, mismatch)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "validation.eqfield", verr.Fields["confirm_password"])

	ok := base
	ok.CurrentPassword = "password123"
	ok.NewPassword = "nuevo-secreto"
	ok.ConfirmPassword = "nuevo-secreto"
	_, err = f.users.UpdateProfile(ctx, identity, ok)
	require.NoError(t, err)

	// The session used for the change stays valid.
	_, err = f.auth.Authenticate(ctx, login.Token)
	assert.NoError(t, err)

	_, err = f.auth.Login(ctx, models.LoginRequest{Username: "ana", Password: "nuevo-secreto"})
	assert.NoError(t, err)
	_, err = f.auth.Login(ctx, models.LoginRequest{Username: "ana", Password: "password123"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUpdateProfile_Anonymous(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.UpdateProfile(context.Background(), nil, models.UpdateProfileRequest{})
	assert.ErrorIs(t, err, models.ErrAuthenticationRequired)

	_, err = f.users.GetProfile(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrAuthenticationRequired)
}

func TestUpdateProfile_FailedWriteKeepsProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := testutil.CreateUser(t, f.db, "ana", models.RoleNormal)

	// Reject any update that touches the password column.
	require.NoError(t, f.db.Callback().Update().Before("gorm:update").Register("test:reject_password", func(tx *gorm.DB) {
		if dest, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			if _, has := dest["password"]; has {
				_ = tx.AddError(errors.New("write rejected"))
			}
		}
	}))

	_, err := f.users.UpdateProfile(ctx, ana.Identity(), models.UpdateProfileRequest{
		FirstName:       "Otra",
		LastName:        "Persona",
		Email:           "otra@example.com",
		CurrentPassword: "password123",
		NewPassword:     "nuevo-secreto",
		ConfirmPassword: "nuevo-secreto",
	})
	require.Error(t, err)

	var got models.User
	require.NoError(t, f.db.First(&got, ana.ID).Error)
	assert.Equal(t, "Test", got.FirstName)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.NoError(t, bcrypt.ComparePassword(got.Password, "password123"))
}

func TestCreateAdminAndSetRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.users.CreateAdmin(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	testutil.CreateUser(t, f.db, "luis", models.RoleNormal)
	luis, err := f.users.SetRole(ctx, "luis", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, luis.Role)

	_, err = f.users.SetRole(ctx, "nadie", models.RoleAdmin)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = f.users.SetRole(ctx, "luis", models.Role("root"))
	assert.Error(t, err)
}
