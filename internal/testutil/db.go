// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/pkg/bcrypt"
	"github.com/sefazor/eventos-backend/pkg/database"
)

// NewDB opens a migrated SQLite database in a temp dir that is closed with the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		filepath.Join(t.TempDir(), "eventos.db"))
	db, err := database.Open("sqlite", dsn, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.HashPasswordCost("password123", 4)
	require.NoError(t, err)

	user := &models.User{
		Username:  username,
		FirstName: "Test",
		LastName:  username,
		Email:     username + "@example.com",
		Password:  hash,
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateEvent inserts an event owned by creator.
func CreateEvent(t *testing.T, db *gorm.DB, creator *models.User, name string, capacity int, active bool) *models.Event {
	t.Helper()

	start := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	event := &models.Event{
		Name:        name,
		Description: name + " description",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 1),
		Location:    "Auditorio",
		Capacity:    capacity,
		Active:      active,
		CreatorID:   creator.ID,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}
