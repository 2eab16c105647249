package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sefazor/eventos-backend/internal/models"
	"github.com/sefazor/eventos-backend/internal/repository"
	"github.com/sefazor/eventos-backend/internal/session"
	"github.com/sefazor/eventos-backend/internal/testutil"
	jwtPkg "github.com/sefazor/eventos-backend/pkg/jwt"
	"github.com/sefazor/eventos-backend/pkg/qrcode"
	"github.com/sefazor/eventos-backend/pkg/utils"
)

type fakeMailer struct {
	mu         sync.Mutex
	welcome    []string
	enrollment []string
}

func (m *fakeMailer) SendWelcomeEmail(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, user.Email)
	return nil
}

func (m *fakeMailer) SendEnrollmentEmail(user *models.User, event *models.Event, ticketURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrollment = append(m.enrollment, user.Username+":"+event.Name)
	return nil
}

func (m *fakeMailer) welcomeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.welcome)
}

func (m *fakeMailer) enrollmentSent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.enrollment...)
}

type fakeStore struct {
	objects map[string][]byte
}

func (s *fakeStore) Put(_ context.Context, key, _ string, body []byte) error {
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[key] = body
	return nil
}

func (s *fakeStore) PublicURL(key string) string {
	return "https://files.example.com/" + key
}

type fixture struct {
	db          *gorm.DB
	mailer      *fakeMailer
	store       *fakeStore
	auth        *AuthService
	users       *UserService
	events      *EventService
	enrollments *EnrollmentService
	rosters     *RosterService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	log := zap.NewNop()
	v := utils.NewValidator()
	mailer := &fakeMailer{}
	store := &fakeStore{}

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	auth := NewAuthService(userRepo, jwtPkg.NewManager("test-secret", "eventos", time.Hour), session.NewMemoryStore(), mailer, v, log)
	auth.bcryptCost = 4
	users := NewUserService(userRepo, v, log)
	users.bcryptCost = 4

	return &fixture{
		db:          db,
		mailer:      mailer,
		store:       store,
		auth:        auth,
		users:       users,
		events:      NewEventService(eventRepo, enrollmentRepo, v, log),
		enrollments: NewEnrollmentService(eventRepo, enrollmentRepo, userRepo, mailer, qrcode.NewQRService("http://localhost/tickets"), log),
		rosters:     NewRosterService(eventRepo, enrollmentRepo, store, log),
	}
}

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }
