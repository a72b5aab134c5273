package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/helper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain password of every fixture account.
const TestPassword = "fixture-pass-1"

var fixtureHash string

func init() {
	helper.BcryptCost = bcrypt.MinCost
	h, err := helper.HashPassword(TestPassword)
	if err != nil {
		panic(err)
	}
	fixtureHash = h
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *gorm.DB
	t  *testing.T
}

func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

func (f *Fixtures) DB() *gorm.DB {
	return f.db
}

// CreateUser creates a verified account with a profile named after the
// local part of email.
func (f *Fixtures) CreateUser(email string) (*domain.Account, *domain.Profile) {
	f.t.Helper()
	return f.createAccount(email, true, time.Now().UTC())
}

// CreateUnverifiedUser creates an account that was registered at createdAt
// and never activated.
func (f *Fixtures) CreateUnverifiedUser(email string, createdAt time.Time) (*domain.Account, *domain.Profile) {
	f.t.Helper()
	return f.createAccount(email, false, createdAt.UTC())
}

func (f *Fixtures) createAccount(email string, verified bool, createdAt time.Time) (*domain.Account, *domain.Profile) {
	f.t.Helper()

	account := &domain.Account{
		Email:        domain.NormalizeEmail(email),
		PasswordHash: fixtureHash,
		IsActive:     true,
		IsVerified:   verified,
		CreatedAt:    createdAt,
	}
	if err := f.db.Create(account).Error; err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}

	profile := &domain.Profile{
		AccountID: account.ID,
		FirstName: account.Email[:1],
		LastName:  "Tester",
	}
	if err := f.db.Create(profile).Error; err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	account.Profile = profile
	return account, profile
}

// CreateProject creates a project owned by owner together with the owner's
// OWNER membership.
func (f *Fixtures) CreateProject(owner *domain.Profile, name string, visibility domain.Visibility) *domain.Project {
	f.t.Helper()

	project := &domain.Project{
		Name:       name,
		OwnerID:    owner.ID,
		Visibility: visibility,
	}
	if err := f.db.Create(project).Error; err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	f.AddMember(project, owner, domain.RoleOwner)
	return project
}

func (f *Fixtures) AddMember(project *domain.Project, profile *domain.Profile, role domain.Role) *domain.Membership {
	f.t.Helper()

	m := &domain.Membership{ProjectID: project.ID, ProfileID: profile.ID, Role: role}
	if err := f.db.Create(m).Error; err != nil {
		f.t.Fatalf("failed to add test member: %v", err)
	}
	return m
}

// CreateInvitation inserts an invitation row directly, bypassing the mail step.
func (f *Fixtures) CreateInvitation(project *domain.Project, invitee, inviter *domain.Profile, role domain.Role, status domain.InvitationStatus, createdAt time.Time) *domain.Invitation {
	f.t.Helper()

	inv := &domain.Invitation{
		ProjectID:   project.ID,
		InviteeID:   invitee.ID,
		InvitedByID: inviter.ID,
		Role:        role,
		Status:      status,
		CreatedAt:   createdAt.UTC(),
	}
	if err := f.db.Create(inv).Error; err != nil {
		f.t.Fatalf("failed to create test invitation: %v", err)
	}
	return inv
}

func (f *Fixtures) InvitationStatus(id string) domain.InvitationStatus {
	f.t.Helper()

	var inv domain.Invitation
	if err := f.db.Where("id = ?", id).Take(&inv).Error; err != nil {
		f.t.Fatalf("failed to load invitation %s: %v", id, err)
	}
	return inv.Status
}

func (f *Fixtures) Count(model any, query string, args ...any) int64 {
	f.t.Helper()

	var n int64
	if err := f.db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		f.t.Fatalf("count: %v", err)
	}
	return n
}

func (f *Fixtures) Email(n int) string {
	return fmt.Sprintf("user%d@example.com", n)
}
