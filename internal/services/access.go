package services

import (
	"context"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/SundayYogurt/projecthub/internal/repository"
)

// projectAccess is a profile's standing on one project. The owner always
// reads as RoleOwner, whether or not the membership row is there.
type projectAccess struct {
	project *domain.Project
	role    domain.Role
}

func loadAccess(ctx context.Context, projects repository.ProjectRepository, members repository.MembershipRepository, projectID string, profileID uint) (projectAccess, error) {
	project, err := projects.FindByID(ctx, projectID)
	if err != nil {
		return projectAccess{}, err
	}
	if project.OwnerID == profileID {
		return projectAccess{project: project, role: domain.RoleOwner}, nil
	}

	role, err := members.RoleOf(ctx, projectID, profileID)
	if err != nil {
		return projectAccess{}, err
	}
	return projectAccess{project: project, role: role}, nil
}

func (a projectAccess) IsMember() bool {
	return a.role != ""
}

func (a projectAccess) CanManage() bool {
	return a.role == domain.RoleOwner || a.role == domain.RoleAdmin
}

func (a projectAccess) CanWrite() bool {
	return a.CanManage() || a.role == domain.RoleMember
}

func (a projectAccess) CanRead() bool {
	return a.IsMember() || a.project.Visibility == domain.VisibilityPublic
}

// deny picks the error for a refused action. Projects the caller cannot see
// at all are reported as missing.
func (a projectAccess) deny() error {
	if a.CanRead() {
		return domain.ErrNotEligible
	}
	return domain.ErrProjectNotFound
}
