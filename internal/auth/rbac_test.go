package auth

import (
	"testing"

	"github.com/skillforge/backend/internal/domain"
)

func TestGuardAuthorize(t *testing.T) {
	guard := NewGuard()

	tests := []struct {
		name     string
		role     domain.Role
		resource Resource
		action   Action
		want     bool
	}{
		{name: "admin creates course", role: domain.RoleAdmin, resource: ResourceCourse, action: ActionCreate, want: true},
		{name: "admin changes role", role: domain.RoleAdmin, resource: ResourceUser, action: ActionChangeRole, want: true},
		{name: "admin purges users", role: domain.RoleAdmin, resource: ResourceUser, action: ActionPurge, want: true},
		{name: "student reads course", role: domain.RoleStudent, resource: ResourceCourse, action: ActionRead, want: true},
		{name: "student reads exam", role: domain.RoleStudent, resource: ResourceExam, action: ActionRead, want: true},
		{name: "student reads dashboard", role: domain.RoleStudent, resource: ResourceDashboard, action: ActionRead, want: true},
		{name: "student creates course", role: domain.RoleStudent, resource: ResourceCourse, action: ActionCreate, want: false},
		{name: "student deletes question", role: domain.RoleStudent, resource: ResourceQuestion, action: ActionDelete, want: false},
		{name: "student changes role", role: domain.RoleStudent, resource: ResourceUser, action: ActionChangeRole, want: false},
		{name: "guardian reads dashboard", role: domain.RoleGuardian, resource: ResourceDashboard, action: ActionRead, want: true},
		{name: "guardian reads course", role: domain.RoleGuardian, resource: ResourceCourse, action: ActionRead, want: true},
		{name: "guardian reads exam", role: domain.RoleGuardian, resource: ResourceExam, action: ActionRead, want: false},
		{name: "guardian creates course", role: domain.RoleGuardian, resource: ResourceCourse, action: ActionCreate, want: false},
		{name: "unknown role", role: domain.Role("WIZARD"), resource: ResourceCourse, action: ActionRead, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guard.Authorize(tt.role, tt.resource, tt.action); got != tt.want {
				t.Errorf("Authorize(%s, %s, %s) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}
