package auth

import "github.com/skillforge/backend/internal/domain"

// Resource enumerates the protected resource types.
type Resource string

const (
	ResourceUser      Resource = "user"
	ResourceCourse    Resource = "course"
	ResourceExam      Resource = "exam"
	ResourceQuestion  Resource = "question"
	ResourceDashboard Resource = "dashboard"
)

// Action enumerates the operations the guard distinguishes.
type Action string

const (
	ActionRead       Action = "read"
	ActionCreate     Action = "create"
	ActionDelete     Action = "delete"
	ActionChangeRole Action = "change_role"
	ActionPurge      Action = "purge"
)

type permission struct {
	resource Resource
	action   Action
}

// Guard answers role-based authorization questions against a static
// permission table built once at startup and never mutated afterwards.
type Guard struct {
	rules map[domain.Role]map[permission]struct{}
}

var allResources = []Resource{ResourceUser, ResourceCourse, ResourceExam, ResourceQuestion, ResourceDashboard}

var allActions = []Action{ActionRead, ActionCreate, ActionDelete, ActionChangeRole, ActionPurge}

// NewGuard builds the permission table. Admins hold every permission;
// students read the catalog and dashboard; guardians are read-only on the
// dashboard and courses for their linked student's progress (the linkage
// itself lives outside this table).
func NewGuard() *Guard {
	rules := map[domain.Role]map[permission]struct{}{
		domain.RoleAdmin:    make(map[permission]struct{}, len(allResources)*len(allActions)),
		domain.RoleStudent:  make(map[permission]struct{}),
		domain.RoleGuardian: make(map[permission]struct{}),
	}

	for _, res := range allResources {
		for _, act := range allActions {
			rules[domain.RoleAdmin][permission{res, act}] = struct{}{}
		}
	}

	for _, res := range []Resource{ResourceCourse, ResourceExam, ResourceQuestion, ResourceDashboard} {
		rules[domain.RoleStudent][permission{res, ActionRead}] = struct{}{}
	}

	for _, res := range []Resource{ResourceCourse, ResourceDashboard} {
		rules[domain.RoleGuardian][permission{res, ActionRead}] = struct{}{}
	}

	return &Guard{rules: rules}
}

// Authorize reports whether the role may perform the action on the resource.
func (g *Guard) Authorize(role domain.Role, resource Resource, action Action) bool {
	perms, ok := g.rules[role]
	if !ok {
		return false
	}
	_, ok = perms[permission{resource, action}]
	return ok
}
