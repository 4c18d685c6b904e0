package models

// Assessment tracks. The webhook branch naming convention
// assessment/<track>/<candidate-slug> maps the middle segment onto one of
// these role identifiers.
const (
	RoleFrontend    = "frontend_specialist"
	RoleBackend     = "backend_specialist"
	RoleIntegration = "integration_specialist"
	RoleDevOps      = "devops_specialist"
	RoleQA          = "qa_specialist"
)

// KnownRoles lists every assessment track with an automated test suite.
func KnownRoles() []string {
	return []string{RoleFrontend, RoleBackend, RoleIntegration, RoleDevOps, RoleQA}
}

// KnownRole reports whether the role identifier names a supported track.
func KnownRole(role string) bool {
	switch role {
	case RoleFrontend, RoleBackend, RoleIntegration, RoleDevOps, RoleQA:
		return true
	default:
		return false
	}
}
