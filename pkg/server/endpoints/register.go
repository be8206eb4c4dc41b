package endpoints

import (
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
)

// RegisterAll registers all API endpoints on the server. Stores and
// collaborators must be set on srv before calling it.
func RegisterAll(srv *server.Server) {
	RegisterHealthEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterGoogleEndpoints(srv)
	RegisterPlansEndpoints(srv)
	RegisterClassroomEndpoints(srv)
	RegisterLibraryEndpoints(srv)
	RegisterNewsEndpoints(srv)
	RegisterFeedbackEndpoints(srv)
	RegisterCommunityEndpoints(srv)
	RegisterSettingsEndpoints(srv)
	RegisterUserEndpoints(srv)
	RegisterCurriculumEndpoints(srv)
	RegisterExportEndpoints(srv)
	RegisterStatsEndpoints(srv)

	// Prefix routes go last
	RegisterWebEndpoints(srv)
}
