// Package permissions maps API routes to the staff roles allowed to call them.
package permissions

import (
	"careops/shared/constant"
	_ "embed"
	"encoding/json"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleAdmin, constant.RoleStaff}

// Permission is one route. An empty Roles list lets any authenticated user through.
type Permission struct {
	Roles  []string `json:"permissions"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	indexOnce sync.Once
	index     map[string]Permission
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FindPermissions looks up a chi route pattern such as /api/bookings/{id}.
// Unknown routes yield the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	r.indexOnce.Do(func() {
		r.index = make(map[string]Permission, len(r.Endpoints))
		for _, endpoint := range r.Endpoints {
			r.index[routeKey(endpoint.Method, endpoint.Path)] = endpoint
		}
	})

	return r.index[routeKey(method, path)]
}

// Get decodes the embedded route table. It returns nil when the file is
// malformed, which makes the RBAC middleware deny everything.
func Get() *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(permissionsData, &permissions); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	for _, endpoint := range permissions.Endpoints {
		for _, role := range endpoint.Roles {
			if !slices.Contains(knownRoles, role) {
				log.Warn().Str("path", endpoint.Path).Str("method", endpoint.Method).Str("role", role).Msg("unknown role in permissions")
			}
		}
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
