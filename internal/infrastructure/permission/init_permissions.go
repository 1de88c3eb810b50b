package permission

import (
	"fmt"

	"issuedesk/internal/shared/authorization"
	"issuedesk/internal/shared/logger"
)

const (
	ResourceIssue   = "issue"
	ResourceSetting = "setting"
)

const (
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionStatus  = "status"
	ActionComment = "comment"
	ActionMerge   = "merge"
	ActionDelete  = "delete"
	ActionWrite   = "write"
)

// FieldResource names the casbin object guarding one patchable field.
func FieldResource(field string) string {
	return ResourceIssue + "." + field
}

// supportWritableFields excludes the triage fields owned by engineering:
// priority, status, assignee and targetDate.
var supportWritableFields = []string{
	"title", "description", "severity", "modelId", "categoryId",
	"occurredAt", "frequency", "tags", "customData", "customerName",
	"contact", "phenomenon", "errorCode", "environment", "location",
}

// DefaultPolicies is the role matrix installed on first start.
func DefaultPolicies() [][]string {
	admin := authorization.RoleAdmin.String()
	dev := authorization.RoleDeveloper.String()
	support := authorization.RoleSupport.String()
	user := authorization.RoleUser.String()

	policies := [][]string{
		// Admin has full access
		{admin, ResourceIssue, "*"},
		{admin, FieldResource("*"), ActionWrite},
		{admin, ResourceSetting, "*"},

		// Developers triage and consolidate but cannot delete
		{dev, ResourceIssue, ActionCreate},
		{dev, ResourceIssue, ActionRead},
		{dev, ResourceIssue, ActionUpdate},
		{dev, ResourceIssue, ActionStatus},
		{dev, ResourceIssue, ActionComment},
		{dev, ResourceIssue, ActionMerge},
		{dev, FieldResource("*"), ActionWrite},

		{support, ResourceIssue, ActionCreate},
		{support, ResourceIssue, ActionRead},
		{support, ResourceIssue, ActionUpdate},
		{support, ResourceIssue, ActionComment},

		{user, ResourceIssue, ActionCreate},
		{user, ResourceIssue, ActionRead},
		{user, ResourceIssue, ActionComment},
	}

	for _, f := range supportWritableFields {
		policies = append(policies, []string{support, FieldResource(f), ActionWrite})
	}

	return policies
}

// InitIssuePermissions installs DefaultPolicies. Existing rules are kept.
func InitIssuePermissions(e *Enforcer, log logger.Interface) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, policy := range DefaultPolicies() {
		if _, err := e.enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			log.Errorw("failed to add issue permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	log.Infow("issue permissions initialized successfully")
	return nil
}
