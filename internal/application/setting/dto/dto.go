package dto

// SLASettingsDTO reports the effective SLA configuration and where each value
// came from (database, config or default).
type SLASettingsDTO struct {
	TargetDays        int    `json:"targetDays"`
	TargetDaysSource  string `json:"targetDaysSource"`
	WarningDays       int    `json:"warningDays"`
	WarningDaysSource string `json:"warningDaysSource"`
}

// UpdateSLASettingsRequest changes only the supplied values.
type UpdateSLASettingsRequest struct {
	TargetDays  *int `json:"targetDays" binding:"omitempty,min=1,max=365"`
	WarningDays *int `json:"warningDays" binding:"omitempty,min=0,max=365"`
}
