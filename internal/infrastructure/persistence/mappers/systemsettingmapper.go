package mappers

import (
	"strings"

	"issuedesk/internal/domain/setting"
	"issuedesk/internal/infrastructure/persistence/models"
)

// SystemSettingToDomain rebuilds a setting row. Rows written before value
// types existed carry an empty value_type and are read as strings.
func SystemSettingToDomain(m *models.SystemSettingModel) *setting.SystemSetting {
	if m == nil {
		return nil
	}

	valueType := setting.ValueType(strings.ToLower(strings.TrimSpace(m.ValueType)))
	if valueType == "" {
		valueType = setting.ValueTypeString
	}

	return setting.ReconstructSystemSetting(
		m.ID,
		m.Category,
		m.SettingKey,
		m.Value,
		valueType,
		m.Description,
		m.UpdatedBy,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// SystemSettingToModel is the inverse of SystemSettingToDomain.
func SystemSettingToModel(s *setting.SystemSetting) *models.SystemSettingModel {
	if s == nil {
		return nil
	}

	return &models.SystemSettingModel{
		ID:          s.ID(),
		Category:    s.Category(),
		SettingKey:  s.Key(),
		Value:       s.Value(),
		ValueType:   string(s.ValueType()),
		Description: s.Description(),
		UpdatedBy:   s.UpdatedBy(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func SystemSettingsToDomain(rows []*models.SystemSettingModel) []*setting.SystemSetting {
	out := make([]*setting.SystemSetting, 0, len(rows))
	for _, row := range rows {
		if s := SystemSettingToDomain(row); s != nil {
			out = append(out, s)
		}
	}
	return out
}
