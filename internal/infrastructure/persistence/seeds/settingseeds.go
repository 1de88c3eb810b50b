package seeds

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"issuedesk/internal/domain/setting"
	"issuedesk/internal/shared/utils"
)

//go:embed system_settings.yaml
var defaultSettingsYAML []byte

type settingSeed struct {
	Category    string `yaml:"category" validate:"required,max=100"`
	Key         string `yaml:"key" validate:"required,max=100"`
	ValueType   string `yaml:"value_type" validate:"oneof=string int bool"`
	Value       string `yaml:"value"`
	Description string `yaml:"description" validate:"max=500"`
}

type settingSeedFile struct {
	Settings []settingSeed `yaml:"settings" validate:"dive"`
}

// DefaultSettings returns the built-in seed document.
func DefaultSettings() []byte {
	return defaultSettingsYAML
}

// SeedSystemSettings inserts every setting from doc that is not stored yet
// and returns how many rows were written.
func SeedSystemSettings(ctx context.Context, repo setting.Repository, doc []byte) (int, error) {
	var file settingSeedFile
	if err := yaml.Unmarshal(doc, &file); err != nil {
		return 0, fmt.Errorf("failed to parse settings seed: %w", err)
	}
	if err := utils.ValidateStruct(file); err != nil {
		return 0, fmt.Errorf("invalid settings seed: %w", err)
	}

	written := 0
	for _, seed := range file.Settings {
		_, err := repo.GetByKey(ctx, seed.Category, seed.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, setting.ErrSettingNotFound) {
			return written, err
		}

		s, err := setting.NewSystemSetting(seed.Category, seed.Key, setting.ValueType(seed.ValueType), seed.Value, seed.Description)
		if err != nil {
			return written, fmt.Errorf("invalid seed %s.%s: %w", seed.Category, seed.Key, err)
		}
		if err := repo.Upsert(ctx, s); err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}
