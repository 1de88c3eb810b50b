package usecases

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"issuedesk/internal/domain/issue"
	"issuedesk/internal/domain/setting"
	sharedConfig "issuedesk/internal/shared/config"
	"issuedesk/internal/shared/logger"
)

var _ setting.SLAProvider = (*SLASettingProvider)(nil)

// slaCacheTTL bounds how long another replica's settings change can go
// unseen. Changes made through this process invalidate immediately.
const slaCacheTTL = 30 * time.Second

// SLASettingProvider resolves SLA values and caches them briefly, so changes
// made through the settings API apply without a restart.
type SLASettingProvider struct {
	settingRepo setting.Repository
	fallback    sharedConfig.SLAConfig
	cache       *expirable.LRU[string, setting.ConfigValue]
	logger      logger.Interface
}

func NewSLASettingProvider(
	settingRepo setting.Repository,
	fallback sharedConfig.SLAConfig,
	logger logger.Interface,
) *SLASettingProvider {
	return &SLASettingProvider{
		settingRepo: settingRepo,
		fallback:    fallback,
		cache:       expirable.NewLRU[string, setting.ConfigValue](8, nil, slaCacheTTL),
		logger:      logger,
	}
}

func (p *SLASettingProvider) TargetDays(ctx context.Context) setting.ConfigValue {
	return p.cached(ctx, setting.KeySLATargetDays, p.fallback.TargetDays, issue.DefaultSLATargetDays, 1)
}

func (p *SLASettingProvider) WarningDays(ctx context.Context) setting.ConfigValue {
	return p.cached(ctx, setting.KeySLAWarningDays, p.fallback.WarningDays, issue.DefaultSLAWarningDays, 0)
}

// Invalidate drops cached values after a settings write.
func (p *SLASettingProvider) Invalidate() {
	p.cache.Purge()
}

func (p *SLASettingProvider) cached(ctx context.Context, key, configValue string, def, min int) setting.ConfigValue {
	if v, ok := p.cache.Get(key); ok {
		return v
	}
	v, storeOK := p.resolve(ctx, key, configValue, def, min)
	if storeOK {
		p.cache.Add(key, v)
	}
	return v
}

// resolve walks database, config file and built-in default in that order.
// Values below min are treated as malformed. storeOK is false when the
// database could not be read, so the fallback is not cached.
func (p *SLASettingProvider) resolve(ctx context.Context, key, configValue string, def, min int) (value setting.ConfigValue, storeOK bool) {
	storeOK = true
	s, err := p.settingRepo.GetByKey(ctx, setting.CategorySLA, key)
	switch {
	case err == nil && s.HasValue():
		v, convErr := s.IntValue()
		if convErr == nil && v >= min {
			return setting.ConfigValue{Value: v, Source: setting.SourceDatabase}, true
		}
		p.logger.Warnw("ignoring malformed sla setting",
			"key", key,
			"value", s.Value(),
		)
	case err != nil && !errors.Is(err, setting.ErrSettingNotFound):
		storeOK = false
		p.logger.Warnw("failed to read sla setting, falling back",
			"key", key,
			"error", err,
		)
	}

	if raw := strings.TrimSpace(configValue); raw != "" {
		v, convErr := strconv.Atoi(raw)
		if convErr == nil && v >= min {
			return setting.ConfigValue{Value: v, Source: setting.SourceConfig}, storeOK
		}
		p.logger.Warnw("ignoring malformed sla config value",
			"key", key,
			"value", raw,
		)
	}

	return setting.ConfigValue{Value: def, Source: setting.SourceDefault}, storeOK
}
