package service

import (
	"edu_challenge_backend/internal/config"
	"sync"
)

// ScoringSettings 可热更新的积分配置，读多写少
type ScoringSettings struct {
	mu  sync.RWMutex
	cfg config.ScoringConfig
}

func NewScoringSettings(cfg config.ScoringConfig) *ScoringSettings {
	return &ScoringSettings{cfg: withScoringDefaults(cfg)}
}

func (s *ScoringSettings) Get() config.ScoringConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *ScoringSettings) Set(cfg config.ScoringConfig) {
	cfg = withScoringDefaults(cfg)
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func withScoringDefaults(cfg config.ScoringConfig) config.ScoringConfig {
	d := config.DefaultScoringConfig()
	if cfg.LeaderboardDefaultLimit <= 0 {
		cfg.LeaderboardDefaultLimit = d.LeaderboardDefaultLimit
	}
	if cfg.LeaderboardMaxLimit <= 0 {
		cfg.LeaderboardMaxLimit = d.LeaderboardMaxLimit
	}
	if cfg.SlugMaxAttempts <= 0 {
		cfg.SlugMaxAttempts = d.SlugMaxAttempts
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = d.PreviewLength
	}
	if cfg.LessonPoints == nil {
		cfg.LessonPoints = map[string]float64{}
	}
	return cfg
}
