package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"rfqplan/internal/model"
)

// 定价配置键
const (
	settingEngineerRates = "engineer_rates"
	settingTMSellRates   = "tm_sell_rates"
	settingWPConfig      = "wp_config"
)

// GetSettings 获取定价配置；未持久化过的部分回落到默认值
func (s *Store) GetSettings() (*model.Settings, error) {
	settings := model.DefaultSettings()

	if err := s.loadSettingJSON(settingEngineerRates, &settings.EngineerRates); err != nil {
		return nil, err
	}
	if err := s.loadSettingJSON(settingTMSellRates, &settings.TMSellRates); err != nil {
		return nil, err
	}
	if err := s.loadSettingJSON(settingWPConfig, &settings.WP); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings 持久化定价配置
func (s *Store) SaveSettings(settings *model.Settings) error {
	if err := settings.WP.Validate(); err != nil {
		return err
	}

	if err := s.saveSettingJSON(settingEngineerRates, settings.EngineerRates); err != nil {
		return err
	}
	if err := s.saveSettingJSON(settingTMSellRates, settings.TMSellRates); err != nil {
		return err
	}
	return s.saveSettingJSON(settingWPConfig, settings.WP)
}

func (s *Store) loadSettingJSON(key string, dest any) error {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// 未配置过，保留默认值
			return nil
		}
		return fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return fmt.Errorf("failed to unmarshal setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveSettingJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal setting %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}
