package settings

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
)

var (
	errEmptyAPIKey   = errors.New("API密钥不能为空")
	errNoAPIKey      = errors.New("未设置DeepSeek API密钥")
	errBadInterval   = errors.New("提醒间隔必须在5到120分钟之间")
	errUnknownTheme  = errors.New("无效的主题设置")
	validThemeValues = map[string]bool{"light": true, "dark": true, "system": true}
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type UpdateSettingsDTO struct {
	ReminderInterval   *int    `json:"reminder_interval"`
	Theme              *string `json:"theme"`
	EmailNotifications *bool   `json:"email_notifications"`
}

// settingsResponse never carries the API key itself, only whether one
// is stored.
type settingsResponse struct {
	ReminderInterval   int    `json:"reminder_interval"`
	Theme              string `json:"theme"`
	EmailNotifications bool   `json:"email_notifications"`
	HasAPIKey          bool   `json:"has_api_key"`
}

func toResponse(s *models.SettingsModel) *settingsResponse {
	return &settingsResponse{
		ReminderInterval:   s.ReminderInterval,
		Theme:              s.Theme,
		EmailNotifications: s.EmailNotifications,
		HasAPIKey:          strings.TrimSpace(s.DeepSeekAPIKey) != "",
	}
}

// getOrCreate returns the user's settings row, creating the default
// one when the user predates settings rows.
func (s *Service) getOrCreate(userID string) (*models.SettingsModel, error) {
	var row models.SettingsModel
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if err == nil {
		return &row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = models.SettingsModel{
		UserID:           userID,
		ReminderInterval: models.ReminderIntervalDefault,
		Theme:            "system",
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Get(userID string) (*settingsResponse, error) {
	row, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return toResponse(row), nil
}

func (s *Service) Update(userID string, dto *UpdateSettingsDTO) (*settingsResponse, error) {
	row, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.ReminderInterval != nil {
		v := *dto.ReminderInterval
		if v < models.ReminderIntervalMin || v > models.ReminderIntervalMax {
			return nil, errBadInterval
		}
		updates["reminder_interval"] = v
		row.ReminderInterval = v
	}
	if dto.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*dto.Theme))
		if !validThemeValues[theme] {
			return nil, errUnknownTheme
		}
		updates["theme"] = theme
		row.Theme = theme
	}
	if dto.EmailNotifications != nil {
		updates["email_notifications"] = *dto.EmailNotifications
		row.EmailNotifications = *dto.EmailNotifications
	}

	if len(updates) > 0 {
		if err := s.db.Model(row).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return toResponse(row), nil
}

// maskAPIKey keeps just enough of the key for the owner to recognize
// which one is stored. Keys of twelve characters or fewer are fully
// masked because the visible prefix and suffix would reveal most of
// the secret.
func maskAPIKey(key string) string {
	if len(key) <= 12 {
		return "****"
	}
	return key[:5] + "****" + key[len(key)-3:]
}

// MaskedAPIKey returns the stored key in masked form, or errNoAPIKey
// when none is set.
func (s *Service) MaskedAPIKey(userID string) (string, error) {
	row, err := s.getOrCreate(userID)
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(row.DeepSeekAPIKey)
	if key == "" {
		return "", errNoAPIKey
	}
	return maskAPIKey(key), nil
}

func (s *Service) SetAPIKey(userID, apiKey string) (*settingsResponse, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errEmptyAPIKey
	}
	row, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(row).Update("deepseek_api_key", apiKey).Error; err != nil {
		return nil, err
	}
	row.DeepSeekAPIKey = apiKey
	return toResponse(row), nil
}

func (s *Service) ClearAPIKey(userID string) (*settingsResponse, error) {
	row, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(row).Update("deepseek_api_key", "").Error; err != nil {
		return nil, err
	}
	row.DeepSeekAPIKey = ""
	return toResponse(row), nil
}
