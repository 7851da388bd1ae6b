package user

import (
	"errors"
	"strings"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mindlog/core/internal/models"
	sessionpkg "github.com/mindlog/core/internal/pkg/session"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) GetByID(id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Register creates a user and their default settings row in one
// transaction.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Username: strings.TrimSpace(dto.Username),
		Email:    strings.ToLower(strings.TrimSpace(dto.Email)),
		Password: string(hash),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		settings := models.SettingsModel{
			UserID:           u.ID,
			ReminderInterval: models.ReminderIntervalDefault,
			Theme:            "system",
		}
		return tx.Create(&settings).Error
	})
	if err != nil {
		switch duplicateKeyField(err) {
		case "username":
			return nil, errUsernameTaken
		case "email":
			return nil, errEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and issues a session-bound token. A
// missing account takes the same slow path as a wrong password so the
// two cases cannot be told apart by timing or message.
func (s *Service) Login(email, password, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, errBadCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, errBadCredentials
	}

	now := time.Now()
	if err := s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error; err != nil {
		return "", nil, err
	}
	u.LastLoginTime = &now
	u.LastLoginIP = ip

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, &u, err
}

// ChangePassword verifies the old password, stores the new hash and
// revokes every other session of the user.
func (s *Service) ChangePassword(id, keepSessionID, oldPwd, newPwd string) error {
	var u models.UserModel
	if err := s.db.Select("id, password").First(&u, "id = ?", id).Error; err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(oldPwd)); err != nil {
		return errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(newPwd)); err == nil {
		return errPasswordSameAsOld
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.db.Model(&u).Update("password", string(hash)).Error; err != nil {
		return err
	}
	return sessionpkg.RevokeAllExcept(s.db, id, keepSessionID)
}

// duplicateKeyField reports which unique column a duplicate-key error
// hit, identified by the constraint name MySQL includes in the 1062
// message ("... for key 'users.idx_users_username'"). An unrelated
// error yields "".
func duplicateKeyField(err error) string {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number != 1062 {
			return ""
		}
		if strings.Contains(mysqlErr.Message, "username") {
			return "username"
		}
		return "email"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "email"
	}
	return ""
}

func toResponse(u *models.UserModel) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		LastLoginTime: u.LastLoginTime,
		LastLoginIP:   u.LastLoginIP,
		CreatedAt:     u.CreatedAt,
	}
}
