// Package session keeps the terminal's durable state: the staff auth token
// and, per shop table, the id of the customer order still open for amendment.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	tokenKey       = "auth:token"
	orderKeyPrefix = "order:"
)

type Store struct {
	db  *gorm.DB
	mu  sync.Mutex
	now func() time.Time
}

// Open connects to the configured store and migrates it.
func Open(driver, dsn string) (*Store, error) {
	db, err := database.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return New(db)
}

func New(db *gorm.DB) (*Store, error) {
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Token returns the stored bearer token, or "" when there is none. A token
// whose exp claim has passed is cleared and treated as absent.
func (s *Store) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.get(tokenKey)
	if err != nil || !ok {
		return "", err
	}
	if s.expired(token) {
		utils.InfoLogger.Println("Stored token expired, logging out")
		return "", s.del(tokenKey)
	}
	return token, nil
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(tokenKey, token)
}

func (s *Store) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.del(tokenKey)
}

// LoggedIn reports whether a usable token is stored.
func (s *Store) LoggedIn() bool {
	token, err := s.Token()
	if err != nil {
		utils.ErrorLogger.Printf("Error reading session token: %v", err)
		return false
	}
	return token != ""
}

// Logout forgets the token. Open customer orders stay cached.
func (s *Store) Logout() error {
	return s.ClearToken()
}

// InProgressOrder returns the customer order still open at a shop's table.
// Tables never share an entry, so one customer cannot resume another's order.
func (s *Store) InProgressOrder(shopID, tableID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(orderKey(shopID, tableID))
}

func (s *Store) SetInProgressOrder(shopID, tableID, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(orderKey(shopID, tableID), orderID)
}

func (s *Store) ClearInProgressOrder(shopID, tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.del(orderKey(shopID, tableID))
}

func orderKey(shopID, tableID string) string {
	return orderKeyPrefix + shopID + ":" + tableID
}

// expired only trusts the exp claim; tokens that are not JWTs are left for
// the backend to judge.
func (s *Store) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now())
}

// get treats a missing key as a normal miss, not an error.
func (s *Store) get(key string) (string, bool, error) {
	var entry models.SessionEntry
	res := s.db.Where("session_key = ?", key).Limit(1).Find(&entry)
	if res.Error != nil {
		return "", false, res.Error
	}
	if res.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (s *Store) set(key, value string) error {
	entry := models.SessionEntry{Key: key, Value: value, UpdatedAt: s.now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error
}

func (s *Store) del(key string) error {
	return s.db.Where("session_key = ?", key).Delete(&models.SessionEntry{}).Error
}
