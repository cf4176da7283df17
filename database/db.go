package database

import (
	"errors"
	"fmt"

	"github.com/chxlky/onelook/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(dbPath string) (*gorm.DB, error) {
	dbFile := sqlite.Open(dbPath)
	db, err := gorm.Open(dbFile, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	zap.L().Info("Database initialised and migrated successfully", zap.String("path", dbPath))

	return db, nil
}

// SlotStore keeps named values as rows of the slots table.
type SlotStore struct {
	DB *gorm.DB
}

func NewSlotStore(db *gorm.DB) *SlotStore {
	return &SlotStore{DB: db}
}

func (s *SlotStore) Get(key string) ([]byte, error) {
	var slot models.Slot
	result := s.DB.Where("name = ?", key).Limit(1).Find(&slot)
	if result.Error != nil {
		return nil, fmt.Errorf("error reading slot %q: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return []byte(slot.Value), nil
}

func (s *SlotStore) Put(key string, value []byte) error {
	slot := models.Slot{Name: key, Value: string(value)}
	if result := s.DB.Save(&slot); result.Error != nil {
		return fmt.Errorf("error saving slot %q: %w", key, result.Error)
	}
	return nil
}

func (s *SlotStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	zap.L().Info("Database connection closed.")
	return nil
}

var ErrUnknownDriver = errors.New("unknown database driver")

// Backend is a closable key-value store.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open returns the backend for driver: "sqlite", "bolt" or "memory".
func Open(driver, path string) (Backend, error) {
	switch driver {
	case "", "sqlite":
		db, err := Init(path)
		if err != nil {
			return nil, err
		}
		return NewSlotStore(db), nil
	case "bolt":
		store, err := OpenBolt(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
