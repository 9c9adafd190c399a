package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-booking-service/internal/domain/entity"
	domainRepo "clinic-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	clinicCacheKeyPrefix = "clinic:cache:"
	clinicCacheTTL       = 5 * time.Minute
	clinicCacheTimeout   = 2 * time.Second
)

// cachedClinicRepository is a read-through Redis cache in front of the clinic
// store. Clinic records are read-only to the scheduling core, so a short TTL
// is the only invalidation needed. Cache failures degrade to the inner store.
type cachedClinicRepository struct {
	inner       domainRepo.ClinicRepository
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewCachedClinicRepository(inner domainRepo.ClinicRepository, redisClient *redis.Client, log *logrus.Logger) domainRepo.ClinicRepository {
	return &cachedClinicRepository{
		inner:       inner,
		redisClient: redisClient,
		log:         log,
	}
}

func (r *cachedClinicRepository) FindByID(db *gorm.DB, id int64) (*entity.Clinic, error) {
	ctx, cancel := context.WithTimeout(context.Background(), clinicCacheTimeout)
	defer cancel()

	key := fmt.Sprintf("%s%d", clinicCacheKeyPrefix, id)

	cached, err := r.redisClient.Get(ctx, key).Result()
	if err == nil {
		var clinic entity.Clinic
		if err := json.Unmarshal([]byte(cached), &clinic); err == nil {
			return &clinic, nil
		}
		r.log.Warnf("Failed to decode cached clinic %d, falling through: %+v", id, err)
	} else if err != redis.Nil {
		r.log.Warnf("Redis lookup failed for clinic %d (non-fatal): %+v", id, err)
	}

	clinic, err := r.inner.FindByID(db, id)
	if err != nil || clinic == nil {
		return clinic, err
	}

	if payload, err := json.Marshal(clinic); err == nil {
		if err := r.redisClient.Set(ctx, key, payload, clinicCacheTTL).Err(); err != nil {
			r.log.Warnf("Failed to cache clinic %d (non-fatal): %+v", id, err)
		}
	}

	return clinic, nil
}

// FindByDoctorID bypasses the cache: doctor clinic sets are only read during
// cross-clinic validation and list invalidation is not worth the complexity.
func (r *cachedClinicRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Clinic, error) {
	return r.inner.FindByDoctorID(db, doctorID)
}

func (r *cachedClinicRepository) ExistsByID(db *gorm.DB, id int64) (bool, error) {
	return r.inner.ExistsByID(db, id)
}
