package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/internal/pkg/cache"
	"github.com/socioclube/portal/internal/pkg/database"
)

const (
	CacheKeyMembersTotal   = "statistics:members:total"
	CacheKeyMembersActive  = "statistics:members:active"
	CacheKeyPaymentsMonth  = "statistics:payments:month"
	CacheKeyRevenueMonth   = "statistics:revenue:month"
	CacheKeyEventsUpcoming = "statistics:events:upcoming"
	CacheExpiration        = 30 * time.Minute
)

// Data holds the aggregate numbers shown on the admin dashboard.
type Data struct {
	TotalMembers   int     `json:"total_members"`
	ActiveMembers  int     `json:"active_members"`
	PaymentsMonth  int     `json:"payments_month"`
	RevenueMonth   float64 `json:"revenue_month"`
	UpcomingEvents int     `json:"upcoming_events"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached numbers are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached numbers when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next read to refresh the cache.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes every dashboard number and stores it in Redis.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalMembers int64
	if err := db.Model(&models.User{}).Count(&totalMembers).Error; err != nil {
		log.Printf("Error counting members: %v", err)
		return err
	}

	var activeMembers int64
	if err := db.Model(&models.User{}).Where("subscription_status = ?", models.SUBSCRIPTION_ACTIVE).Count(&activeMembers).Error; err != nil {
		log.Printf("Error counting active members: %v", err)
		return err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var paymentsMonth int64
	if err := db.Model(&models.Payment{}).
		Where("status = ? AND payment_date >= ?", models.PaymentStatusPaid, monthStart).
		Count(&paymentsMonth).Error; err != nil {
		log.Printf("Error counting payments: %v", err)
		return err
	}

	var revenueMonth float64
	if err := db.Model(&models.Payment{}).
		Where("status = ? AND payment_date >= ?", models.PaymentStatusPaid, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenueMonth).Error; err != nil {
		log.Printf("Error summing revenue: %v", err)
		return err
	}

	var upcomingEvents int64
	if err := db.Model(&models.Event{}).Where("starts_at > ?", now).Count(&upcomingEvents).Error; err != nil {
		log.Printf("Error counting upcoming events: %v", err)
		return err
	}

	entries := map[string]string{
		CacheKeyMembersTotal:   strconv.FormatInt(totalMembers, 10),
		CacheKeyMembersActive:  strconv.FormatInt(activeMembers, 10),
		CacheKeyPaymentsMonth:  strconv.FormatInt(paymentsMonth, 10),
		CacheKeyRevenueMonth:   strconv.FormatFloat(revenueMonth, 'f', 2, 64),
		CacheKeyEventsUpcoming: strconv.FormatInt(upcomingEvents, 10),
	}
	for key, value := range entries {
		if err := cache.Set(key, value, CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
			return err
		}
	}

	return nil
}

func cachedInt(key string) int {
	val, err := cache.Get(key)
	if err != nil {
		return 0
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

func cachedFloat(key string) float64 {
	val, err := cache.Get(key)
	if err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return f
}

// GetStatisticsData returns the dashboard numbers, refreshing the cache when stale.
func GetStatisticsData() Data {
	UpdateCacheIfNeeded()

	return Data{
		TotalMembers:   cachedInt(CacheKeyMembersTotal),
		ActiveMembers:  cachedInt(CacheKeyMembersActive),
		PaymentsMonth:  cachedInt(CacheKeyPaymentsMonth),
		RevenueMonth:   cachedFloat(CacheKeyRevenueMonth),
		UpcomingEvents: cachedInt(CacheKeyEventsUpcoming),
	}
}
