package marketstats

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/leadkart/leadkart/app/models"
	"github.com/leadkart/leadkart/internal/pkg/cache"
	"github.com/leadkart/leadkart/internal/pkg/database"
)

const (
	CacheKeyLeadsOpen      = "marketstats:leads:open"
	CacheKeyPurchasesDaily = "marketstats:purchases:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyVendors        = "marketstats:vendors:total"
	CacheExpiration        = 30 * time.Minute
)

// MarketStats holds the marketplace counters shown on the status endpoint
type MarketStats struct {
	OpenLeads      int
	TodayPurchases int
	TotalVendors   int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the refresh interval has elapsed
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when they are stale
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateMarketStatsCache(); err != nil {
			log.Printf("Error updating market stats cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded call to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateMarketStatsCache recounts all marketplace statistics and stores them in the cache
func UpdateMarketStatsCache() error {
	db := database.GetDB()

	var openLeads int64
	if err := db.Model(&models.Lead{}).Where("status = ? AND vendor_id IS NULL", models.LeadStatusAvailable).Count(&openLeads).Error; err != nil {
		log.Printf("Error counting open leads: %v", err)
		return err
	}

	var todayPurchases int64
	today := time.Now().UTC().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.LeadPurchase{}).Where("purchased_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayPurchases).Error; err != nil {
		log.Printf("Error counting today's purchases: %v", err)
		return err
	}

	var totalVendors int64
	if err := db.Model(&models.Vendor{}).Count(&totalVendors).Error; err != nil {
		log.Printf("Error counting vendors: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyLeadsOpen, strconv.FormatInt(openLeads, 10), CacheExpiration); err != nil {
		log.Printf("Error caching open leads: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyPurchasesDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayPurchases, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's purchases: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyVendors, strconv.FormatInt(totalVendors, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total vendors: %v", err)
		return err
	}

	return nil
}

// GetOpenLeads returns the number of open marketplace leads from cache or database
func GetOpenLeads() int {
	val, err := cache.Get(CacheKeyLeadsOpen)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Lead{}).Where("status = ? AND vendor_id IS NULL", models.LeadStatusAvailable).Count(&count).Error; err != nil {
			log.Printf("Error counting open leads: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyLeadsOpen, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching open leads: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetTodayPurchases returns the number of purchases recorded today from cache or database
func GetTodayPurchases() int {
	today := time.Now().UTC().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyPurchasesDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		var count int64
		db := database.GetDB()
		if err := db.Model(&models.LeadPurchase{}).Where("purchased_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's purchases: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's purchases: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetTotalVendors returns the total number of vendors from cache or database
func GetTotalVendors() int {
	val, err := cache.Get(CacheKeyVendors)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Vendor{}).Count(&count).Error; err != nil {
			log.Printf("Error counting vendors: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyVendors, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total vendors: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return int(count)
}

// GetMarketStats returns all counters in one call, refreshing the cache if stale
func GetMarketStats() MarketStats {
	UpdateCacheIfNeeded()

	return MarketStats{
		OpenLeads:      GetOpenLeads(),
		TodayPurchases: GetTodayPurchases(),
		TotalVendors:   GetTotalVendors(),
	}
}
