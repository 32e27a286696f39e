package catalogsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/quickbite/oms/internal/dal/interfaces/ifoodrepo"
	"github.com/quickbite/oms/internal/dal/interfaces/ivendorrepo"
	"github.com/quickbite/oms/internal/dal/postgres"
	"github.com/quickbite/oms/internal/dal/redis"
	"github.com/quickbite/oms/internal/dal/uow"
	"github.com/quickbite/oms/internal/service/models/food"
	"github.com/quickbite/oms/internal/service/models/vendormodel"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/spf13/viper"
)

const topRestaurantsLimit = 10

// CatalogService serves the customer-facing catalog reads, fronted by a
// Redis cache keyed per pincode.
type CatalogService struct {
	uowFactory func() unitOfWork
	cache      *goredis.Client
	cacheTTL   time.Duration
}

type unitOfWork interface {
	Foods() ifoodrepo.IFoodRepository
	Vendors() ivendorrepo.IVendorRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{
		cacheTTL: viper.GetDuration("redis.catalog_ttl"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// WithRedisClient sets the Redis cache for the CatalogService. Without it
// every read goes to Postgres.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRedisClient(redisClient *redis.Client) option {
	return func(s *CatalogService) {
		s.cache = redisClient.DB()
	}
}

// FoodAvailability returns the vendors serving a pincode, best rated first,
// each with their full menu. No serving vendor fails NotFound.
func (s *CatalogService) FoodAvailability(ctx context.Context, pincode string) ([]vendor.Vendor, error) {
	key := fmt.Sprintf("catalog:availability:%s", pincode)
	if cached, ok := cacheGet[[]vendor.Vendor](ctx, s.cache, key); ok {
		return *cached, nil
	}

	vendors, err := s.vendorsWithMenus(ctx, pincode, true, 0)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, apperr.NotFound("no service available in your area currently")
	}

	s.cacheSet(ctx, key, vendors)

	return vendors, nil
}

// TopRestaurants returns the ten best rated vendors serving a pincode.
func (s *CatalogService) TopRestaurants(ctx context.Context, pincode string) ([]vendor.Vendor, error) {
	key := fmt.Sprintf("catalog:top:%s", pincode)
	if cached, ok := cacheGet[[]vendor.Vendor](ctx, s.cache, key); ok {
		return *cached, nil
	}

	vendors, err := s.vendorsWithMenus(ctx, pincode, true, topRestaurantsLimit)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return nil, apperr.NotFound("no service available in your area currently")
	}

	s.cacheSet(ctx, key, vendors)

	return vendors, nil
}

// FoodsIn30Min returns the foods in a pincode whose vendor can prepare them
// within thirty minutes.
func (s *CatalogService) FoodsIn30Min(ctx context.Context, pincode string) ([]food.Food, error) {
	key := fmt.Sprintf("catalog:fast:%s", pincode)
	if cached, ok := cacheGet[[]food.Food](ctx, s.cache, key); ok {
		return *cached, nil
	}

	vendors, err := s.vendorsWithMenus(ctx, pincode, true, 0)
	if err != nil {
		return nil, err
	}

	var fast []food.Food
	for _, v := range vendors {
		for _, f := range v.Foods {
			if f.ReadyTime <= 30 {
				fast = append(fast, f)
			}
		}
	}
	if len(fast) == 0 {
		return nil, apperr.NotFound("no service available in your area currently")
	}

	s.cacheSet(ctx, key, fast)

	return fast, nil
}

// SearchFoods returns every food offered in a pincode, including foods of
// vendors not currently taking orders.
func (s *CatalogService) SearchFoods(ctx context.Context, pincode string) ([]food.Food, error) {
	key := fmt.Sprintf("catalog:search:%s", pincode)
	if cached, ok := cacheGet[[]food.Food](ctx, s.cache, key); ok {
		return *cached, nil
	}

	vendors, err := s.vendorsWithMenus(ctx, pincode, false, 0)
	if err != nil {
		return nil, err
	}

	var foods []food.Food
	for _, v := range vendors {
		foods = append(foods, v.Foods...)
	}
	if len(foods) == 0 {
		return nil, apperr.NotFound("no service available in your area currently")
	}

	s.cacheSet(ctx, key, foods)

	return foods, nil
}

// RestaurantByID returns one vendor with its menu.
func (s *CatalogService) RestaurantByID(ctx context.Context, vendorID int64) (*vendor.Vendor, error) {
	work := s.uowFactory()

	v, err := work.Vendors().GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	foods, err := work.Foods().ListByVendorIDs(ctx, []int64{v.ID})
	if err != nil {
		return nil, err
	}
	v.Foods = foods

	return v, nil
}

// vendorsWithMenus lists vendors in a pincode and stitches their foods in
// one batch lookup.
func (s *CatalogService) vendorsWithMenus(ctx context.Context, pincode string, serviceAvailableOnly bool, limit int) ([]vendor.Vendor, error) {
	work := s.uowFactory()

	vendors, err := work.Vendors().ListByPincode(ctx, pincode, serviceAvailableOnly, limit)
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		return vendors, nil
	}

	vendorIDs := make([]int64, len(vendors))
	for i, v := range vendors {
		vendorIDs[i] = v.ID
	}

	foods, err := work.Foods().ListByVendorIDs(ctx, vendorIDs)
	if err != nil {
		return nil, err
	}

	for i := range vendors {
		for _, f := range foods {
			if f.VendorID == vendors[i].ID {
				vendors[i].Foods = append(vendors[i].Foods, f)
			}
		}
	}

	return vendors, nil
}

// cacheGet reads a cached JSON value; any cache failure is treated as a miss.
func cacheGet[T any](ctx context.Context, cache *goredis.Client, key string) (*T, bool) {
	if cache == nil {
		return nil, false
	}

	raw, err := cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			slog.Warn("Failed to read catalog cache", "key", key, "error", err)
		}

		return nil, false
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		slog.Warn("Failed to decode catalog cache", "key", key, "error", err)

		return nil, false
	}

	return &value, true
}

// cacheSet stores a JSON value best effort; the read path never depends on it.
func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		slog.Warn("Failed to write catalog cache", "key", key, "error", err)
	}
}
