package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"pharmamart/internal/caching"
	"pharmamart/internal/repositories"
)

// JobScheduler runs the recurring maintenance work: spent reset-token
// sweeps, lookup cache warming and expiry alerts.
type JobScheduler struct {
	scheduler      gocron.Scheduler
	cacheSvc       caching.CacheService
	countryRepo    repositories.CountryRepository
	itemStatusRepo repositories.ItemStatusRepository
	itemRepo       repositories.ItemRepository
	jobs           map[string]gocron.Job
	mu             sync.RWMutex
}

func NewJobScheduler(cacheSvc caching.CacheService, countryRepo repositories.CountryRepository,
	itemStatusRepo repositories.ItemStatusRepository, itemRepo repositories.ItemRepository) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:      scheduler,
		cacheSvc:       cacheSvc,
		countryRepo:    countryRepo,
		itemStatusRepo: itemStatusRepo,
		itemRepo:       itemRepo,
		jobs:           make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.register("reset-token-sweep", 1*time.Hour, js.sweepResetTokens)
	js.register("lookup-cache-refresh", 10*time.Minute, js.refreshLookupCaches)
	js.register("item-expiry-alerts", 24*time.Hour, js.processExpiryAlerts)
	log.Printf("Registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) register(name string, interval time.Duration, task func(context.Context) error) {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task, context.Background()),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("ERROR: creating %s job: %v", name, err)
		return
	}
	js.jobs[name] = job
}

// sweepResetTokens removes reset-token slots left without a TTL.
func (js *JobScheduler) sweepResetTokens(ctx context.Context) error {
	purged, err := js.cacheSvc.PurgeResetTokens(ctx)
	if err != nil {
		log.Printf("ERROR: reset token sweep: %v", err)
		return err
	}
	if purged > 0 {
		log.Printf("Reset token sweep removed %d stale slots", purged)
	}
	return nil
}

// refreshLookupCaches re-primes the country and item status lookups so
// dropdown reads rarely hit the database.
func (js *JobScheduler) refreshLookupCaches(ctx context.Context) error {
	countries, err := js.countryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: refreshing country lookup: %v", err)
		return err
	}
	if err := js.cacheSvc.SetCountries(ctx, countries, caching.LookupTTL); err != nil {
		log.Printf("WARN: caching country lookup: %v", err)
	}

	statuses, err := js.itemStatusRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: refreshing item status lookup: %v", err)
		return err
	}
	if err := js.cacheSvc.SetItemStatuses(ctx, statuses, caching.LookupTTL); err != nil {
		log.Printf("WARN: caching item status lookup: %v", err)
	}
	return nil
}

// processExpiryAlerts flags active items expiring within 30 days.
func (js *JobScheduler) processExpiryAlerts(ctx context.Context) error {
	items, err := js.itemRepo.GetAll(ctx)
	if err != nil {
		log.Printf("ERROR: loading items for expiry alerts: %v", err)
		return err
	}

	cutoff := time.Now().Add(30 * 24 * time.Hour)
	expiring := 0
	for _, item := range items {
		if !item.IsActive || item.ExpiryDate == nil {
			continue
		}
		if item.ExpiryDate.Before(cutoff) {
			expiring++
			log.Printf("ALERT: item %q (pharmacy %s) expires %s", item.ItemName, item.PharmacyName, item.ExpiryDate.Format("2006-01-02"))
		}
	}
	if expiring > 0 {
		log.Printf("Expiry alert pass found %d items expiring within 30 days", expiring)
	}
	return nil
}

// JobNames lists the registered jobs, for the detailed health endpoint.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
