package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/warp-contracts/arns-engine/src/contract"
	"github.com/warp-contracts/arns-engine/src/utils/config"
	"github.com/warp-contracts/arns-engine/src/utils/model"
	"github.com/warp-contracts/arns-engine/src/utils/monitor"
	"github.com/warp-contracts/arns-engine/src/utils/task"
)

// Provider keeps the latest evaluated snapshot in memory, refreshing it from
// the database. Readers always get a consistent, fully decoded state.
type Provider struct {
	*task.Task

	db      *gorm.DB
	monitor *monitor.Monitor

	// Auction quotes keyed by (name, height), pre-warmed on refresh
	quotes *cache.Cache

	mtx     sync.RWMutex
	state   *contract.State
	height  uint64
	sortKey string
}

func NewProvider(config *config.Config) (self *Provider) {
	self = new(Provider)

	self.quotes = cache.New(config.Gateway.QuoteCacheTTL, 2*config.Gateway.QuoteCacheTTL)

	self.Task = task.NewTask(config, "snapshot-provider").
		WithPeriodicSubtaskFunc(config.Gateway.SnapshotRefreshInterval, self.refresh).
		WithWorkerPool(4)

	return
}

func (self *Provider) WithDB(v *gorm.DB) *Provider {
	self.db = v
	return self
}

func (self *Provider) WithMonitor(v *monitor.Monitor) *Provider {
	self.monitor = v
	return self
}

// Get returns the current state and the height it was evaluated at.
// The state must be treated as read only.
func (self *Provider) Get() (state *contract.State, height uint64) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.state, self.height
}

func (self *Provider) refresh() (err error) {
	var snapshot model.ContractSnapshot
	err = self.db.WithContext(self.Ctx).
		Where("contract_id = ?", self.Config.Contract.Id).
		First(&snapshot).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Evaluator hasn't saved anything yet
		return nil
	}
	if err != nil {
		self.Log.WithError(err).Error("Failed to load snapshot")
		return nil
	}

	self.mtx.RLock()
	upToDate := self.sortKey == snapshot.SortKey
	self.mtx.RUnlock()
	if upToDate {
		return nil
	}

	state := new(contract.State)
	err = json.Unmarshal(snapshot.State, state)
	if err != nil {
		self.Log.WithError(err).Error("Failed to unmarshal snapshot")
		return nil
	}

	self.mtx.Lock()
	self.state = state
	self.height = snapshot.BlockHeight
	self.sortKey = snapshot.SortKey
	self.mtx.Unlock()

	self.monitor.Report.Gateway.State.SnapshotsLoaded.Inc()

	self.warmQuotes(state, snapshot.BlockHeight)
	return nil
}

// warmQuotes precomputes auction quotes for the fresh snapshot so the first
// reader of each running auction doesn't pay for it.
func (self *Provider) warmQuotes(state *contract.State, height uint64) {
	for name := range state.Auctions {
		name := name
		self.Workers.Submit(func() {
			quote, err := contract.AuctionQuote(state, name, height)
			if err != nil {
				return
			}
			self.quotes.SetDefault(quoteKey(name, height), quote)
		})
	}
}

func quoteKey(name string, height uint64) string {
	return fmt.Sprintf("%s@%d", name, height)
}

// Quote returns the auction quote for a name at the current snapshot height,
// served from the cache when possible.
func (self *Provider) Quote(name string) (quote *contract.Quote, err error) {
	state, height := self.Get()
	if state == nil {
		return nil, contract.ErrNotFound("no snapshot evaluated yet")
	}

	if cached, ok := self.quotes.Get(quoteKey(name, height)); ok {
		return cached.(*contract.Quote), nil
	}

	quote, err = contract.AuctionQuote(state, name, height)
	if err != nil {
		return
	}
	self.quotes.SetDefault(quoteKey(name, height), quote)
	return
}
