package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/repository"
)

// memStore 内存实现的全套仓储，事务通过快照回滚模拟。
// mu 串行化所有访问，并发测试下模拟数据库的事务隔离。
type memStore struct {
	mu            sync.Mutex
	users         map[string]*model.User
	layers        map[string]*model.CanvasLayer
	contributions map[string]*model.Contribution
	transactions  []*model.Transaction
	investments   map[string]*model.Investment
	bubbles       map[string]*model.ChaosBubble
}

var (
	_ repository.UserRepo         = (*memStore)(nil)
	_ repository.LayerRepo        = (*memStore)(nil)
	_ repository.ContributionRepo = (*memStore)(nil)
	_ repository.LedgerRepo       = (*memStore)(nil)
	_ repository.InvestmentRepo   = (*memStore)(nil)
	_ repository.BubbleRepo       = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[string]*model.User),
		layers:        make(map[string]*model.CanvasLayer),
		contributions: make(map[string]*model.Contribution),
		investments:   make(map[string]*model.Investment),
		bubbles:       make(map[string]*model.ChaosBubble),
	}
}

type memSnapshot struct {
	users         map[string]*model.User
	contributions map[string]*model.Contribution
	transactions  []*model.Transaction
	investments   map[string]*model.Investment
}

func (m *memStore) snapshot() *memSnapshot {
	snap := &memSnapshot{
		users:         make(map[string]*model.User, len(m.users)),
		contributions: make(map[string]*model.Contribution, len(m.contributions)),
		transactions:  append([]*model.Transaction(nil), m.transactions...),
		investments:   make(map[string]*model.Investment, len(m.investments)),
	}
	for k, v := range m.users {
		u := *v
		snap.users[k] = &u
	}
	for k, v := range m.contributions {
		c := *v
		snap.contributions[k] = &c
	}
	for k, v := range m.investments {
		i := *v
		snap.investments[k] = &i
	}
	return snap
}

func (m *memStore) restore(snap *memSnapshot) {
	m.users = snap.users
	m.contributions = snap.contributions
	m.transactions = snap.transactions
	m.investments = snap.investments
}

// ---- UserRepo ----

func (m *memStore) GetUserById(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[id]; u != nil {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username != nil && *u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) LinkMergedFrom(_ context.Context, id, anonymousID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[id]; u != nil {
		anon := anonymousID
		u.MergedFromAnonymous = &anon
	}
	return nil
}

func (m *memStore) ResetDailyCount(_ context.Context, id string, resetAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[id]; u != nil {
		u.DailyContributionCount = 0
		u.LastContributionReset = resetAt
	}
	return nil
}

func (m *memStore) IncrementDailyCount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[id]; u != nil {
		u.DailyContributionCount++
	}
	return nil
}

func (m *memStore) PromoteToRegistered(_ context.Context, id, username, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return nil
	}
	u.Username = &username
	u.IsAnonymous = false
	if email != "" {
		u.Email = &email
	}
	return nil
}

// ---- LayerRepo ----

func (m *memStore) GetLayer(_ context.Context, id string) (*model.CanvasLayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layers[id], nil
}

func (m *memStore) GetLayersByType(_ context.Context, layerType, regionCode string) ([]*model.CanvasLayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	layers := make([]*model.CanvasLayer, 0)
	for _, l := range m.layers {
		if l.LayerType != layerType {
			continue
		}
		if regionCode != "" && l.RegionCode != regionCode {
			continue
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func (m *memStore) CreateLayer(_ context.Context, layer *model.CanvasLayer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers[layer.ID] = layer
	return nil
}

// ---- ContributionRepo ----

func (m *memStore) GetContribution(_ context.Context, id string) (*model.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.contributions[id]; c != nil {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *memStore) GetContributionsByLayer(_ context.Context, layerID string) ([]*model.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contributions := make([]*model.Contribution, 0)
	for _, c := range m.contributions {
		if c.LayerID == layerID {
			contributions = append(contributions, c)
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].CreatedAt.After(contributions[j].CreatedAt)
	})
	return contributions, nil
}

func (m *memStore) GetContributionsByUser(_ context.Context, userID string) ([]*model.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contributions := make([]*model.Contribution, 0)
	for _, c := range m.contributions {
		if c.UserID == userID {
			contributions = append(contributions, c)
		}
	}
	return contributions, nil
}

func (m *memStore) CreateContribution(_ context.Context, contribution *model.Contribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contributions[contribution.ID] = contribution
	return nil
}

func (m *memStore) SetViewCount(_ context.Context, id string, count int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c := m.contributions[id]; c != nil {
		c.ViewCount = count
	}
	return nil
}

func (m *memStore) TransferOwnership(_ context.Context, fromUserID, toUserID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var moved int64
	for _, c := range m.contributions {
		if c.UserID == fromUserID {
			c.UserID = toUserID
			moved++
		}
	}
	return moved, nil
}

func (m *memStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, c := range m.contributions {
		if c.CreatedAt.Before(cutoff) {
			delete(m.contributions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memStore) AggregateCountryStats(_ context.Context) ([]*repository.CountryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byCountry := make(map[string]*repository.CountryStat)
	for _, c := range m.contributions {
		u := m.users[c.UserID]
		if u == nil {
			continue
		}
		stat, ok := byCountry[u.CountryCode]
		if !ok {
			stat = &repository.CountryStat{CountryCode: u.CountryCode}
			byCountry[u.CountryCode] = stat
		}
		stat.Contributions++
		stat.Boosts += int64(c.BoostCount)
	}
	stats := make([]*repository.CountryStat, 0, len(byCountry))
	for _, stat := range byCountry {
		stats = append(stats, stat)
	}
	return stats, nil
}

// ---- LedgerRepo ----

// memTx 是 InTx 闭包收到的事务视图：锁已由 InTx 持有，方法直接走未加锁实现
type memTx struct {
	m *memStore
}

var _ repository.LedgerRepo = (*memTx)(nil)

func (t *memTx) InTx(_ context.Context, fn func(tx repository.LedgerRepo) error) error {
	return fn(t)
}

func (t *memTx) GetBalance(_ context.Context, userID string) (int64, error) {
	return t.m.getBalance(userID)
}

func (t *memTx) SetBalance(_ context.Context, userID string, newBalance int64) error {
	return t.m.setBalance(userID, newBalance)
}

func (t *memTx) DebitBalance(_ context.Context, userID string, amount int64) (bool, error) {
	return t.m.debitBalance(userID, amount)
}

func (t *memTx) CreditBalance(_ context.Context, userID string, amount int64) (bool, error) {
	return t.m.creditBalance(userID, amount)
}

func (t *memTx) AddBalance(_ context.Context, userID string, amount int64) (bool, error) {
	return t.m.addBalance(userID, amount)
}

func (t *memTx) RecordTransaction(_ context.Context, txn *model.Transaction) error {
	return t.m.recordTransaction(txn)
}

func (t *memTx) GetUserTransactions(_ context.Context, userID string, limit int) ([]*model.Transaction, error) {
	return t.m.getUserTransactions(userID, limit)
}

func (t *memTx) LockContribution(_ context.Context, contributionID string) (*model.Contribution, error) {
	return t.m.lockContribution(contributionID)
}

func (t *memTx) IncrementBoostCount(_ context.Context, contributionID string) (int, error) {
	return t.m.incrementBoostCount(contributionID)
}

func (t *memTx) SetMarketPrice(_ context.Context, contributionID string, newPrice float64) error {
	return t.m.setMarketPrice(contributionID, newPrice)
}

func (t *memTx) CreateInvestment(_ context.Context, investment *model.Investment) error {
	return t.m.createInvestment(investment)
}

func (m *memStore) InTx(_ context.Context, fn func(tx repository.LedgerRepo) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.snapshot()
	if err := fn(&memTx{m: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) GetBalance(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getBalance(userID)
}

func (m *memStore) SetBalance(_ context.Context, userID string, newBalance int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setBalance(userID, newBalance)
}

func (m *memStore) DebitBalance(_ context.Context, userID string, amount int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debitBalance(userID, amount)
}

func (m *memStore) CreditBalance(_ context.Context, userID string, amount int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creditBalance(userID, amount)
}

func (m *memStore) AddBalance(_ context.Context, userID string, amount int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addBalance(userID, amount)
}

func (m *memStore) RecordTransaction(_ context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordTransaction(txn)
}

func (m *memStore) GetUserTransactions(_ context.Context, userID string, limit int) ([]*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getUserTransactions(userID, limit)
}

func (m *memStore) LockContribution(_ context.Context, contributionID string) (*model.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockContribution(contributionID)
}

func (m *memStore) IncrementBoostCount(_ context.Context, contributionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.incrementBoostCount(contributionID)
}

func (m *memStore) SetMarketPrice(_ context.Context, contributionID string, newPrice float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setMarketPrice(contributionID, newPrice)
}

func (m *memStore) CreateInvestment(_ context.Context, investment *model.Investment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createInvestment(investment)
}

func (m *memStore) getBalance(userID string) (int64, error) {
	u := m.users[userID]
	if u == nil {
		return 0, fmt.Errorf("user %s: %w", userID, repository.ErrNotFound)
	}
	return u.ChaosCoins, nil
}

func (m *memStore) setBalance(userID string, newBalance int64) error {
	if newBalance < 0 {
		return repository.ErrInvalidState
	}
	u := m.users[userID]
	if u == nil {
		return repository.ErrNotFound
	}
	u.ChaosCoins = newBalance
	return nil
}

func (m *memStore) debitBalance(userID string, amount int64) (bool, error) {
	if amount <= 0 {
		return false, repository.ErrInvalidState
	}
	u := m.users[userID]
	if u == nil || u.ChaosCoins < amount {
		return false, nil
	}
	u.ChaosCoins -= amount
	return true, nil
}

func (m *memStore) creditBalance(userID string, amount int64) (bool, error) {
	u := m.users[userID]
	if u == nil {
		return false, nil
	}
	u.ChaosCoins += amount
	u.TotalEarned += amount
	return true, nil
}

func (m *memStore) addBalance(userID string, amount int64) (bool, error) {
	u := m.users[userID]
	if u == nil {
		return false, nil
	}
	u.ChaosCoins += amount
	return true, nil
}

func (m *memStore) recordTransaction(txn *model.Transaction) error {
	m.transactions = append(m.transactions, txn)
	return nil
}

func (m *memStore) getUserTransactions(userID string, limit int) ([]*model.Transaction, error) {
	txns := make([]*model.Transaction, 0)
	for i := len(m.transactions) - 1; i >= 0 && len(txns) < limit; i-- {
		if m.transactions[i].UserID == userID {
			txns = append(txns, m.transactions[i])
		}
	}
	return txns, nil
}

func (m *memStore) lockContribution(contributionID string) (*model.Contribution, error) {
	c := m.contributions[contributionID]
	if c == nil {
		return nil, fmt.Errorf("contribution %s: %w", contributionID, repository.ErrNotFound)
	}
	locked := *c
	return &locked, nil
}

func (m *memStore) incrementBoostCount(contributionID string) (int, error) {
	c := m.contributions[contributionID]
	if c == nil {
		return 0, repository.ErrNotFound
	}
	c.BoostCount++
	return c.BoostCount, nil
}

func (m *memStore) setMarketPrice(contributionID string, newPrice float64) error {
	if newPrice <= 0 {
		return repository.ErrInvalidState
	}
	c := m.contributions[contributionID]
	if c == nil {
		return repository.ErrNotFound
	}
	c.MarketPrice = newPrice
	return nil
}

func (m *memStore) createInvestment(investment *model.Investment) error {
	m.investments[investment.ID] = investment
	return nil
}

// ---- BubbleRepo ----

func (m *memStore) GetBubble(_ context.Context, id string) (*model.ChaosBubble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bubbles[id], nil
}

func (m *memStore) GetBubblesByOwner(_ context.Context, ownerID string) ([]*model.ChaosBubble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bubbles := make([]*model.ChaosBubble, 0)
	for _, b := range m.bubbles {
		if b.OwnerID == ownerID {
			bubbles = append(bubbles, b)
		}
	}
	sort.Slice(bubbles, func(i, j int) bool {
		return bubbles[i].CreatedAt.After(bubbles[j].CreatedAt)
	})
	return bubbles, nil
}

func (m *memStore) CreateBubble(_ context.Context, bubble *model.ChaosBubble) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bubbles[bubble.ID] = bubble
	return nil
}

// ---- InvestmentRepo ----

func (m *memStore) GetInvestmentsByUser(_ context.Context, userID string) ([]*model.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	investments := make([]*model.Investment, 0)
	for _, inv := range m.investments {
		if inv.UserID == userID {
			investments = append(investments, inv)
		}
	}
	return investments, nil
}

func (m *memStore) GetInvestmentsByContribution(_ context.Context, contributionID string) ([]*model.Investment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	investments := make([]*model.Investment, 0)
	for _, inv := range m.investments {
		if inv.ContributionID == contributionID {
			investments = append(investments, inv)
		}
	}
	return investments, nil
}

func (m *memStore) RepriceAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated int64
	for _, inv := range m.investments {
		c := m.contributions[inv.ContributionID]
		if c == nil || inv.PurchasePrice <= 0 {
			continue
		}
		inv.CurrentValue = math.Round(float64(inv.Amount)*c.MarketPrice/inv.PurchasePrice*100) / 100
		updated++
	}
	return updated, nil
}
