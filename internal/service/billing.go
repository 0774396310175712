package service

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"billing/internal/ledger"
	"billing/pkg"
)

var (
	ErrNotEnoughCoins      = errors.New("emission amount is below the roster size")
	ErrSrcUserNotFound     = errors.New("srcUser not found")
	ErrDstUserNotFound     = errors.New("dstUser not found")
	ErrNegativeAmount      = errors.New("amount is negative")
	ErrInsufficientBalance = errors.New("srcUser does not have enough coins")
	ErrEmptyLedger         = ledger.ErrEmptyLedger
)

// UserBalance is a user's public profile as exposed by ListUsers.
type UserBalance struct {
	Name    string
	Balance int64
}

// CoinInfo is the rendered view of a coin's provenance trail.
type CoinInfo struct {
	ID      int64
	History string
}

type BillingService interface {
	// ListUsers returns the roster's current balances in registry order.
	ListUsers() []UserBalance

	// CoinsEmission mints amount coins proportionally to rating.
	CoinsEmission(amount int64) error

	// MoveCoins transfers amount coins from srcName to dstName.
	MoveCoins(srcName, dstName string, amount int64) error

	// LongestHistoryCoin returns the coin with the deepest provenance trail.
	LongestHistoryCoin() (CoinInfo, error)
}

type billingService struct {
	// mu serializes ledger mutations: one emission or transfer completes
	// before the next begins, and readers never observe a coin between its
	// ownership update and its history append.
	mu  sync.RWMutex
	reg *ledger.Registry
	led *ledger.Ledger
	log pkg.Logger
}

func NewBillingService(reg *ledger.Registry, led *ledger.Ledger, log pkg.Logger) BillingService {
	return &billingService{
		reg: reg,
		led: led,
		log: log,
	}
}

func (s *billingService) ListUsers() []UserBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := s.reg.Users()
	out := make([]UserBalance, 0, len(users))
	for _, u := range users {
		out = append(out, UserBalance{Name: u.Name, Balance: u.Balance})
	}
	return out
}

func (s *billingService) CoinsEmission(amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount < int64(s.reg.Count()) {
		s.log.Warn("emission rejected", zap.Int64("amount", amount), zap.Int("users", s.reg.Count()))
		return ErrNotEnoughCoins
	}

	s.led.Distribute(s.reg.Users(), amount)
	s.log.Info("Coins distributed",
		zap.Int64("amount", amount),
		zap.Int("totalCoins", s.led.Len()))
	return nil
}

func (s *billingService) MoveCoins(srcName, dstName string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.reg.FindByName(srcName)
	if !ok {
		s.log.Warn("transfer source not found", zap.String("srcUser", srcName))
		return ErrSrcUserNotFound
	}
	dst, ok := s.reg.FindByName(dstName)
	if !ok {
		s.log.Warn("transfer destination not found", zap.String("dstUser", dstName))
		return ErrDstUserNotFound
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount > src.Balance {
		s.log.Warn("transfer rejected: insufficient balance",
			zap.String("srcUser", srcName),
			zap.Int64("amount", amount),
			zap.Int64("balance", src.Balance))
		return ErrInsufficientBalance
	}

	s.led.Move(src, dst, amount)
	s.log.Info("Coins moved",
		zap.String("srcUser", srcName),
		zap.String("dstUser", dstName),
		zap.Int64("amount", amount))
	return nil
}

func (s *billingService) LongestHistoryCoin() (CoinInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coin, err := s.led.LongestHistory()
	if err != nil {
		return CoinInfo{}, err
	}
	return CoinInfo{ID: coin.ID, History: coin.HistoryString()}, nil
}
