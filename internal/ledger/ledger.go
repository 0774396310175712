// Package ledger implements the in-memory coin ledger engine: the user
// registry, the coin table with its ownership index, proportional emission
// and the transfer mechanics. The engine itself does no locking; callers
// serialize mutating operations (see the service layer).
package ledger

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"billing/internal/models"
)

var ErrEmptyLedger = errors.New("no coins have been emitted yet")

// Ledger is the authoritative record of which user owns each coin. Coins are
// indexed by id; a secondary per-owner index keeps each user's coins in
// acquisition order so transfer selection is deterministic (oldest first).
type Ledger struct {
	coins  map[int64]*models.Coin
	owners map[int64]*models.User
	order  []int64         // global mint order
	owned  map[int][]int64 // user id -> coin ids, acquisition order
}

func NewLedger() *Ledger {
	return &Ledger{
		coins:  make(map[int64]*models.Coin),
		owners: make(map[int64]*models.User),
		owned:  make(map[int][]int64),
	}
}

// Mint creates count fresh coins owned by owner, each starting its history
// with the emission event. It does not touch balances; that is the emission
// algorithm's side effect.
func (l *Ledger) Mint(owner *models.User, count int64) []*models.Coin {
	minted := make([]*models.Coin, 0, count)
	for i := int64(0); i < count; i++ {
		coin := &models.Coin{
			ID:      l.newCoinID(),
			History: []string{fmt.Sprintf("Emission to %s", owner.Name)},
		}
		l.coins[coin.ID] = coin
		l.owners[coin.ID] = owner
		l.order = append(l.order, coin.ID)
		l.owned[owner.ID] = append(l.owned[owner.ID], coin.ID)
		minted = append(minted, coin)
	}
	return minted
}

// CoinsOwnedBy returns u's coins in acquisition order, oldest first.
func (l *Ledger) CoinsOwnedBy(u *models.User) []*models.Coin {
	ids := l.owned[u.ID]
	coins := make([]*models.Coin, 0, len(ids))
	for _, id := range ids {
		coins = append(coins, l.coins[id])
	}
	return coins
}

// Owner returns the current owner of a coin.
func (l *Ledger) Owner(coin *models.Coin) (*models.User, bool) {
	u, ok := l.owners[coin.ID]
	return u, ok
}

// Reassign moves a coin to newOwner and appends the transfer hop to its
// history. The hop records the previous and the new owner, which makes a
// self-transfer visible in the trail even though ownership is unchanged.
func (l *Ledger) Reassign(coin *models.Coin, newOwner *models.User) error {
	prev, ok := l.owners[coin.ID]
	if !ok {
		return fmt.Errorf("coin %d is not in the ledger", coin.ID)
	}

	ids := l.owned[prev.ID]
	for i, id := range ids {
		if id == coin.ID {
			l.owned[prev.ID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}

	l.owners[coin.ID] = newOwner
	l.owned[newOwner.ID] = append(l.owned[newOwner.ID], coin.ID)
	coin.History = append(coin.History, fmt.Sprintf("from %s to %s", prev.Name, newOwner.Name))
	return nil
}

// Len reports the total number of coins ever minted.
func (l *Ledger) Len() int {
	return len(l.coins)
}

// CoinOwner pairs a coin with its current owner in a full ledger snapshot.
type CoinOwner struct {
	Coin  *models.Coin
	Owner *models.User
}

// All returns every coin with its current owner, in mint order.
func (l *Ledger) All() []CoinOwner {
	snapshot := make([]CoinOwner, 0, len(l.order))
	for _, id := range l.order {
		snapshot = append(snapshot, CoinOwner{Coin: l.coins[id], Owner: l.owners[id]})
	}
	return snapshot
}

// LongestHistory returns the coin with the most recorded hops. Ties go to
// the earliest minted coin. An empty ledger is an explicit error, never a
// zero-valued coin.
func (l *Ledger) LongestHistory() (*models.Coin, error) {
	if len(l.order) == 0 {
		return nil, ErrEmptyLedger
	}
	var longest *models.Coin
	for _, co := range l.All() {
		if longest == nil || len(co.Coin.History) > len(longest.History) {
			longest = co.Coin
		}
	}
	return longest, nil
}

// newCoinID derives an id from a fresh UUID, the way the billing service has
// always issued coin ids. The ledger retries on the (vanishingly rare)
// collision because ids are never reused.
func (l *Ledger) newCoinID() int64 {
	for {
		u := uuid.New()
		id := int64(binary.LittleEndian.Uint64(u[:8]))
		if _, taken := l.coins[id]; !taken {
			return id
		}
	}
}
