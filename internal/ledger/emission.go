package ledger

import (
	"math"

	"billing/internal/models"
)

// Distribute mints exactly amount coins across users proportionally to
// rating and credits each user's balance. Callers must have verified
// amount >= len(users) so every user can receive at least one coin.
//
// The split runs in two passes. The first pass walks the roster in order:
// a user whose rounded share falls below one coin gets exactly one, anyone
// else is deferred. The second pass recomputes the coefficient over the
// remaining amount and the deferred users' ratings, then uses a cumulative
// running sum so rounding error is absorbed by later users and the minted
// total comes out to amount exactly.
func (l *Ledger) Distribute(users []*models.User, amount int64) {
	if len(users) == 0 {
		return
	}

	var sumRating int64
	for _, u := range users {
		sumRating += u.Rating
	}
	if sumRating == 0 {
		l.distributeEvenly(users, amount)
		return
	}

	coefficient := float64(amount) / float64(sumRating)

	var distributed int64
	var deferred []*models.User
	var deferredRating int64
	for _, u := range users {
		share := int64(math.Round(float64(u.Rating)*coefficient)) - distributed
		if share < 1 {
			l.mintTo(u, 1)
			distributed++
		} else {
			deferred = append(deferred, u)
			deferredRating += u.Rating
		}
	}

	remaining := amount - distributed
	if len(deferred) == 0 {
		// Every user was clamped to the one-coin minimum; hand the rest out
		// round-robin in roster order so the minted total still equals amount.
		for i := int64(0); i < remaining; i++ {
			l.mintTo(users[i%int64(len(users))], 1)
		}
		return
	}

	// remaining >= len(deferred) whenever amount >= len(users), so the
	// clamps below can always leave one coin for every later user.
	coefficient = float64(remaining) / float64(deferredRating)
	var cumulativeRating, passDistributed int64
	for i, u := range deferred {
		cumulativeRating += u.Rating
		share := int64(math.Round(float64(cumulativeRating)*coefficient)) - passDistributed
		if share < 1 {
			share = 1
		}
		if maxShare := remaining - passDistributed - int64(len(deferred)-1-i); share > maxShare {
			share = maxShare
		}
		l.mintTo(u, share)
		passDistributed += share
	}
}

// distributeEvenly covers the degenerate all-zero-rating roster: an even
// split with the remainder going to the earliest users.
func (l *Ledger) distributeEvenly(users []*models.User, amount int64) {
	n := int64(len(users))
	each := amount / n
	rest := amount % n
	for i, u := range users {
		share := each
		if int64(i) < rest {
			share++
		}
		l.mintTo(u, share)
	}
}

func (l *Ledger) mintTo(u *models.User, count int64) {
	if count <= 0 {
		return
	}
	l.Mint(u, count)
	u.Balance += count
}
