package ledger

import (
	"fmt"

	"billing/internal/models"
)

// Move reassigns amount coins from src to dst, oldest first, adjusting both
// balances and appending one transfer hop per coin. Callers must have
// validated the amount against src.Balance; finding fewer owned coins than
// the balance promises means the ledger and the registry have drifted apart,
// which is a bug, so Move panics instead of returning an error.
func (l *Ledger) Move(src, dst *models.User, amount int64) {
	coins := l.CoinsOwnedBy(src)
	if int64(len(coins)) < amount {
		panic(fmt.Sprintf("ledger desync: user %q has balance %d but owns %d coins",
			src.Name, src.Balance, len(coins)))
	}

	for _, coin := range coins[:amount] {
		src.Balance--
		dst.Balance++
		if err := l.Reassign(coin, dst); err != nil {
			panic(fmt.Sprintf("ledger desync: %v", err))
		}
	}
}
