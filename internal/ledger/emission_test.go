package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billing/internal/models"
)

func TestDistribute_ProportionalToRating(t *testing.T) {
	reg := mustRegistry(t,
		models.RosterEntry{Name: "alice", Rating: 1},
		models.RosterEntry{Name: "bob", Rating: 3},
	)
	led := NewLedger()

	led.Distribute(reg.Users(), 4)

	alice, _ := reg.FindByName("alice")
	bob, _ := reg.FindByName("bob")
	assert.Equal(t, int64(1), alice.Balance)
	assert.Equal(t, int64(3), bob.Balance)
	assert.Equal(t, 4, led.Len())
}

func TestDistribute_Conservation(t *testing.T) {
	rosters := [][]models.RosterEntry{
		{
			{Name: "boris", Rating: 5000},
			{Name: "maria", Rating: 1000},
			{Name: "oleg", Rating: 800},
			{Name: "anna", Rating: 100},
			{Name: "petr", Rating: 1},
		},
		{
			{Name: "a", Rating: 1},
			{Name: "b", Rating: 1},
			{Name: "c", Rating: 1},
		},
		{
			{Name: "low", Rating: 2},
			{Name: "mid", Rating: 7},
			{Name: "high", Rating: 11},
		},
		{
			{Name: "tiny", Rating: 10},
			{Name: "huge", Rating: 1000},
			{Name: "z1", Rating: 1}, {Name: "z2", Rating: 1}, {Name: "z3", Rating: 1},
		},
	}

	for ri, entries := range rosters {
		for amount := int64(len(entries)); amount < int64(len(entries))+60; amount++ {
			t.Run(fmt.Sprintf("roster%d/amount%d", ri, amount), func(t *testing.T) {
				reg := mustRegistry(t, entries...)
				led := NewLedger()

				led.Distribute(reg.Users(), amount)

				var total int64
				for _, u := range reg.Users() {
					require.GreaterOrEqual(t, u.Balance, int64(1),
						"user %s must receive at least one coin", u.Name)
					require.Equal(t, u.Balance, int64(len(led.CoinsOwnedBy(u))),
						"balance of %s must match owned coin count", u.Name)
					total += u.Balance
				}
				require.Equal(t, amount, total, "minted total must equal requested amount")
				require.Equal(t, int(amount), led.Len())
			})
		}
	}
}

func TestDistribute_RepeatedEmissionsAccumulate(t *testing.T) {
	reg := mustRegistry(t,
		models.RosterEntry{Name: "alice", Rating: 1},
		models.RosterEntry{Name: "bob", Rating: 3},
	)
	led := NewLedger()

	led.Distribute(reg.Users(), 4)
	led.Distribute(reg.Users(), 10)

	var total int64
	for _, u := range reg.Users() {
		total += u.Balance
	}
	assert.Equal(t, int64(14), total)
	assert.Equal(t, 14, led.Len())
}

func TestDistribute_ZeroRatingSumSplitsEvenly(t *testing.T) {
	reg := mustRegistry(t,
		models.RosterEntry{Name: "a", Rating: 0},
		models.RosterEntry{Name: "b", Rating: 0},
		models.RosterEntry{Name: "c", Rating: 0},
	)
	led := NewLedger()

	led.Distribute(reg.Users(), 7)

	users := reg.Users()
	assert.Equal(t, int64(3), users[0].Balance)
	assert.Equal(t, int64(2), users[1].Balance)
	assert.Equal(t, int64(2), users[2].Balance)
	assert.Equal(t, 7, led.Len())
}

func TestDistribute_HigherRatingNeverGetsFewerWithSkew(t *testing.T) {
	reg := mustRegistry(t,
		models.RosterEntry{Name: "whale", Rating: 9000},
		models.RosterEntry{Name: "minnow", Rating: 1},
	)
	led := NewLedger()

	led.Distribute(reg.Users(), 100)

	whale, _ := reg.FindByName("whale")
	minnow, _ := reg.FindByName("minnow")
	assert.Equal(t, int64(1), minnow.Balance)
	assert.Equal(t, int64(99), whale.Balance)
}
