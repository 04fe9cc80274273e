package booking

import (
	"testing"

	"github.com/cempakacafe/reservation/internal/model"
	"github.com/stretchr/testify/assert"
)

func tbl(id uint64, capacity int, loc model.LocationType, status model.TableStatus) model.Table {
	return model.Table{ID: id, Number: uint32(id), Capacity: capacity, LocationType: loc, Status: status}
}

func TestEligibleTables_CapacityOrdering(t *testing.T) {
	inventory := []model.Table{
		tbl(1, 2, model.LocationIndoor, model.TableAvailable),
		tbl(2, 4, model.LocationIndoor, model.TableAvailable),
		tbl(3, 4, model.LocationIndoor, model.TableAvailable),
		tbl(4, 8, model.LocationIndoor, model.TableAvailable),
	}

	got := EligibleTables(inventory, 3, model.LocationIndoor, nil)

	// The two-seater is excluded; four-seaters come before the
	// eight-seater so parties get the smallest sufficient table.
	assert.Len(t, got, 3)
	assert.Equal(t, 4, got[0].Capacity)
	assert.Equal(t, 4, got[1].Capacity)
	assert.Equal(t, 8, got[2].Capacity)
}

func TestEligibleTables_ExcludesWrongLocation(t *testing.T) {
	inventory := []model.Table{
		tbl(1, 6, model.LocationOutdoor, model.TableAvailable),
		tbl(2, 6, model.LocationPrivate, model.TableAvailable),
	}

	got := EligibleTables(inventory, 4, model.LocationIndoor, nil)

	assert.Empty(t, got)
}

func TestEligibleTables_ExcludesNonAvailable(t *testing.T) {
	inventory := []model.Table{
		tbl(1, 4, model.LocationIndoor, model.TableOccupied),
		tbl(2, 4, model.LocationIndoor, model.TableMaintenance),
		tbl(3, 4, model.LocationIndoor, model.TableAvailable),
	}

	got := EligibleTables(inventory, 2, model.LocationIndoor, nil)

	assert.Len(t, got, 1)
	assert.Equal(t, uint64(3), got[0].ID)
}

func TestEligibleTables_KeepsOwnAssignedTable(t *testing.T) {
	// A reservation being re-confirmed must still see its own table
	// even though staff already flipped it to reserved.
	inventory := []model.Table{
		tbl(7, 4, model.LocationIndoor, model.TableReserved),
		tbl(8, 6, model.LocationIndoor, model.TableAvailable),
	}
	current := uint64(7)

	got := EligibleTables(inventory, 4, model.LocationIndoor, &current)

	assert.Len(t, got, 2)
	assert.Equal(t, uint64(7), got[0].ID)
}

func TestExcludeTables(t *testing.T) {
	inventory := []model.Table{
		tbl(1, 4, model.LocationIndoor, model.TableAvailable),
		tbl(2, 4, model.LocationIndoor, model.TableAvailable),
		tbl(3, 6, model.LocationIndoor, model.TableAvailable),
	}

	got := ExcludeTables(inventory, map[uint64]bool{1: true, 3: true})

	assert.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].ID)

	// Empty exclusion set returns the input untouched.
	assert.Equal(t, inventory, ExcludeTables(inventory, nil))
}

func TestFirstEligible_NoCandidates(t *testing.T) {
	got, err := FirstEligible(nil, 2, model.LocationIndoor, nil)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNoCandidateTable)
}

func TestFirstEligible_PicksSmallestSufficient(t *testing.T) {
	inventory := []model.Table{
		tbl(1, 8, model.LocationOutdoor, model.TableAvailable),
		tbl(2, 4, model.LocationOutdoor, model.TableAvailable),
	}

	got, err := FirstEligible(inventory, 3, model.LocationOutdoor, nil)

	assert.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID)
}
