package booking

import (
	"testing"

	"github.com/cempakacafe/reservation/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSetTableStatus_DirectSet(t *testing.T) {
	table := tbl(1, 4, model.LocationIndoor, model.TableAvailable)

	// maintenance then straight back to available, with no reservation
	// involvement anywhere.
	change, err := SetTableStatus(&table, model.TableMaintenance)
	assert.NoError(t, err)
	assert.True(t, change.Applied)
	assert.Equal(t, model.TableAvailable, change.Previous)
	assert.Equal(t, model.TableMaintenance, table.Status)

	change, err = SetTableStatus(&table, model.TableAvailable)
	assert.NoError(t, err)
	assert.Equal(t, model.TableMaintenance, change.Previous)
	assert.Equal(t, model.TableAvailable, table.Status)
}

func TestSetTableStatus_RejectsUnknownValue(t *testing.T) {
	table := tbl(1, 4, model.LocationIndoor, model.TableOccupied)

	change, err := SetTableStatus(&table, model.TableStatus("broken"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.False(t, change.Applied)
	// Previous carries the pre-change state so optimistic UIs can roll back.
	assert.Equal(t, model.TableOccupied, change.Previous)
	assert.Equal(t, model.TableOccupied, table.Status)
}

func TestTablePolicy(t *testing.T) {
	assert.Equal(t, TablePolicyManual, ParseTablePolicy(""))
	assert.Equal(t, TablePolicyManual, ParseTablePolicy("whatever"))
	assert.Equal(t, TablePolicyLinked, ParseTablePolicy("linked"))

	if s, ok := TablePolicyLinked.StatusAfterConfirm(); assert.True(t, ok) {
		assert.Equal(t, model.TableReserved, s)
	}
	if s, ok := TablePolicyLinked.StatusAfterComplete(); assert.True(t, ok) {
		assert.Equal(t, model.TableAvailable, s)
	}
	_, ok := TablePolicyManual.StatusAfterConfirm()
	assert.False(t, ok)
	_, ok = TablePolicyManual.StatusAfterComplete()
	assert.False(t, ok)
}
