package booking

import "github.com/cempakacafe/reservation/internal/model"

// StatusChange reports the outcome of a table status command. Previous
// holds the state before the change so presentation layers that applied
// the new value optimistically can roll back when persistence fails.
type StatusChange struct {
    Applied  bool              `json:"applied"`
    Previous model.TableStatus `json:"previous"`
}

// SetTableStatus validates and applies a direct staff status change to
// a table. The status is free-form from the workflow's point of view:
// any of the four states may follow any other, with no dependency on
// reservation linkage. Unknown values fail with ErrInvalidStatus and
// leave the table untouched.
func SetTableStatus(t *model.Table, status model.TableStatus) (StatusChange, error) {
    if !model.ValidTableStatus(status) {
        return StatusChange{Applied: false, Previous: t.Status}, ErrInvalidStatus
    }
    prev := t.Status
    t.Status = status
    return StatusChange{Applied: true, Previous: prev}, nil
}

// TablePolicy decides whether reservation transitions drive the
// operational status of the assigned table. The historical behaviour is
// manual: confirming never marks a table reserved and completing never
// releases it. The linked policy makes those side effects explicit
// instead of leaving the two state machines to drift apart.
type TablePolicy string

const (
    // TablePolicyManual leaves table status entirely to staff actions.
    TablePolicyManual TablePolicy = "manual"
    // TablePolicyLinked marks the assigned table reserved on confirm
    // and available again on completion.
    TablePolicyLinked TablePolicy = "linked"
)

// ParseTablePolicy maps a configuration string to a TablePolicy,
// defaulting to manual for unknown or empty input.
func ParseTablePolicy(s string) TablePolicy {
    if TablePolicy(s) == TablePolicyLinked {
        return TablePolicyLinked
    }
    return TablePolicyManual
}

// StatusAfterConfirm returns the table status to persist for the
// assigned table after a confirmation, or false when the policy leaves
// the table alone.
func (p TablePolicy) StatusAfterConfirm() (model.TableStatus, bool) {
    if p == TablePolicyLinked {
        return model.TableReserved, true
    }
    return "", false
}

// StatusAfterComplete returns the table status to persist for the
// assigned table after completion, or false when the policy leaves the
// table alone.
func (p TablePolicy) StatusAfterComplete() (model.TableStatus, bool) {
    if p == TablePolicyLinked {
        return model.TableAvailable, true
    }
    return "", false
}
