package model

const (
	TableContractSnapshot = "contract_snapshots"
)

// ContractSnapshot is the latest evaluated state of one contract. A single
// row per contract, replaced on every flush.
type ContractSnapshot struct {
	ContractId string `gorm:"primaryKey"`

	// Height of the last interaction folded into the state
	BlockHeight uint64

	// Sort key of the last evaluated interaction
	SortKey string

	// JSON encoded contract state
	State []byte `gorm:"type:jsonb"`
}

func (ContractSnapshot) TableName() string {
	return TableContractSnapshot
}
