package model

const (
	TableInteraction = "interactions"
)

// Interaction is one persisted contract interaction, written by the syncing
// pipeline and consumed here in sort key order.
type Interaction struct {
	ID             int
	InteractionId  string
	ContractId     string
	BlockHeight    uint64
	BlockId        string
	BlockTimestamp int64

	// Function name extracted from the Input tag
	Function string

	// Raw JSON of the Input tag
	Input string

	// Wallet address of the interaction owner
	Owner string

	// Position in the global interaction order; the replay key
	SortKey string
}

func (Interaction) TableName() string {
	return TableInteraction
}
