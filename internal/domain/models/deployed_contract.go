package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PendingDeployment is a submitted deployment transaction awaiting confirmation
type PendingDeployment struct {
	Blueprint *Blueprint
	Address   common.Address // predicted from sender and nonce
	Tx        *types.Transaction
	Contract  *bind.BoundContract
}

// DeployedContract is the result of a confirmed deployment. It is never persisted.
type DeployedContract struct {
	Blueprint   *Blueprint     `json:"-"`
	Address     common.Address `json:"address"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	GasUsed     uint64         `json:"gasUsed"`
	ChainID     uint64         `json:"chainId"`
	Deployer    common.Address `json:"deployer"`

	// Contract is bound to Address and can be used to call the deployed instance
	Contract *bind.BoundContract `json:"-"`
}
