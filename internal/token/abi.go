package token

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ERC-20 events. Transfer and Approval carry the amount in the data
// payload, so only the two address parameters are indexed.
const erc20EventsABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "from", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "value", "type": "uint256"}
    ],
    "name": "Transfer",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "owner", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "spender", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "value", "type": "uint256"}
    ],
    "name": "Approval",
    "type": "event"
  }
]`

// ERC-721 events. The token id is indexed, which is what distinguishes a
// conforming ERC-721 Transfer from the ERC-20 one sharing its topic0.
const erc721EventsABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "from", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": true, "internalType": "uint256", "name": "tokenId", "type": "uint256"}
    ],
    "name": "Transfer",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "owner", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "approved", "type": "address"},
      {"indexed": true, "internalType": "uint256", "name": "tokenId", "type": "uint256"}
    ],
    "name": "Approval",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "owner", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "operator", "type": "address"},
      {"indexed": false, "internalType": "bool", "name": "approved", "type": "bool"}
    ],
    "name": "ApprovalForAll",
    "type": "event"
  }
]`

const erc1155EventsABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "operator", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "from", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "id", "type": "uint256"},
      {"indexed": false, "internalType": "uint256", "name": "value", "type": "uint256"}
    ],
    "name": "TransferSingle",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "operator", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "from", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": false, "internalType": "uint256[]", "name": "ids", "type": "uint256[]"},
      {"indexed": false, "internalType": "uint256[]", "name": "values", "type": "uint256[]"}
    ],
    "name": "TransferBatch",
    "type": "event"
  }
]`

const erc165ABIJSON = `[
  {
    "inputs": [{"internalType": "bytes4", "name": "interfaceId", "type": "bytes4"}],
    "name": "supportsInterface",
    "outputs": [{"internalType": "bool", "name": "", "type": "bool"}],
    "stateMutability": "view",
    "type": "function"
  }
]`

var (
	erc20EventsABI       abi.ABI
	erc20EventsABIOnce   sync.Once
	erc20EventsABIErr    error
	erc721EventsABI      abi.ABI
	erc721EventsABIOnce  sync.Once
	erc721EventsABIErr   error
	erc1155EventsABI     abi.ABI
	erc1155EventsABIOnce sync.Once
	erc1155EventsABIErr  error
	erc165ABI            abi.ABI
	erc165ABIOnce        sync.Once
	erc165ABIErr         error
)

// ERC20EventsABI returns the parsed ERC-20 events ABI.
func ERC20EventsABI() (abi.ABI, error) {
	erc20EventsABIOnce.Do(func() {
		erc20EventsABI, erc20EventsABIErr = abi.JSON(strings.NewReader(erc20EventsABIJSON))
	})
	return erc20EventsABI, erc20EventsABIErr
}

// ERC721EventsABI returns the parsed ERC-721 events ABI.
func ERC721EventsABI() (abi.ABI, error) {
	erc721EventsABIOnce.Do(func() {
		erc721EventsABI, erc721EventsABIErr = abi.JSON(strings.NewReader(erc721EventsABIJSON))
	})
	return erc721EventsABI, erc721EventsABIErr
}

// ERC1155EventsABI returns the parsed ERC-1155 events ABI.
func ERC1155EventsABI() (abi.ABI, error) {
	erc1155EventsABIOnce.Do(func() {
		erc1155EventsABI, erc1155EventsABIErr = abi.JSON(strings.NewReader(erc1155EventsABIJSON))
	})
	return erc1155EventsABI, erc1155EventsABIErr
}

// ERC165ABI returns the parsed ERC-165 ABI.
func ERC165ABI() (abi.ABI, error) {
	erc165ABIOnce.Do(func() {
		erc165ABI, erc165ABIErr = abi.JSON(strings.NewReader(erc165ABIJSON))
	})
	return erc165ABI, erc165ABIErr
}
