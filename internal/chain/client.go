package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/Hagukwe/Green-grant/internal/config"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 链上托管客户端
//
// 通过托管合约完成实际的资金移动；合约的 transfer 方法只接受
// 平台托管账户发起的调用。
type Client struct {
	client       *ethclient.Client
	privateKey   *ecdsa.PrivateKey
	chainId      *big.Int
	contractABI  abi.ABI
	contractAddr common.Address
}

// 托管合约ABI定义（简化版）
const escrowABI = `[
	{
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接链节点
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(escrowABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse escrow ABI: %w", err)
	}

	return &Client{
		client:       client,
		privateKey:   privateKey,
		chainId:      big.NewInt(cfg.ChainId),
		contractABI:  parsedABI,
		contractAddr: common.HexToAddress(cfg.EscrowAddress),
	}, nil
}

// LatestBlock 获取最新区块号
func (c *Client) LatestBlock(ctx context.Context) (int64, error) {
	header, err := c.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Int64(), nil
}

// Transfer 调用托管合约移动资金
//
// 等待交易上链并检查回执状态；回执缺失或状态异常一律按失败处理。
func (c *Client) Transfer(ctx context.Context, from, to string, amount int64) error {
	input, err := c.contractABI.Pack("transfer",
		common.HexToAddress(from), common.HexToAddress(to), big.NewInt(amount))
	if err != nil {
		return fmt.Errorf("failed to pack transfer call: %w", err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.GetAccountAddress())
	if err != nil {
		return fmt.Errorf("failed to fetch nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.contractAddr,
		Value:    big.NewInt(0),
		Gas:      120000,
		GasPrice: gasPrice,
		Data:     input,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transfer: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("failed to send transfer: %w", err)
	}

	// 等待交易确认
	receipt, err := bind.WaitMined(ctx, c.client, signedTx)
	if err != nil {
		return fmt.Errorf("failed to confirm transfer: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transfer reverted: tx %s", signedTx.Hash().Hex())
	}

	return nil
}

// GetAccountAddress 获取托管账户地址
func (c *Client) GetAccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}
