package token

import (
	"github.com/nspcc-dev/captoken-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Token holds all token info.
	Token struct {
		// Ticker symbol
		Symbol string
		// Amount of decimals
		Decimals int
		// Storage key for circulation value
		CirculationKey string
	}

	// Account stores metadata of each token account.
	Account struct {
		// Active balance
		Balance int
	}
)

const (
	symbol      = "CAPT"
	decimals    = 8
	circulation = "supply"

	ownerKey     = "owner"
	maxSupplyKey = "cap"
	pausedKey    = "paused"

	accPrefix = 'a'

	// maxAmount bounds the supply cap and any batch total.
	maxAmount = 1 << 62
)

// Error messages thrown by the contract.
const (
	ErrSupplyCapExceeded   = "supply cap exceeded"
	ErrLengthMismatch      = "recipients and amounts length mismatch"
	ErrInsufficientBalance = "insufficient balance"
	ErrAmountOverflow      = "batch amount overflow"
	ErrNegativeAmount      = "negative amount"
	ErrPaused              = "transfers are paused"
)

var token Token

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner     interop.Hash160
		maxSupply int
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	if args.maxSupply <= 0 || args.maxSupply > maxAmount {
		panic("max supply out of range")
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, maxSupplyKey, args.maxSupply)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getOwner(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Symbol is a NEP-17 standard method that returns the token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of token
// balances.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of tokens
// in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// MaxSupply returns the immutable supply cap set at deployment. Total supply
// never exceeds this value.
func MaxSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getMaxSupply(ctx)
}

// Owner returns the script hash of the contract owner.
func Owner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getOwner(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the token balance of
// the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// IsPaused returns true if token transfers are halted.
func IsPaused() bool {
	ctx := storage.GetReadOnlyContext()
	return isPaused(ctx)
}

// Pause halts all transfers until Unpause is called. Can be invoked only by
// the contract owner.
func Pause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	storage.Put(ctx, pausedKey, true)
	runtime.Log("transfers paused")
}

// Unpause resumes transfers. Can be invoked only by the contract owner.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	storage.Put(ctx, pausedKey, false)
	runtime.Log("transfers unpaused")
}

// Transfer is a NEP-17 standard method that transfers tokens from one
// account to another. Can be invoked only by the account owner.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	ctx := storage.GetContext()
	if amount < 0 {
		panic(ErrNegativeAmount)
	}
	return token.transfer(ctx, from, to, amount, false)
}

// MultiSend transfers amounts[i] tokens from the given account to
// recipients[i] for every i, as a single all-or-nothing batch. Can be
// invoked only by the account owner. The whole batch is validated against
// the sender's balance before the first transfer, so either every recipient
// is credited or none is.
//
// An empty batch is a valid no-op. Self-transfers and duplicate recipients
// are permitted.
//
// Produces Transfer notification for each batch entry.
func MultiSend(from interop.Hash160, recipients []interop.Hash160, amounts []int) {
	ctx := storage.GetContext()

	if !isUsableAddress(from) {
		panic(common.ErrWitnessFailed)
	}

	if len(recipients) != len(amounts) {
		panic(ErrLengthMismatch)
	}

	totalAmount := 0
	for i := 0; i < len(amounts); i++ {
		if amounts[i] < 0 {
			panic(ErrNegativeAmount)
		}

		totalAmount += amounts[i]
		if totalAmount > maxAmount {
			panic(ErrAmountOverflow)
		}
	}

	if token.balanceOf(ctx, from) < totalAmount {
		panic(ErrInsufficientBalance)
	}

	for i := 0; i < len(recipients); i++ {
		ok := token.transfer(ctx, from, recipients[i], amounts[i], false)
		if !ok {
			panic("can't transfer assets")
		}
	}
}

// Mint issues amount tokens to the specified account. Can be invoked only by
// the contract owner. Minting that would push total supply past MaxSupply
// fails, leaving both supply and balances untouched. The pause flag does not
// affect issuance.
//
// Produces Mint and Transfer notifications. Mint increases total supply.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	if len(to) != interop.Hash160Len {
		panic("incorrect length of recipient script hash")
	}

	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	supply := token.getSupply(ctx)
	if supply+amount > getMaxSupply(ctx) {
		panic(ErrSupplyCapExceeded)
	}

	ok := token.transfer(ctx, nil, to, amount, true)
	if !ok {
		panic("can't transfer assets")
	}

	storage.Put(ctx, token.CirculationKey, supply+amount)
	runtime.Log("assets were minted")
	runtime.Notify("Mint", to, amount)
}

// Burn destroys amount tokens of the specified account. Can be invoked only
// by the account owner. Burn decreases total supply and is blocked while
// transfers are paused.
//
// Produces Burn and Transfer notifications.
func Burn(from interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(from)

	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	if isPaused(ctx) {
		panic(ErrPaused)
	}

	if token.balanceOf(ctx, from) < amount {
		panic(ErrInsufficientBalance)
	}

	ok := token.transfer(ctx, from, nil, amount, true)
	if !ok {
		panic("can't transfer assets")
	}

	supply := token.getSupply(ctx)
	if supply < amount {
		panic("negative supply after burn")
	}

	storage.Put(ctx, token.CirculationKey, supply-amount)
	runtime.Log("assets were burned")
	runtime.Notify("Burn", from, amount)
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.CirculationKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

// balanceOf gets the token balance of a specific address.
func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	acc := getAccount(ctx, accountKey(holder))

	return acc.Balance
}

// transfer moves amount from one account to another. Nil from mints, nil to
// burns; system transfers skip the witness and pause checks. Zero balances
// stay in storage, an account once credited is never removed.
func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int, system bool) bool {
	accFrom, ok := t.canTransfer(ctx, from, to, amount, system)
	if !ok {
		return false
	}

	if len(from) == interop.Hash160Len {
		accFrom.Balance = accFrom.Balance - amount
		common.SetSerialized(ctx, accountKey(from), accFrom)
	}

	if len(to) == interop.Hash160Len {
		accTo := getAccount(ctx, accountKey(to))
		accTo.Balance = accTo.Balance + amount
		common.SetSerialized(ctx, accountKey(to), accTo)
	}

	runtime.Notify("Transfer", from, to, amount)

	return true
}

// canTransfer returns the sender account if the transfer can proceed.
func (t Token) canTransfer(ctx storage.Context, from, to interop.Hash160, amount int, system bool) (Account, bool) {
	var emptyAcc = Account{}

	if !system {
		if isPaused(ctx) {
			panic(ErrPaused)
		}

		if len(to) != interop.Hash160Len || !isUsableAddress(from) {
			runtime.Log("bad script hashes")
			return emptyAcc, false
		}
	} else if len(from) == 0 {
		return emptyAcc, true
	}

	accFrom := getAccount(ctx, accountKey(from))
	if accFrom.Balance < amount {
		runtime.Log("not enough assets")
		return emptyAcc, false
	}

	return accFrom, true
}

// isUsableAddress checks if the sender is either the correct Neo address or
// SC address.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		// Check if a smart contract is calling script hash
		callingScriptHash := runtime.GetCallingScriptHash()
		if common.BytesEqual(callingScriptHash, addr) {
			return true
		}
	}

	return false
}

func isPaused(ctx storage.Context) bool {
	p := storage.Get(ctx, pausedKey)
	return p != nil && p.(bool)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func getMaxSupply(ctx storage.Context) int {
	return storage.Get(ctx, maxSupplyKey).(int)
}

func accountKey(holder interop.Hash160) []byte {
	return append([]byte{accPrefix}, holder...)
}

func getAccount(ctx storage.Context, key interface{}) Account {
	data := storage.Get(ctx, key)
	if data != nil {
		return std.Deserialize(data.([]byte)).(Account)
	}

	return Account{}
}
