package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// storage prefix of token account records.
const accountPrefix = 'a'

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("contract", "", "LE script hash of the deployed token contract")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing token contract hash")
	}

	h, err := util.Uint160DecodeStringLE(*contractHash)
	if err != nil {
		log.Fatal(fmt.Errorf("decode token contract hash: %w", err))
	}

	err = dumpBalances(*neoRPCEndpoint, h)
	if err != nil {
		log.Fatal(err)
	}
}

// dumpBalances walks over all account records of the token contract and
// prints 'address balance' line for each of them.
func dumpBalances(blockChainRPCEndpoint string, tokenContract util.Uint160) error {
	b, err := newRemoteBlockChain(blockChainRPCEndpoint)
	if err != nil {
		return err
	}

	defer b.close()

	return b.iterateContractStorage(tokenContract, func(key, value []byte) error {
		if len(key) != util.Uint160Size+1 || key[0] != accountPrefix {
			return nil
		}

		addr, err := util.Uint160DecodeBytesBE(key[1:])
		if err != nil {
			return fmt.Errorf("decode account key: %w", err)
		}

		balance, err := decodeBalance(value)
		if err != nil {
			return fmt.Errorf("decode balance of account '%s': %w", address.Uint160ToString(addr), err)
		}

		fmt.Printf("%s %s\n", address.Uint160ToString(addr), balance)

		return nil
	})
}

// decodeBalance extracts the balance from a serialized token account record.
func decodeBalance(value []byte) (*big.Int, error) {
	item, err := stackitem.Deserialize(value)
	if err != nil {
		return nil, fmt.Errorf("deserialize account record: %w", err)
	}

	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) != 1 {
		return nil, errors.New("unexpected account record structure")
	}

	return fields[0].TryInteger()
}
