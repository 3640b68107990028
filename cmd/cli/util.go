package main

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func parsePubkey(label, v string) (solana.PublicKey, error) {
	if v == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", label)
	}
	pk, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s invalid pubkey: %w", label, err)
	}
	return pk, nil
}

// parseOptionalPubkey returns the zero key for an empty string.
func parseOptionalPubkey(label, v string) (solana.PublicKey, error) {
	if v == "" {
		return solana.PublicKey{}, nil
	}
	return parsePubkey(label, v)
}

// pubkeys parses label=value pairs in order and stops at the first bad one.
func pubkeys(pairs ...string) ([]solana.PublicKey, error) {
	out := make([]solana.PublicKey, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		pk, err := parsePubkey(pairs[i], pairs[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, pk)
	}
	return out, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return nil
}
