package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamlog-app/dreamlog/pkg/security"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Hash and verify the access PIN",
}

var pinHashCmd = &cobra.Command{
	Use:   "hash <pin>",
	Short: "Hash a PIN and print the encoded hash string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded, err := security.HashPIN(args[0])
		if err != nil {
			return err
		}
		fmt.Println(encoded)
		return nil
	},
}

var pinVerifyCmd = &cobra.Command{
	Use:   "verify <pin> <hash>",
	Short: "Verify a PIN against an encoded hash string",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		match, err := security.VerifyPIN(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(match)
		return nil
	},
}

func init() {
	pinCmd.AddCommand(pinHashCmd)
	pinCmd.AddCommand(pinVerifyCmd)
}
