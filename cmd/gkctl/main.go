// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command gkctl is the operator CLI for a running graphkerneld, structured
// as a cobra multi-subcommand tool following the teacher's cmd/consensus
// convention (a rootCmd with AddCommand-registered subcommands instead of a
// flat flag.* daemon).
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var addr string

var rootCmd = &cobra.Command{
	Use:   "gkctl",
	Short: "Operator CLI for the graph kernel context-slicing service",
	Long: `gkctl talks to a running graphkerneld over its REST surface to
request slices, verify admissibility tokens, and inspect the policy
registry.`,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "http://127.0.0.1:8001", "graphkerneld base address")

	rootCmd.AddCommand(
		sliceCmd(),
		verifyCmd(),
		policiesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gkctl: %v\n", err)
		os.Exit(1)
	}
}

func sliceCmd() *cobra.Command {
	var policyRef string

	cmd := &cobra.Command{
		Use:   "slice <anchor-turn-id>",
		Short: "Request a slice anchored at a turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqBody := map[string]any{"anchor_turn_id": args[0]}
			if policyRef != "" {
				reqBody["policy_ref"] = map[string]string{"policy_id": "slice_policy_v1", "params_hash": policyRef}
			}
			return postJSON(cmd, "/api/slice", reqBody)
		},
	}
	cmd.Flags().StringVar(&policyRef, "policy", "", "policy params_hash to slice under (default policy if omitted)")
	return cmd
}

func verifyCmd() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a slice export's admissibility token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var body []byte
			var err error
			if exportPath == "" || exportPath == "-" {
				body, err = io.ReadAll(os.Stdin)
			} else {
				body, err = os.ReadFile(exportPath)
			}
			if err != nil {
				return fmt.Errorf("read export: %w", err)
			}
			return postRaw(cmd, "/api/verify_token", body)
		},
	}
	cmd.Flags().StringVar(&exportPath, "file", "-", "path to a slice export JSON file, - for stdin")
	return cmd
}

func policiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Inspect the policy registry",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered policies and the registry fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON(cmd, "/api/policies")
		},
	})
	return cmd
}

func postJSON(cmd *cobra.Command, path string, body any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return postRaw(cmd, path, encoded)
}

func postRaw(cmd *cobra.Command, path string, body []byte) error {
	resp, err := http.Post(addr+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	return printResponse(cmd, resp)
}

func getJSON(cmd *cobra.Command, path string) error {
	resp, err := http.Get(addr + path)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	return printResponse(cmd, resp)
}

func printResponse(cmd *cobra.Command, resp *http.Response) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		// Not JSON; print as-is.
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), pretty.String())

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
