package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var balance string
	createCmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			createAccount(args[0], balance)
		},
	}
	createCmd.Flags().StringVar(&balance, "balance", "0", "Initial balance")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an account and its balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getAccount(args[0])
		},
	}

	accountCmd.AddCommand(createCmd, getCmd)
	rootCmd.AddCommand(accountCmd)

	// Transfer commands
	transferCmd := &cobra.Command{
		Use:   "transfer <source> <destination> <amount>",
		Short: "Transfer money between two accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			transfer(args[0], args[1], args[2])
		},
	}
	rootCmd.AddCommand(transferCmd)

	var limit, offset int
	transfersCmd := &cobra.Command{
		Use:   "transfers <account-id>",
		Short: "List recorded transfers for an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listTransfers(args[0], limit, offset)
		},
	}
	transfersCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of transfers")
	transfersCmd.Flags().IntVar(&offset, "offset", 0, "Number of transfers to skip")
	rootCmd.AddCommand(transfersCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createAccount(id, balance string) {
	payload := map[string]string{"id": id, "balance": balance}
	body := postJSON("/api/v1/accounts", payload)
	fmt.Println(string(body))
}

func getAccount(id string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/accounts/" + url.PathEscape(id))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println(string(body))
}

func transfer(source, destination, amount string) {
	payload := map[string]string{
		"source_account_id":      source,
		"destination_account_id": destination,
		"amount":                 amount,
	}
	body := postJSON("/api/v1/transfers", payload)
	fmt.Println(string(body))
}

func listTransfers(accountID string, limit, offset int) {
	client := &http.Client{Timeout: timeout}
	endpoint := fmt.Sprintf("%s/api/v1/transfers?account_id=%s&limit=%d&offset=%d",
		baseURL, url.QueryEscape(accountID), limit, offset)

	resp, err := client.Get(endpoint)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println(string(body))
}

func postJSON(path string, payload any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
