package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
)

const greeting = `Hello! I'm your BLS data assistant. I can help you with:

- Unemployment rates
- Employment statistics
- Consumer Price Index (CPI)
- Labor force data

Ask me anything about Bureau of Labor Statistics data! (type "exit" to quit)`

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPipeline()

		fmt.Println(greeting)

		// The transcript lives here, in the UI layer; the pipeline
		// receives the prior turns and hands back the appended ones.
		var transcript model.Transcript

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

		for {
			fmt.Print("\n> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}
			if question == "exit" || question == "quit" {
				break
			}

			var result model.QueryResult
			result, transcript = p.ProcessQuery(cmd.Context(), question, transcript)

			fmt.Println()
			fmt.Println(result.Message)
			if !result.Data.Empty() {
				fmt.Println()
				printTable(result.Data, 5)
			}
		}

		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
