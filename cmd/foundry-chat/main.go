// Command foundry-chat talks to an Azure AI Foundry agent from the terminal.
//
// Configuration is read from the environment (and a .env file if present):
//
//	AZURE_AI_FOUNDRY_PROJECT_ENDPOINT  project endpoint
//	AZURE_AI_FOUNDRY_AGENT_NAME        agent to invoke
//
// Credentials are resolved by DefaultAzureCredential (az login, managed
// identity, environment variables).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
