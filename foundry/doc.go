// Package foundry relays chat messages to an agent hosted by the Azure AI
// Foundry Agent Service.
//
// TaskAgent implements core.ChatAgent. It talks to the service only through
// the narrow Connector and Conversations interfaces; the SDK-backed
// implementation lives in foundry/openai. Tests substitute fakes.
//
// Typical wiring:
//
//	cfg := foundry.LoadConfig(nil)
//	agent := foundry.NewTaskAgent(cfg, task.NewInMemoryService(), openai.NewConnector())
//	reply := agent.ProcessMessage(ctx, "What is on my list today?")
package foundry
