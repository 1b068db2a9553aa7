// Package core defines the domain types and small contracts shared by the
// foundryrelay packages:
//
//   - ChatMessage / Role: the value exchanged with chat agents
//   - ChatAgent: the adapter contract (ProcessMessage + Cleanup)
//   - Task / TaskService: the host application's task list collaborator
//
// Concrete adapters (foundry) and stores (task) live in their own packages so
// that callers depend on these interfaces only.
package core
