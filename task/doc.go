// Package task houses concrete implementations of core.TaskService.
//
// Only an in-memory backend is provided. Durable backends belong in
// sub-packages so that the wiring layer alone decides which one to use.
package task
