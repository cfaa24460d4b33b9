// Package llm provides an OpenAI-compatible chat client used to translate
// subtitle dialogue.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteJSON: send system/user prompts, receive a JSON response.
// Client.Translate: translate lines in batches, preserving count and order.
// Client.HealthCheck: verify API key and model availability.
//
// # Retry Behaviour
//
// Requests go through resty. The client retries on HTTP 408/429/5xx errors,
// empty completions and network timeouts with exponential backoff (base 1s,
// max 10s, up to 5 attempts by default). A batch that comes back with the
// wrong number of lines is re-requested within the same attempt budget.
// Context cancellation aborts retries immediately.
package llm
