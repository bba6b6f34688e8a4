// Package api provides the inference client and web search functionality.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Inference Client
//
// One client speaks two wire protocols against self-hosted LLM servers:
//
//   - client.go: InferenceClient, endpoint normalization, and the
//     primary-then-native fallback flow for Generate and Chat
//   - openai.go: OpenAI-compatible chat-completions wire types and parser
//   - ollama.go: native generate/chat wire types and parser
//   - errors.go: the error taxonomy raised by inference calls
//
// ## Web Search
//
//   - brightdata.go: SearchClient for the Bright Data scraping API
//   - tools.go: the web_search tool adapter (string in, string out)
//
// # Protocol Negotiation
//
// Every inference call first targets POST {endpoint}/v1/chat/completions.
// When the backend answers 404 or 405 the route is taken as absent and the
// client retries exactly once against the native protocol (/api/generate
// for single prompts, /api/chat for histories). Any other failure, including
// 401 and 500, propagates as *BackendError without a retry, so auth and
// server problems are never masked as a format mismatch. When both protocols
// fail the terminal error (*BothFormatsFailedError or *NativeChatFailedError)
// carries both underlying failures.
//
// # Usage
//
// ## Creating an Inference Client
//
//	client := api.NewInferenceClient(api.Options{
//	    Endpoint: "http://localhost:11434",
//	    Model:    "llama3.2",
//	})
//	text, err := client.Generate(ctx, "Why is the sky blue?")
//
// ## Creating a Search Client
//
//	searchClient := api.NewSearchClient(api.SearchOptions{Token: token})
//	results := searchClient.SearchWeb(ctx, "golang news", 1)
//
// SearchWeb never returns an error; failures are logged and surface as an
// empty result set.
package api
