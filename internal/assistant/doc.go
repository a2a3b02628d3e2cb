// Package assistant is the HTTP client for the course-search assistant service.
//
// Every endpoint answers with the same envelope:
//
//	{"success": true, "data": {...}}
//	{"success": false, "error": "Failed to process message: ..."}
//
// Failures are classified as *TransportError (connection failure, timeout,
// non-2xx status) or *ProtocolError (success=false, missing or malformed
// data). The conversation Dispatcher treats both the same way.
//
// A Client is built once and injected:
//
//	client, err := assistant.NewClient(cfg.Assistant.BaseURL,
//	    assistant.WithTimeout(cfg.Assistant.Timeout),
//	    assistant.WithLogger(logger))
//	dispatcher := conversation.NewDispatcher(store, client, logger)
package assistant
