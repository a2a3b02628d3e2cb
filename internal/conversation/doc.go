// Package conversation holds the state machine of a single course-search chat
// session.
//
// # Overview
//
// A session is a Store holding an immutable State: the message log, the text
// being composed, a pending flag, the last error and the last user utterance.
// A Dispatcher drives the Store through the send pipeline against an injected
// Sender (normally *assistant.Client).
//
// # State
//
// State values are snapshots. Transitions such as AppendUser or
// AppendErrorMessage return a new State and never modify the receiver, so a
// renderer can keep any snapshot it was handed:
//
//	st := conversation.NewState("")   // greeting only
//	st = st.AppendUser("hello")
//	st.History()                      // prior turns, greeting excluded
//
// Messages carry a Kind. The opening greeting (KindGreeting) is never sent as
// chat history, and only synthesized failure messages (KindError) are removed
// by a retry.
//
// # Dispatch
//
// Send follows these steps:
//
//  1. Trim the text; drop it if blank or if a send is pending
//  2. Append the user turn, set pending, clear the composing text (atomically)
//  3. Call the Sender with the text and the history from before step 2
//  4. Append the reply, or an error message built from the failure reason
//  5. Clear pending
//
// Retry removes a trailing error message and replays the last utterance as a
// new user turn. Neither call returns an error: the outcome is reported in
// Result and, for failures, in the chat log itself.
//
// # Subscriptions
//
// Front ends call Store.Subscribe to receive every new snapshot, starting with
// the current one:
//
//	ch, _ := store.Subscribe(ctx)
//	for st := range ch {
//	    render(st)
//	}
package conversation
