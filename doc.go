// Package proofai is the runtime SDK for agents hosted on the ProofAI
// Agent Hub.
//
// The platform injects a [Context] into the agent process before running
// agent code; the agent reads it through the package-level accessors and
// talks back by emitting JSON-line envelopes:
//
//   - [EnvVars], [UserVars], [ChatHistory] return copies of the injected
//     runtime state; callers may mutate the results freely.
//   - [SendMessage] delivers a message to the user.
//   - [CallAgent] invokes another agent; its reply surfaces through the
//     chat history on a later turn.
//
// # Quick Start
//
//	func main() {
//	    history := proofai.ChatHistory()
//	    if len(history) == 0 {
//	        proofai.SendMessage("Hello! What can I do for you?")
//	        return
//	    }
//	    last := history[len(history)-1]
//	    proofai.SendMessage("You said: " + last.Content)
//	}
//
// All accessors and emitters share one lock, so concurrent goroutines in an
// agent may use the package freely.
//
// The proofai command in cmd/proofai scaffolds and uploads the projects
// that run against this package.
package proofai
