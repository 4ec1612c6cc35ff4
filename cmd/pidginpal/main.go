// PidginPal relay is the backend for the PidginPal chat app.
//
// It accepts one user message from the browser, wraps it with the PidginPal
// persona, forwards it to an OpenAI-compatible chat completions API, and
// returns the provider's answer. When the provider is out of quota or rate
// limited, a canned in-character reply is returned instead.
//
// Usage:
//
//	# Start the relay with ./config.yaml (or defaults if it does not exist)
//	pidginpal run
//
//	# Start with a custom configuration file
//	pidginpal run --config /etc/pidginpal/config.yaml
//
//	# Send one message through the relay core and print the reply
//	pidginpal ask "How far?"
//
//	# Check a configuration file
//	pidginpal validate --config config.yaml
//
//	# Show version information
//	pidginpal version
package main

func main() {
	Execute()
}
