/*
Package courier is a fluent HTTP client that negotiates content types and
dispatches request and response bodies to codecs.

	client := courier.New()

	resp, err := client.Post("https://api.example.com/items").
		SendsJSON().
		Body(map[string]any{"name": "widget"}).
		Send(ctx)
	if err != nil {
		return err
	}
	item := resp.Body.(map[string]any)

# Content negotiation

Outgoing payloads are encoded by the codec registered for the request's
content type, subject to the SerializeMode. Under the default
SerializeSmart mode strings, byte slices, booleans and numbers are sent as
they are.

Incoming bodies are parsed by the first match of:

 1. raw text when auto-parsing is off
 2. the request's ParseWith function or ParseWithCodec codec
 3. the codec for the request's expected type
 4. the codec for the response's exact base type
 5. the codec for the parent type of a +suffix type, such as application/json
    for application/vnd.api+json, which falls back to passthrough

Codecs live in a codec.Registry. Clients use codec.Default unless given
their own with WithRegistry.

# Transport

The transport package defines the collaborator that performs the exchange.
New uses a resty-backed transport with retries, a rate limiter and a
circuit breaker; tests and embedders can supply any transport.Transport.

# Configuration

NewFromEnv reads COURIER_* environment variables for timeouts, retries,
rate limiting, the circuit breaker, logging and codec switches.
*/
package courier
