/*
Package transport defines the collaborator that moves bytes for courier and
ships the production implementation built on resty.

The core hands the transport a fully assembled Request (method, URL,
headers, body and option flags) and receives the raw response header block
plus body. Everything between those two points belongs here: connection
pooling, TLS, redirects, proxies, retries, rate limiting and the circuit
breaker.

# Header block

Response.HeaderBlock is the wire form of the response head:

	HTTP/1.1 200 OK\r\n
	Content-Type: application/json\r\n
	\r\n

When a transport observes several heads (interim 1xx responses, redirects,
proxy CONNECT) it may concatenate them; readers use the last one.

# Custom transports

Any function with the right signature can serve as a transport:

	t := transport.Func(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return &transport.Response{HeaderBlock: "HTTP/1.1 204 No Content\r\n\r\n"}, nil
	})
*/
package transport
