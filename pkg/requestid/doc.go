// Package requestid carries request correlation identifiers through inbound
// handlers, outbound API calls and logs.
//
// Middleware attaches an id to every inbound request, reusing a valid
// "X-Request-ID" header or generating a UUIDv4. Transport copies the id from
// the outgoing request's context onto the header so calls to the identity API
// can be correlated with the request that caused them. LoggerExtractor plugs
// into pkg/logger.
//
// Invalid or empty ids supplied by a client are replaced, never rejected.
package requestid
