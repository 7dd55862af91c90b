// Package clientip resolves the address of the client that sent a request.
//
// Proxy headers are only as trustworthy as the proxy that sets them, so the
// list is configurable. A Resolver walks its headers in order, takes the
// first parseable address (the leftmost one of a forwarded list) and falls
// back to the TCP peer address:
//
//	res := clientip.New(clientip.WithHeaders("X-Forwarded-For"))
//	handler = res.Middleware(handler)
//
// Downstream code reads the address with FromContext. LoggerExtractor plugs
// it into loggers built by package logger so request logs carry client_ip.
package clientip
