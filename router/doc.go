// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers on a standard
http.ServeMux, using Go 1.22 method-and-pattern routing. Every API route
is wrapped in the logging middleware; health and root stay bare.
*/
package router
