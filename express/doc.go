// Package express describes the response object an Express-style handler
// receives. The response is layered the same way the framework layers it:
// an event emitter, a writable stream, an outgoing HTTP message, a server
// response and finally the framework response on top.
//
// Methods that the framework documents as returning the response itself
// return Response so calls can be chained:
//
//	res.Status(http.StatusNotFound).JSON(map[string]string{"error": "missing"})
package express
