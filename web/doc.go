// Package web provides web content tools: fetching a page as plain text,
// issuing a raw HTTP request, and extracting links or metadata from HTML.
//
// Every tool validates its URL eagerly (http and https only), honors a
// caller timeout, and caps how much of a response body it reads. HTML is
// parsed with goquery; conversion to plain text strips all markup with
// bluemonday's strict policy and then collapses whitespace.
//
// There are no retries and no cookie jars: one request per call, per the
// library's stateless contract.
package web
