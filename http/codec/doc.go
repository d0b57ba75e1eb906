/*
Package codec writes response bodies in the media type a client asked for.

A [Writer] encodes the elements of a [Body] for a set of media types.
[Writers.Select] performs content negotiation:
an explicit Content-Type wins,
otherwise the Accept header is walked in order of preference
and the first media type some Writer can produce for the body's element type is chosen.

The writers provided are:
  - [TextWriter] for strings and byte slices
  - [JSONWriter] for application/json and application/x-ndjson
  - [XMLWriter] for application/xml and text/xml
  - [SSEWriter] for text/event-stream, see [ServerSentEvent]
*/
package codec
