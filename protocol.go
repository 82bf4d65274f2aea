package thtp

import (
	"strings"

	"github.com/apache/thrift/lib/go/thrift"
)

// The three MIME types this gateway negotiates over, each bound to exactly
// one Thrift wire protocol.
const (
	BinaryContentType  = "application/vnd.apache.thrift.binary"
	CompactContentType = "application/vnd.apache.thrift.compact"
	JSONContentType    = "application/vnd.apache.thrift.json"
)

// DefaultProtocolFactory is the protocol used whenever a Content-Type header
// is absent or unrecognized: Compact. Picking Compact as the fallback (rather
// than, say, JSON) means the server can always emit a well-formed error body
// even for requests that arrive with no content-type at all.
var DefaultProtocolFactory thrift.TProtocolFactory = thrift.NewTCompactProtocolFactoryConf(nil)

var contentTypeToFactory = map[string]thrift.TProtocolFactory{
	BinaryContentType:  thrift.NewTBinaryProtocolFactoryConf(nil),
	CompactContentType: thrift.NewTCompactProtocolFactoryConf(nil),
	JSONContentType:    thrift.NewTJSONProtocolFactory(),
}

// ProtocolForContentType returns the TProtocolFactory bound to the given
// Content-Type header value, and true if it was recognized. Only the first
// ";"-delimited token of the header participates (parameters like
// "; charset=utf-8" are ignored).
func ProtocolForContentType(contentType string) (thrift.TProtocolFactory, bool) {
	token := contentType
	if i := strings.IndexByte(token, ';'); i >= 0 {
		token = token[:i]
	}
	token = strings.TrimSpace(strings.ToLower(token))
	factory, ok := contentTypeToFactory[token]
	return factory, ok
}

// ContentTypeForName returns the canonical Content-Type header value for one
// of the three recognized MIME type names ("binary", "compact", "json"), or
// "" if name isn't one of them. Most callers instead already hold the
// content-type string they decoded with and should just reuse it; this is for
// constructing one from scratch (e.g. when building requests client-side).
func ContentTypeForName(name string) string {
	switch strings.ToLower(name) {
	case "binary":
		return BinaryContentType
	case "compact":
		return CompactContentType
	case "json":
		return JSONContentType
	default:
		return ""
	}
}

// protocolForContentTypeOrDefault is ProtocolForContentType with the
// default-protocol fallback applied, returning the content-type that was
// actually selected alongside the factory.
func protocolForContentTypeOrDefault(contentType string) (thrift.TProtocolFactory, string) {
	if factory, ok := ProtocolForContentType(contentType); ok {
		token := contentType
		if i := strings.IndexByte(token, ';'); i >= 0 {
			token = token[:i]
		}
		return factory, strings.TrimSpace(strings.ToLower(token))
	}
	return DefaultProtocolFactory, CompactContentType
}
