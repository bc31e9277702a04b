// Package requestid correlates a targeted-content request across the client
// and the API.
//
// The gateway client stamps each call with an X-Request-ID header, reusing an
// id already carried by the caller's context. Middleware reads the header on
// the server side, replacing missing or malformed ids, stores it in the
// request context and echoes it in the response. LoggerExtractor adds the id
// to every log record written with that context.
//
// Generated ids are ULIDs, so they sort by creation time.
package requestid
