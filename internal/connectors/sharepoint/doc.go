// Package sharepoint implements a read-only client for the SharePoint
// 2013 REST API.
//
// # Architecture
//
// The package comprises the following components:
//
//   - Client: performs authenticated GETs and parses the verbose OData
//     envelope, with token bucket rate limiting
//   - FetchAll: drains server-side pagination by following the __next
//     continuation pointer, concatenating pages in order
//   - AttachAll: concurrent per-item fan-out that populates each list
//     item's attachment collection, joining all-or-nothing
//   - URLBuilder: assembles resource URLs for lists, items, attachments,
//     and folder contents
//
// # Authentication
//
// Requests carry a bearer token obtained from a [driven.TokenProvider].
// The client performs no token handling of its own beyond presenting the
// token; on a 401 response callers should call DropToken on the provider
// and retry, since only the caller observes the rejection.
//
// # Error Handling
//
// Failures propagate unmodified to the caller: there is no retry, no
// partial result, and no logging at this layer. HTTP statuses map to
// sentinel errors via [WrapError]; bodies that are not the expected
// verbose envelope surface as [ErrMalformedEnvelope].
//
// # TLS
//
// Some SharePoint 2013 farms present TLS configurations Go's defaults
// refuse. Config.InsecureSkipVerify exists as an explicit, narrowly
// scoped opt-out for those farms and is never enabled by default.
package sharepoint
