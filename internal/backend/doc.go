// Package backend is the HTTP client for the academic-records service.
//
// The service exposes each resource as a JSON collection:
//
//	GET /api/{resource}?q=           full list (client-driven pagination)
//	GET /api/{resource}/paged?page=&size=&q=
//	                                 one page, {content, number, size, totalPages, totalElements}
//	GET /api/{resource}/{id}         one record
//	GET /api/{resource}?{field}=     records related to another record
//	GET /api/version                 {"name", "version"}
//
// Records decode to table.Row, preserving the service's field order. Successful
// GET responses are cached when a Cache is configured. Requests are never
// retried.
package backend
