// Package fixture is a development backend for the console: a SQLite store of
// seeded academic records served over the same JSON API the console reads in
// production.
//
// Start it with `registrar fixture serve` and point backend.url at it.
//
// Endpoints:
//
//	GET /api/version
//	GET /api/:resource?q=&<relation>=
//	GET /api/:resource/paged?page=&size=&q=
//	GET /api/:resource/:id
//
// Pages are 0-based. Sizes default to 25 and are capped at 100.
package fixture
