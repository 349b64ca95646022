package migrations

import "embed"

// FS embeds the ledger schema migrations. golang-migrate reads them through
// the iofs driver on startup.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects.
const Version = 1
