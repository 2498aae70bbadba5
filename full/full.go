// Package full enables every optional capability at once. A blank import
//
//	import _ "github.com/GeneralBots/botlib/full"
//
// pulls in the database, HTTP client and validation integrations, which is
// equivalent to importing each of them individually.
package full

import (
	_ "github.com/GeneralBots/botlib/db/pg"
	_ "github.com/GeneralBots/botlib/db/sqlite"
	_ "github.com/GeneralBots/botlib/httpx"
	_ "github.com/GeneralBots/botlib/validate"
)
