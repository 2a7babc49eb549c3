// Package lottery fetches official Lotto 6/45 draw results from the
// Donghaeng Lottery service.
//
// The service exposes a JSON endpoint keyed by draw number. Requests must
// carry browser-like headers because the endpoint answers bare programmatic
// clients with HTML error pages. Draw dates arrive as YYYYMMDD and are
// normalized to YYYY-MM-DD before a draw is handed to callers.
//
// The package also estimates the latest draw number from the calendar:
// draw #1 was held on 2002-12-07 and draws repeat weekly on Saturday
// evenings (KST). The estimate lets sync plan its work without asking
// the remote service first.
package lottery
