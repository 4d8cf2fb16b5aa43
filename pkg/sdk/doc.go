// Package sdk provides a Go client for the fuzzdex search façade.
//
// Fuzzdex exposes two independent operations: catalog search against an
// external provider, and fuzzy matching over candidate records the caller
// supplies per request.
//
//	client, _ := sdk.New("http://localhost:8080")
//
//	hits, _ := client.SearchExternal(ctx, "openlibrary", "harry potter",
//	    sdk.WithLimit(10),
//	)
//
//	matches, _ := client.SearchLocal(ctx, "Harry Poter",
//	    []map[string]string{
//	        {"title": "Harry Potter"},
//	        {"title": "Unrelated Title"},
//	    },
//	    sdk.WithThreshold(80),
//	)
//
// Errors map onto sentinel values; use errors.Is() to check.
package sdk
