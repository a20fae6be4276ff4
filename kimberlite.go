// Package kimberlite provides a Go client for the Kimberlite database.
//
// Kimberlite is a compliance-first database for regulated industries
// (healthcare, finance, legal) built on immutable, append-only logs.
//
// Quick start:
//
//	client, err := kimberlite.Connect("127.0.0.1:5432", kimberlite.WithTenant(1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Query("SELECT * FROM patients")
//
// Failures and warnings are reported as diagnostic chains (see package diag).
// A single operation may raise several diagnostics; print all of them with
//
//	fmt.Printf("%+v\n", err)
//
// or walk them one by one:
//
//	var kerr *kimberlite.KimberliteError
//	if errors.As(err, &kerr) {
//	    for d := range kerr.All() {
//	        log.Println(d)
//	    }
//	}
package kimberlite

// Version is the current SDK version.
const Version = "0.6.0"
