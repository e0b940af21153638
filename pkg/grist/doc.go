// Package grist provides types, interfaces, and helpers for working with the
// Grist API.
//
// # Overview
//
// The grist package defines the domain types (Org, Workspace, Doc, Record,
// Attachment) and the interfaces for resource-oriented clients (OrgsClient,
// DocsClient, RecordsClient, ...). A concrete implementation of these clients
// is provided by the gristclient package, which wires configuration,
// transport, authentication, and retry policy. Most consumers should import
// gristclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// # Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/gristlabs/grist-go/pkg/grist"
//	  "github.com/gristlabs/grist-go/pkg/gristclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := gristclient.New(ctx, &grist.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  // List records, filtered and sorted
//	  opts := grist.NewListOptions().WithFilter("pet", "cat", "dog").WithSort("pet,-age")
//	  recs, err := cli.Records().List(ctx, "docId", "Table1", opts)
//	  if err != nil { log.Fatal(err) }
//	  _ = recs
//	}
//
// # Optional parameters
//
// List and update operations take small options structs whose unset fields
// are omitted from the request entirely, never sent as empty values. Use the
// builder methods (WithFilter, WithSort, WithLimit, WithName, WithPinned,
// WithUser, ...) to mark a field as explicitly supplied.
//
// # Errors
//
// API-semantic failures are represented by APIError, which carries the
// failing URL, status code, raw body, and parsed JSON body. Helpers such as
// IsNotFound, IsUnauthorized, and IsForbidden make it easy to branch on
// common cases. Transient failures (connection errors, 502/503/504, backend
// contention) are retried by the transport and only surface, as a plain
// transport error, once the retry budget is exhausted.
//
// # Dry-run
//
// A client built with Config.DryRun set logs and skips every mutating call
// while still executing reads, which makes it safe to exercise scripts
// against production documents.
package grist
