//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/menumap --repository.default-branch main --repository.path /

// Package menumap provides a read-through cache over a remote menu catalog.
//
// On first use the client consults its durable store. A non-empty store is
// served as is; an empty one is filled from the remote catalog exactly once,
// even when many callers ask at the same time.
//
// Example usage:
//
//	db, err := sqlite.Open("little_lemon.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	fetcher, err := remote.New("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := menumap.New(db, fetcher,
//	    menumap.WithFetchTimeout(30*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	items, err := client.Catalog(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, item := range items {
//	    fmt.Printf("%s %s\n", item.Name, item.FormatPrice())
//	}
package menumap
