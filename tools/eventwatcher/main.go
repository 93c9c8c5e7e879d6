//
// Event watcher is a simple utility for tests
//
// It follows the event log of a node, and waits until every expected
// event type was seen at least once.
// Once this is reached, it exits with a 0 status code.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"boscoin.io/rankchoice/lib/client"
	"boscoin.io/rankchoice/lib/common"
)

const (
	pollInterval = 500 * time.Millisecond
	timeout      = 2 * time.Minute
)

// the node may be still starting up when the watcher runs
var retrySetting = &common.RetrySetting{
	MaxRetries:  10,
	Concurrency: 1,
	Backoff: func(retry int) time.Duration {
		return time.Duration(retry) * time.Second
	},
}

// This program expects at least two arguments:
// - the server address (without trailing slash)
// - the event types to wait for, like `poll-created new-vote-cast`
func main() {
	if len(os.Args) < 3 {
		fmt.Println("ERROR: Arguments should be <server> <event type>+")
		os.Exit(1)
	}

	server := os.Args[1]
	expected := map[string]bool{}
	for _, t := range os.Args[2:] {
		expected[t] = false
	}

	cli, err := client.NewClient(server, retrySetting)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	handler := func(e client.Event) error {
		// We log the events so if something fail, we have an history of what the client saw
		tnow := time.Now()
		fmt.Printf("%02d-%d-%d:%d:%s:%d:%s\n", tnow.Hour(), tnow.Minute(), tnow.Second(),
			e.Seq, e.Type, e.Height, e.TxHash)

		if _, found := expected[e.Type]; found {
			expected[e.Type] = true
		}

		for _, seen := range expected {
			if !seen {
				return nil
			}
		}
		cancel()

		return nil
	}

	if err := cli.WatchEvents(ctx, 0, pollInterval, handler); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}

	for t, seen := range expected {
		if !seen {
			fmt.Printf("ERROR: event %q was not seen\n", t)
			os.Exit(1)
		}
	}
}
