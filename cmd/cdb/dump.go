// dump.go -- '-d' dump mode: print every KEY = VALUE in on-disk order.
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"fmt"

	"github.com/opencoff/go-cdb"
)

// runDump implements 'cdb -d [--access MODE] FILE'.
func runDump(args []string, mode cdb.AccessMode) error {
	if len(args) != 1 {
		return fmt.Errorf("dump: need FILE")
	}

	rd, err := cdb.Open(args[0], mode)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer rd.Close()

	it := rd.All()
	for {
		p, err := it.Next()
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		if p == nil {
			return nil
		}
		fmt.Printf("%s = %s\n", p.Key, p.Value)
	}
}
