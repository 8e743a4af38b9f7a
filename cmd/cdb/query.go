// query.go -- '-q' query mode: print one or every duplicate of KEY.
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

// runQuery implements 'cdb -q [--access MODE] [-n RECNO] FILE KEY'.
func runQuery(args []string, mode cdb.AccessMode, recno int) error {
	if len(args) != 2 {
		return fmt.Errorf("query: need FILE and KEY")
	}

	fn, key := args[0], []byte(args[1])

	rd, err := cdb.Open(fn, mode)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rd.Close()

	it := rd.Lookup(key)

	if recno > 0 {
		var val []byte
		for i := 0; i < recno; i++ {
			val, err = it.Next()
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			if val == nil {
				return nil
			}
		}
		fmt.Println(string(val))
		return nil
	}

	for {
		val, err := it.Next()
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		if val == nil {
			return nil
		}
		fmt.Println(string(val))
	}
}
