// main.go -- cdb query/dump CLI, retained for compatibility with the
// classic cdbget/cdbdump tools.
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
	"os"

	"github.com/opencoff/go-cdb"
	flag "github.com/opencoff/pflag"
)

func main() {
	var query, dump bool
	var access string
	var recno int

	usage := fmt.Sprintf(`%s - query or dump a cdb constant database

Usage: %s -q [--access mmap|reader|bufreader] [-n RECNO] FILE KEY
       %s -d [--access mmap|reader|bufreader] FILE

Options:
`, os.Args[0], os.Args[0], os.Args[0])

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.SetInterspersed(true)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&query, "query", "q", false, "Query FILE for KEY")
	fs.BoolVarP(&dump, "dump", "d", false, "Dump every record of FILE")
	fs.StringVar(&access, "access", "mmap", "Use `MODE` as the backing store: mmap, reader or bufreader")
	fs.IntVarP(&recno, "recno", "n", 0, "Print only the `N`th (1-based) duplicate value for KEY")
	fs.Usage = func() {
		fmt.Printf(usage)
		fs.PrintDefaults()
		os.Exit(0)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		die("%s", err)
	}

	if query == dump {
		die("specify exactly one of -q or -d")
	}

	mode, err := cdb.ParseAccessMode(access)
	if err != nil {
		die("%s", err)
	}

	args := fs.Args()
	switch {
	case query:
		err = runQuery(args, mode, recno)
	case dump:
		err = runDump(args, mode)
	}
	if err != nil {
		die("%s", err)
	}
}

// die with error
func die(f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(1)
}

func warn(f string, v ...interface{}) {
	z := fmt.Sprintf("%s: %s", os.Args[0], f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}

	os.Stderr.WriteString(s)
	os.Stderr.Sync()
}
