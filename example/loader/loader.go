// Loader reads an Intel HEX file and prints its chunks, the way a flashing
// tool would walk them before programming a device.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/antoinealb/hexfile"
	"github.com/golang/glog"
)

func main() {
	in := flag.String("in", "example.hex", "input Intel HEX file")
	start := flag.Uint("start", 0, "start address of the binary window to dump")
	size := flag.Uint("size", 0, "size of the binary window to dump, 0 to skip")
	pad := flag.Uint("pad", 0xFF, "byte used for gaps in the binary window")
	flag.Parse()
	defer glog.Flush()

	mem, err := hexfile.Read(*in)
	if err != nil {
		glog.Exitf("read: %v", err)
	}
	for i, c := range mem.Chunks() {
		fmt.Printf("%d: Address: %#08x DataLen: %d\n", i, c.Address, len(c.Data))
	}
	if *size != 0 {
		b := mem.ToBinary(uint32(*start), uint32(*size), byte(*pad))
		os.Stdout.WriteString(hex.Dump(b))
	}
}
