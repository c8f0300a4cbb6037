// Dumper builds an image from a Pkl layout file and writes it as Intel HEX.
//
// Each region of the layout is either the content of a binary file or size
// bytes of a fill value, placed at the region address.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/antoinealb/hexfile"
	"github.com/antoinealb/hexfile/example/dumper/layout"
	"github.com/golang/glog"
)

func regionData(r *layout.Region) ([]byte, error) {
	if r.Path != nil {
		return os.ReadFile(*r.Path)
	}
	b := make([]byte, r.Size)
	for i := range b {
		b[i] = r.Fill
	}
	return b, nil
}

func main() {
	in := flag.String("layout", "image.pkl", "Pkl layout file")
	out := flag.String("out", "output.hex", "output Intel HEX file")
	flag.Parse()
	defer glog.Flush()

	l, err := layout.LoadFromPath(context.Background(), *in)
	if err != nil {
		glog.Exitf("layout: %v", err)
	}
	mem := hexfile.NewImage()
	for _, r := range l.Regions {
		data, err := regionData(r)
		if err != nil {
			glog.Exitf("region %#08x: %v", r.Address, err)
		}
		if err := mem.AddBinary(r.Address, data); err != nil {
			glog.Exitf("region %#08x: %v", r.Address, err)
		}
		glog.Infof("region %#08x: %d bytes", r.Address, len(data))
	}
	if err := hexfile.Write(*out, mem); err != nil {
		glog.Exitf("write: %v", err)
	}
}
