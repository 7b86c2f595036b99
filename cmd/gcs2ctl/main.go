// gcs2ctl is a command line tool for finding and identifying PI motion
// controllers attached over USB.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/gousb"
	"github.com/theckman/yacspin"

	"github.com/hwlab/pigcs2/gcs2"
)

// PIVID is the Physik Instrumente USB vendor ID
const PIVID = 0x1a72

func usage() {
	str := `gcs2ctl finds and identifies PI motion controllers on the USB bus.

Usage:
	gcs2ctl <command>

Commands:
	probe                scan the USB bus for devices with the PI vendor ID
	enumerate [keyword]  list controller descriptors via the GCS2 library
	discover             probe every descriptor, including daisy chains
	idn <descriptor>     connect to one controller and print its identification

probe needs only libusb; the other commands need the binary built with the
gcs2dll tag and the PI GCS2 development package installed.`
	fmt.Println(str)
}

// spin runs fn behind a terminal spinner, since bus scans and connects
// take multiple seconds with some interfaces
func spin(suffix string, fn func() error) error {
	cfg := yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[59],
		Suffix:          " " + suffix,
		SuffixAutoColon: true,
		StopCharacter:   "done",
	}
	spinner, err := yacspin.New(cfg)
	if err != nil {
		return err
	}
	spinner.Start()
	err = fn()
	if err != nil {
		spinner.StopFail()
		return err
	}
	spinner.Stop()
	return nil
}

func probe() {
	ctx := gousb.NewContext()
	defer ctx.Close()
	found := 0
	_, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if uint16(desc.Vendor) == PIVID {
			found++
			fmt.Printf("bus %d addr %d: vid %s pid %s\n", desc.Bus, desc.Address, desc.Vendor, desc.Product)
		}
		// enumerate only, do not open anything
		return false
	})
	if err != nil {
		log.Fatal(err)
	}
	if found == 0 {
		fmt.Println("no devices with the PI vendor ID found")
	}
}

func openComm() *gcs2.Communication {
	api, err := gcs2.NewDLL()
	if err != nil {
		log.Fatal(err)
	}
	return gcs2.NewCommunication(api)
}

func enumerate(keyword string) {
	comm := openComm()
	var listing string
	err := spin("scanning USB bus", func() error {
		var err error
		listing, err = comm.EnumerateUSB(keyword)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	if listing == "" {
		fmt.Println("no controllers found")
		return
	}
	fmt.Println(listing)
}

func discover() {
	comm := openComm()
	var devs []gcs2.Device
	err := spin("probing controllers", func() error {
		var err error
		devs, err = gcs2.Discover(comm)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range devs {
		if d.DaisyIndex == 0 {
			fmt.Println(d.Desc)
		} else {
			fmt.Printf("%s [device %d of %d]\n", d.Desc, d.DaisyIndex, d.Members)
		}
	}
	if len(devs) == 0 {
		fmt.Println("no controllers found")
	}
}

func idn(desc string) {
	comm := openComm()
	var text string
	err := spin("connecting", func() error {
		id, err := comm.ConnectUSB(desc)
		if err != nil {
			return err
		}
		defer comm.CloseConnection(id)
		ctl := gcs2.NewController(comm.Native(), id)
		text, err = ctl.Identification()
		return err
	})
	if err != nil {
		log.Fatal(err)
	}
	parsed := gcs2.ParseIDN(text)
	fmt.Println(text)
	fmt.Printf("vendor: %s\nmodel: %s\nserial: %s\n", parsed.Vendor, parsed.Model, parsed.Serial)
}

func main() {
	args := os.Args
	if len(args) == 1 {
		usage()
		return
	}
	switch args[1] {
	case "probe":
		probe()
	case "enumerate":
		keyword := ""
		if len(args) > 2 {
			keyword = args[2]
		}
		enumerate(keyword)
	case "discover":
		discover()
	case "idn":
		if len(args) < 3 {
			log.Fatal("idn requires a descriptor argument")
		}
		idn(args[2])
	default:
		usage()
	}
}
