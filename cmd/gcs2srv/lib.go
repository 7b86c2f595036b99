package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/hwlab/pigcs2/gcs2"
	"github.com/hwlab/pigcs2/generichttp"
	"github.com/hwlab/pigcs2/generichttp/motion"
	"github.com/hwlab/pigcs2/server/middleware/locker"
	"github.com/hwlab/pigcs2/util"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-yaml/yaml"
)

// Minmax holds a min and max value
type Minmax struct {
	Min float64 `yaml:"Min"`
	Max float64 `yaml:"Max"`
}

// Daisy holds one device on a daisy chain: its 1-based index on the chain,
// the endpoint its routes are served on, and its limits
type Daisy struct {
	Device   int               `yaml:"Device"`
	Endpoint string            `yaml:"Endpoint"`
	Limits   map[string]Minmax `yaml:"Limits"`
}

// ObjSetup holds the arguments to stand up one controller node
type ObjSetup struct {
	// Desc is the USB enumeration descriptor of the controller, as
	// returned by enumeration, e.g. "PI E-873 Controller SN 119006725"
	Desc string `yaml:"Desc"`

	// Endpoint is the final "directory" to put the controller's routes
	// under, ex. Endpoint="/omc/pi" produces routes of /omc/pi/axis/..., etc.
	Endpoint string `yaml:"Endpoint"`

	// Type is the kind of node, "pi-usb" or "pi-daisy-chain"
	Type string `yaml:"Type"`

	// Limits holds the software travel limits imposed per axis
	Limits map[string]Minmax `yaml:"Limits"`

	// Axes names the axes a simulated controller carries, unused against
	// real hardware
	Axes []string `yaml:"Axes"`

	// DaisyChain lists the devices on the chain for pi-daisy-chain nodes
	DaisyChain []Daisy `yaml:"DaisyChain"`
}

// Config is a struct that holds the initialization parameters for the
// HTTP adapted controllers.  It is to be populated by a yaml/unmarshal call.
type Config struct {
	// Addr is the address to listen at
	Addr string `yaml:"Addr"`

	Mock bool `yaml:"Mock"`

	// Nodes is the list of nodes to set up
	Nodes []ObjSetup `yaml:"Nodes"`
}

// LoadYaml converts a (path to a) yaml file into a Config struct
func LoadYaml(path string) (Config, error) {
	cfg := Config{}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	err = yaml.NewDecoder(f).Decode(&cfg)
	return cfg, err
}

// buildNative picks the layer below the handles: a simulator carrying the
// configured devices, or the vendor library
func buildNative(c Config) gcs2.Native {
	if c.Mock {
		devices := make([]gcs2.SimDevice, 0, len(c.Nodes))
		for _, node := range c.Nodes {
			axes := node.Axes
			if len(axes) == 0 {
				axes = []string{"1"}
			}
			devices = append(devices, gcs2.SimDevice{
				IDN:   node.Desc,
				Axes:  axes,
				Chain: len(node.DaisyChain)})
		}
		return gcs2.NewSim(devices...)
	}
	api, err := gcs2.NewDLL()
	if err != nil {
		log.Fatal(err)
	}
	return api
}

// limiters converts config minmax pairs to util.Limiter
func limiters(raw map[string]Minmax) map[string]util.Limiter {
	out := map[string]util.Limiter{}
	for axis, mm := range raw {
		out[axis] = util.Limiter{Min: mm.Min, Max: mm.Max}
	}
	return out
}

// injectInfo adds the controller-level introspection routes to a table
func injectInfo(rt generichttp.RouteTable, ctl *gcs2.Controller) {
	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/idn"}] = generichttp.GetString(ctl.Identification)
	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/version"}] = generichttp.GetString(ctl.Version)
	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/help"}] = generichttp.GetString(ctl.Help)
	rt[generichttp.MethodPath{Method: http.MethodGet, Path: "/parameters"}] = generichttp.GetString(ctl.SupportedParameters)
}

// mountController wires one connected controller into the root mux with
// limits and an axis lock
func mountController(root chi.Router, ctl *gcs2.Controller, endpoint string, lims map[string]util.Limiter, supergraph map[string][]string) {
	limiter := motion.LimitMiddleware{Limits: lims, Mov: ctl}
	httper := motion.NewHTTPMotionController(ctl)
	injectInfo(httper.RT(), ctl)
	limiter.Inject(httper)

	lock := locker.NewAL()
	locker.Inject(httper, lock)

	hndlS := generichttp.SubMuxSanitize(endpoint)
	supergraph[hndlS] = httper.RT().Endpoints()

	r := chi.NewRouter()
	r.Use(limiter.Check)
	r.Use(lock.Check)
	httper.RT().Bind(r)
	root.Mount(hndlS, r)
}

// BuildMux constructs a chi mux from the config: one submux per
// controller, plus a special route, /endpoints, which returns the
// supergraph of all routes as JSON.
func BuildMux(c Config) chi.Router {
	// make the root handler
	root := chi.NewRouter()
	root.Use(middleware.Logger)
	supergraph := map[string][]string{}

	api := buildNative(c)
	comm := gcs2.NewCommunication(api)

	for _, node := range c.Nodes {
		typ := strings.ToLower(node.Type)
		switch typ {
		case "pi", "pi-usb":
			id, err := comm.ConnectUSB(node.Desc)
			if err != nil {
				log.Fatalf("connecting to %s: %v", node.Desc, err)
			}
			ctl := gcs2.NewController(api, id)
			mountController(root, ctl, node.Endpoint, limiters(node.Limits), supergraph)

		case "pi-daisy-chain":
			// daisy chain is special in that a single USB port carries
			// multiple controllers
			daisy, n, _, err := comm.OpenUSBDaisyChain(node.Desc)
			if err != nil {
				log.Fatalf("opening daisy chain %s: %v", node.Desc, err)
			}
			for _, dev := range node.DaisyChain {
				if dev.Device < 1 || dev.Device > n {
					log.Fatalf("daisy chain %s has %d devices, device %d configured", node.Desc, n, dev.Device)
				}
				id, err := comm.ConnectDaisyChainDevice(daisy, dev.Device)
				if err != nil {
					log.Fatalf("connecting to device %d on %s: %v", dev.Device, node.Desc, err)
				}
				ctl := gcs2.NewController(api, id)
				mountController(root, ctl, dev.Endpoint, limiters(dev.Limits), supergraph)
			}

		default:
			log.Fatal("type ", typ, " not understood")
		}
	}
	root.Get("/endpoints", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		err := json.NewEncoder(w).Encode(supergraph)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return root
}
