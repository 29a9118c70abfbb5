// Command replay feeds a recorded pointer scenario to a Root and logs the
// records the handlers emit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/comalice/gesturex"
	"github.com/comalice/gesturex/internal/core"
	"github.com/comalice/gesturex/internal/extensibility"
	"github.com/comalice/gesturex/realtime"
)

type filterFlags []string

func (f *filterFlags) String() string     { return strings.Join(*f, ", ") }
func (f *filterFlags) Set(v string) error { *f = append(*f, v); return nil }

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] SCENARIO.yaml\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s testdata/photo.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -filter 'record == gesture' -filter 'kind == pinch' testdata/photo.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tick 16ms -dot testdata/photo.yaml\n", os.Args[0])
	}
	var filters filterFlags
	flag.Var(&filters, "filter", "only log records matching `EXPR`; may be repeated")
	tickRate := flag.Duration("tick", 0, "replay through the tick-based runtime with this frame width")
	dot := flag.Bool("dot", false, "print the handler graph as DOT after the replay")
	handlers := flag.String("config", "", "load handlers from this JSON, YAML or TOML file instead of the scenario")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	log.SetFlags(0)
	sc, err := LoadScenario(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
		os.Exit(1)
	}
	if *handlers != "" {
		cfg, err := gesturex.LoadConfig(*handlers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		sc.Root = cfg
	}

	var sink core.Sink = extensibility.NewLoggingSink(nil)
	if len(filters) > 0 {
		fs, err := extensibility.NewFilterSink(sink, filters...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad filter: %v\n", err)
			os.Exit(1)
		}
		sink = fs
	}

	root := gesturex.NewRoot(gesturex.WithID(sc.Root.ID), gesturex.WithSink(sink))
	if err := root.Apply(sc.Root); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to apply config: %v\n", err)
		os.Exit(1)
	}

	if *tickRate > 0 {
		replayFrames(root, sc, *tickRate)
	} else {
		replayDirect(root, sc)
	}

	if *dot {
		fmt.Println(root.Visualize())
	}
}

func replayDirect(root *gesturex.Root, sc *Scenario) {
	for _, st := range sc.Steps {
		if st.Tick() {
			root.Tick(st.Time())
			continue
		}
		ev, _ := st.Event()
		if res := root.FeedPointerEvent(ev); res.Dropped {
			log.Printf("step at %.1fms: pointer %d dropped", st.At, st.Pointer)
		}
	}
}

func replayFrames(root *gesturex.Root, sc *Scenario, rate time.Duration) {
	rt := realtime.NewRuntime(root, realtime.Config{TickRate: rate})
	for i, frame := range sc.Frames(rate) {
		for _, ev := range frame {
			if err := rt.SendEvent(ev); err != nil {
				log.Printf("frame %d: %v", i, err)
			}
		}
		rt.Step()
	}
	log.Printf("replayed %d frames, clock at %v", rt.GetTickNumber(), rt.Now())
}
